//go:build unit

package infra_test

import (
	"errors"
	"testing"

	"space-booking/internal/infra"

	"github.com/stretchr/testify/assert"
)

func TestWrapRepoErr(t *testing.T) {
	t.Run("defaults to DB failure and keeps the cause", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := infra.WrapRepoErr("failed to list spaces", cause)

		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
		assert.False(t, infra.IsKind(err, infra.KindNotFound))
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "DB_FAILURE: failed to list spaces")
	})

	t.Run("explicit kind without cause", func(t *testing.T) {
		err := infra.WrapRepoErr("space not found", nil, infra.KindNotFound)

		assert.True(t, infra.IsKind(err, infra.KindNotFound))
		assert.Equal(t, "NOT_FOUND: space not found", err.Error())
	})

	t.Run("plain errors have no kind", func(t *testing.T) {
		assert.False(t, infra.IsKind(errors.New("boom"), infra.KindNotFound))
	})
}
