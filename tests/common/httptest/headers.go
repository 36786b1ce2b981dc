//go:build unit || e2e

package httptest

import (
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// AssertLocation checks the Location header a create endpoint returns.
func AssertLocation(t *testing.T, w *httptest.ResponseRecorder, collection string, id uuid.UUID) {
	t.Helper()
	assert.Equal(t, collection+"/"+id.String(), w.Header().Get("Location"))
}
