//go:build unit

package commands_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"space-booking/internal/domain/space"
	"space-booking/internal/infra/memstore"
	"space-booking/internal/pkg/clock"
	"space-booking/internal/pkg/errs"
	"space-booking/internal/usecase/commands"
	"space-booking/internal/usecase/shared"
	"space-booking/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpaceCommands_Create(t *testing.T) {
	now := time.Date(2030, 1, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mutate  func(*builder.SpaceBuilder)
		wantErr error
	}{
		{name: "valid desk", mutate: func(*builder.SpaceBuilder) {}},
		{name: "valid meeting room", mutate: func(b *builder.SpaceBuilder) { b.Category = "MEETING_ROOM"; b.Capacity = 8 }},
		{name: "name at max length", mutate: func(b *builder.SpaceBuilder) { b.Name = strings.Repeat("a", 255) }},
		{name: "empty name", mutate: func(b *builder.SpaceBuilder) { b.Name = "   " }, wantErr: space.ErrEmptySpaceName},
		{name: "name too long", mutate: func(b *builder.SpaceBuilder) { b.Name = strings.Repeat("a", 256) }, wantErr: space.ErrSpaceNameTooLong},
		{name: "unknown category", mutate: func(b *builder.SpaceBuilder) { b.Category = "PHONE_BOOTH" }, wantErr: space.ErrInvalidCategory},
		{name: "zero capacity", mutate: func(b *builder.SpaceBuilder) { b.Capacity = 0 }, wantErr: space.ErrInvalidCapacity},
		{name: "negative rate", mutate: func(b *builder.SpaceBuilder) { b.HourlyRate = -1 }, wantErr: space.ErrInvalidRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := memstore.New()
			uc := commands.NewSpaceUseCase(store, clock.NewMockClock(now))

			in := builder.NewSpaceBuilder().With(tt.mutate).BuildCreateInput()
			sp, err := uc.Create(ctx, in)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				assert.True(t, errors.Is(err, errs.ErrValidation))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, strings.TrimSpace(in.Name), sp.Name())
			assert.Equal(t, now, sp.CreatedAt())
			assert.Empty(t, sp.ReservationIDs())

			require.NoError(t, store.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
				stored, err := tx.Spaces().FindByID(ctx, sp.ID())
				require.NoError(t, err)
				assert.Equal(t, sp.Category(), stored.Category())
				return nil
			}))
		})
	}
}
