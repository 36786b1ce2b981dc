//go:build unit || e2e

package builder

import (
	"time"

	"space-booking/internal/domain/space"
	reqdto "space-booking/internal/handler/dto/request"
	"space-booking/internal/usecase/commands"
	"space-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type SpaceBuilder struct {
	Name           string
	Category       string
	Capacity       int
	HourlyRate     float64
	ReservationIDs []uuid.UUID
	CreatedAt      time.Time
}

func NewSpaceBuilder() *SpaceBuilder {
	return &SpaceBuilder{
		Name:       "Focus Desk 1",
		Category:   string(space.CategoryDesk),
		Capacity:   1,
		HourlyRate: 10,
		CreatedAt:  time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (b *SpaceBuilder) With(mutate func(*SpaceBuilder)) *SpaceBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *SpaceBuilder) BuildDomain() (*space.Space, error) {
	category, err := space.NewCategory(b.Category)
	if err != nil {
		return nil, err
	}
	return space.NewSpace(b.Name, category, b.Capacity, b.HourlyRate, b.CreatedAt)
}

func (b *SpaceBuilder) BuildCreateInput() commands.CreateSpaceInput {
	return commands.CreateSpaceInput{
		Name:       b.Name,
		Category:   b.Category,
		Capacity:   b.Capacity,
		HourlyRate: b.HourlyRate,
	}
}

func (b *SpaceBuilder) BuildCreateRequestDTO() reqdto.CreateSpaceRequest {
	return reqdto.CreateSpaceRequest{
		Name:       b.Name,
		Category:   b.Category,
		Capacity:   b.Capacity,
		HourlyRate: b.HourlyRate,
	}
}

func (b *SpaceBuilder) BuildView() *queries.SpaceView {
	return &queries.SpaceView{
		ID:             uuid.New(),
		Name:           b.Name,
		Category:       b.Category,
		Capacity:       b.Capacity,
		HourlyRate:     b.HourlyRate,
		ReservationIDs: b.ReservationIDs,
		CreatedAt:      b.CreatedAt,
	}
}
