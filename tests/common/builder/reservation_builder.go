//go:build unit || e2e

package builder

import (
	"time"

	"space-booking/internal/domain/reservation"
	reqdto "space-booking/internal/handler/dto/request"
	"space-booking/internal/usecase/commands"
	"space-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	SpaceID    uuid.UUID
	UserID     uuid.UUID
	StartTime  time.Time
	EndTime    time.Time
	Status     string
	TotalPrice float64
	CreatedAt  time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	start := time.Date(2030, 1, 7, 9, 0, 0, 0, time.UTC)
	return &ReservationBuilder{
		SpaceID:    uuid.New(),
		UserID:     uuid.New(),
		StartTime:  start,
		EndTime:    start.Add(time.Hour),
		Status:     string(reservation.StatusPending),
		TotalPrice: 10,
		CreatedAt:  time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *ReservationBuilder) BuildDomain() *reservation.Reservation {
	return reservation.ReconstructReservation(
		uuid.New(),
		b.SpaceID,
		b.UserID,
		reservation.ReconstructTimeSlot(b.StartTime, b.EndTime),
		reservation.Status(b.Status),
		b.TotalPrice,
		b.CreatedAt,
		b.CreatedAt,
	)
}

func (b *ReservationBuilder) BuildCreateInput() commands.CreateReservationInput {
	return commands.CreateReservationInput{
		SpaceID: b.SpaceID,
		UserID:  b.UserID,
		Start:   b.StartTime,
		End:     b.EndTime,
	}
}

func (b *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		SpaceID:   b.SpaceID,
		UserID:    b.UserID,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
	}
}

func (b *ReservationBuilder) BuildView() *queries.ReservationView {
	return &queries.ReservationView{
		ID:         uuid.New(),
		SpaceID:    b.SpaceID,
		UserID:     b.UserID,
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		Status:     b.Status,
		TotalPrice: b.TotalPrice,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.CreatedAt,
	}
}
