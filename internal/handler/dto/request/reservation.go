package request

import (
	"time"

	"space-booking/internal/domain/reservation"
	"space-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	SpaceID   uuid.UUID `json:"spaceId" binding:"required"`
	UserID    uuid.UUID `json:"userId" binding:"required"`
	StartTime time.Time `json:"startTime" binding:"required"`
	EndTime   time.Time `json:"endTime" binding:"required"`
}

func (r CreateReservationRequest) ToInput() commands.CreateReservationInput {
	return commands.CreateReservationInput{
		SpaceID: r.SpaceID,
		UserID:  r.UserID,
		Start:   r.StartTime,
		End:     r.EndTime,
	}
}

type UpdateReservationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING CONFIRMED CANCELLED"`
}

func (r UpdateReservationStatusRequest) ToStatus() reservation.Status {
	return reservation.Status(r.Status)
}
