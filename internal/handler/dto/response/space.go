package response

import (
	"time"

	"space-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type SpaceResponse struct {
	ID             uuid.UUID   `json:"id"`
	Name           string      `json:"name"`
	Category       string      `json:"category"`
	Capacity       int         `json:"capacity"`
	HourlyRate     float64     `json:"hourlyRate"`
	ReservationIDs []uuid.UUID `json:"reservationIds"`
	CreatedAt      time.Time   `json:"createdAt"`
}

func FromSpaceView(v *queries.SpaceView) *SpaceResponse {
	ids := v.ReservationIDs
	if ids == nil {
		ids = []uuid.UUID{}
	}
	return &SpaceResponse{
		ID:             v.ID,
		Name:           v.Name,
		Category:       v.Category,
		Capacity:       v.Capacity,
		HourlyRate:     v.HourlyRate,
		ReservationIDs: ids,
		CreatedAt:      v.CreatedAt,
	}
}

func FromSpaceViews(views []*queries.SpaceView) []*SpaceResponse {
	out := make([]*SpaceResponse, 0, len(views))
	for _, v := range views {
		out = append(out, FromSpaceView(v))
	}
	return out
}
