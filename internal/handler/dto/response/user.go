package response

import (
	"time"

	"space-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID             uuid.UUID   `json:"id"`
	Name           string      `json:"name"`
	Email          string      `json:"email"`
	ReservationIDs []uuid.UUID `json:"reservationIds"`
	CreatedAt      time.Time   `json:"createdAt"`
}

func FromUserView(v *queries.UserView) *UserResponse {
	ids := v.ReservationIDs
	if ids == nil {
		ids = []uuid.UUID{}
	}
	return &UserResponse{
		ID:             v.ID,
		Name:           v.Name,
		Email:          v.Email,
		ReservationIDs: ids,
		CreatedAt:      v.CreatedAt,
	}
}

func FromUserViews(views []*queries.UserView) []*UserResponse {
	out := make([]*UserResponse, 0, len(views))
	for _, v := range views {
		out = append(out, FromUserView(v))
	}
	return out
}
