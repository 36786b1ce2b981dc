package queries

import (
	"time"

	"space-booking/internal/domain/reservation"
	"space-booking/internal/domain/space"
	"space-booking/internal/domain/user"

	"github.com/google/uuid"
)

// SpaceView represents read-optimized space data
type SpaceView struct {
	ID             uuid.UUID
	Name           string
	Category       string
	Capacity       int
	HourlyRate     float64
	ReservationIDs []uuid.UUID
	CreatedAt      time.Time
}

// UserView represents read-optimized user data
type UserView struct {
	ID             uuid.UUID
	Name           string
	Email          string
	ReservationIDs []uuid.UUID
	CreatedAt      time.Time
}

// ReservationView represents read-optimized reservation data
type ReservationView struct {
	ID         uuid.UUID
	SpaceID    uuid.UUID
	UserID     uuid.UUID
	StartTime  time.Time
	EndTime    time.Time
	Status     string
	TotalPrice float64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func NewSpaceView(sp *space.Space) *SpaceView {
	return &SpaceView{
		ID:             sp.ID(),
		Name:           sp.Name(),
		Category:       sp.Category().String(),
		Capacity:       sp.Capacity(),
		HourlyRate:     sp.HourlyRate(),
		ReservationIDs: sp.ReservationIDs(),
		CreatedAt:      sp.CreatedAt(),
	}
}

func NewUserView(u *user.User) *UserView {
	return &UserView{
		ID:             u.ID(),
		Name:           u.Name(),
		Email:          u.Email().Value(),
		ReservationIDs: u.ReservationIDs(),
		CreatedAt:      u.CreatedAt(),
	}
}

func NewReservationView(res *reservation.Reservation) *ReservationView {
	return &ReservationView{
		ID:         res.ID(),
		SpaceID:    res.SpaceID(),
		UserID:     res.UserID(),
		StartTime:  res.TimeSlot().Start(),
		EndTime:    res.TimeSlot().End(),
		Status:     res.Status().String(),
		TotalPrice: res.TotalPrice(),
		CreatedAt:  res.CreatedAt(),
		UpdatedAt:  res.UpdatedAt(),
	}
}

func toSpaceViews(spaces []*space.Space) []*SpaceView {
	views := make([]*SpaceView, 0, len(spaces))
	for _, sp := range spaces {
		views = append(views, NewSpaceView(sp))
	}
	return views
}

func toUserViews(users []*user.User) []*UserView {
	views := make([]*UserView, 0, len(users))
	for _, u := range users {
		views = append(views, NewUserView(u))
	}
	return views
}

func toReservationViews(list []*reservation.Reservation) []*ReservationView {
	views := make([]*ReservationView, 0, len(list))
	for _, res := range list {
		views = append(views, NewReservationView(res))
	}
	return views
}
