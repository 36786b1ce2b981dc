package memstore

import (
	"slices"
	"time"

	"space-booking/internal/domain/reservation"
	"space-booking/internal/domain/space"
	"space-booking/internal/domain/user"

	"github.com/google/uuid"
)

// Records are private copies: nothing handed out by the store aliases its state.

type spaceRecord struct {
	id             uuid.UUID
	name           string
	category       string
	capacity       int
	hourlyRate     float64
	reservationIDs []uuid.UUID
	createdAt      time.Time
}

type userRecord struct {
	id             uuid.UUID
	name           string
	email          string
	reservationIDs []uuid.UUID
	createdAt      time.Time
}

type reservationRecord struct {
	id         uuid.UUID
	spaceID    uuid.UUID
	userID     uuid.UUID
	start      time.Time
	end        time.Time
	status     string
	totalPrice float64
	createdAt  time.Time
	updatedAt  time.Time
}

func spaceToRecord(sp *space.Space) *spaceRecord {
	return &spaceRecord{
		id:             sp.ID(),
		name:           sp.Name(),
		category:       sp.Category().String(),
		capacity:       sp.Capacity(),
		hourlyRate:     sp.HourlyRate(),
		reservationIDs: sp.ReservationIDs(),
		createdAt:      sp.CreatedAt(),
	}
}

func (r *spaceRecord) toDomain() *space.Space {
	return space.ReconstructSpace(
		r.id,
		r.name,
		space.Category(r.category),
		r.capacity,
		r.hourlyRate,
		r.reservationIDs,
		r.createdAt,
	)
}

func userToRecord(u *user.User) *userRecord {
	return &userRecord{
		id:             u.ID(),
		name:           u.Name(),
		email:          u.Email().Value(),
		reservationIDs: u.ReservationIDs(),
		createdAt:      u.CreatedAt(),
	}
}

func (r *userRecord) toDomain() *user.User {
	return user.ReconstructUser(r.id, r.name, user.ReconstructEmail(r.email), r.reservationIDs, r.createdAt)
}

func reservationToRecord(res *reservation.Reservation) *reservationRecord {
	return &reservationRecord{
		id:         res.ID(),
		spaceID:    res.SpaceID(),
		userID:     res.UserID(),
		start:      res.TimeSlot().Start(),
		end:        res.TimeSlot().End(),
		status:     res.Status().String(),
		totalPrice: res.TotalPrice(),
		createdAt:  res.CreatedAt(),
		updatedAt:  res.UpdatedAt(),
	}
}

func (r *reservationRecord) toDomain() *reservation.Reservation {
	return reservation.ReconstructReservation(
		r.id,
		r.spaceID,
		r.userID,
		reservation.ReconstructTimeSlot(r.start, r.end),
		reservation.Status(r.status),
		r.totalPrice,
		r.createdAt,
		r.updatedAt,
	)
}

func removeID(ids []uuid.UUID, target uuid.UUID) []uuid.UUID {
	return slices.DeleteFunc(slices.Clone(ids), func(id uuid.UUID) bool {
		return id == target
	})
}
