package user

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User books spaces. reservationIDs mirrors Space: insertion order, cancelled entries kept.
type User struct {
	id             uuid.UUID
	name           string
	email          Email
	reservationIDs []uuid.UUID
	createdAt      time.Time
}

func NewUser(name string, email Email, now time.Time) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyUserName
	}
	return &User{
		id:        uuid.New(),
		name:      name,
		email:     email,
		createdAt: now,
	}, nil
}

func ReconstructUser(id uuid.UUID, name string, email Email, reservationIDs []uuid.UUID, createdAt time.Time) *User {
	return &User{
		id:             id,
		name:           name,
		email:          email,
		reservationIDs: slices.Clone(reservationIDs),
		createdAt:      createdAt,
	}
}

func (u *User) AddReservation(reservationID uuid.UUID) {
	u.reservationIDs = append(u.reservationIDs, reservationID)
}

func (u *User) RemoveReservation(reservationID uuid.UUID) {
	u.reservationIDs = slices.DeleteFunc(u.reservationIDs, func(id uuid.UUID) bool {
		return id == reservationID
	})
}

func (u *User) ID() uuid.UUID               { return u.id }
func (u *User) Name() string                { return u.name }
func (u *User) Email() Email                { return u.email }
func (u *User) ReservationIDs() []uuid.UUID { return slices.Clone(u.reservationIDs) }
func (u *User) CreatedAt() time.Time        { return u.createdAt }
