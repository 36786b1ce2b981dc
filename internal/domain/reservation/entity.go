package reservation

import (
	"time"

	"space-booking/internal/domain/space"
	"space-booking/internal/pkg/clock"
	"space-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidTimeRange = errs.Wrap(errs.ErrInvalidRange, "invalid time slot")
	ErrNegativePrice    = errs.Wrap(errs.ErrValidation, "price cannot be negative")
	ErrInvalidStatus    = errs.Wrap(errs.ErrValidation, "invalid reservation status")
	ErrNilSpace         = errs.New("reservation requires a space")

	ErrReservationNotFound = errs.Wrap(errs.ErrNotFound, "reservation not found")
	ErrReservationConflict = errs.Wrap(errs.ErrConflict, "reservation conflict")
)

type Services struct {
	Clock           clock.Clock
	PriceCalculator PriceCalculator
}

// Reservation has no setter for its slot or price: the price is fixed at creation
// and must stay in step with the duration it was derived from.
type Reservation struct {
	id         uuid.UUID
	spaceID    uuid.UUID
	userID     uuid.UUID
	timeSlot   TimeSlot
	status     Status
	totalPrice float64
	createdAt  time.Time
	updatedAt  time.Time
}

func NewReservation(
	services *Services,
	sp *space.Space,
	userID uuid.UUID,
	slot TimeSlot,
) (*Reservation, error) {
	if sp == nil {
		return nil, ErrNilSpace
	}

	price := services.PriceCalculator.CalculatePrice(sp, slot)
	if price < 0 {
		return nil, ErrNegativePrice
	}

	now := services.Clock.Now()
	return &Reservation{
		id:         uuid.New(),
		spaceID:    sp.ID(),
		userID:     userID,
		timeSlot:   slot,
		status:     StatusPending,
		totalPrice: price,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func ReconstructReservation(
	id, spaceID, userID uuid.UUID,
	timeSlot TimeSlot,
	status Status,
	totalPrice float64,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:         id,
		spaceID:    spaceID,
		userID:     userID,
		timeSlot:   timeSlot,
		status:     status,
		totalPrice: totalPrice,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// ReconstructTimeSlot rebuilds a slot that was validated before it was stored.
func ReconstructTimeSlot(start, end time.Time) TimeSlot {
	return TimeSlot{start: start, end: end}
}

// UpdateStatus writes any valid status. No transition table is enforced, so a
// cancelled reservation can be moved back to PENDING or CONFIRMED.
func (r *Reservation) UpdateStatus(status Status, now time.Time) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}
	r.status = status
	r.updatedAt = now
	return nil
}

func (r *Reservation) Cancel(now time.Time) {
	r.status = StatusCancelled
	r.updatedAt = now
}

func (r *Reservation) IsCancelled() bool {
	return r.status == StatusCancelled
}

// Blocks reports whether the reservation holds its slot against new bookings.
func (r *Reservation) Blocks(slot TimeSlot) bool {
	return !r.IsCancelled() && r.timeSlot.Overlaps(slot)
}

func (r *Reservation) ID() uuid.UUID        { return r.id }
func (r *Reservation) SpaceID() uuid.UUID   { return r.spaceID }
func (r *Reservation) UserID() uuid.UUID    { return r.userID }
func (r *Reservation) TimeSlot() TimeSlot   { return r.timeSlot }
func (r *Reservation) Status() Status       { return r.status }
func (r *Reservation) TotalPrice() float64  { return r.totalPrice }
func (r *Reservation) CreatedAt() time.Time { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time { return r.updatedAt }
