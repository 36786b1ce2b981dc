package space

import (
	"slices"
	"strings"
	"time"

	"space-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrEmptySpaceName   = errs.Wrap(errs.ErrValidation, "space name cannot be empty")
	ErrSpaceNameTooLong = errs.Wrap(errs.ErrValidation, "space name is too long (max 255 characters)")
	ErrInvalidCategory  = errs.Wrap(errs.ErrValidation, "invalid space category")
	ErrInvalidCapacity  = errs.Wrap(errs.ErrValidation, "capacity must be a positive integer")
	ErrInvalidRate      = errs.Wrap(errs.ErrValidation, "hourly rate must be positive")

	ErrSpaceNotFound = errs.Wrap(errs.ErrNotFound, "space not found")
)

const (
	MaxSpaceNameLength = 255
)

// Space is a bookable resource. reservationIDs keeps insertion order and still
// lists cancelled reservations; only an explicit removal drops an entry.
type Space struct {
	id             uuid.UUID
	name           string
	category       Category
	capacity       int
	hourlyRate     float64
	reservationIDs []uuid.UUID
	createdAt      time.Time
}

func NewSpace(name string, category Category, capacity int, hourlyRate float64, now time.Time) (*Space, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptySpaceName
	}
	if len(name) > MaxSpaceNameLength {
		return nil, ErrSpaceNameTooLong
	}
	if !category.IsValid() {
		return nil, ErrInvalidCategory
	}
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if !(hourlyRate > 0) {
		return nil, ErrInvalidRate
	}

	return &Space{
		id:         uuid.New(),
		name:       name,
		category:   category,
		capacity:   capacity,
		hourlyRate: hourlyRate,
		createdAt:  now,
	}, nil
}

func ReconstructSpace(
	id uuid.UUID,
	name string,
	category Category,
	capacity int,
	hourlyRate float64,
	reservationIDs []uuid.UUID,
	createdAt time.Time,
) *Space {
	return &Space{
		id:             id,
		name:           name,
		category:       category,
		capacity:       capacity,
		hourlyRate:     hourlyRate,
		reservationIDs: slices.Clone(reservationIDs),
		createdAt:      createdAt,
	}
}

func (s *Space) AddReservation(reservationID uuid.UUID) {
	s.reservationIDs = append(s.reservationIDs, reservationID)
}

func (s *Space) RemoveReservation(reservationID uuid.UUID) {
	s.reservationIDs = slices.DeleteFunc(s.reservationIDs, func(id uuid.UUID) bool {
		return id == reservationID
	})
}

func (s *Space) ID() uuid.UUID               { return s.id }
func (s *Space) Name() string                { return s.name }
func (s *Space) Category() Category          { return s.category }
func (s *Space) Capacity() int               { return s.capacity }
func (s *Space) HourlyRate() float64         { return s.hourlyRate }
func (s *Space) ReservationIDs() []uuid.UUID { return slices.Clone(s.reservationIDs) }
func (s *Space) CreatedAt() time.Time        { return s.createdAt }
