package shared

import (
	"context"

	"space-booking/internal/domain/reservation"
	"space-booking/internal/domain/space"
	"space-booking/internal/domain/user"

	"github.com/google/uuid"
)

// UnitOfWork is the entity store seen by the use cases. Backings: in-memory arena
// (memstore) and PostgreSQL (pgstore).
type UnitOfWork interface {
	// Within: serialized write step; everything fn does commits together
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: consistent read step, no writes
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Spaces() SpaceRepository
	Users() UserRepository
	Reservations() ReservationRepository
}

type SpaceRepository interface {
	Create(ctx context.Context, sp *space.Space) error
	FindByID(ctx context.Context, id uuid.UUID) (*space.Space, error)
	// FindByIDForUpdate also holds the space for the rest of the write step, so
	// concurrent bookings of one space run one after another.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*space.Space, error)
	List(ctx context.Context) ([]*space.Space, error)
	AppendReservation(ctx context.Context, spaceID, reservationID uuid.UUID) error
	RemoveReservation(ctx context.Context, spaceID, reservationID uuid.UUID) error
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	List(ctx context.Context) ([]*user.User, error)
	AppendReservation(ctx context.Context, userID, reservationID uuid.UUID) error
	RemoveReservation(ctx context.Context, userID, reservationID uuid.UUID) error
}

type ReservationRepository interface {
	Create(ctx context.Context, res *reservation.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	List(ctx context.Context) ([]*reservation.Reservation, error)
	// ListByIDs keeps the order of ids and skips ids that no longer resolve.
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*reservation.Reservation, error)
	UpdateStatus(ctx context.Context, res *reservation.Reservation) error
	Delete(ctx context.Context, id uuid.UUID) error
}
