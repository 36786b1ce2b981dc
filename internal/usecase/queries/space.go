package queries

//go:generate mockgen -destination=../../../tests/mock/queries/mock_queries.go -package=queriesmock space-booking/internal/usecase/queries ReservationQueries,SpaceQueries,UserQueries

import (
	"context"
	"time"

	"space-booking/internal/domain/reservation"
	"space-booking/internal/domain/space"
	"space-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type SpaceQueries interface {
	List(ctx context.Context) ([]*SpaceView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*SpaceView, error)
	Available(ctx context.Context, start, end time.Time) ([]*SpaceView, error)
	ListReservations(ctx context.Context, spaceID uuid.UUID) ([]*ReservationView, error)
}

type spaceQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewSpaceQueries(uow shared.UnitOfWork) SpaceQueries {
	return &spaceQueriesImpl{uow: uow}
}

func (q *spaceQueriesImpl) List(ctx context.Context) ([]*SpaceView, error) {
	var views []*SpaceView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		spaces, err := tx.Spaces().List(ctx)
		if err != nil {
			return shared.MapRepoErr(err, space.ErrSpaceNotFound)
		}
		views = toSpaceViews(spaces)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

func (q *spaceQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*SpaceView, error) {
	var view *SpaceView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		sp, err := tx.Spaces().FindByID(ctx, id)
		if err != nil {
			return shared.MapRepoErr(err, space.ErrSpaceNotFound)
		}
		view = NewSpaceView(sp)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// Available lists, in store order, every space with no reservation blocking
// [start, end]. Spaces without reservations are always included.
func (q *spaceQueriesImpl) Available(ctx context.Context, start, end time.Time) ([]*SpaceView, error) {
	slot, err := reservation.NewTimeSlot(start, end)
	if err != nil {
		return nil, err
	}

	views := []*SpaceView{}
	err = q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		spaces, err := tx.Spaces().List(ctx)
		if err != nil {
			return shared.MapRepoErr(err, space.ErrSpaceNotFound)
		}

		for _, sp := range spaces {
			existing, err := tx.Reservations().ListByIDs(ctx, sp.ReservationIDs())
			if err != nil {
				return shared.MapRepoErr(err, reservation.ErrReservationNotFound)
			}
			if !reservation.HasConflict(existing, slot) {
				views = append(views, NewSpaceView(sp))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

// ListReservations includes cancelled reservations.
func (q *spaceQueriesImpl) ListReservations(ctx context.Context, spaceID uuid.UUID) ([]*ReservationView, error) {
	var views []*ReservationView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		sp, err := tx.Spaces().FindByID(ctx, spaceID)
		if err != nil {
			return shared.MapRepoErr(err, space.ErrSpaceNotFound)
		}
		list, err := tx.Reservations().ListByIDs(ctx, sp.ReservationIDs())
		if err != nil {
			return shared.MapRepoErr(err, reservation.ErrReservationNotFound)
		}
		views = toReservationViews(list)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}
