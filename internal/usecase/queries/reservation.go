package queries

import (
	"context"

	"space-booking/internal/domain/reservation"
	"space-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReservationQueries interface {
	List(ctx context.Context) ([]*ReservationView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
}

type reservationQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewReservationQueries(uow shared.UnitOfWork) ReservationQueries {
	return &reservationQueriesImpl{uow: uow}
}

func (q *reservationQueriesImpl) List(ctx context.Context) ([]*ReservationView, error) {
	var views []*ReservationView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		list, err := tx.Reservations().List(ctx)
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

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	var view *ReservationView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Reservations().FindByID(ctx, id)
		if err != nil {
			return shared.MapRepoErr(err, reservation.ErrReservationNotFound)
		}
		view = NewReservationView(res)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}
