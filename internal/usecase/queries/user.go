package queries

import (
	"context"

	"space-booking/internal/domain/reservation"
	"space-booking/internal/domain/user"
	"space-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type UserQueries interface {
	List(ctx context.Context) ([]*UserView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*UserView, error)
	ListReservations(ctx context.Context, userID uuid.UUID) ([]*ReservationView, error)
}

type userQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewUserQueries(uow shared.UnitOfWork) UserQueries {
	return &userQueriesImpl{uow: uow}
}

func (q *userQueriesImpl) List(ctx context.Context) ([]*UserView, error) {
	var views []*UserView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		users, err := tx.Users().List(ctx)
		if err != nil {
			return shared.MapRepoErr(err, user.ErrUserNotFound)
		}
		views = toUserViews(users)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

func (q *userQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*UserView, error) {
	var view *UserView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		u, err := tx.Users().FindByID(ctx, id)
		if err != nil {
			return shared.MapRepoErr(err, user.ErrUserNotFound)
		}
		view = NewUserView(u)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (q *userQueriesImpl) ListReservations(ctx context.Context, userID uuid.UUID) ([]*ReservationView, error) {
	var views []*ReservationView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		u, err := tx.Users().FindByID(ctx, userID)
		if err != nil {
			return shared.MapRepoErr(err, user.ErrUserNotFound)
		}
		list, err := tx.Reservations().ListByIDs(ctx, u.ReservationIDs())
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
