package memstore

import (
	"context"

	"space-booking/internal/domain/user"

	"github.com/google/uuid"
)

type userRepository struct {
	tx *memTx
}

func (r *userRepository) Create(_ context.Context, u *user.User) error {
	if err := r.tx.checkWritable(); err != nil {
		return err
	}
	s := r.tx.store
	if _, exists := s.users[u.ID()]; exists {
		return duplicate("user")
	}

	s.users[u.ID()] = userToRecord(u)
	s.userOrder = append(s.userOrder, u.ID())

	id := u.ID()
	r.tx.onRollback(func() {
		delete(s.users, id)
		s.userOrder = removeID(s.userOrder, id)
	})
	return nil
}

func (r *userRepository) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	rec, ok := r.tx.store.users[id]
	if !ok {
		return nil, notFound("user")
	}
	return rec.toDomain(), nil
}

func (r *userRepository) List(_ context.Context) ([]*user.User, error) {
	s := r.tx.store
	result := make([]*user.User, 0, len(s.userOrder))
	for _, id := range s.userOrder {
		result = append(result, s.users[id].toDomain())
	}
	return result, nil
}

func (r *userRepository) AppendReservation(_ context.Context, userID, reservationID uuid.UUID) error {
	if err := r.tx.checkWritable(); err != nil {
		return err
	}
	rec, ok := r.tx.store.users[userID]
	if !ok {
		return notFound("user")
	}

	u := rec.toDomain()
	u.AddReservation(reservationID)
	r.tx.setReservationIDs(&rec.reservationIDs, u.ReservationIDs())
	return nil
}

func (r *userRepository) RemoveReservation(_ context.Context, userID, reservationID uuid.UUID) error {
	if err := r.tx.checkWritable(); err != nil {
		return err
	}
	rec, ok := r.tx.store.users[userID]
	if !ok {
		return notFound("user")
	}

	u := rec.toDomain()
	u.RemoveReservation(reservationID)
	r.tx.setReservationIDs(&rec.reservationIDs, u.ReservationIDs())
	return nil
}
