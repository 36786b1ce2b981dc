package memstore

import (
	"context"

	"space-booking/internal/domain/space"

	"github.com/google/uuid"
)

type spaceRepository struct {
	tx *memTx
}

func (r *spaceRepository) Create(_ context.Context, sp *space.Space) error {
	if err := r.tx.checkWritable(); err != nil {
		return err
	}
	s := r.tx.store
	if _, exists := s.spaces[sp.ID()]; exists {
		return duplicate("space")
	}

	s.spaces[sp.ID()] = spaceToRecord(sp)
	s.spaceOrder = append(s.spaceOrder, sp.ID())

	id := sp.ID()
	r.tx.onRollback(func() {
		delete(s.spaces, id)
		s.spaceOrder = removeID(s.spaceOrder, id)
	})
	return nil
}

func (r *spaceRepository) FindByID(_ context.Context, id uuid.UUID) (*space.Space, error) {
	rec, ok := r.tx.store.spaces[id]
	if !ok {
		return nil, notFound("space")
	}
	return rec.toDomain(), nil
}

// The store lock is already exclusive for the whole write step.
func (r *spaceRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*space.Space, error) {
	if err := r.tx.checkWritable(); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *spaceRepository) List(_ context.Context) ([]*space.Space, error) {
	s := r.tx.store
	result := make([]*space.Space, 0, len(s.spaceOrder))
	for _, id := range s.spaceOrder {
		result = append(result, s.spaces[id].toDomain())
	}
	return result, nil
}

func (r *spaceRepository) AppendReservation(_ context.Context, spaceID, reservationID uuid.UUID) error {
	if err := r.tx.checkWritable(); err != nil {
		return err
	}
	rec, ok := r.tx.store.spaces[spaceID]
	if !ok {
		return notFound("space")
	}

	sp := rec.toDomain()
	sp.AddReservation(reservationID)
	r.tx.setReservationIDs(&rec.reservationIDs, sp.ReservationIDs())
	return nil
}

func (r *spaceRepository) RemoveReservation(_ context.Context, spaceID, reservationID uuid.UUID) error {
	if err := r.tx.checkWritable(); err != nil {
		return err
	}
	rec, ok := r.tx.store.spaces[spaceID]
	if !ok {
		return notFound("space")
	}

	sp := rec.toDomain()
	sp.RemoveReservation(reservationID)
	r.tx.setReservationIDs(&rec.reservationIDs, sp.ReservationIDs())
	return nil
}
