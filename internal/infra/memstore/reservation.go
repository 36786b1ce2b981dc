package memstore

import (
	"context"
	"slices"

	"space-booking/internal/domain/reservation"

	"github.com/google/uuid"
)

type reservationRepository struct {
	tx *memTx
}

func (r *reservationRepository) Create(_ context.Context, res *reservation.Reservation) error {
	if err := r.tx.checkWritable(); err != nil {
		return err
	}
	s := r.tx.store
	if _, exists := s.reservations[res.ID()]; exists {
		return duplicate("reservation")
	}

	s.reservations[res.ID()] = reservationToRecord(res)
	s.reservationOrder = append(s.reservationOrder, res.ID())

	id := res.ID()
	r.tx.onRollback(func() {
		delete(s.reservations, id)
		s.reservationOrder = removeID(s.reservationOrder, id)
	})
	return nil
}

func (r *reservationRepository) FindByID(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	rec, ok := r.tx.store.reservations[id]
	if !ok {
		return nil, notFound("reservation")
	}
	return rec.toDomain(), nil
}

func (r *reservationRepository) List(_ context.Context) ([]*reservation.Reservation, error) {
	s := r.tx.store
	result := make([]*reservation.Reservation, 0, len(s.reservationOrder))
	for _, id := range s.reservationOrder {
		result = append(result, s.reservations[id].toDomain())
	}
	return result, nil
}

func (r *reservationRepository) ListByIDs(_ context.Context, ids []uuid.UUID) ([]*reservation.Reservation, error) {
	s := r.tx.store
	result := make([]*reservation.Reservation, 0, len(ids))
	for _, id := range ids {
		if rec, ok := s.reservations[id]; ok {
			result = append(result, rec.toDomain())
		}
	}
	return result, nil
}

func (r *reservationRepository) UpdateStatus(_ context.Context, res *reservation.Reservation) error {
	if err := r.tx.checkWritable(); err != nil {
		return err
	}
	rec, ok := r.tx.store.reservations[res.ID()]
	if !ok {
		return notFound("reservation")
	}

	prevStatus, prevUpdatedAt := rec.status, rec.updatedAt
	rec.status = res.Status().String()
	rec.updatedAt = res.UpdatedAt()
	r.tx.onRollback(func() {
		rec.status = prevStatus
		rec.updatedAt = prevUpdatedAt
	})
	return nil
}

func (r *reservationRepository) Delete(_ context.Context, id uuid.UUID) error {
	if err := r.tx.checkWritable(); err != nil {
		return err
	}
	s := r.tx.store
	rec, ok := s.reservations[id]
	if !ok {
		return notFound("reservation")
	}

	idx := slices.Index(s.reservationOrder, id)
	delete(s.reservations, id)
	s.reservationOrder = removeID(s.reservationOrder, id)
	r.tx.onRollback(func() {
		s.reservations[id] = rec
		s.reservationOrder = insertAt(s.reservationOrder, idx, id)
	})
	return nil
}
