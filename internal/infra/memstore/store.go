package memstore

import (
	"context"
	"slices"
	"sync"

	"space-booking/internal/infra"
	"space-booking/internal/pkg/errs"
	"space-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var errReadOnly = errs.New("write attempted in read-only step")

// Store is the transient entity store. One RWMutex guards everything: a write
// step holds it exclusively, which also serializes bookings per space.
type Store struct {
	mu sync.RWMutex

	spaces     map[uuid.UUID]*spaceRecord
	spaceOrder []uuid.UUID

	users     map[uuid.UUID]*userRecord
	userOrder []uuid.UUID

	reservations     map[uuid.UUID]*reservationRecord
	reservationOrder []uuid.UUID
}

var _ shared.UnitOfWork = (*Store)(nil)

func New() *Store {
	return &Store{
		spaces:       make(map[uuid.UUID]*spaceRecord),
		users:        make(map[uuid.UUID]*userRecord),
		reservations: make(map[uuid.UUID]*reservationRecord),
	}
}

// Within rolls back every change fn made when fn returns an error.
func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{store: s, writable: true}
	if err := fn(ctx, tx); err != nil {
		tx.rollback()
		return err
	}
	return nil
}

func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return fn(ctx, &memTx{store: s})
}

type memTx struct {
	store    *Store
	writable bool
	undo     []func()
}

func (t *memTx) Spaces() shared.SpaceRepository             { return &spaceRepository{tx: t} }
func (t *memTx) Users() shared.UserRepository               { return &userRepository{tx: t} }
func (t *memTx) Reservations() shared.ReservationRepository { return &reservationRepository{tx: t} }

func (t *memTx) checkWritable() error {
	if !t.writable {
		return errReadOnly
	}
	return nil
}

func (t *memTx) onRollback(f func()) {
	t.undo = append(t.undo, f)
}

// setReservationIDs replaces a record's id list and restores it on rollback.
func (t *memTx) setReservationIDs(field *[]uuid.UUID, ids []uuid.UUID) {
	prev := *field
	*field = ids
	t.onRollback(func() { *field = prev })
}

func (t *memTx) rollback() {
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo = nil
}

// insertAt puts id back at index i, clamping to the current length.
func insertAt(ids []uuid.UUID, i int, id uuid.UUID) []uuid.UUID {
	if i > len(ids) {
		i = len(ids)
	}
	return slices.Insert(ids, i, id)
}

func notFound(what string) error {
	return infra.WrapRepoErr(what+" not found", nil, infra.KindNotFound)
}

func duplicate(what string) error {
	return infra.WrapRepoErr(what+" already exists", nil, infra.KindDuplicateKey)
}
