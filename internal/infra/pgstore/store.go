package pgstore

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"space-booking/internal/pkg/errs"
	"space-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
	pgErrCodeUniqueViolation      = "23505"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

// dbtx is the part of pgx.Tx the repositories need.
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Store struct {
	pool  *pgxpool.Pool
	retry retryPolicy
}

var _ shared.UnitOfWork = (*Store)(nil)

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, retry: defaultRetryPolicy}
}

// ReadCommitted is enough: a booking locks its space row with FOR UPDATE before
// reading the space's reservations.
func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return s.runInTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

// Read-only transaction for consistent multi-table snapshots
func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	defer rollbackQuietly(ctx, pgxTx)

	if err := fn(ctx, &pgTx{db: pgxTx}); err != nil {
		return err
	}

	return pgxTx.Commit(ctx)
}

// retryPolicy bounds how often a write step is replayed after a serialization
// failure or deadlock.
type retryPolicy struct {
	maxRetries int
	base       time.Duration
}

var defaultRetryPolicy = retryPolicy{maxRetries: 3, base: 100 * time.Millisecond}

// backoff doubles per attempt and adds up to 20% jitter.
func (p retryPolicy) backoff(attempt int) time.Duration {
	wait := p.base << attempt
	if jitter := int64(wait / 5); jitter > 0 {
		wait += time.Duration(rand.Int64N(jitter))
	}
	return wait
}

// runInTx replays fn in a fresh transaction while the failure is retryable. A
// retryable failure that outlives the policy is marked errMaxRetriesExceeded;
// anything else is returned as fn produced it.
func (s *Store) runInTx(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	for attempt := 0; ; attempt++ {
		err := s.runOnce(ctx, options, fn)
		if err == nil || !isRetryableError(err) {
			return err
		}
		if attempt >= s.retry.maxRetries {
			slog.Error("transaction failed after max retries", "attempts", attempt+1, "error", err.Error())
			return errs.Mark(err, errMaxRetriesExceeded)
		}

		wait := s.retry.backoff(attempt)
		slog.Warn("retrying transaction", "attempt", attempt+1, "wait_ms", wait.Milliseconds(), "error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

func (s *Store) runOnce(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := s.pool.BeginTx(ctx, options)
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}
	defer rollbackQuietly(ctx, pgxTx)

	if err := fn(ctx, &pgTx{db: pgxTx}); err != nil {
		return err
	}
	if err := pgxTx.Commit(ctx); err != nil {
		return errs.Mark(err, errTransactionCommit)
	}
	return nil
}

// rollbackQuietly is a no-op after a successful commit.
func rollbackQuietly(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		slog.Warn("failed to rollback transaction", "error", err.Error())
	}
}

func isRetryableError(err error) bool {
	return hasPgCode(err, pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected)
}

func hasPgCode(err error, codes ...string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	for _, code := range codes {
		if pgErr.Code == code {
			return true
		}
	}
	return false
}

type pgTx struct {
	db dbtx
}

func (t *pgTx) Spaces() shared.SpaceRepository             { return &spaceRepository{db: t.db} }
func (t *pgTx) Users() shared.UserRepository               { return &userRepository{db: t.db} }
func (t *pgTx) Reservations() shared.ReservationRepository { return &reservationRepository{db: t.db} }
