package pgstore

import (
	"context"
	"errors"
	"time"

	"space-booking/internal/domain/reservation"
	"space-booking/internal/infra"
	"space-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const reservationColumns = `
	r.id, r.space_id, r.user_id, r.start_time, r.end_time,
	r.status, r.total_price, r.created_at, r.updated_at`

type reservationRepository struct {
	db dbtx
}

func (r *reservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO reservations (
			id, space_id, user_id, start_time, end_time,
			status, total_price, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		res.ID(),
		res.SpaceID(),
		res.UserID(),
		res.TimeSlot().Start(),
		res.TimeSlot().End(),
		res.Status().String(),
		res.TotalPrice(),
		res.CreatedAt(),
		res.UpdatedAt(),
	)
	if err != nil {
		return wrapWriteErr("reservation", err)
	}
	return nil
}

func (r *reservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	res, err := scanReservation(r.db.QueryRow(ctx,
		`SELECT `+reservationColumns+` FROM reservations r WHERE r.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	return res, nil
}

func (r *reservationRepository) List(ctx context.Context) ([]*reservation.Reservation, error) {
	return r.query(ctx, `SELECT `+reservationColumns+` FROM reservations r ORDER BY r.seq`)
}

func (r *reservationRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*reservation.Reservation, error) {
	if len(ids) == 0 {
		return []*reservation.Reservation{}, nil
	}
	return r.query(ctx, `
		SELECT `+reservationColumns+`
		FROM unnest($1::uuid[]) WITH ORDINALITY AS ids(id, ord)
		JOIN reservations r ON r.id = ids.id
		ORDER BY ids.ord`,
		pgconv.UUIDsToPgtype(ids),
	)
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, res *reservation.Reservation) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE reservations SET status = $2, updated_at = $3 WHERE id = $1`,
		res.ID(), res.Status().String(), res.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

// Delete also drops the back-reference rows through ON DELETE CASCADE.
func (r *reservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *reservationRepository) query(ctx context.Context, sql string, args ...any) ([]*reservation.Reservation, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}
	defer rows.Close()

	result := []*reservation.Reservation{}
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation", err)
		}
		result = append(result, res)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}
	return result, nil
}

func scanReservation(row pgx.Row) (*reservation.Reservation, error) {
	var (
		id, spaceID, userID  uuid.UUID
		start, end           time.Time
		status               string
		totalPrice           float64
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &spaceID, &userID, &start, &end, &status, &totalPrice, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return reservation.ReconstructReservation(
		id,
		spaceID,
		userID,
		reservation.ReconstructTimeSlot(start.UTC(), end.UTC()),
		reservation.Status(status),
		totalPrice,
		createdAt.UTC(),
		updatedAt.UTC(),
	), nil
}

func wrapWriteErr(what string, err error) error {
	if hasPgCode(err, pgErrCodeUniqueViolation) {
		return infra.WrapRepoErr(what+" already exists", err, infra.KindDuplicateKey)
	}
	return infra.WrapRepoErr("failed to insert "+what, err)
}
