package pgstore

import (
	"context"
	"errors"
	"time"

	"space-booking/internal/domain/space"
	"space-booking/internal/infra"
	"space-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const spaceColumns = `
	s.id, s.name, s.category, s.capacity, s.hourly_rate, s.created_at,
	ARRAY(
		SELECT sr.reservation_id FROM space_reservations sr
		WHERE sr.space_id = s.id ORDER BY sr.position
	)`

type spaceRepository struct {
	db dbtx
}

func (r *spaceRepository) Create(ctx context.Context, sp *space.Space) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO spaces (id, name, category, capacity, hourly_rate, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		sp.ID(), sp.Name(), sp.Category().String(), sp.Capacity(), sp.HourlyRate(), sp.CreatedAt(),
	)
	if err != nil {
		return wrapWriteErr("space", err)
	}
	return nil
}

func (r *spaceRepository) FindByID(ctx context.Context, id uuid.UUID) (*space.Space, error) {
	return r.findOne(ctx, `SELECT `+spaceColumns+` FROM spaces s WHERE s.id = $1`, id)
}

// FindByIDForUpdate locks in a statement of its own. Under READ COMMITTED the
// following read then takes a fresh snapshot, which includes links committed by
// whoever held the lock before us.
func (r *spaceRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*space.Space, error) {
	tag, err := r.db.Exec(ctx, `SELECT 1 FROM spaces WHERE id = $1 FOR UPDATE`, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock space", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, infra.WrapRepoErr("space not found", nil, infra.KindNotFound)
	}
	return r.FindByID(ctx, id)
}

func (r *spaceRepository) findOne(ctx context.Context, query string, id uuid.UUID) (*space.Space, error) {
	sp, err := scanSpace(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("space not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find space by ID", err)
	}
	return sp, nil
}

func (r *spaceRepository) List(ctx context.Context) ([]*space.Space, error) {
	rows, err := r.db.Query(ctx, `SELECT `+spaceColumns+` FROM spaces s ORDER BY s.seq`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list spaces", err)
	}
	defer rows.Close()

	var result []*space.Space
	for rows.Next() {
		sp, err := scanSpace(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan space", err)
		}
		result = append(result, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list spaces", err)
	}
	return result, nil
}

func (r *spaceRepository) AppendReservation(ctx context.Context, spaceID, reservationID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO space_reservations (space_id, reservation_id)
		SELECT id, $2 FROM spaces WHERE id = $1`,
		spaceID, reservationID,
	)
	if err != nil {
		return wrapWriteErr("space reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("space not found", nil, infra.KindNotFound)
	}
	return nil
}

// RemoveReservation is a no-op when the link is already gone.
func (r *spaceRepository) RemoveReservation(ctx context.Context, spaceID, reservationID uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM space_reservations WHERE space_id = $1 AND reservation_id = $2`,
		spaceID, reservationID,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to remove space reservation", err)
	}
	return nil
}

func scanSpace(row pgx.Row) (*space.Space, error) {
	var (
		id             uuid.UUID
		name           string
		category       string
		capacity       int
		hourlyRate     float64
		createdAt      time.Time
		reservationIDs []pgtype.UUID
	)
	if err := row.Scan(&id, &name, &category, &capacity, &hourlyRate, &createdAt, &reservationIDs); err != nil {
		return nil, err
	}
	return space.ReconstructSpace(
		id,
		name,
		space.Category(category),
		capacity,
		hourlyRate,
		pgconv.UUIDsFromPgtype(reservationIDs),
		createdAt.UTC(),
	), nil
}
