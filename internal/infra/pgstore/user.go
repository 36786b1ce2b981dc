package pgstore

import (
	"context"
	"errors"
	"time"

	"space-booking/internal/domain/user"
	"space-booking/internal/infra"
	"space-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const userColumns = `
	u.id, u.name, u.email, u.created_at,
	ARRAY(
		SELECT ur.reservation_id FROM user_reservations ur
		WHERE ur.user_id = u.id ORDER BY ur.position
	)`

type userRepository struct {
	db dbtx
}

func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (id, name, email, created_at)
		VALUES ($1, $2, $3, $4)`,
		u.ID(), u.Name(), u.Email().Value(), u.CreatedAt(),
	)
	if err != nil {
		return wrapWriteErr("user", err)
	}
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users u WHERE u.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return u, nil
}

func (r *userRepository) List(ctx context.Context) ([]*user.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users u ORDER BY u.seq`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list users", err)
	}
	defer rows.Close()

	var result []*user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan user", err)
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list users", err)
	}
	return result, nil
}

func (r *userRepository) AppendReservation(ctx context.Context, userID, reservationID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO user_reservations (user_id, reservation_id)
		SELECT id, $2 FROM users WHERE id = $1`,
		userID, reservationID,
	)
	if err != nil {
		return wrapWriteErr("user reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *userRepository) RemoveReservation(ctx context.Context, userID, reservationID uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM user_reservations WHERE user_id = $1 AND reservation_id = $2`,
		userID, reservationID,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to remove user reservation", err)
	}
	return nil
}

func scanUser(row pgx.Row) (*user.User, error) {
	var (
		id             uuid.UUID
		name           string
		email          string
		createdAt      time.Time
		reservationIDs []pgtype.UUID
	)
	if err := row.Scan(&id, &name, &email, &createdAt, &reservationIDs); err != nil {
		return nil, err
	}
	return user.ReconstructUser(
		id,
		name,
		user.ReconstructEmail(email),
		pgconv.UUIDsFromPgtype(reservationIDs),
		createdAt.UTC(),
	), nil
}
