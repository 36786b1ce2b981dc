//go:build unit || e2e

package dbtest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// link tables go with their parents through ON DELETE CASCADE
const truncateSQL = "TRUNCATE reservations, spaces, users RESTART IDENTITY CASCADE;"

// empties every table between tests
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := pool.Exec(ctx, truncateSQL)
	return err
}

// returns the reservation ids linked to a space in link order
func SpaceReservationLinks(t *testing.T, db DBLike, spaceID uuid.UUID) []uuid.UUID {
	t.Helper()
	return linkedIDs(t, db, "SELECT reservation_id FROM space_reservations WHERE space_id = $1 ORDER BY position", spaceID)
}

// returns the reservation ids linked to a user in link order
func UserReservationLinks(t *testing.T, db DBLike, userID uuid.UUID) []uuid.UUID {
	t.Helper()
	return linkedIDs(t, db, "SELECT reservation_id FROM user_reservations WHERE user_id = $1 ORDER BY position", userID)
}

func linkedIDs(t *testing.T, db DBLike, query string, ownerID uuid.UUID) []uuid.UUID {
	t.Helper()

	rows, err := db.Query(context.Background(), query, ownerID)
	require.NoError(t, err)
	defer rows.Close()

	ids := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		require.NoError(t, rows.Scan(&id))
		ids = append(ids, id)
	}
	require.NoError(t, rows.Err())
	return ids
}
