//go:build unit || e2e

package dbtest

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// the minimal interface required for test DB operations.
type DBLike interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}
