package pgstore

import (
	"context"
	"embed"
	"io/fs"
	"log/slog"
	"sort"

	"space-booking/internal/infra"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate applies every embedded migration in file name order. The scripts are
// idempotent, so running it on each start is safe.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	files, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return infra.WrapRepoErr("failed to list migrations", err)
	}
	sort.Strings(files)

	for _, file := range files {
		sql, err := migrations.ReadFile(file)
		if err != nil {
			return infra.WrapRepoErr("failed to read migration "+file, err)
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			return infra.WrapRepoErr("failed to execute migration "+file, err)
		}
		slog.Info("migration applied", "file", file)
	}
	return nil
}
