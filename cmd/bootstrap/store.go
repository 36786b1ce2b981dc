package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"space-booking/internal/infra/memstore"
	"space-booking/internal/infra/pgstore"
	"space-booking/internal/pkg/config"
	"space-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

const migrateTimeout = 30 * time.Second

var StoreModule = fx.Module("store",
	fx.Provide(
		NewUnitOfWork,
	),
)

// NewUnitOfWork picks the entity store from STORE_DRIVER. The postgres store
// applies the embedded schema before it is handed out.
func NewUnitOfWork(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (shared.UnitOfWork, error) {
	if cfg.Store.Driver != config.StoreDriverPostgres {
		logger.Info("using in-memory store")
		return memstore.New(), nil
	}

	pool, err := NewDB(lc, cfg)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), migrateTimeout)
	defer cancel()
	if err := pgstore.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("using postgres store", "host", cfg.DB.Host, "database", cfg.DB.DBName)
	return pgstore.New(pool), nil
}
