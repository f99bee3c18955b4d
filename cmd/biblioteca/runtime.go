package main

import (
	"context"
	"fmt"
	"log/slog"

	portssvc "github.com/ginagrosso/biblioteca/internal/core/ports/services"
	"github.com/ginagrosso/biblioteca/internal/core/services"
	"github.com/ginagrosso/biblioteca/internal/platform/config"
	"github.com/ginagrosso/biblioteca/internal/repositories/database/pgsql"
	"github.com/ginagrosso/biblioteca/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
)

// runtime bundles the connections and services a command works with.
type runtime struct {
	cfg       *config.Config
	pool      *pgxpool.Pool
	db        *sqlx.DB
	container *portssvc.ServiceContainer
}

func openRuntime(ctx context.Context, logger *slog.Logger) (*runtime, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return nil, fmt.Errorf("initialize database pool: %w", err)
	}
	db, err := database.NewSQLXDB(cfg.DatabaseURL)
	if err != nil {
		database.ClosePgxPool(pool)
		return nil, fmt.Errorf("initialize sql handle: %w", err)
	}
	logger.Info("Database connections established")

	repos := pgsql.NewRepositoryProvider(pool, db)
	return &runtime{
		cfg:       cfg,
		pool:      pool,
		db:        db,
		container: services.NewServiceContainer(cfg, repos),
	}, nil
}

func (rt *runtime) Close(logger *slog.Logger) {
	if err := rt.db.Close(); err != nil {
		logger.Error("Error closing sql handle", slog.String("error", err.Error()))
	}
	database.ClosePgxPool(rt.pool)
}
