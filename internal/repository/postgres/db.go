package postgres

import (
	"context"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"medclaim/internal/config"
)

const connectTimeout = 10 * time.Second

// NewDB opens the claim database pool and verifies it answers.
func NewDB(cfg *config.DBConfig) (*sqlx.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, "pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres at %s:%d: %w", cfg.Host, cfg.Port, err)
	}
	db.SetMaxOpenConns(cfg.MaxOpen)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxIdleTime(5 * time.Minute)

	zap.L().Info("postgres.NewDB: connected",
		zap.String("host", cfg.Host), zap.String("database", cfg.Name),
		zap.Int("max_open", cfg.MaxOpen), zap.Int("max_idle", cfg.MaxIdle))
	return db, nil
}
