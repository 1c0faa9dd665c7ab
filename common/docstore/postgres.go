package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/droidbay/catalog/common/config"
	"github.com/droidbay/catalog/common/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps each collection as one jsonb row. The upsert replaces
// the whole array in a single statement, matching the store contract.
type PostgresStore struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewPostgresStore creates a Postgres-backed store and ensures its table
func NewPostgresStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (*PostgresStore, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.PostgresURL())
	if err != nil {
		return nil, fmt.Errorf("parse postgres URL: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.Postgres.MaxConns)
	poolConfig.MinConns = int32(cfg.Postgres.MinConns)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	// Test connection
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS collection (
			name       text PRIMARY KEY,
			doc        jsonb NOT NULL,
			updated_at timestamptz NOT NULL DEFAULT now()
		)
	`); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure collection table: %w", err)
	}

	log.Info("postgres store ready", "host", cfg.Postgres.Host, "db", cfg.Postgres.Database)

	return &PostgresStore{
		pool: pool,
		log:  log,
	}, nil
}

// Load reads a collection row into dest
func (s *PostgresStore) Load(ctx context.Context, collection string, dest any) error {
	var data []byte
	err := s.pool.QueryRow(ctx,
		`SELECT doc FROM collection WHERE name = $1`, collection,
	).Scan(&data)

	if err == pgx.ErrNoRows {
		return json.Unmarshal([]byte("[]"), dest)
	}
	if err != nil {
		return fmt.Errorf("read collection %s: %w", collection, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("decode collection %s: %w", collection, err)
	}

	return nil
}

// Replace upserts a collection row with docs
func (s *PostgresStore) Replace(ctx context.Context, collection string, docs any) error {
	data, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", collection, err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO collection (name, doc, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()
	`, collection, data)
	if err != nil {
		return fmt.Errorf("replace collection %s: %w", collection, err)
	}

	s.log.WithCollection(collection).Debug("collection replaced", "bytes", len(data))
	return nil
}

// Close closes the connection pool
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
