// internal/database/postgres.go
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"activity-hub/internal/utils"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// PostgresDB keeps snapshots in a single key/value table.
type PostgresDB struct {
	DB     *sqlx.DB
	logger *zap.SugaredLogger
}

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(connectionString string, logger *zap.SugaredLogger) (*PostgresDB, error) {
	db, err := sqlx.Connect("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %v", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping PostgreSQL: %v", err)
	}

	logger.Infof("Successfully connected to PostgreSQL!")
	return &PostgresDB{DB: db, logger: logger}, nil
}

// Close closes the database connection
func (p *PostgresDB) Close(ctx context.Context) error {
	if p.logger != nil {
		p.logger.Infof("Closing PostgreSQL connection...")
	}
	return p.DB.Close()
}

// InitializeTables creates the snapshots table if it doesn't exist
func (p *PostgresDB) InitializeTables(ctx context.Context) error {
	_, err := p.DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS snapshots (
			key VARCHAR(200) PRIMARY KEY,
			data JSONB NOT NULL,
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create snapshots table: %v", err)
	}
	return nil
}

func (p *PostgresDB) Load(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := p.DB.GetContext(ctx, &data, `SELECT data FROM snapshots WHERE key = $1`, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, snapshotNotFound(key)
		}
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to query snapshot", err)
	}
	return data, nil
}

func (p *PostgresDB) Save(ctx context.Context, key string, data []byte) error {
	_, err := p.DB.ExecContext(ctx, `
		INSERT INTO snapshots (key, data, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()
	`, key, string(data))
	if err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to save snapshot", err)
	}
	return nil
}

func (p *PostgresDB) Delete(ctx context.Context, key string) error {
	if _, err := p.DB.ExecContext(ctx, `DELETE FROM snapshots WHERE key = $1`, key); err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to delete snapshot", err)
	}
	return nil
}
