package repositories

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cbodonnell/flipmatch/pkg/log"
	"github.com/jackc/pgx/v5"
)

// PostgresRepository serializes access to a single connection.
type PostgresRepository struct {
	lock sync.Mutex
	conn *pgx.Conn
}

// NewPostgresRepository connects to the database and applies migrations.
// The caller is responsible for calling Close() on the repository.
func NewPostgresRepository(ctx context.Context, connStr string) (Repository, error) {
	conn, err := connectDb(ctx, connStr)
	if err != nil {
		return nil, err
	}

	migrations, err := readMigrations("postgres")
	if err != nil {
		conn.Close(ctx)
		return nil, err
	}
	for i, migration := range migrations {
		if _, err := conn.Exec(ctx, migration); err != nil {
			conn.Close(ctx)
			return nil, fmt.Errorf("failed to execute migration %d: %v", i, err)
		}
	}

	return &PostgresRepository{
		conn: conn,
	}, nil
}

func connectDb(ctx context.Context, connStr string) (*pgx.Conn, error) {
	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %v", err)
	}

	var username string
	var database string
	err = conn.QueryRow(ctx, "SELECT current_user, current_database()").Scan(&username, &database)
	if err != nil {
		conn.Close(ctx)
		return nil, fmt.Errorf("unable to query database: %v", err)
	}

	log.Info("Connected to %s as %s", database, username)

	return conn, nil
}

func (r *PostgresRepository) Close(ctx context.Context) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.conn.Close(ctx)
}

func (r *PostgresRepository) SaveValue(ctx context.Context, key string, value []byte) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	q := `
	INSERT INTO kv (key, value, updated_at) VALUES ($1, $2, $3)
	ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = $3;
	`
	if _, err := r.conn.Exec(ctx, q, key, value, time.Now().UnixMilli()); err != nil {
		return fmt.Errorf("failed to save %s: %v", key, err)
	}
	return nil
}

func (r *PostgresRepository) LoadValue(ctx context.Context, key string) ([]byte, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	q := `
	SELECT value FROM kv WHERE key = $1;
	`
	var value []byte
	if err := r.conn.QueryRow(ctx, q, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &ErrNotFound{Key: key}
		}
		return nil, fmt.Errorf("failed to scan %s: %v", key, err)
	}
	return value, nil
}

func (r *PostgresRepository) DeleteValue(ctx context.Context, key string) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	q := `
	DELETE FROM kv WHERE key = $1;
	`
	if _, err := r.conn.Exec(ctx, q, key); err != nil {
		return fmt.Errorf("failed to delete %s: %v", key, err)
	}
	return nil
}
