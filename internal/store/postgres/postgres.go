// Package postgres implements the store.Store interface backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/groblegark/infradash/internal/model"
	"github.com/groblegark/infradash/internal/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PostgresStore implements store.Store backed by a PostgreSQL database.
type PostgresStore struct {
	db *sql.DB
}

// Compile-time check that PostgresStore implements store.Store.
var _ store.Store = (*PostgresStore)(nil)

// New opens a connection to the PostgreSQL database at the given URL,
// configures the connection pool, and runs any pending migrations.
func New(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

// Close closes the underlying database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) CreateRecord(ctx context.Context, rec *model.ExecutionRecord) error {
	return queryCreateRecord(ctx, s.db, rec)
}

func (s *PostgresStore) GetRecord(ctx context.Context, id, ownerID string) (*model.ExecutionRecord, error) {
	return queryGetRecord(ctx, s.db, id, ownerID)
}

func (s *PostgresStore) ListRecords(ctx context.Context, ownerID string) ([]*model.ExecutionRecord, error) {
	return queryListRecords(ctx, s.db, ownerID)
}

func (s *PostgresStore) DeleteRecord(ctx context.Context, id, ownerID string) error {
	return queryDeleteRecord(ctx, s.db, id, ownerID)
}

func (s *PostgresStore) CreateUser(ctx context.Context, user *model.User) error {
	return queryCreateUser(ctx, s.db, user)
}

func (s *PostgresStore) GetUser(ctx context.Context, id string) (*model.User, error) {
	return queryGetUser(ctx, s.db, id)
}

func (s *PostgresStore) ListUsers(ctx context.Context) ([]*model.User, error) {
	return queryListUsers(ctx, s.db)
}

func (s *PostgresStore) UpdateUserProfile(ctx context.Context, id string, profile model.UserProfile) (*model.User, error) {
	return queryUpdateUserProfile(ctx, s.db, id, profile)
}

func (s *PostgresStore) CreateSession(ctx context.Context, session *model.Session) error {
	return queryCreateSession(ctx, s.db, session)
}

func (s *PostgresStore) GetSessionUser(ctx context.Context, tokenHash string, now time.Time) (string, error) {
	return queryGetSessionUser(ctx, s.db, tokenHash, now)
}

func (s *PostgresStore) DeleteSession(ctx context.Context, tokenHash string) error {
	return queryDeleteSession(ctx, s.db, tokenHash)
}

func (s *PostgresStore) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	return queryDeleteExpiredSessions(ctx, s.db, now)
}

// RunInTransaction begins a database transaction, creates a txStore that
// delegates to it, calls fn, and commits on success or rolls back on error.
func (s *PostgresStore) RunInTransaction(ctx context.Context, fn func(tx store.Store) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	txS := &txStore{tx: tx}
	if err := fn(txS); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// txStore implements store.Store using a *sql.Tx.
type txStore struct {
	tx *sql.Tx
}

// Compile-time check that txStore implements store.Store.
var _ store.Store = (*txStore)(nil)

func (s *txStore) CreateRecord(ctx context.Context, rec *model.ExecutionRecord) error {
	return queryCreateRecord(ctx, s.tx, rec)
}

func (s *txStore) GetRecord(ctx context.Context, id, ownerID string) (*model.ExecutionRecord, error) {
	return queryGetRecord(ctx, s.tx, id, ownerID)
}

func (s *txStore) ListRecords(ctx context.Context, ownerID string) ([]*model.ExecutionRecord, error) {
	return queryListRecords(ctx, s.tx, ownerID)
}

func (s *txStore) DeleteRecord(ctx context.Context, id, ownerID string) error {
	return queryDeleteRecord(ctx, s.tx, id, ownerID)
}

func (s *txStore) CreateUser(ctx context.Context, user *model.User) error {
	return queryCreateUser(ctx, s.tx, user)
}

func (s *txStore) GetUser(ctx context.Context, id string) (*model.User, error) {
	return queryGetUser(ctx, s.tx, id)
}

func (s *txStore) ListUsers(ctx context.Context) ([]*model.User, error) {
	return queryListUsers(ctx, s.tx)
}

func (s *txStore) UpdateUserProfile(ctx context.Context, id string, profile model.UserProfile) (*model.User, error) {
	return queryUpdateUserProfile(ctx, s.tx, id, profile)
}

func (s *txStore) CreateSession(ctx context.Context, session *model.Session) error {
	return queryCreateSession(ctx, s.tx, session)
}

func (s *txStore) GetSessionUser(ctx context.Context, tokenHash string, now time.Time) (string, error) {
	return queryGetSessionUser(ctx, s.tx, tokenHash, now)
}

func (s *txStore) DeleteSession(ctx context.Context, tokenHash string) error {
	return queryDeleteSession(ctx, s.tx, tokenHash)
}

func (s *txStore) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	return queryDeleteExpiredSessions(ctx, s.tx, now)
}

// RunInTransaction on a txStore reuses the existing transaction (no nesting).
func (s *txStore) RunInTransaction(ctx context.Context, fn func(tx store.Store) error) error {
	return fn(s)
}

// Close is a no-op for a transaction store; the parent store owns the connection.
func (s *txStore) Close() error {
	return nil
}
