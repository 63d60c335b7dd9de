package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/groblegark/infradash/internal/model"
)

// recordColumns is the column list used for SELECT statements on the
// executions table.
const recordColumns = `id, owner_id, type, description, created_at`

// userColumns is the column list used for SELECT statements on the users table.
const userColumns = `id, full_name, email, created_at, updated_at`

// executor is the interface satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// --- Execution records ---
//
// Every query on the executions table filters on owner_id server-side. A row
// held by another owner is indistinguishable from a missing row.

func queryCreateRecord(ctx context.Context, db executor, r *model.ExecutionRecord) error {
	return db.QueryRowContext(ctx, `
		INSERT INTO executions (id, owner_id, type, description)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`,
		r.ID,
		r.OwnerID,
		r.Type,
		r.Description,
	).Scan(&r.CreatedAt)
}

func queryGetRecord(ctx context.Context, db executor, id, ownerID string) (*model.ExecutionRecord, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM executions WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	)
	return scanRecord(row)
}

func queryListRecords(ctx context.Context, db executor, ownerID string) ([]*model.ExecutionRecord, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+recordColumns+` FROM executions
		WHERE owner_id = $1
		ORDER BY created_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list executions: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// queryDeleteRecord deletes a record scoped to its owner. Zero rows affected
// is success: deleting an absent or foreign-owned record must be
// indistinguishable from deleting one's own already-deleted record.
func queryDeleteRecord(ctx context.Context, db executor, id, ownerID string) error {
	_, err := db.ExecContext(ctx,
		`DELETE FROM executions WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	)
	return err
}

// --- Users ---

func queryCreateUser(ctx context.Context, db executor, u *model.User) error {
	return db.QueryRowContext(ctx, `
		INSERT INTO users (id, full_name, email)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at`,
		u.ID, u.FullName, u.Email,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
}

func queryGetUser(ctx context.Context, db executor, id string) (*model.User, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func queryListUsers(ctx context.Context, db executor) ([]*model.User, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	return scanUsers(rows)
}

func queryUpdateUserProfile(ctx context.Context, db executor, id string, p model.UserProfile) (*model.User, error) {
	row := db.QueryRowContext(ctx, `
		UPDATE users
		SET full_name = $2, email = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING `+userColumns,
		id, p.FullName, p.Email,
	)
	return scanUser(row)
}

// --- Sessions ---

func queryCreateSession(ctx context.Context, db executor, s *model.Session) error {
	return db.QueryRowContext(ctx, `
		INSERT INTO sessions (token_hash, user_id, expires_at)
		VALUES ($1, $2, $3)
		RETURNING created_at`,
		s.TokenHash, s.UserID, s.ExpiresAt,
	).Scan(&s.CreatedAt)
}

func queryGetSessionUser(ctx context.Context, db executor, tokenHash string, now time.Time) (string, error) {
	var userID string
	err := db.QueryRowContext(ctx, `
		SELECT user_id FROM sessions
		WHERE token_hash = $1 AND expires_at > $2`,
		tokenHash, now,
	).Scan(&userID)
	if err != nil {
		return "", err
	}
	return userID, nil
}

func queryDeleteSession(ctx context.Context, db executor, tokenHash string) error {
	_, err := db.ExecContext(ctx,
		`DELETE FROM sessions WHERE token_hash = $1`, tokenHash)
	return err
}

func queryDeleteExpiredSessions(ctx context.Context, db executor, now time.Time) (int64, error) {
	res, err := db.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
