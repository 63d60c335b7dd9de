package postgres

import (
	"database/sql"

	"github.com/groblegark/infradash/internal/model"
)

// scannable is the interface satisfied by both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// scanRecord scans a single row into a model.ExecutionRecord.
// The row must contain columns in the order defined by recordColumns.
func scanRecord(row scannable) (*model.ExecutionRecord, error) {
	var r model.ExecutionRecord
	var description sql.NullString

	err := row.Scan(
		&r.ID,
		&r.OwnerID,
		&r.Type,
		&description,
		&r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	r.Description = description.String
	return &r, nil
}

// scanRecords scans multiple rows into a slice of ExecutionRecord pointers.
func scanRecords(rows *sql.Rows) ([]*model.ExecutionRecord, error) {
	var recs []*model.ExecutionRecord
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return recs, nil
}

// scanUser scans a single row into a model.User.
func scanUser(row scannable) (*model.User, error) {
	var u model.User
	var fullName sql.NullString

	err := row.Scan(
		&u.ID,
		&fullName,
		&u.Email,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	u.FullName = fullName.String
	return &u, nil
}

// scanUsers scans multiple rows into a slice of User pointers.
func scanUsers(rows *sql.Rows) ([]*model.User, error) {
	var users []*model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}
