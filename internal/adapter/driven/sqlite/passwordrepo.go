package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ericfisherdev/passcheck/internal/domain/model"
	"github.com/ericfisherdev/passcheck/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.PasswordStore = (*PasswordRepo)(nil)

// PasswordRepo is the SQLite implementation of the PasswordStore port interface.
// It stores ciphertext as an opaque BLOB; encryption happens in the caller.
type PasswordRepo struct {
	db *DB
}

// NewPasswordRepo creates a new PasswordRepo backed by the given DB.
func NewPasswordRepo(db *DB) *PasswordRepo {
	return &PasswordRepo{db: db}
}

// Insert appends a credential row and returns its auto-assigned ID.
func (r *PasswordRepo) Insert(ctx context.Context, rec model.PasswordRecord) (int64, error) {
	const query = `INSERT INTO passwords (site, username, password) VALUES (?, ?, ?)`
	res, err := r.db.Writer.ExecContext(ctx, query, rec.Site, rec.Username, rec.EncryptedPassword)
	if err != nil {
		return 0, fmt.Errorf("insert password for %q: %w", rec.Site, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id for %q: %w", rec.Site, err)
	}
	return id, nil
}

// LatestBySite returns the most recently inserted credential for site.
// Returns (nil, nil) if no credential exists for that site.
func (r *PasswordRepo) LatestBySite(ctx context.Context, site string) (*model.PasswordRecord, error) {
	const query = `SELECT id, site, username, password, created_at FROM passwords WHERE site = ? ORDER BY id DESC LIMIT 1`

	var rec model.PasswordRecord
	var createdAt string
	err := r.db.Reader.QueryRowContext(ctx, query, site).
		Scan(&rec.ID, &rec.Site, &rec.Username, &rec.EncryptedPassword, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get latest password for %q: %w", site, err)
	}

	rec.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at for password %d: %w", rec.ID, err)
	}

	return &rec, nil
}

// ListAll returns every saved credential newest first without the password column.
func (r *PasswordRepo) ListAll(ctx context.Context) ([]model.PasswordRecord, error) {
	const query = `SELECT id, site, username, created_at FROM passwords ORDER BY id DESC`
	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list passwords: %w", err)
	}
	defer rows.Close()

	recs := []model.PasswordRecord{}
	for rows.Next() {
		var rec model.PasswordRecord
		var createdAt string
		if err := rows.Scan(&rec.ID, &rec.Site, &rec.Username, &createdAt); err != nil {
			return nil, fmt.Errorf("scan password: %w", err)
		}

		rec.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at for password %d: %w", rec.ID, err)
		}

		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate passwords: %w", err)
	}

	return recs, nil
}
