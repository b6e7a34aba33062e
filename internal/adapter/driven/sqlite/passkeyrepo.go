package sqlite

import (
	"context"
	"fmt"

	"github.com/ericfisherdev/passcheck/internal/domain/model"
	"github.com/ericfisherdev/passcheck/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.PasskeyStore = (*PasskeyRepo)(nil)

// PasskeyRepo is the SQLite implementation of the PasskeyStore port interface.
type PasskeyRepo struct {
	db *DB
}

// NewPasskeyRepo creates a new PasskeyRepo backed by the given DB.
func NewPasskeyRepo(db *DB) *PasskeyRepo {
	return &PasskeyRepo{db: db}
}

// Insert stores a passkey row and returns its auto-assigned ID.
func (r *PasskeyRepo) Insert(ctx context.Context, rec model.PasskeyRecord) (int64, error) {
	const query = `INSERT INTO passkeys (site, passkey) VALUES (?, ?)`
	res, err := r.db.Writer.ExecContext(ctx, query, rec.Site, rec.Passkey)
	if err != nil {
		return 0, fmt.Errorf("insert passkey for %q: %w", rec.Site, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id for %q: %w", rec.Site, err)
	}
	return id, nil
}

// ListAll returns every passkey in insertion order.
func (r *PasskeyRepo) ListAll(ctx context.Context) ([]model.PasskeyRecord, error) {
	const query = `SELECT id, site, passkey, created_at FROM passkeys ORDER BY id`
	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list passkeys: %w", err)
	}
	defer rows.Close()

	recs := []model.PasskeyRecord{}
	for rows.Next() {
		var rec model.PasskeyRecord
		var createdAt string
		if err := rows.Scan(&rec.ID, &rec.Site, &rec.Passkey, &createdAt); err != nil {
			return nil, fmt.Errorf("scan passkey: %w", err)
		}

		rec.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at for passkey %d: %w", rec.ID, err)
		}

		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate passkeys: %w", err)
	}

	return recs, nil
}
