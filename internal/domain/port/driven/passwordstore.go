package driven

import (
	"context"

	"github.com/ericfisherdev/passcheck/internal/domain/model"
)

// PasswordStore defines the driven port for saved site credentials.
// Records are append-only: saving the same site twice yields two rows.
type PasswordStore interface {
	// Insert appends a record and returns its assigned ID.
	Insert(ctx context.Context, rec model.PasswordRecord) (int64, error)

	// LatestBySite returns the highest-ID record whose site equals site exactly.
	// Returns (nil, nil) if no record matches.
	LatestBySite(ctx context.Context, site string) (*model.PasswordRecord, error)

	// ListAll returns every record newest first. EncryptedPassword is left empty.
	ListAll(ctx context.Context) ([]model.PasswordRecord, error)
}
