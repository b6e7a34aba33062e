package driven

import (
	"context"

	"github.com/ericfisherdev/passcheck/internal/domain/model"
)

// PasskeyStore defines the driven port for generated site passkeys.
type PasskeyStore interface {
	Insert(ctx context.Context, rec model.PasskeyRecord) (int64, error)
	ListAll(ctx context.Context) ([]model.PasskeyRecord, error)
}
