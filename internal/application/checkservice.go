package application

import (
	"context"
	"crypto/sha1" //nolint:gosec // SHA-1 is mandated by the range API, not used for integrity.
	"encoding/hex"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/ericfisherdev/passcheck/internal/domain/model"
	"github.com/ericfisherdev/passcheck/internal/domain/port/driven"
)

// hashPrefixLen is the number of hex characters sent to the range endpoint.
const hashPrefixLen = 5

// CheckService evaluates password strength and looks the password up in the
// breach range API. It never fails: lookup problems degrade to
// BreachStatusUnavailable.
type CheckService struct {
	breach  driven.BreachClient
	timeout time.Duration
	logger  *slog.Logger
}

// NewCheckService creates a CheckService. timeout bounds each breach lookup;
// zero leaves the bound to the client.
func NewCheckService(breach driven.BreachClient, timeout time.Duration, logger *slog.Logger) *CheckService {
	return &CheckService{
		breach:  breach,
		timeout: timeout,
		logger:  logger,
	}
}

// Check returns the strength category, suggestions and breach status for password.
func (s *CheckService) Check(ctx context.Context, password string) model.PasswordReport {
	strength, suggestions := EvaluateStrength(password)
	return model.PasswordReport{
		Strength:    strength,
		Suggestions: suggestions,
		Breach:      s.CheckBreach(ctx, password),
	}
}

// CheckBreach issues a single range query for the password's SHA-1 prefix and
// scans the response for the remaining suffix.
func (s *CheckService) CheckBreach(ctx context.Context, password string) model.BreachStatus {
	prefix, suffix := splitHash(password)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	body, err := s.breach.Range(ctx, prefix)
	switch {
	case errors.Is(err, driven.ErrUnexpectedStatus):
		s.logger.Warn("breach range lookup returned non-200", "prefix", prefix, "error", err)
		return model.BreachStatusNotFound
	case err != nil:
		s.logger.Warn("breach range lookup unavailable", "prefix", prefix, "error", err)
		return model.BreachStatusUnavailable
	}

	if strings.Contains(body, suffix) {
		return model.BreachStatusFound
	}
	return model.BreachStatusNotFound
}

// splitHash returns the upper-case hex SHA-1 of password split into its
// 5-character prefix and 35-character suffix.
func splitHash(password string) (prefix, suffix string) {
	sum := sha1.Sum([]byte(password)) //nolint:gosec // see import.
	digest := strings.ToUpper(hex.EncodeToString(sum[:]))
	return digest[:hashPrefixLen], digest[hashPrefixLen:]
}
