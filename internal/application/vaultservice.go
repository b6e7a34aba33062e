package application

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ericfisherdev/passcheck/internal/domain/model"
	"github.com/ericfisherdev/passcheck/internal/domain/port/driven"
)

// passkeyBytes is the entropy of a generated passkey.
const passkeyBytes = 32

// VaultService saves and retrieves site credentials. Passwords are encrypted
// with the injected Cipher before they reach the store; sites are normalized
// to lower case on every write and lookup.
type VaultService struct {
	passwords driven.PasswordStore
	passkeys  driven.PasskeyStore
	cipher    driven.Cipher
	logger    *slog.Logger
}

// NewVaultService creates a VaultService with the required dependencies.
func NewVaultService(
	passwords driven.PasswordStore,
	passkeys driven.PasskeyStore,
	cipher driven.Cipher,
	logger *slog.Logger,
) *VaultService {
	return &VaultService{
		passwords: passwords,
		passkeys:  passkeys,
		cipher:    cipher,
		logger:    logger,
	}
}

// NormalizeSite trims surrounding whitespace and lower-cases site.
func NormalizeSite(site string) string {
	return strings.ToLower(strings.TrimSpace(site))
}

// Save encrypts password and appends a new record for site. Earlier records
// for the same site are kept.
func (s *VaultService) Save(ctx context.Context, site, username, password string) error {
	site = NormalizeSite(site)
	switch {
	case site == "":
		return fmt.Errorf("%w: site is required", ErrValidation)
	case strings.TrimSpace(username) == "":
		return fmt.Errorf("%w: username is required", ErrValidation)
	case password == "":
		return fmt.Errorf("%w: password is required", ErrValidation)
	}

	sealed, err := s.cipher.Encrypt([]byte(password))
	if err != nil {
		return fmt.Errorf("encrypt password for %q: %w", site, err)
	}

	id, err := s.passwords.Insert(ctx, model.PasswordRecord{
		Site:              site,
		Username:          username,
		EncryptedPassword: sealed,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}

	s.logger.Debug("password saved", "site", site, "id", id)
	return nil
}

// Autofill returns the most recently saved login for site.
// Returns (nil, nil) if nothing has been saved for that site. A stored value
// that fails authentication is returned as driven.ErrDecrypt.
func (s *VaultService) Autofill(ctx context.Context, site string) (*model.Login, error) {
	site = NormalizeSite(site)
	if site == "" {
		return nil, fmt.Errorf("%w: site is required", ErrValidation)
	}

	rec, err := s.passwords.LatestBySite(ctx, site)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	if rec == nil {
		return nil, nil
	}

	plaintext, err := s.cipher.Decrypt(rec.EncryptedPassword)
	if err != nil {
		return nil, fmt.Errorf("decrypt password %d for %q: %w", rec.ID, site, err)
	}

	return &model.Login{
		Username: rec.Username,
		Password: string(plaintext),
	}, nil
}

// List returns all saved credentials newest first. Passwords are not included.
func (s *VaultService) List(ctx context.Context) ([]model.PasswordRecord, error) {
	recs, err := s.passwords.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return recs, nil
}

// CreatePasskey generates a random URL-safe token for site, stores it and
// returns it.
//
// TODO: seal passkeys with the vault cipher once existing plaintext rows have a migration path.
func (s *VaultService) CreatePasskey(ctx context.Context, site string) (string, error) {
	site = NormalizeSite(site)
	if site == "" {
		return "", fmt.Errorf("%w: site is required", ErrValidation)
	}

	passkey, err := generatePasskey()
	if err != nil {
		return "", err
	}

	id, err := s.passkeys.Insert(ctx, model.PasskeyRecord{Site: site, Passkey: passkey})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrStorage, err)
	}

	s.logger.Debug("passkey created", "site", site, "id", id)
	return passkey, nil
}

// ListPasskeys returns every stored passkey.
func (s *VaultService) ListPasskeys(ctx context.Context) ([]model.PasskeyRecord, error) {
	recs, err := s.passkeys.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return recs, nil
}

// generatePasskey returns 32 random bytes encoded as unpadded base64url.
func generatePasskey() (string, error) {
	b := make([]byte, passkeyBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate passkey: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
