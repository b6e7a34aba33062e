package model

import "time"

// PasswordRecord is a saved site credential. EncryptedPassword holds the
// cipher output and is never exposed outside the vault service.
type PasswordRecord struct {
	ID                int64
	Site              string
	Username          string
	EncryptedPassword []byte
	CreatedAt         time.Time
}

// Login is a decrypted credential returned by autofill.
type Login struct {
	Username string
	Password string
}
