package driven

import "errors"

// ErrDecrypt is returned by Cipher.Decrypt when the ciphertext is malformed,
// has been tampered with, or was sealed under a different key.
var ErrDecrypt = errors.New("decrypt: message authentication failed")

// Cipher defines the driven port for symmetric encryption of stored passwords.
// Encrypt must be non-deterministic; every ciphertext it returns must decrypt
// back to the original plaintext under the same key.
type Cipher interface {
	Encrypt(plaintext []byte) ([]byte, error)
	Decrypt(ciphertext []byte) ([]byte, error)
}
