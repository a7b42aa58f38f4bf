package encryption

import "errors"

var (
	// ErrEmptyKey is returned when the cipher is given a zero-length key.
	ErrEmptyKey = errors.New("key must not be empty")
	// ErrNotEncrypted is returned when decrypting a file that lacks the encrypted suffix.
	ErrNotEncrypted = errors.New("file does not carry the encrypted suffix")
)
