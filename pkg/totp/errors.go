package totp

import "errors"

// Common errors returned by the totp package.
var (
	// ErrUnsupportedAlgorithm indicates the hash algorithm is not one of
	// SHA-1, SHA-256 or SHA-512.
	ErrUnsupportedAlgorithm = errors.New("totp: unsupported hash algorithm")
	// ErrInvalidSecret indicates the secret is empty or not valid base32.
	ErrInvalidSecret = errors.New("totp: invalid secret")
	// ErrDigitsOutOfRange indicates a requested token length outside 1-10.
	ErrDigitsOutOfRange = errors.New("totp: digits must be between 1 and 10")
	// ErrDeltaOutOfRange indicates a verification window outside 0-10 steps.
	ErrDeltaOutOfRange = errors.New("totp: delta must be between 0 and 10")
	// ErrTokenLength indicates a token whose length is outside 1-10.
	ErrTokenLength = errors.New("totp: token length must be between 1 and 10")
)
