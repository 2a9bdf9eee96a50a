package totp

import (
	"crypto/hmac"
	"crypto/sha1" //nolint:gosec // RFC 6238 mandates SHA-1 support
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"strings"
)

// Algorithm identifies the HMAC digest used for token derivation.
type Algorithm string

const (
	// AlgorithmSHA1 uses HMAC-SHA1, the default of virtually every
	// authenticator app.
	AlgorithmSHA1 Algorithm = "SHA-1"
	// AlgorithmSHA256 uses HMAC-SHA256.
	AlgorithmSHA256 Algorithm = "SHA-256"
	// AlgorithmSHA512 uses HMAC-SHA512.
	AlgorithmSHA512 Algorithm = "SHA-512"
)

type algorithmInfo struct {
	newHash func() hash.Hash
	keySize int // minimum HMAC key length, equal to the digest size
}

var algorithms = map[Algorithm]algorithmInfo{
	AlgorithmSHA1:   {sha1.New, sha1.Size},
	AlgorithmSHA256: {sha256.New, sha256.Size},
	AlgorithmSHA512: {sha512.New, sha512.Size},
}

// KeySize returns the minimum HMAC key length in bytes for the algorithm:
// 20 for SHA-1, 32 for SHA-256, 64 for SHA-512.
func (a Algorithm) KeySize() (int, error) {
	info, ok := algorithms[a]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, string(a))
	}
	return info.keySize, nil
}

// URIString returns the algorithm name as it appears in otpauth:// URIs,
// with hyphens stripped (e.g. "SHA256").
func (a Algorithm) URIString() string {
	return strings.ReplaceAll(string(a), "-", "")
}

// padKey stretches key to size by cyclic repetition (RFC 6238 section 5.1).
// Keys already at or above size are returned as-is, never truncated. The
// input slice is never modified.
func padKey(key []byte, size int) []byte {
	if len(key) >= size {
		return key
	}
	padded := make([]byte, size)
	for i := range padded {
		padded[i] = key[i%len(key)]
	}
	return padded
}

// sign computes the HMAC of data under secret, padding the secret to the
// algorithm's minimum key length first. Padding is applied per call; the
// stored secret is left untouched.
func sign(alg Algorithm, secret, data []byte) ([]byte, error) {
	info, ok := algorithms[alg]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, string(alg))
	}
	mac := hmac.New(info.newHash, padKey(secret, info.keySize))
	mac.Write(data)
	return mac.Sum(nil), nil
}
