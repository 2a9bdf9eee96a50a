package totp

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"io"
	"strings"
)

// Authenticator apps exchange secrets as unpadded RFC 4648 base32.
var b32 = base32.StdEncoding.WithPadding(base32.NoPadding)

// randReader is the entropy source for GenerateSecret. Overridden in tests.
var randReader io.Reader = rand.Reader

// Secret holds the raw shared key material.
type Secret []byte

// SecretFromBase32 decodes the base32 text form of a secret. Whitespace is
// ignored, case is normalized, and trailing padding is dropped, since setup
// tools disagree on all three.
func SecretFromBase32(s string) (Secret, error) {
	clean := strings.ToUpper(strings.Join(strings.Fields(s), ""))
	clean = strings.TrimRight(clean, "=")
	raw, err := b32.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSecret, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: secret must not be empty", ErrInvalidSecret)
	}
	return Secret(raw), nil
}

// Base32 returns the unpadded base32 text form used in provisioning URIs.
func (s Secret) Base32() string {
	return b32.EncodeToString(s)
}

// GenerateSecret produces a cryptographically random secret. Without an
// argument the secret is 20 bytes, the SHA-1 digest size; when an algorithm
// is given the secret matches that algorithm's minimum key length, so no
// padding is needed at signing time.
func GenerateSecret(algorithm ...Algorithm) (Secret, error) {
	size := 20
	if len(algorithm) > 0 {
		n, err := algorithm[0].KeySize()
		if err != nil {
			return nil, err
		}
		size = n
	}

	secret := make(Secret, size)
	if _, err := io.ReadFull(randReader, secret); err != nil {
		return nil, fmt.Errorf("totp: failed to generate random secret: %w", err)
	}
	return secret, nil
}
