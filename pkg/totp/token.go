package totp

import (
	"encoding/binary"
	"fmt"
	"time"
)

// Defaults shared by token generation, verification and the key-URI codec.
const (
	// DefaultDigits is the token length used when none is requested.
	DefaultDigits = 6
	// DefaultPeriod is the time step in seconds used when none is requested.
	DefaultPeriod = 30
)

// GenerateOpts controls token derivation. The zero value selects SHA-1,
// 6 digits, a 30 second period and the current wall-clock time.
type GenerateOpts struct {
	// Algorithm selects the HMAC digest. Default: AlgorithmSHA1.
	Algorithm Algorithm
	// Digits is the token length, between 1 and 10. Default: 6.
	Digits int
	// Period is the time step in seconds. Default: 30.
	Period int
	// Time is the instant to derive the token for. Default: time.Now().
	Time time.Time
}

func (o GenerateOpts) withDefaults() GenerateOpts {
	if o.Algorithm == "" {
		o.Algorithm = AlgorithmSHA1
	}
	if o.Digits == 0 {
		o.Digits = DefaultDigits
	}
	if o.Period == 0 {
		o.Period = DefaultPeriod
	}
	if o.Time.IsZero() {
		o.Time = time.Now()
	}
	return o
}

// Token is a derived one-time code together with the parameters that were
// in effect when it was derived.
type Token struct {
	Code      string
	Algorithm Algorithm
	Digits    int
	Period    int
}

// Steps returns the number of whole periods elapsed at t since the Unix
// epoch. This is the HOTP counter value for time-based tokens.
func Steps(t time.Time, period int) uint64 {
	secs := t.Unix()
	if secs < 0 {
		return 0
	}
	return uint64(secs) / uint64(period)
}

// GenerateToken derives the token for the current time using default
// parameters (SHA-1, 6 digits, 30 second period).
func GenerateToken(secret Secret) (*Token, error) {
	return GenerateTokenCustom(secret, GenerateOpts{})
}

// GenerateTokenCustom derives the token for the time step covering
// opts.Time.
func GenerateTokenCustom(secret Secret, opts GenerateOpts) (*Token, error) {
	opts = opts.withDefaults()
	return GenerateTokenAtStep(secret, Steps(opts.Time, opts.Period), opts)
}

// GenerateTokenAtStep derives the token for an explicit step counter. This
// is the raw HOTP derivation of RFC 4226; GenerateTokenCustom and the
// verifier are built on it.
func GenerateTokenAtStep(secret Secret, step uint64, opts GenerateOpts) (*Token, error) {
	opts = opts.withDefaults()
	if opts.Digits < 1 || opts.Digits > 10 {
		return nil, fmt.Errorf("%w: got %d", ErrDigitsOutOfRange, opts.Digits)
	}
	if len(secret) == 0 {
		return nil, fmt.Errorf("%w: secret must not be empty", ErrInvalidSecret)
	}

	code, err := hotpCode(secret, step, opts.Algorithm, opts.Digits)
	if err != nil {
		return nil, err
	}

	return &Token{
		Code:      code,
		Algorithm: opts.Algorithm,
		Digits:    opts.Digits,
		Period:    opts.Period,
	}, nil
}

// hotpCode derives a code from a step counter via RFC 4226 section 5.3
// dynamic truncation.
func hotpCode(secret Secret, step uint64, alg Algorithm, digits int) (string, error) {
	var counter [8]byte
	binary.BigEndian.PutUint64(counter[:], step)

	digest, err := sign(alg, secret, counter[:])
	if err != nil {
		return "", err
	}

	// The low nibble of the last digest byte selects a 4-byte window,
	// masked to 31 bits. Every supported digest is at least 20 bytes, so
	// offset+4 never runs past the end.
	offset := digest[len(digest)-1] & 0x0f
	dbc := binary.BigEndian.Uint32(digest[offset:offset+4]) & 0x7fffffff

	// The 31-bit value has at most 10 decimal digits; the token is the
	// low-order slice of its zero-padded rendering.
	full := fmt.Sprintf("%010d", dbc)
	return full[len(full)-digits:], nil
}
