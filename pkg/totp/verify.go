package totp

import (
	"crypto/hmac"
	"fmt"
	"sync"
	"time"
)

const (
	maxDelta       = 10
	maxTokenLength = 10
)

// VerifyOpts controls token verification. The zero value selects SHA-1, a
// 30 second period, the current wall-clock time and an exact-step match
// (Delta 0).
type VerifyOpts struct {
	// Algorithm selects the HMAC digest. Default: AlgorithmSHA1.
	Algorithm Algorithm
	// Period is the time step in seconds. Default: 30.
	Period int
	// Delta is the number of steps checked either side of the current
	// step, between 0 and 10. Delta 0 accepts only the current step.
	Delta int
	// Time is the instant to verify against. Default: time.Now().
	Time time.Time
}

// Verify checks token against the current time step with default
// parameters and a tolerance of one step in either direction.
func Verify(token string, secret Secret) (bool, error) {
	return VerifyCustom(token, secret, VerifyOpts{Delta: 1})
}

// VerifyCustom checks token against every step in the window
// [current-Delta, current+Delta]. The token length determines the digit
// count of the candidates.
//
// Instead of comparing token strings, both the input and each candidate
// are mapped through a keyed HMAC and the HMAC values are compared with
// hmac.Equal, so the comparison cost does not depend on where they
// diverge. All candidates are evaluated before the result is decided;
// there is no early exit on match.
func VerifyCustom(token string, secret Secret, opts VerifyOpts) (bool, error) {
	if len(token) == 0 || len(token) > maxTokenLength {
		return false, fmt.Errorf("%w: got %d characters", ErrTokenLength, len(token))
	}
	if opts.Delta < 0 || opts.Delta > maxDelta {
		return false, fmt.Errorf("%w: got %d", ErrDeltaOutOfRange, opts.Delta)
	}
	if len(secret) == 0 {
		return false, fmt.Errorf("%w: secret must not be empty", ErrInvalidSecret)
	}
	if opts.Algorithm == "" {
		opts.Algorithm = AlgorithmSHA1
	}
	if opts.Period == 0 {
		opts.Period = DefaultPeriod
	}
	if opts.Time.IsZero() {
		opts.Time = time.Now()
	}

	ref, err := sign(opts.Algorithm, secret, []byte(token))
	if err != nil {
		return false, err
	}

	steps := Steps(opts.Time, opts.Period)
	first := uint64(0)
	if steps > uint64(opts.Delta) {
		first = steps - uint64(opts.Delta)
	}
	last := steps + uint64(opts.Delta)
	digits := len(token)

	// Candidate steps are independent: a parallel map over the window,
	// then an OR-reduce once every candidate has finished.
	matches := make([]bool, last-first+1)
	var wg sync.WaitGroup
	for i := range matches {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			code, err := hotpCode(secret, first+uint64(i), opts.Algorithm, digits)
			if err != nil {
				return
			}
			candidate, err := sign(opts.Algorithm, secret, []byte(code))
			if err != nil {
				return
			}
			matches[i] = hmac.Equal(candidate, ref)
		}()
	}
	wg.Wait()

	for _, ok := range matches {
		if ok {
			return true, nil
		}
	}
	return false, nil
}
