//go:build integration

package totp_test

import (
	"testing"
	"time"

	"github.com/jhahn/go-totp/pkg/keyuri"
	"github.com/jhahn/go-totp/pkg/totp"

	refotp "github.com/pquerna/otp"
	reftotp "github.com/pquerna/otp/totp"
)

func refAlgorithm(alg totp.Algorithm) refotp.Algorithm {
	switch alg {
	case totp.AlgorithmSHA256:
		return refotp.AlgorithmSHA256
	case totp.AlgorithmSHA512:
		return refotp.AlgorithmSHA512
	default:
		return refotp.AlgorithmSHA1
	}
}

// TestIntegration_CrossLibrary_EndToEnd walks the full provisioning flow
// against github.com/pquerna/otp: secret → URI → the reference library
// parses the URI and generates codes → our verifier accepts them, and the
// reverse direction.
func TestIntegration_CrossLibrary_EndToEnd(t *testing.T) {
	tests := []struct {
		name      string
		algorithm totp.Algorithm
		digits    int
	}{
		{"SHA1_6digits", totp.AlgorithmSHA1, 6},
		{"SHA256_6digits", totp.AlgorithmSHA256, 6},
		{"SHA512_6digits", totp.AlgorithmSHA512, 6},
		{"SHA1_8digits", totp.AlgorithmSHA1, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Digest-length secrets keep both libraries on identical key
			// material: the reference library does not pad short secrets.
			secret, err := totp.GenerateSecret(tt.algorithm)
			if err != nil {
				t.Fatalf("Failed to generate secret: %v", err)
			}

			key := keyuri.New("IntegrationTest", "test@example.com", secret)
			key.Algorithm = tt.algorithm
			key.Digits = tt.digits

			uri, err := key.Encode()
			if err != nil {
				t.Fatalf("Failed to encode URI: %v", err)
			}

			refKey, err := refotp.NewKeyFromURL(uri)
			if err != nil {
				t.Fatalf("Reference library rejected URI %s: %v", uri, err)
			}
			if refKey.Secret() != secret.Base32() {
				t.Fatalf("Secret mangled in transit: %q != %q", refKey.Secret(), secret.Base32())
			}

			now := time.Now()
			opts := reftotp.ValidateOpts{
				Period:    30,
				Skew:      1,
				Digits:    refotp.Digits(tt.digits),
				Algorithm: refAlgorithm(tt.algorithm),
			}

			// Reference generates, we verify.
			refCode, err := reftotp.GenerateCodeCustom(refKey.Secret(), now, opts)
			if err != nil {
				t.Fatalf("Reference generation failed: %v", err)
			}
			ok, err := totp.VerifyCustom(refCode, secret, totp.VerifyOpts{
				Algorithm: tt.algorithm,
				Delta:     1,
				Time:      now,
			})
			if err != nil {
				t.Fatalf("VerifyCustom failed: %v", err)
			}
			if !ok {
				t.Errorf("Rejected reference code %q", refCode)
			}

			// We generate, reference verifies.
			token, err := totp.GenerateTokenCustom(secret, totp.GenerateOpts{
				Algorithm: tt.algorithm,
				Digits:    tt.digits,
				Time:      now,
			})
			if err != nil {
				t.Fatalf("GenerateTokenCustom failed: %v", err)
			}
			ok, err = reftotp.ValidateCustom(token.Code, refKey.Secret(), now, opts)
			if err != nil {
				t.Fatalf("Reference validation failed: %v", err)
			}
			if !ok {
				t.Errorf("Reference library rejected our code %q", token.Code)
			}
		})
	}
}

// TestIntegration_SkewWindow exercises the verification window against
// drifting clocks using short periods, the way a slow authenticator would
// look to the server.
func TestIntegration_SkewWindow(t *testing.T) {
	secret, err := totp.GenerateSecret()
	if err != nil {
		t.Fatalf("Failed to generate secret: %v", err)
	}

	now := time.Now()
	period := 2

	// A code from three short periods ago needs delta >= 3.
	stale, err := totp.GenerateTokenCustom(secret, totp.GenerateOpts{
		Period: period,
		Time:   now.Add(-6 * time.Second),
	})
	if err != nil {
		t.Fatalf("Failed to generate stale token: %v", err)
	}

	ok, err := totp.VerifyCustom(stale.Code, secret, totp.VerifyOpts{
		Period: period,
		Delta:  2,
		Time:   now,
	})
	if err != nil {
		t.Fatalf("VerifyCustom failed: %v", err)
	}
	if ok {
		t.Error("Stale token accepted outside the window")
	}

	ok, err = totp.VerifyCustom(stale.Code, secret, totp.VerifyOpts{
		Period: period,
		Delta:  3,
		Time:   now,
	})
	if err != nil {
		t.Fatalf("VerifyCustom failed: %v", err)
	}
	if !ok {
		t.Error("Stale token rejected inside the window")
	}
}
