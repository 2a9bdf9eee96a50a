// Package totp implements Time-based One-Time Password generation and
// verification as specified in RFC 6238, built on the HOTP derivation of
// RFC 4226.
//
// # Generating Tokens
//
// Generate a secret once and share it with the user's authenticator app,
// then derive tokens from it on demand:
//
//	secret, err := totp.GenerateSecret()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	token, err := totp.GenerateToken(secret)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(token.Code) // e.g. "492039"
//
// Non-default parameters go through GenerateTokenCustom:
//
//	token, err := totp.GenerateTokenCustom(secret, totp.GenerateOpts{
//	    Algorithm: totp.AlgorithmSHA256,
//	    Digits:    8,
//	    Period:    60,
//	})
//
// # Verifying Tokens
//
// Verify checks a user-supplied token against the current time step with a
// tolerance of one step in either direction, which absorbs ordinary clock
// skew between the server and the authenticator:
//
//	ok, err := totp.Verify(userToken, secret)
//
// VerifyCustom exposes the window size (Delta) and the remaining
// parameters. The comparison is performed over HMAC values of the token
// strings rather than the strings themselves, so a failed match costs the
// same regardless of where the candidate diverges from the input.
//
// # Secret Padding
//
// RFC 6238 requires the shared secret to be at least as long as the digest
// of the chosen hash. Secrets shorter than that are padded by cyclic
// repetition on every HMAC invocation; the stored secret is never modified.
// This is what makes the RFC 6238 Appendix B test vectors, which reuse one
// 20-byte secret across SHA-1, SHA-256 and SHA-512, come out right.
//
// # Hash Algorithms
//
// Supported algorithms are AlgorithmSHA1 (the authenticator-app default),
// AlgorithmSHA256 and AlgorithmSHA512. Anything else is rejected with
// ErrUnsupportedAlgorithm before any key material is touched.
//
// # Thread Safety
//
// The package is stateless between calls; all functions are safe for
// concurrent use.
package totp
