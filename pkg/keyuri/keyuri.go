// Package keyuri encodes and decodes the otpauth:// key URI format used by
// authenticator apps to provision TOTP credentials.
//
// The format is documented at
// https://github.com/google/google-authenticator/wiki/Key-Uri-Format.
package keyuri

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/jhahn/go-totp/pkg/totp"
)

// Common errors returned by the keyuri package.
var (
	// ErrMissingAccountName indicates an empty account name on encode.
	ErrMissingAccountName = errors.New("keyuri: account name must not be empty")
	// ErrMissingSecret indicates an empty secret on encode.
	ErrMissingSecret = errors.New("keyuri: secret must not be empty")
	// ErrUnknownProtocol indicates a URI scheme other than otpauth.
	ErrUnknownProtocol = errors.New("keyuri: unknown URI protocol")
	// ErrUnknownType indicates a URI host other than totp.
	ErrUnknownType = errors.New("keyuri: unknown supported type")
	// ErrUnsupportedAlgorithm indicates an algorithm outside the SHA family.
	ErrUnsupportedAlgorithm = errors.New("keyuri: unsupported hash algorithm")
)

// Key is a provisioning record: everything an authenticator app needs to
// derive tokens for one account.
type Key struct {
	// Type is the OTP type; always "totp".
	Type string
	// Label is the decoded URI label ("issuer:accountname" or bare
	// accountname). Populated by Parse; ignored by Encode.
	Label string
	// Issuer names the issuing organization. Optional.
	Issuer string
	// AccountName identifies the account, e.g. "user@example.com".
	AccountName string
	// Secret is the shared secret in unpadded base32 text form.
	Secret string
	// Algorithm selects the HMAC digest. Default: SHA-1.
	Algorithm totp.Algorithm
	// Digits is the token length. Default: 6.
	Digits int
	// Period is the time step in seconds. Default: 30.
	Period int
}

// New builds a Key from raw secret material, handling the base32 encoding.
func New(issuer, accountName string, secret totp.Secret) *Key {
	return &Key{
		Type:        "totp",
		Issuer:      issuer,
		AccountName: accountName,
		Secret:      secret.Base32(),
	}
}

// escapeLabelPart percent-encodes a label segment. url.PathEscape leaves
// colons alone because they are legal in path segments, but here a colon
// is the issuer/account separator and must be escaped.
func escapeLabelPart(s string) string {
	return strings.ReplaceAll(url.PathEscape(s), ":", "%3A")
}

// Encode serializes the key as an otpauth://totp/ URI. Query parameters
// equal to their defaults are omitted, and the rest appear in the fixed
// order secret, algorithm, period, digits, issuer, which is what the
// common authenticator apps emit.
func (k *Key) Encode() (string, error) {
	if k.AccountName == "" {
		return "", ErrMissingAccountName
	}
	if k.Secret == "" {
		return "", ErrMissingSecret
	}

	issuer := k.Issuer
	account := k.AccountName
	if strings.Contains(issuer, ":") || strings.Contains(account, ":") {
		issuer = escapeLabelPart(issuer)
		account = escapeLabelPart(account)
	}

	label := account
	if issuer != "" {
		label = issuer + ":" + account
	}

	// url.Values.Encode sorts keys alphabetically, so the query string is
	// built by hand to keep the conventional parameter order.
	var query strings.Builder
	query.WriteString("secret=")
	query.WriteString(k.Secret)
	if k.Algorithm != "" && k.Algorithm != totp.AlgorithmSHA1 {
		query.WriteString("&algorithm=")
		query.WriteString(k.Algorithm.URIString())
	}
	if k.Period != 0 && k.Period != totp.DefaultPeriod {
		fmt.Fprintf(&query, "&period=%d", k.Period)
	}
	if k.Digits != 0 && k.Digits != totp.DefaultDigits {
		fmt.Fprintf(&query, "&digits=%d", k.Digits)
	}
	if k.Issuer != "" {
		query.WriteString("&issuer=")
		query.WriteString(url.QueryEscape(k.Issuer))
	}

	return "otpauth://totp/" + label + "?" + query.String(), nil
}

// Parse decodes an otpauth://totp/ URI into a Key, applying the format's
// defaults (SHA-1, 6 digits, 30 second period) for absent parameters.
func Parse(rawURI string) (*Key, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return nil, fmt.Errorf("keyuri: invalid URI: %w", err)
	}
	if u.Scheme != "otpauth" {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProtocol, u.Scheme)
	}
	if u.Host != "totp" {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, u.Host)
	}

	// Split on the raw label so an escaped colon inside either segment is
	// not mistaken for the separator.
	rawLabel := strings.TrimPrefix(u.EscapedPath(), "/")
	rawIssuer, rawAccount := "", rawLabel
	if i := strings.Index(rawLabel, ":"); i >= 0 {
		rawIssuer, rawAccount = rawLabel[:i], rawLabel[i+1:]
	}

	account, err := url.PathUnescape(rawAccount)
	if err != nil {
		return nil, fmt.Errorf("keyuri: invalid account name encoding: %w", err)
	}
	issuer, err := url.PathUnescape(rawIssuer)
	if err != nil {
		return nil, fmt.Errorf("keyuri: invalid issuer encoding: %w", err)
	}
	label, err := url.PathUnescape(rawLabel)
	if err != nil {
		return nil, fmt.Errorf("keyuri: invalid label encoding: %w", err)
	}

	q := u.Query()

	algText := q.Get("algorithm")
	if algText == "" {
		algText = "SHA1"
	}
	if !strings.HasPrefix(algText, "SHA") {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, algText)
	}
	suffix := strings.TrimPrefix(strings.TrimPrefix(algText, "SHA"), "-")
	algorithm := totp.Algorithm("SHA-" + suffix)

	period := totp.DefaultPeriod
	if v := q.Get("period"); v != "" {
		period, err = strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("keyuri: invalid period %q: %w", v, err)
		}
	}

	digits := totp.DefaultDigits
	if v := q.Get("digits"); v != "" {
		digits, err = strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("keyuri: invalid digits %q: %w", v, err)
		}
	}

	if v := q.Get("issuer"); v != "" {
		issuer = v
	}

	return &Key{
		Type:        "totp",
		Label:       label,
		Issuer:      issuer,
		AccountName: account,
		Secret:      q.Get("secret"),
		Algorithm:   algorithm,
		Digits:      digits,
		Period:      period,
	}, nil
}
