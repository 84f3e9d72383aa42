package token

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
)

// ErrMissingSecret is returned when a Codec is constructed without a server
// secret. Hashing must never silently fall back to an unkeyed digest.
var ErrMissingSecret = errors.New("invite token secret is not configured")

const tokenBytes = 32

// Codec generates bearer tokens for invite links and derives the keyed
// digest stored in their place. Only the digest is ever persisted; the
// plaintext token leaves the process exactly once, embedded in the link.
//
// The digest is an HMAC-SHA256 keyed with a process-wide secret loaded at
// startup. Rotating the secret changes every digest and therefore
// invalidates all outstanding tokens; that is the accepted operational
// tradeoff for keeping the stored hashes useless to an attacker who dumps
// the table.
type Codec struct {
	secret []byte
}

func NewCodec(secret string) (*Codec, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &Codec{secret: []byte(secret)}, nil
}

// Generate returns a new high-entropy bearer token, URL-safe base64 without
// padding (32 random bytes, 256 bits).
func (c *Codec) Generate() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Hash returns the hex-encoded HMAC-SHA256 digest of token. Deterministic
// for a fixed secret, which makes the digest usable as a unique lookup key.
func (c *Codec) Hash(token string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil))
}
