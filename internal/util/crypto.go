package util

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

const secretBytes = 32

// NewWebhookSecret returns a 256-bit random secret rendered as hex,
// suitable as an HMAC key.
func NewWebhookSecret() (string, error) {
	bytes := make([]byte, secretBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// Sign computes the HMAC-SHA256 tag of payload keyed by secret,
// as a lowercase hex string.
func Sign(secret string, payload []byte) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil))
}

// VerifySignature recomputes the tag and compares it against signature in
// constant time. Length mismatches are handled without short-circuiting on
// byte position.
func VerifySignature(secret string, payload []byte, signature string) bool {
	computed := Sign(secret, payload)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(signature)) == 1
}

// MaskSecret renders a secret safe for logs and list responses.
func MaskSecret(secret string) string {
	if len(secret) <= 8 {
		return "****"
	}
	return secret[:8] + "****"
}
