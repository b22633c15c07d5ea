package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWebhookSecret(t *testing.T) {
	t.Run("generates 64 character hex string", func(t *testing.T) {
		secret, err := NewWebhookSecret()
		require.NoError(t, err)
		assert.Len(t, secret, 64)
	})

	t.Run("generates unique secrets", func(t *testing.T) {
		secret1, _ := NewWebhookSecret()
		secret2, _ := NewWebhookSecret()
		assert.NotEqual(t, secret1, secret2)
	})

	t.Run("generates valid hex", func(t *testing.T) {
		secret, _ := NewWebhookSecret()
		for _, c := range secret {
			assert.True(t, (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f'))
		}
	})
}

func TestSign(t *testing.T) {
	t.Run("returns 64 character hex string", func(t *testing.T) {
		result := Sign("secret", []byte("data"))
		assert.Len(t, result, 64)
	})

	t.Run("same inputs produce same result", func(t *testing.T) {
		result1 := Sign("secret", []byte("data"))
		result2 := Sign("secret", []byte("data"))
		assert.Equal(t, result1, result2)
	})

	t.Run("different secret produces different result", func(t *testing.T) {
		result1 := Sign("secret1", []byte("data"))
		result2 := Sign("secret2", []byte("data"))
		assert.NotEqual(t, result1, result2)
	})

	t.Run("different payload produces different result", func(t *testing.T) {
		result1 := Sign("secret", []byte("data1"))
		result2 := Sign("secret", []byte("data2"))
		assert.NotEqual(t, result1, result2)
	})

	t.Run("produces expected HMAC", func(t *testing.T) {
		// Known test vector
		result := Sign("key", []byte("The quick brown fox jumps over the lazy dog"))
		assert.Equal(t, "f7bc83f430538424b13298e6aa6fb143ef4d59a14946175997479dbc2d1a3cd8", result)
	})
}

func TestVerifySignature(t *testing.T) {
	t.Run("round trip verifies", func(t *testing.T) {
		payload := []byte(`{"event":"order.created"}`)
		tag := Sign("secret", payload)
		assert.True(t, VerifySignature("secret", payload, tag))
	})

	t.Run("rejects wrong secret", func(t *testing.T) {
		payload := []byte(`{"event":"order.created"}`)
		tag := Sign("secret", payload)
		assert.False(t, VerifySignature("other-secret", payload, tag))
	})

	t.Run("rejects tampered payload", func(t *testing.T) {
		tag := Sign("secret", []byte("original"))
		assert.False(t, VerifySignature("secret", []byte("tampered"), tag))
	})

	t.Run("rejects truncated signature without panic", func(t *testing.T) {
		payload := []byte("data")
		tag := Sign("secret", payload)
		assert.False(t, VerifySignature("secret", payload, tag[:10]))
	})

	t.Run("rejects empty signature", func(t *testing.T) {
		assert.False(t, VerifySignature("secret", []byte("data"), ""))
	})
}

func TestMaskSecret(t *testing.T) {
	t.Run("masks long secret keeping prefix", func(t *testing.T) {
		assert.Equal(t, "deadbeef****", MaskSecret("deadbeefcafe0123"))
	})

	t.Run("fully masks short secret", func(t *testing.T) {
		assert.Equal(t, "****", MaskSecret("abc"))
	})
}
