package middleware

import (
	"bytes"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/vj-tring/SalesBoostAI-V1/internal/util"
	"github.com/vj-tring/SalesBoostAI-V1/internal/webhook"
)

// WebhookSignatureMiddleware authenticates inbound third-party webhooks. The
// caller presents the shared secret and an HMAC tag of the raw body; the tag
// is checked in constant time before any business processing of the body.
type WebhookSignatureMiddleware struct{}

func NewWebhookSignatureMiddleware() *WebhookSignatureMiddleware {
	return &WebhookSignatureMiddleware{}
}

func (m *WebhookSignatureMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		signature := r.Header.Get(webhook.HeaderSignature)
		secret := r.Header.Get("X-Webhook-Secret")
		if signature == "" || secret == "" {
			log.Warn().Msg("inbound webhook: missing signature or secret header")
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error": "Missing signature or secret",
			})
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error().Err(err).Msg("inbound webhook: failed to read body")
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"error": "Failed to read request body",
			})
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		if !util.VerifySignature(secret, body, signature) {
			log.Warn().Msg("inbound webhook: invalid signature")
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error": "Invalid signature",
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}
