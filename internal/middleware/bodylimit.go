package middleware

import "net/http"

// maxBodySize caps request bodies. Chat turns and webhook registrations are
// small; anything near a megabyte is abuse.
const maxBodySize = 1 << 20

// BodyLimit rejects oversized requests up front when Content-Length admits
// it, and hard-caps streamed bodies either way.
func BodyLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > maxBodySize {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{
				"error": "Request body too large",
			})
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
		next.ServeHTTP(w, r)
	})
}
