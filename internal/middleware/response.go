package middleware

import (
	"net/http"

	"github.com/vj-tring/SalesBoostAI-V1/internal/httputil"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	httputil.WriteJSON(w, status, data)
}
