package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shoplite/shoplite-api/internal/crypto"
	"github.com/shoplite/shoplite-api/internal/model"
	"github.com/shoplite/shoplite-api/internal/session"
)

type contextKey string

const claimsKey contextKey = "claims"

// SessionAuth returns middleware that gates the protected area on the
// session token cookie. A missing or invalid token is rejected before
// any protected content is produced; the two cases are not
// distinguished beyond the message.
func SessionAuth(gateway session.Gateway, secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := gateway.Token(r)
			if token == "" {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			claims, err := crypto.ValidateToken(token, secret)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "invalid or expired session")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims.Payload())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext extracts the authenticated identity from the
// request context.
func ClaimsFromContext(ctx context.Context) (model.ClaimPayload, bool) {
	payload, ok := ctx.Value(claimsKey).(model.ClaimPayload)
	return payload, ok
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{"success": false, "error": msg})
}
