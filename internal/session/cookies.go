// Package session stores and retrieves the authenticated session as a
// pair of http-only cookies: one carrying the signed token, one a
// plaintext copy of the claim payload for convenience reads.
package session

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/shoplite/shoplite-api/internal/model"
)

const (
	// TokenCookie holds the signed session token.
	TokenCookie = "authToken"
	// UserDataCookie holds the JSON claim payload.
	UserDataCookie = "userData"

	// MaxAge matches the token expiry.
	MaxAge = 7 * 24 * time.Hour
)

// Gateway writes and reads the session cookie pair. Secure controls
// the Secure flag and should be true outside local development.
type Gateway struct {
	Secure bool
}

// Set writes both session cookies. Callers always write the pair
// through this one call so a partial pair cannot be produced by the
// controller.
func (g Gateway) Set(w http.ResponseWriter, token string, payload model.ClaimPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	g.setCookie(w, TokenCookie, token, int(MaxAge.Seconds()))
	// JSON contains characters that are invalid in a cookie value.
	g.setCookie(w, UserDataCookie, url.QueryEscape(string(data)), int(MaxAge.Seconds()))
	return nil
}

// Token returns the session token from the request, or "" if the
// cookie is absent.
func (g Gateway) Token(r *http.Request) string {
	c, err := r.Cookie(TokenCookie)
	if err != nil {
		return ""
	}
	return c.Value
}

// Clear expires both session cookies.
func (g Gateway) Clear(w http.ResponseWriter) {
	g.setCookie(w, TokenCookie, "", -1)
	g.setCookie(w, UserDataCookie, "", -1)
}

func (g Gateway) setCookie(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   g.Secure,
	})
}
