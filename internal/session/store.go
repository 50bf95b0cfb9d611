// Package session wraps the browser-side state of the front end: the bearer
// token cookie, a CSRF token for form posts, and one-shot flash messages.
// The token is advisory only; the remote API re-checks it on every call.
package session

import (
	"net/http"

	"github.com/google/uuid"
)

const (
	tokenCookie = "sycelim_token"
	csrfCookie  = "sycelim_csrf"
	flashCookie = "sycelim_flash"
)

// Store reads and writes the session cookies of one request/response pair.
type Store struct {
	w      http.ResponseWriter
	r      *http.Request
	secure bool
}

// New binds a Store to the given request and response.
func New(w http.ResponseWriter, r *http.Request, secure bool) *Store {
	return &Store{w: w, r: r, secure: secure}
}

// Token returns the persisted bearer token, if any.
func (s *Store) Token() (string, bool) {
	c, err := s.r.Cookie(tokenCookie)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

// SetToken persists the bearer token. No expiry is enforced client-side;
// the remote API decides when the token stops being accepted.
func (s *Store) SetToken(token string) {
	http.SetCookie(s.w, &http.Cookie{
		Name:     tokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear drops the bearer token.
func (s *Store) Clear() {
	http.SetCookie(s.w, &http.Cookie{
		Name:     tokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// EnsureCSRF returns the per-browser CSRF token, minting one if absent.
func (s *Store) EnsureCSRF() string {
	if c, err := s.r.Cookie(csrfCookie); err == nil && c.Value != "" {
		return c.Value
	}
	token := uuid.NewString()
	http.SetCookie(s.w, &http.Cookie{
		Name:     csrfCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return token
}

// VerifyCSRF reports whether the submitted value matches the CSRF cookie.
func (s *Store) VerifyCSRF(submitted string) bool {
	c, err := s.r.Cookie(csrfCookie)
	if err != nil || c.Value == "" {
		return false
	}
	return submitted == c.Value
}
