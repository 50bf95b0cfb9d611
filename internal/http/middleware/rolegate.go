package middleware

import (
	"net/http"

	"github.com/sycelim/delivery-web/internal/domain"
	"github.com/sycelim/delivery-web/internal/logx"
	"github.com/sycelim/delivery-web/internal/session"
)

// RequireRole guards a view behind the locally decoded role claim. A missing
// or undecodable token, or a role outside the allowed set, redirects to the
// login page without surfacing an error. This check is a UX convenience only:
// the decoded claim is never verified here, and the remote API re-enforces
// authorization on every call.
func RequireRole(logger logx.Logger, secure bool, roles ...domain.Role) func(http.Handler) http.Handler {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			store := session.New(w, r, secure)

			token, ok := store.Token()
			if !ok {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			role, err := session.Role(token)
			if err != nil {
				logger.Debug("session token rejected",
					logx.String("path", r.URL.Path),
					logx.Any("err", err),
				)
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			if _, ok := allowed[role]; !ok {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
