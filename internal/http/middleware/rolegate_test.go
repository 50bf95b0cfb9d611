package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/sycelim/delivery-web/internal/domain"
	"github.com/sycelim/delivery-web/internal/http/middleware"
	"github.com/sycelim/delivery-web/internal/testutil/testlog"
)

func signedToken(t *testing.T, role string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"role": role}).
		SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func gateRequest(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "sycelim_token", Value: token})
	}
	return req
}

func TestRequireRole(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		token   string
		allowed []domain.Role
		passed  bool
	}{
		{"no token", "", []domain.Role{domain.RoleAdmin}, false},
		{"malformed token", "garbage", []domain.Role{domain.RoleAdmin}, false},
		{"admin on admin gate", "ADMIN", []domain.Role{domain.RoleAdmin}, true},
		{"admin on livreur gate", "ADMIN", []domain.Role{domain.RoleLivreur}, false},
		{"livreur on livreur gate", "LIVREUR", []domain.Role{domain.RoleLivreur}, true},
		{"livreur on admin gate", "LIVREUR", []domain.Role{domain.RoleAdmin}, false},
		{"unknown role", "OTHER", []domain.Role{domain.RoleAdmin, domain.RoleLivreur}, false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			token := tc.token
			switch token {
			case "ADMIN":
				token = signedToken(t, "admin")
			case "LIVREUR":
				token = signedToken(t, "livreur")
			case "OTHER":
				token = signedToken(t, "dispatcher")
			}

			passed := false
			gate := middleware.RequireRole(testlog.New().Logger(), false, tc.allowed...)
			handler := gate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				passed = true
				w.WriteHeader(http.StatusOK)
			}))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, gateRequest(token))

			require.Equal(t, tc.passed, passed)
			if tc.passed {
				require.Equal(t, http.StatusOK, rec.Code)
			} else {
				require.Equal(t, http.StatusSeeOther, rec.Code)
				require.Equal(t, "/login", rec.Header().Get("Location"))
			}
		})
	}
}
