package handlers_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/sycelim/delivery-web/internal/domain"
	"github.com/sycelim/delivery-web/internal/gateway/deliveryapi"
	"github.com/sycelim/delivery-web/internal/logx"
	"github.com/sycelim/delivery-web/internal/session"
	"github.com/sycelim/delivery-web/internal/web"
)

// stubGateway is a hand stub of the delivery API client; unset functions
// return zero values.
type stubGateway struct {
	loginFn        func(ctx context.Context, email, password string) (*deliveryapi.LoginResult, error)
	registerFn     func(ctx context.Context, firstName, lastName, email, password string) (string, error)
	listAllFn      func(ctx context.Context, token string) ([]domain.Delivery, error)
	listMineFn     func(ctx context.Context, token string) ([]domain.Delivery, error)
	createFn       func(ctx context.Context, token, customerName, address string) (string, error)
	updateStatusFn func(ctx context.Context, token, id string, status domain.Status) (string, error)
	deleteFn       func(ctx context.Context, token, id string) (string, error)
}

func (s *stubGateway) Login(ctx context.Context, email, password string) (*deliveryapi.LoginResult, error) {
	if s.loginFn == nil {
		return &deliveryapi.LoginResult{}, nil
	}
	return s.loginFn(ctx, email, password)
}

func (s *stubGateway) Register(ctx context.Context, firstName, lastName, email, password string) (string, error) {
	if s.registerFn == nil {
		return "", nil
	}
	return s.registerFn(ctx, firstName, lastName, email, password)
}

func (s *stubGateway) ListAll(ctx context.Context, token string) ([]domain.Delivery, error) {
	if s.listAllFn == nil {
		return nil, nil
	}
	return s.listAllFn(ctx, token)
}

func (s *stubGateway) ListMine(ctx context.Context, token string) ([]domain.Delivery, error) {
	if s.listMineFn == nil {
		return nil, nil
	}
	return s.listMineFn(ctx, token)
}

func (s *stubGateway) Create(ctx context.Context, token, customerName, address string) (string, error) {
	if s.createFn == nil {
		return "", nil
	}
	return s.createFn(ctx, token, customerName, address)
}

func (s *stubGateway) UpdateStatus(ctx context.Context, token, id string, status domain.Status) (string, error) {
	if s.updateStatusFn == nil {
		return "", nil
	}
	return s.updateStatusFn(ctx, token, id, status)
}

func (s *stubGateway) Delete(ctx context.Context, token, id string) (string, error) {
	if s.deleteFn == nil {
		return "", nil
	}
	return s.deleteFn(ctx, token, id)
}

func newRenderer(t *testing.T) *web.Renderer {
	t.Helper()
	renderer, err := web.NewRenderer()
	require.NoError(t, err)
	return renderer
}

func testLogger() logx.Logger { return logx.Nop() }

func signedToken(t *testing.T, role string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"role": role}).
		SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

const (
	tokenCookie = "sycelim_token"
	csrfCookie  = "sycelim_csrf"
	flashCookie = "sycelim_flash"
	csrfValue   = "csrf-test-token"
)

// postForm builds an authenticated form POST with a matching CSRF cookie.
func postForm(target, token string, form url.Values) *http.Request {
	if form.Get("csrf_token") == "" {
		form.Set("csrf_token", csrfValue)
	}
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: csrfCookie, Value: csrfValue})
	if token != "" {
		req.AddCookie(&http.Cookie{Name: tokenCookie, Value: token})
	}
	return req
}

func getWithToken(target, token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: tokenCookie, Value: token})
	}
	return req
}

// flashFrom decodes the flash cookie written to rec, nil when absent.
func flashFrom(t *testing.T, rec *httptest.ResponseRecorder) *session.Flash {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name != flashCookie || c.Value == "" || c.MaxAge < 0 {
			continue
		}
		raw, err := base64.URLEncoding.DecodeString(c.Value)
		require.NoError(t, err)
		var f session.Flash
		require.NoError(t, json.Unmarshal(raw, &f))
		return &f
	}
	return nil
}

func cookieValue(rec *httptest.ResponseRecorder, name string) (string, bool) {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name && c.MaxAge >= 0 {
			return c.Value, true
		}
	}
	return "", false
}
