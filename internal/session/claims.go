package session

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sycelim/delivery-web/internal/apperr"
	"github.com/sycelim/delivery-web/internal/domain"
)

// Role extracts the role claim from a bearer token without verifying its
// signature. This is a UX convenience for routing and view gating, never an
// authorization boundary: the remote API validates the token on every call.
func Role(token string) (domain.Role, error) {
	if token == "" {
		return "", apperr.ErrUnauthorized
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", fmt.Errorf("%w: %w", apperr.ErrUnauthorized, err)
	}

	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return "", apperr.ErrUnauthorized
	}
	return domain.Role(role), nil
}
