package deliveryapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sycelim/delivery-web/internal/apperr"
)

// LoginResult carries the bearer token and confirmation message returned by
// a successful authentication.
type LoginResult struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	const op = "login"
	body := map[string]string{"email": email, "password": password}

	resp, err := c.do(ctx, op, http.MethodPost, "/auth/login", "", body)
	if err != nil {
		return nil, c.fail(op, apperr.ErrUnauthorized, err)
	}
	defer closeBody(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.statusError(op, resp, apperr.ErrUnauthorized, genericMessage)
	}

	var result LoginResult
	if err := json.NewDecoder(io.LimitReader(resp.Body, bodyLimit)).Decode(&result); err != nil {
		return nil, c.fail(op, apperr.ErrUnauthorized, fmt.Errorf("decode response: %w", err))
	}
	if result.Token == "" {
		return nil, c.fail(op, apperr.ErrUnauthorized, fmt.Errorf("empty token in response"))
	}
	return &result, nil
}

// Register enrolls a new courier account. The API assigns the livreur role
// to every registration; no token is issued until the user logs in.
func (c *Client) Register(ctx context.Context, firstName, lastName, email, password string) (string, error) {
	const op = "register"
	body := map[string]string{
		"firstName": firstName,
		"lastName":  lastName,
		"email":     email,
		"password":  password,
		"role":      "livreur",
	}

	resp, err := c.do(ctx, op, http.MethodPost, "/auth/register", "", body)
	if err != nil {
		return "", c.fail(op, apperr.ErrInvalid, err)
	}
	defer closeBody(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", c.statusError(op, resp, apperr.ErrInvalid, genericMessage)
	}
	return confirmationMessage(resp.Body), nil
}
