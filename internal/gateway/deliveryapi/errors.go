package deliveryapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// genericMessage is shown when the API response carries no usable message.
const genericMessage = "Une erreur est survenue"

// Error is a failed remote call. Kind is one of the apperr sentinels and
// Message is user-visible: the server-supplied message when present,
// otherwise the operation's fallback.
type Error struct {
	Op      string
	Status  int
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("delivery api: %s: status=%d: %s", e.Op, e.Status, e.Message)
}

func (e *Error) Unwrap() error { return e.Kind }

// UserMessage extracts the user-visible message from a gateway error.
func UserMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return genericMessage
}

// messageFromBody pulls the "message" field out of an error response body.
// Anything unparsable yields an empty string; the caller falls back.
func messageFromBody(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, bodyLimit))
	if err != nil {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	return payload.Message
}
