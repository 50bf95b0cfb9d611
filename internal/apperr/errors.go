package apperr

import "errors"

// ErrInvalid is returned when input fails local validation.
var ErrInvalid = errors.New("invalid input")

// ErrUnauthorized indicates rejected credentials or a missing session.
var ErrUnauthorized = errors.New("unauthorized")

// ErrLoad indicates that fetching the delivery list from the remote API failed.
var ErrLoad = errors.New("load failed")

// ErrCreate indicates that the remote API rejected a delivery creation.
var ErrCreate = errors.New("create failed")

// ErrUpdate indicates that the remote API rejected a status update.
var ErrUpdate = errors.New("update failed")

// ErrDelete indicates that the remote API rejected a delivery deletion.
var ErrDelete = errors.New("delete failed")
