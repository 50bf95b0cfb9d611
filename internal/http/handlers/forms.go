package handlers

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// reEmail accepts the usual user@host.tld shape; the remote API stays the
// authority on what an acceptable account is.
var reEmail = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	msgEmailInvalid  = "L'email doit être valide"
	msgPasswordShort = "Le mot de passe doit contenir au moins 6 caractères"
	msgFirstNameLen  = "Le prénom doit contenir au moins 2 caractères"
	msgLastNameLen   = "Le nom doit contenir au moins 2 caractères"
)

// validateLogin checks every login field and returns all messages at once,
// keyed by field name. An empty map means the form may be submitted.
func validateLogin(email, password string) map[string]string {
	errs := make(map[string]string)
	if !reEmail.MatchString(email) {
		errs["email"] = msgEmailInvalid
	}
	if utf8.RuneCountInString(password) < 6 {
		errs["password"] = msgPasswordShort
	}
	return errs
}

// validateRegister checks every registration field together.
func validateRegister(firstName, lastName, email, password string) map[string]string {
	errs := validateLogin(email, password)
	if utf8.RuneCountInString(strings.TrimSpace(firstName)) < 2 {
		errs["firstName"] = msgFirstNameLen
	}
	if utf8.RuneCountInString(strings.TrimSpace(lastName)) < 2 {
		errs["lastName"] = msgLastNameLen
	}
	return errs
}
