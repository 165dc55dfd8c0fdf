package service

import (
	"errors"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrMissingCredentials = errors.New("email and password are required")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid token")
)

// ValidationError carries every field failure found in one pass over a request
type ValidationError struct {
	Messages []string
	// Cause is set when one of the failures maps to a sentinel error
	Cause error
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

func (e *ValidationError) empty() bool {
	return len(e.Messages) == 0
}

// add records "Field: Message." The path keeps its own spelling apart from a
// leading capital, so nested paths like recipe_items[0].item.name stay readable.
func (e *ValidationError) add(field, msg string) {
	// Casers keep state between calls and are not shared across goroutines
	caser := cases.Title(language.English)
	if field != "" {
		field = strings.ToUpper(field[:1]) + field[1:]
	}
	e.Messages = append(e.Messages, field+": "+caser.String(msg))
}

// IsValidation reports whether err is a field validation failure.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
