package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors used across layers.
var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateTitle    = errors.New("recipe already in favorites")
	ErrNoSelection       = errors.New("no ingredient selected")
	ErrUnknownIngredient = errors.New("unknown ingredient")
	ErrUnknownCategory   = errors.New("unknown category")
	ErrInvalidRating     = errors.New("rating must be between 0 and 5")
	ErrShareUnavailable  = errors.New("sharing not available")
	ErrNoRecipe          = errors.New("no recipe to act on")
)

// NetworkError reports a transport failure talking to the recipe endpoint.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error during %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError reports a non-2xx answer from the recipe endpoint.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	return fmt.Sprintf("server error %d: %s", e.Status, msg)
}

// MalformedResponseError reports a body that could not become a Recipe.
type MalformedResponseError struct {
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed response: %s: %v", e.Reason, e.Err)
	}
	return "malformed response: " + e.Reason
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// ShareFallbackError carries the text the user can copy by hand when
// no share or clipboard capability worked.
type ShareFallbackError struct {
	Text string
	Err  error
}

func (e *ShareFallbackError) Error() string {
	return fmt.Sprintf("%v; copy this: %s", e.Err, e.Text)
}

func (e *ShareFallbackError) Unwrap() error { return ErrShareUnavailable }
