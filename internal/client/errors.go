package client

import (
	"errors"
	"fmt"
)

// TransportError means no usable response reached the client (offline,
// DNS, timeout). The last good data stays on screen.
type TransportError struct {
	Err error
}

func (e TransportError) Error() string {
	if e.Err != nil {
		return "transport error: " + e.Err.Error()
	}
	return "transport error"
}

func (e TransportError) Unwrap() error { return e.Err }

// ServerError is any non-2xx response that is not a validation or
// not-found failure. Message is shown verbatim when the server sent one.
type ServerError struct {
	Status  int
	Message string
}

func (e ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server error (status %d)", e.Status)
}

// ValidationError carries per-field messages for inline display next to
// the form fields, never as a global notification.
type ValidationError struct {
	FieldErrors map[string]string
}

func (e ValidationError) Error() string {
	if len(e.FieldErrors) == 0 {
		return "validation error"
	}
	return fmt.Sprintf("validation error (%d fields)", len(e.FieldErrors))
}

// NotFoundError signals an update/delete against an id the server no
// longer has; the stale row disappears on the next refetch.
type NotFoundError struct {
	Message string
}

func (e NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "not found"
}

func IsTransport(err error) bool {
	var target TransportError
	return errors.As(err, &target)
}

func IsServer(err error) bool {
	var target ServerError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}
