package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork wraps transport failures; the request may not have reached
	// the backend.
	ErrNetwork = errors.New("network failure")
	// ErrBadResponse means the backend claimed success but the reply lacks
	// the token or a usable user identifier.
	ErrBadResponse = errors.New("incomplete backend response")
)

// RejectionError is a reply with "success": false or a non-2xx status.
type RejectionError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *RejectionError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s rejected (status %d)", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s rejected (status %d): %s", e.Op, e.StatusCode, e.Message)
}

// ValidationError is raised before any request is sent.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

// UserMessage picks the text shown to the user for err: the backend message
// when the backend sent one, the validation reason for input errors,
// otherwise fallback.
func UserMessage(err error, fallback string) string {
	var rej *RejectionError
	if errors.As(err, &rej) && rej.Message != "" {
		return rej.Message
	}
	var v *ValidationError
	if errors.As(err, &v) {
		return v.Reason
	}
	return fallback
}
