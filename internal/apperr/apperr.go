// Package apperr classifies the failures a README generation can end with.
// Every fatal error carries a user-facing message; the cause is kept for logs.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Kind is the category of a generation failure.
type Kind string

const (
	KindValidation        Kind = "validation"
	KindNotFound          Kind = "not_found"
	KindUpstreamAPI       Kind = "upstream_api"
	KindConnectivity      Kind = "connectivity"
	KindContentGeneration Kind = "content_generation"
	KindInternal          Kind = "internal"
)

// Error is a classified error. Message is safe to show to the user.
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches another *Error of the same kind, so errors.Is(err, ErrNotFound)
// works regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrValidation        = &Error{Kind: KindValidation}
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrUpstreamAPI       = &Error{Kind: KindUpstreamAPI}
	ErrConnectivity      = &Error{Kind: KindConnectivity}
	ErrContentGeneration = &Error{Kind: KindContentGeneration}
)

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(err error, kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, Cause: err}
}

// Validation reports bad user input. No network call has been made.
func Validation(message string) *Error {
	return New(KindValidation, message)
}

// NotFound reports a missing repository record.
func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

// Upstream reports a non-success HTTP status from an external API.
func Upstream(service string, statusCode int, statusText string) *Error {
	return &Error{
		Kind:       KindUpstreamAPI,
		Message:    fmt.Sprintf("%s API error: %s", service, statusText),
		StatusCode: statusCode,
	}
}

// StatusText returns the reason phrase of resp, e.g. "Service Unavailable".
func StatusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

// Connectivity reports a network-level failure.
func Connectivity(err error, message string) *Error {
	return Wrap(err, KindConnectivity, message)
}

// ContentGeneration reports a successful response without usable text.
func ContentGeneration(message string) *Error {
	return New(KindContentGeneration, message)
}

// KindOf returns the kind of err, or KindInternal when err is unclassified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// UserMessage returns the message to show for err. Unclassified errors get a
// generic message.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "An unexpected error occurred. Please try again."
}

// ExitCode maps err to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch KindOf(err) {
	case KindValidation:
		return 2
	case KindNotFound:
		return 3
	case KindUpstreamAPI, KindConnectivity:
		return 4
	case KindContentGeneration:
		return 5
	default:
		return 1
	}
}
