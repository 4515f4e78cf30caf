// Package apperrors defines the client's error taxonomy. Every error that
// reaches a flow boundary is turned into exactly one user-visible message.
package apperrors

import (
	"errors"
	"strings"
)

// Kind categorizes a client error.
type Kind string

const (
	KindEmptyInput    Kind = "empty_input"
	KindSameLanguage  Kind = "same_language"
	KindNoTranslation Kind = "no_translation"
	KindNoReferences  Kind = "no_references"
	KindService       Kind = "service"
	KindTransport     Kind = "transport"
)

// Error is a categorized error with a message safe to show to the user.
type Error struct {
	Kind Kind
	// SafeMessage is shown in the notification area.
	SafeMessage string
	// Cause keeps the underlying error for logs and errors.Is.
	Cause error
	// StatusCode is the HTTP status for service errors.
	StatusCode int
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if msg := strings.TrimSpace(e.SafeMessage); msg != "" {
		return msg
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return defaultMessage(e.Kind)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func defaultMessage(kind Kind) string {
	switch kind {
	case KindEmptyInput:
		return "Please enter text to translate"
	case KindSameLanguage:
		return "Source and target languages must be different"
	case KindNoTranslation:
		return "Please translate text first"
	case KindNoReferences:
		return "Please provide at least one reference translation"
	case KindService:
		return "Request failed"
	case KindTransport:
		return "Network error"
	default:
		return "unknown error"
	}
}

// New creates an error of the given kind. An empty message selects the
// kind's default message.
func New(kind Kind, safeMessage string, cause error) error {
	msg := strings.TrimSpace(safeMessage)
	if msg == "" {
		msg = defaultMessage(kind)
	}
	return &Error{Kind: kind, SafeMessage: msg, Cause: cause}
}

func EmptyInput(msg string) error { return New(KindEmptyInput, msg, nil) }
func SameLanguage() error         { return New(KindSameLanguage, "", nil) }
func NoTranslation() error        { return New(KindNoTranslation, "", nil) }
func NoReferences() error         { return New(KindNoReferences, "", nil) }

// Service reports a failure status from the service. fallback is used when
// the service sent no message.
func Service(status int, message, fallback string) error {
	msg := strings.TrimSpace(message)
	if msg == "" {
		msg = fallback
	}
	e := New(KindService, msg, nil).(*Error)
	e.StatusCode = status
	return e
}

// Transport reports a request that could not be completed.
func Transport(cause error) error {
	msg := "Network error"
	if cause != nil {
		msg += ": " + cause.Error()
	}
	return New(KindTransport, msg, cause)
}

// KindOf returns the kind of err, if it is an *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if !errors.As(err, &e) {
		return "", false
	}
	return e.Kind, true
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// PublicMessage returns the message to display for err.
func PublicMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Error()
	}
	return err.Error()
}
