package ai

import (
	"errors"
	"net"
	"strings"

	"github.com/bilgisen/gossipd/internal/apikey"
)

// ErrorKind classifies a failed remote call
type ErrorKind string

const (
	KindMissingKey ErrorKind = "missing_key"
	KindInvalidKey ErrorKind = "invalid_key"
	KindQuota      ErrorKind = "quota"
	KindNetwork    ErrorKind = "network"
	KindUnknown    ErrorKind = "unknown"
)

// Error is a remote failure rewritten into a user-readable message
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// Classify inspects err and returns it as an *Error. A nil err stays nil.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var classified *Error
	if errors.As(err, &classified) {
		return classified
	}

	msg := err.Error()
	var netErr net.Error

	switch {
	case errors.Is(err, apikey.ErrMissingKey):
		return &Error{Kind: KindMissingKey, Message: apikey.ErrMissingKey.Error(), Err: err}
	case strings.Contains(msg, "API key"):
		return &Error{Kind: KindInvalidKey, Message: "Invalid API key. Please check your environment variables.", Err: err}
	case strings.Contains(msg, "quota"):
		return &Error{Kind: KindQuota, Message: "API quota exceeded. Please try again later or check your Gemini API usage limits.", Err: err}
	case strings.Contains(msg, "network"), errors.As(err, &netErr):
		return &Error{Kind: KindNetwork, Message: "Network error. Please check your internet connection and try again.", Err: err}
	default:
		return &Error{Kind: KindUnknown, Message: msg, Err: err}
	}
}

// KindOf returns the classification of err
func KindOf(err error) ErrorKind {
	if c := Classify(err); c != nil {
		return c.Kind
	}
	return ""
}
