package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed lookup
type ErrorKind string

const (
	KindEmptyInput        ErrorKind = "EmptyInput"
	KindNotConfigured     ErrorKind = "NotConfigured"
	KindNetworkError      ErrorKind = "NetworkError"
	KindNotFound          ErrorKind = "NotFound"
	KindUnauthorized      ErrorKind = "Unauthorized"
	KindHTTPError         ErrorKind = "HttpError"
	KindMalformedResponse ErrorKind = "MalformedResponse"
)

// Sentinels for errors.Is checks against a *QueryError.
var (
	ErrEmptyInput        = &QueryError{Kind: KindEmptyInput}
	ErrNotConfigured     = &QueryError{Kind: KindNotConfigured}
	ErrNetwork           = &QueryError{Kind: KindNetworkError}
	ErrNotFound          = &QueryError{Kind: KindNotFound}
	ErrUnauthorized      = &QueryError{Kind: KindUnauthorized}
	ErrHTTP              = &QueryError{Kind: KindHTTPError}
	ErrMalformedResponse = &QueryError{Kind: KindMalformedResponse}
)

// QueryError is a classified lookup failure. Every failure is terminal for the
// call that produced it.
type QueryError struct {
	Kind    ErrorKind
	Message string

	// StatusCode and StatusText are set for KindHTTPError only.
	StatusCode int
	StatusText string

	Err error
}

// NewQueryError creates a QueryError without an underlying cause
func NewQueryError(kind ErrorKind, message string) *QueryError {
	return &QueryError{Kind: kind, Message: message}
}

// NewNetworkError wraps a transport failure
func NewNetworkError(err error) *QueryError {
	return &QueryError{Kind: KindNetworkError, Message: err.Error(), Err: err}
}

// NewHTTPError describes a non-success status other than 401 and 404
func NewHTTPError(code int, text string) *QueryError {
	return &QueryError{
		Kind:       KindHTTPError,
		Message:    fmt.Sprintf("HTTP %d: %s", code, text),
		StatusCode: code,
		StatusText: text,
	}
}

// NewMalformedError wraps a decoding or shape failure of a success response
func NewMalformedError(err error) *QueryError {
	return &QueryError{
		Kind:    KindMalformedResponse,
		Message: fmt.Sprintf("Malformed weather response: %v", err),
		Err:     err,
	}
}

func (e *QueryError) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// Is matches any QueryError of the same kind.
func (e *QueryError) Is(target error) bool {
	t, ok := target.(*QueryError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Body converts the error into its JSON representation
func (e *QueryError) Body() *ErrorBody {
	return &ErrorBody{Kind: e.Kind, Message: e.Error()}
}

// KindOf returns the kind of a QueryError found in err's chain, or "" otherwise.
func KindOf(err error) ErrorKind {
	var qe *QueryError
	if errors.As(err, &qe) {
		return qe.Kind
	}
	return ""
}
