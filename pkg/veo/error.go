package veo

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a generation failure.
type ErrorKind string

const (
	// KindTransport means the request was not sent or the response body
	// could not be read.
	KindTransport ErrorKind = "transport"

	// KindHTTPStatus means the API answered with a non-2xx status.
	KindHTTPStatus ErrorKind = "http_status"

	// KindResponseShape means the body was not the expected JSON shape.
	KindResponseShape ErrorKind = "response_shape"

	// KindDecode means the video payload was not valid base64.
	KindDecode ErrorKind = "decode"

	// KindUnexpected covers anything else.
	KindUnexpected ErrorKind = "unexpected"
)

// Error is returned by GenerateVideo for every failure.
type Error struct {
	// Kind classifies the failure.
	Kind ErrorKind

	// Message describes what went wrong.
	Message string

	// StatusCode is the HTTP status, or 0 if no response was received.
	StatusCode int

	// Body is the raw response body, if one was read.
	Body []byte

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("veo: %s: %s", e.Kind, e.Message)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status=%d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsTransport returns true if the request never got a usable response.
func (e *Error) IsTransport() bool {
	return e.Kind == KindTransport
}

// IsHTTPStatus returns true if the API rejected the request.
func (e *Error) IsHTTPStatus() bool {
	return e.Kind == KindHTTPStatus
}

// IsResponseShape returns true if the response body was malformed.
func (e *Error) IsResponseShape() bool {
	return e.Kind == KindResponseShape
}

// IsDecode returns true if the video payload could not be decoded.
func (e *Error) IsDecode() bool {
	return e.Kind == KindDecode
}

// IsServerError returns true for 5xx responses.
func (e *Error) IsServerError() bool {
	return e.Kind == KindHTTPStatus && e.StatusCode >= 500
}

// AsError extracts *Error from an error.
//
// Example:
//
//	if e, ok := veo.AsError(err); ok && e.IsHTTPStatus() {
//	    log.Printf("rejected: %d %s", e.StatusCode, e.Body)
//	}
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func newError(kind ErrorKind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}
