package relay

import (
	"errors"
	"fmt"
)

// TransportError means the request did not complete with a usable 2xx JSON
// reply: network failure, non-2xx status or an unreadable body.
type TransportError struct {
	StatusCode int // zero when no response was received
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.Err != nil && e.StatusCode != 0:
		return fmt.Sprintf("relay transport (status %d): %v", e.StatusCode, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("relay transport: %v", e.Err)
	default:
		return fmt.Sprintf("relay returned status %d", e.StatusCode)
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

// ApplicationError means the relay answered but did not report success.
type ApplicationError struct {
	Message string
}

func (e *ApplicationError) Error() string {
	if e.Message == "" {
		return "relay reported failure"
	}
	return "relay reported failure: " + e.Message
}

// ReasonOf returns the relay-provided message carried by err, if any.
func ReasonOf(err error) string {
	var app *ApplicationError
	if errors.As(err, &app) {
		return app.Message
	}
	var tr *TransportError
	if errors.As(err, &tr) {
		return tr.Message
	}
	return ""
}

// IsTransport reports whether err is a transport-level failure.
func IsTransport(err error) bool {
	var tr *TransportError
	return errors.As(err, &tr)
}
