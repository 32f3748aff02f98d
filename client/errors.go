package client

import (
	"errors"
	"fmt"
)

// TransportError reports that a request never produced a usable reply:
// it was rejected, timed out, or the response could not be decoded.
// Decoded replies that signal failure are not errors; callers inspect
// their success/status fields.
type TransportError struct {
	// Op is the operation name (upload, process, process_pdf, delete, list).
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusError is wrapped by TransportError when a non-2xx reply carried
// no decodable body.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("unexpected status %s", e.Status)
	}
	return fmt.Sprintf("unexpected status %d", e.Code)
}

// IsTransport reports whether err is (or wraps) a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
