package inoio

import (
	"errors"
	"fmt"
)

// Predefined error types for robust error handling
var (
	// Connection errors
	ErrInvalidParameters = errors.New("one or more parameters is of invalid type")
	ErrOpenFailed        = errors.New("could not open serial connection")
	ErrAlreadyConnected  = errors.New("connection is open")

	// Causes of ErrOpenFailed and ErrInvalidParameters
	ErrDeviceNotFound   = errors.New("serial device not found")
	ErrPermissionDenied = errors.New("permission denied accessing serial device")
	ErrDeviceInUse      = errors.New("serial device already in use")
	ErrInvalidBaudRate  = errors.New("invalid baud rate")

	// Transport errors
	ErrNotConnected = errors.New("no connection is open")
	ErrReadTimeout  = errors.New("read operation timed out")

	// Message errors
	ErrMalformedFrame = errors.New("malformed reply frame")
	ErrEncoding       = errors.New("cannot encode message")
)

// ConnectionError is returned by Client.Connect when the port could not be
// opened. Err carries ErrInvalidParameters or ErrOpenFailed.
type ConnectionError struct {
	Port string
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("could not connect on %s: %v", e.Port, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// openError joins an error kind with the underlying driver error so that
// errors.Is matches both.
func openError(kind, cause error) error {
	if cause == nil {
		return kind
	}
	if errors.Is(cause, kind) {
		return cause
	}
	return fmt.Errorf("%w: %w", kind, cause)
}
