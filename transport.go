package inoio

import (
	"bytes"
	"fmt"

	"go.uber.org/zap"
)

// DefaultDelimiter terminates every reply frame
const DefaultDelimiter byte = '\n'

const readChunkSize = 256

// Transport owns the byte channel to the device. The zero value is an
// unopened transport; it is not safe for concurrent use.
type Transport struct {
	port    port
	pending []byte // bytes read past the last delimiter
	logger  *zap.Logger
}

// NewTransport returns an unopened transport logging to logger
func NewTransport(logger *zap.Logger) *Transport {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Transport{logger: logger}
}

func (t *Transport) log() *zap.Logger {
	if t.logger == nil {
		t.logger = zap.NewNop()
	}
	return t.logger
}

// Open opens the device with 8N1 framing. An open transport is closed and
// opened again.
func (t *Transport) Open(config Config) error {
	if err := config.Validate(); err != nil {
		return err
	}

	if err := t.Close(); err != nil {
		t.log().Debug("Failed to close previous port", zap.Error(err))
	}

	p, err := openPort(config)
	if err != nil {
		return err
	}

	if !p.IsOpen() {
		p.Close()
		return fmt.Errorf("%w: no connection is open on %s", ErrOpenFailed, config.Port)
	}

	// Asserting DTR resets Arduino-style boards
	if err := p.SetDTR(true); err != nil {
		t.log().Debug("Could not assert DTR", zap.String("port", config.Port), zap.Error(err))
	}

	t.port = p
	t.pending = nil
	return nil
}

// Close closes the channel. It is a no-op on a transport that is not open.
func (t *Transport) Close() error {
	if t.port == nil {
		return nil
	}

	p := t.port
	t.port = nil
	t.pending = nil

	if !p.IsOpen() {
		return nil
	}
	return p.Close()
}

// IsOpen reports whether the channel is open
func (t *Transport) IsOpen() bool {
	return t.port != nil && t.port.IsOpen()
}

// WriteBytes writes data and waits until it has been transmitted
func (t *Transport) WriteBytes(data []byte) (int, error) {
	if !t.IsOpen() {
		return 0, fmt.Errorf("cannot send message: %w", ErrNotConnected)
	}

	n, err := t.port.Write(data)
	if err != nil {
		return n, fmt.Errorf("failed to write to serial port: %w", err)
	}

	if err := t.port.Drain(); err != nil {
		return n, fmt.Errorf("failed to drain serial port: %w", err)
	}
	return n, nil
}

// ReadLine returns the next frame up to and including delim.
//
// It waits without limit for the first byte of a frame, so a silent peer
// stalls the call. Once a frame has started, a read that times out before
// delim arrives returns ErrReadTimeout and drops the partial frame. With a
// zero ReadTimeout reads block and the frame wait is unbounded too.
//
// There is no cancellation. A Close from another goroutine waits for the
// driver read in progress to return, which with a zero ReadTimeout is not
// until the next byte arrives.
func (t *Transport) ReadLine(delim byte) ([]byte, error) {
	if !t.IsOpen() {
		return nil, fmt.Errorf("cannot read from device: %w", ErrNotConnected)
	}

	buf := make([]byte, readChunkSize)
	for {
		if i := bytes.IndexByte(t.pending, delim); i >= 0 {
			frame := make([]byte, i+1)
			copy(frame, t.pending[:i+1])
			t.pending = t.pending[i+1:]
			return frame, nil
		}

		n, err := t.port.Read(buf)
		if err != nil {
			t.pending = nil
			return nil, fmt.Errorf("failed to read from serial port: %w", err)
		}

		if n == 0 {
			if len(t.pending) == 0 {
				// Nothing arrived yet, keep polling
				continue
			}
			partial := len(t.pending)
			t.pending = nil
			return nil, fmt.Errorf("%w after %d bytes without delimiter", ErrReadTimeout, partial)
		}

		t.pending = append(t.pending, buf[:n]...)
	}
}
