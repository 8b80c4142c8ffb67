package inoio

import (
	"errors"
	"fmt"
	"sync"

	"go.bug.st/serial"
)

// portablePort adapts a go.bug.st/serial port
type portablePort struct {
	mu     sync.RWMutex
	port   serial.Port
	closed bool
}

var _ port = (*portablePort)(nil)

// serialOpen is go.bug.st/serial's Open, replaceable in tests
var serialOpen = serial.Open

func openPortablePort(config Config) (port, error) {
	mode := &serial.Mode{
		BaudRate: config.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
		InitialStatusBits: &serial.ModemOutputBits{
			DTR: true,
		},
	}

	p, err := serialOpen(config.Port, mode)
	if err != nil {
		return nil, classifyPortError(fmt.Errorf("failed to open %s: %w", config.Port, err))
	}

	timeout := serial.NoTimeout
	if config.ReadTimeout > 0 {
		timeout = config.ReadTimeout
	}
	if err := p.SetReadTimeout(timeout); err != nil {
		p.Close()
		return nil, classifyPortError(fmt.Errorf("failed to set read timeout: %w", err))
	}

	return &portablePort{port: p}, nil
}

// portErrorCode extracts the go.bug.st/serial error code from err
func portErrorCode(err error) (serial.PortErrorCode, bool) {
	var ptr *serial.PortError
	if errors.As(err, &ptr) && ptr != nil {
		return ptr.Code(), true
	}
	var val serial.PortError
	if errors.As(err, &val) {
		return val.Code(), true
	}
	return 0, false
}

// classifyPortError maps driver errors onto ErrOpenFailed or
// ErrInvalidParameters
func classifyPortError(err error) error {
	code, ok := portErrorCode(err)
	if !ok {
		return openError(ErrOpenFailed, err)
	}

	switch code {
	case serial.PortNotFound, serial.InvalidSerialPort:
		return openError(ErrOpenFailed, fmt.Errorf("%w: %w", ErrDeviceNotFound, err))
	case serial.PortBusy:
		return openError(ErrOpenFailed, fmt.Errorf("%w: %w", ErrDeviceInUse, err))
	case serial.PermissionDenied:
		return openError(ErrOpenFailed, fmt.Errorf("%w: %w", ErrPermissionDenied, err))
	case serial.InvalidSpeed:
		return openError(ErrInvalidParameters, fmt.Errorf("%w: %w", ErrInvalidBaudRate, err))
	case serial.InvalidDataBits, serial.InvalidParity, serial.InvalidStopBits, serial.InvalidTimeoutValue:
		return openError(ErrInvalidParameters, err)
	default:
		return openError(ErrOpenFailed, err)
	}
}

func (p *portablePort) Read(buf []byte) (int, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return 0, ErrNotConnected
	}
	return p.port.Read(buf)
}

func (p *portablePort) Write(data []byte) (int, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return 0, ErrNotConnected
	}
	return p.port.Write(data)
}

func (p *portablePort) Drain() error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrNotConnected
	}
	return p.port.Drain()
}

func (p *portablePort) SetDTR(state bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrNotConnected
	}
	return p.port.SetDTR(state)
}

func (p *portablePort) IsOpen() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return !p.closed
}

func (p *portablePort) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	return p.port.Close()
}
