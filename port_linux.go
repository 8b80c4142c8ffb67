//go:build linux

package inoio

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

const (
	vtimeStep = 100 * time.Millisecond
	// maxVTIME is the longest single read VTIME can express (255 tenths)
	maxVTIME = 255 * vtimeStep
	// longReadSlice is the VTIME used for each read of a timeout above maxVTIME
	longReadSlice = time.Second
)

// nativePort drives the device through termios ioctls
type nativePort struct {
	mu          sync.RWMutex
	fd          int
	closed      bool
	readTimeout time.Duration
}

var _ port = (*nativePort)(nil)

// getBaudRate converts an integer baud rate to the unix constant
func getBaudRate(rate int) (uint32, error) {
	switch rate {
	case 300:
		return unix.B300, nil
	case 600:
		return unix.B600, nil
	case 1200:
		return unix.B1200, nil
	case 2400:
		return unix.B2400, nil
	case 4800:
		return unix.B4800, nil
	case 9600:
		return unix.B9600, nil
	case 19200:
		return unix.B19200, nil
	case 38400:
		return unix.B38400, nil
	case 57600:
		return unix.B57600, nil
	case 115200:
		return unix.B115200, nil
	case 230400:
		return unix.B230400, nil
	case 460800:
		return unix.B460800, nil
	case 500000:
		return unix.B500000, nil
	case 921600:
		return unix.B921600, nil
	case 1000000:
		return unix.B1000000, nil
	case 2000000:
		return unix.B2000000, nil
	default:
		return 0, ErrInvalidBaudRate
	}
}

// readTimeoutControl maps a read timeout to VMIN/VTIME. A zero timeout
// blocks until at least one byte is available. Timeouts are rounded up to
// tenths; those VTIME cannot hold are read in longReadSlice steps.
func readTimeoutControl(timeout time.Duration) (vmin, vtime uint8) {
	if timeout <= 0 {
		return 1, 0
	}
	if timeout > maxVTIME {
		return 0, uint8(longReadSlice / vtimeStep)
	}
	return 0, uint8((timeout + vtimeStep - 1) / vtimeStep)
}

func classifyOpenErrno(err error) error {
	switch {
	case errors.Is(err, unix.ENOENT), errors.Is(err, unix.ENODEV), errors.Is(err, unix.ENXIO):
		return ErrDeviceNotFound
	case errors.Is(err, unix.EACCES), errors.Is(err, unix.EPERM):
		return ErrPermissionDenied
	case errors.Is(err, unix.EBUSY):
		return ErrDeviceInUse
	default:
		return err
	}
}

func openNativePort(config Config) (port, error) {
	// Reject the baud rate before touching the device
	baudRate, err := getBaudRate(config.BaudRate)
	if err != nil {
		return nil, openError(ErrInvalidParameters, err)
	}

	fd, err := unix.Open(config.Port, unix.O_RDWR|unix.O_NOCTTY|unix.O_CLOEXEC, 0)
	if err != nil {
		cause := classifyOpenErrno(err)
		return nil, openError(ErrOpenFailed, fmt.Errorf("failed to open %s: %w", config.Port, cause))
	}

	if err := configurePort(fd, baudRate, config.ReadTimeout); err != nil {
		unix.Close(fd)
		return nil, openError(ErrOpenFailed, err)
	}

	return &nativePort{fd: fd, readTimeout: config.ReadTimeout}, nil
}

// configurePort puts the line in raw 8N1 mode
func configurePort(fd int, baudRate uint32, readTimeout time.Duration) error {
	termios, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return fmt.Errorf("failed to get termios: %w", err)
	}

	// Raw mode, 8 data bits, no parity, 1 stop bit, no flow control.
	// HUPCL drops DTR on close so the next open resets the board again.
	termios.Cflag = unix.CS8 | unix.CREAD | unix.CLOCAL | unix.HUPCL
	termios.Iflag = 0
	termios.Oflag = 0
	termios.Lflag = 0

	vmin, vtime := readTimeoutControl(readTimeout)
	termios.Cc[unix.VMIN] = vmin
	termios.Cc[unix.VTIME] = vtime

	termios.Cflag = (termios.Cflag &^ unix.CBAUD) | baudRate
	termios.Ispeed = baudRate
	termios.Ospeed = baudRate

	if err := unix.IoctlSetTermios(fd, unix.TCSETS, termios); err != nil {
		return fmt.Errorf("failed to set termios: %w", err)
	}

	// Discard anything the device sent before we were listening
	return unix.IoctlSetInt(fd, unix.TCFLSH, unix.TCIFLUSH)
}

// Read returns (0, nil) once the read timeout expires. Timeouts above
// maxVTIME repeat shorter reads until their deadline, releasing the lock
// between them.
func (p *nativePort) Read(buf []byte) (int, error) {
	var deadline time.Time
	if p.readTimeout > maxVTIME {
		deadline = time.Now().Add(p.readTimeout)
	}

	for {
		n, err := p.readOnce(buf)
		if n == 0 && err == nil && !deadline.IsZero() && time.Now().Before(deadline) {
			continue
		}
		return n, err
	}
}

func (p *nativePort) readOnce(buf []byte) (int, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return 0, ErrNotConnected
	}

	for {
		n, err := unix.Read(p.fd, buf)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if n < 0 {
			n = 0
		}
		return n, err
	}
}

func (p *nativePort) Write(data []byte) (int, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return 0, ErrNotConnected
	}

	written := 0
	for written < len(data) {
		n, err := unix.Write(p.fd, data[written:])
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return written, err
		}
		written += n
	}
	return written, nil
}

// Drain waits until all output written to the port has been transmitted
func (p *nativePort) Drain() error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrNotConnected
	}

	return unix.IoctlSetInt(p.fd, unix.TCSBRK, 1)
}

// SetDTR sets DTR signal state
func (p *nativePort) SetDTR(state bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrNotConnected
	}

	if state {
		return unix.IoctlSetPointerInt(p.fd, unix.TIOCMBIS, unix.TIOCM_DTR)
	}
	return unix.IoctlSetPointerInt(p.fd, unix.TIOCMBIC, unix.TIOCM_DTR)
}

func (p *nativePort) IsOpen() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return !p.closed
}

func (p *nativePort) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}

	p.closed = true
	return unix.Close(p.fd)
}
