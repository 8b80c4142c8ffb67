package inoio

import (
	"fmt"
	"time"
)

// Driver selects the implementation used to talk to the serial device
type Driver int

const (
	DriverNative   Driver = iota // Default: termios on Linux, portable elsewhere
	DriverPortable               // go.bug.st/serial on every platform
)

func (d Driver) String() string {
	switch d {
	case DriverNative:
		return "native"
	case DriverPortable:
		return "portable"
	default:
		return fmt.Sprintf("Driver(%d)", int(d))
	}
}

// ParseDriver converts a driver name to a Driver
func ParseDriver(name string) (Driver, error) {
	switch name {
	case "", "native":
		return DriverNative, nil
	case "portable":
		return DriverPortable, nil
	default:
		return 0, fmt.Errorf("%w: unknown driver %q", ErrInvalidParameters, name)
	}
}

// Config holds the connection parameters. Framing is fixed at 8N1.
type Config struct {
	BaudRate    int
	Port        string        // Device path ("/dev/ttyACM0") or name ("COM3")
	ReadTimeout time.Duration // Zero blocks until data arrives
	Encoding    string        // Text encoding of messages and replies
	Driver      Driver
}

// Option is a functional option for configuring a connection
type Option func(*Config) error

// DefaultConfig returns the defaults of the Arduino Serial.begin() sketch
// this client talks to
func DefaultConfig() Config {
	return Config{
		BaudRate:    9600,
		Port:        "/dev/ttyS2",
		ReadTimeout: 5 * time.Second,
		Encoding:    "utf-8",
		Driver:      DriverNative,
	}
}

// NewConfig applies opts on top of DefaultConfig
func NewConfig(opts ...Option) (Config, error) {
	config := DefaultConfig()
	for _, opt := range opts {
		if err := opt(&config); err != nil {
			return Config{}, err
		}
	}
	return config, nil
}

// Validate reports ErrInvalidParameters for values outside their range
func (c Config) Validate() error {
	if c.BaudRate <= 0 {
		return fmt.Errorf("%w: baud rate %d", ErrInvalidParameters, c.BaudRate)
	}
	if c.Port == "" {
		return fmt.Errorf("%w: empty port", ErrInvalidParameters)
	}
	if err := validateReadTimeout(c.ReadTimeout); err != nil {
		return err
	}
	if _, err := lookupCodec(c.Encoding); err != nil {
		return err
	}
	if c.Driver != DriverNative && c.Driver != DriverPortable {
		return fmt.Errorf("%w: driver %v", ErrInvalidParameters, c.Driver)
	}
	return nil
}

func validateReadTimeout(timeout time.Duration) error {
	if timeout < 0 {
		return fmt.Errorf("%w: read timeout %v", ErrInvalidParameters, timeout)
	}
	return nil
}

// WithBaudRate sets the baud rate
func WithBaudRate(rate int) Option {
	return func(c *Config) error {
		if rate <= 0 {
			return fmt.Errorf("%w: baud rate %d", ErrInvalidParameters, rate)
		}
		c.BaudRate = rate
		return nil
	}
}

// WithPort sets the device path or name
func WithPort(port string) Option {
	return func(c *Config) error {
		if port == "" {
			return fmt.Errorf("%w: empty port", ErrInvalidParameters)
		}
		c.Port = port
		return nil
	}
}

// WithReadTimeout sets the read timeout. Zero blocks until data arrives.
func WithReadTimeout(timeout time.Duration) Option {
	return func(c *Config) error {
		if err := validateReadTimeout(timeout); err != nil {
			return err
		}
		c.ReadTimeout = timeout
		return nil
	}
}

// WithEncoding sets the text encoding by name
func WithEncoding(name string) Option {
	return func(c *Config) error {
		if _, err := lookupCodec(name); err != nil {
			return err
		}
		c.Encoding = name
		return nil
	}
}

// WithDriver selects the serial driver
func WithDriver(d Driver) Option {
	return func(c *Config) error {
		if d != DriverNative && d != DriverPortable {
			return fmt.Errorf("%w: driver %v", ErrInvalidParameters, d)
		}
		c.Driver = d
		return nil
	}
}
