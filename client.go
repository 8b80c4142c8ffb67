package inoio

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// SettleDelay is how long Connect waits after opening the port. Opening the
// port toggles DTR, which resets the board; it does not answer until its
// bootloader has finished.
const SettleDelay = 2 * time.Second

// maxLoggedFrame bounds how much of a received frame is written to the log
const maxLoggedFrame = 80

// State is the connection state of a Client
type State int

const (
	StateUnconnected State = iota
	StateConnecting
	StateConnected
)

func (s State) String() string {
	switch s {
	case StateUnconnected:
		return "unconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Client exchanges line-terminated messages with a device. Calls must not
// overlap; use one Client per port.
type Client struct {
	config    Config
	transport *Transport
	state     State
	logger    *zap.Logger

	sleep func(time.Duration)
}

// New returns an unconnected client. The configuration is validated by
// Connect. A nil logger discards log output.
func New(config Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("inoio")

	return &Client{
		config:    config,
		transport: NewTransport(logger),
		logger:    logger,
		sleep:     time.Sleep,
	}
}

// Configure replaces the configuration used by the next Connect
func (c *Client) Configure(config Config) error {
	if c.state == StateConnected && c.transport.IsOpen() {
		return fmt.Errorf("cannot reconfigure %s: %w", c.config.Port, ErrAlreadyConnected)
	}
	c.config = config
	return nil
}

// Config returns the current configuration
func (c *Client) Config() Config {
	return c.config
}

// State returns the connection state
func (c *Client) State() State {
	return c.state
}

// IsConnected reports whether the port is open and the device has settled
func (c *Client) IsConnected() bool {
	return c.state == StateConnected && c.transport.IsOpen()
}

// Connect opens the port and waits SettleDelay for the device to reset.
// Calling Connect on a connected client reopens the port.
func (c *Client) Connect() error {
	c.state = StateConnecting

	if err := c.transport.Open(c.config); err != nil {
		c.state = StateUnconnected
		c.logger.Debug("Connection failed", zap.String("port", c.config.Port), zap.Error(err))
		return &ConnectionError{Port: c.config.Port, Err: err}
	}

	c.logger.Debug("DTR (Data Terminal Ready) was sent. Waiting for device to reset",
		zap.String("port", c.config.Port),
		zap.Duration("delay", SettleDelay),
	)
	c.sleep(SettleDelay)

	c.state = StateConnected
	c.logger.Debug("Device ready to accept input", zap.String("port", c.config.Port))
	return nil
}

// Disconnect closes the port. It is safe to call on a client that never
// connected and to call more than once.
func (c *Client) Disconnect() error {
	defer func() { c.state = StateUnconnected }()

	if !c.transport.IsOpen() {
		c.logger.Debug("Not closing connection. Connection was never opened")
		return c.transport.Close()
	}

	c.logger.Debug("Closing connection", zap.String("port", c.config.Port))
	return c.transport.Close()
}

// SendMessage encodes text and writes it to the device as is; no terminator
// is appended. It returns the number of bytes written.
func (c *Client) SendMessage(text string) (int, error) {
	c.logger.Debug("Sending message", zap.String("message", text))

	if !c.transport.IsOpen() {
		return 0, fmt.Errorf("cannot send message: %w", ErrNotConnected)
	}

	cd, err := lookupCodec(c.config.Encoding)
	if err != nil {
		return 0, err
	}
	data, err := cd.encode(text)
	if err != nil {
		return 0, err
	}

	n, err := c.transport.WriteBytes(data)
	if err != nil {
		return n, err
	}

	c.logger.Debug("Sent bytes", zap.Int("bytes", n))
	return n, nil
}

// ReceiveMessage waits for the next reply frame and parses it.
//
// A frame that cannot be decoded with the configured encoding is returned as
// an unsuccessful Reply describing the problem rather than as an error. A
// frame without a "<status>;" prefix yields ErrMalformedFrame.
//
// ReceiveMessage blocks until the device sends something; see
// Transport.ReadLine for how ReadTimeout bounds the wait.
func (c *Client) ReceiveMessage() (Reply, error) {
	c.logger.Debug("Waiting to receive message")

	frame, err := c.transport.ReadLine(DefaultDelimiter)
	if err != nil {
		return Reply{}, err
	}

	if len(frame) > maxLoggedFrame {
		c.logger.Debug("Received message",
			zap.ByteString("frame", frame[:maxLoggedFrame]),
			zap.Int("bytes", len(frame)),
		)
		c.logger.Debug("Message was truncated due to excessive length")
	} else {
		c.logger.Debug("Received message", zap.ByteString("frame", frame), zap.Int("bytes", len(frame)))
	}

	cd, err := lookupCodec(c.config.Encoding)
	if err != nil {
		return Reply{}, err
	}
	text, err := cd.decode(frame)
	if err != nil {
		return Reply{
			Success: false,
			Message: fmt.Sprintf("An exception occurred when decoding results: %q", err.Error()),
		}, nil
	}

	return ParseReply(text)
}

// Exchange sends text and waits for the reply
func (c *Client) Exchange(text string) (Reply, error) {
	if _, err := c.SendMessage(text); err != nil {
		return Reply{}, err
	}
	return c.ReceiveMessage()
}
