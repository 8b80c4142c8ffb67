// Package inoio is a host-side client for boards that speak a simple
// line-oriented request/response protocol over a serial link, such as an
// Arduino answering commands from Serial.readString().
//
// The host writes a text message; the board answers with exactly one line
// of the form
//
//	<status>;<message>\n
//
// where status 1 means success and any other integer means failure.
//
// # Basic Usage
//
//	config, err := inoio.NewConfig(
//	    inoio.WithPort("/dev/ttyACM0"),
//	    inoio.WithBaudRate(115200),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	client := inoio.New(config, logger)
//	if err := client.Connect(); err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Disconnect()
//
//	if _, err := client.SendMessage("LED ON\n"); err != nil {
//	    log.Fatal(err)
//	}
//	reply, err := client.ReceiveMessage()
//
// Connect blocks for SettleDelay (2 seconds): opening the port asserts DTR,
// which resets the board, and the board ignores input until it has booted.
//
// # Framing and Timeouts
//
// The port is always opened 8N1 without flow control. ReceiveMessage waits
// without limit for the first byte of a reply; a board that never answers
// stalls the call. Once a reply has started, Config.ReadTimeout bounds the
// wait for each further byte and ErrReadTimeout is returned if it expires.
// A zero ReadTimeout disables that bound as well. Any non-negative
// ReadTimeout is accepted; the native driver rounds it up to tenths of a
// second.
//
// # Error Handling
//
// Failures are reported with sentinel errors, checked with errors.Is:
//
//	ErrInvalidParameters // Config values out of range or of the wrong type
//	ErrOpenFailed        // The driver could not open the device
//	ErrNotConnected      // Send or receive without an open connection
//	ErrMalformedFrame    // Reply without "<status>;" prefix
//	ErrReadTimeout       // Reply stopped before its newline
//
// A reply whose bytes cannot be decoded with the configured encoding is not
// an error: ReceiveMessage returns an unsuccessful Reply describing the
// decode failure.
//
// Nothing in this package exits the process.
//
// # Drivers
//
// DriverNative configures the line with termios ioctls on Linux.
// DriverPortable uses go.bug.st/serial and works on Linux, macOS and
// Windows. On platforms other than Linux both select go.bug.st/serial.
//
// # Default Configuration
//
//   - BaudRate: 9600
//   - Port: /dev/ttyS2
//   - ReadTimeout: 5 seconds
//   - Encoding: utf-8
//   - Driver: native
package inoio
