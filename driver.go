package inoio

// port is an open serial channel as seen by Transport
type port interface {
	// Read returns (0, nil) when the read timeout expires without data
	Read(buf []byte) (int, error)
	Write(data []byte) (int, error)
	// Drain waits until all written data has been transmitted
	Drain() error
	SetDTR(state bool) error
	IsOpen() bool
	Close() error
}

// openPort opens the device described by config with 8N1 framing.
// Tests replace it to run against an in-memory peer.
var openPort = func(config Config) (port, error) {
	switch config.Driver {
	case DriverPortable:
		return openPortablePort(config)
	default:
		return openNativePort(config)
	}
}
