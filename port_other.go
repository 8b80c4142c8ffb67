//go:build !linux

package inoio

// Termios handling is Linux specific; other platforms use go.bug.st/serial.
func openNativePort(config Config) (port, error) {
	return openPortablePort(config)
}
