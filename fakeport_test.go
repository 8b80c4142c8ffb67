package inoio

import (
	"errors"
	"sync"
	"testing"
	"time"
)

// fakePort is an in-memory port. Reads pop scripted chunks; an empty chunk
// or an empty script behaves like an expired read timeout.
type fakePort struct {
	mu       sync.Mutex
	open     bool
	reportOK bool
	reads    [][]byte
	written  []byte
	drained  int
	dtr      bool
	closes   int
	readErr  error
	writeErr error

	// peer, when set, answers every write
	peer func(data []byte) []byte
}

func newFakePort() *fakePort {
	return &fakePort{open: true, reportOK: true}
}

// echoPeer answers like the test sketch on the board
func echoPeer(data []byte) []byte {
	return []byte("1;Received message: " + string(data) + "\n")
}

func (p *fakePort) script(chunks ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, c := range chunks {
		p.reads = append(p.reads, []byte(c))
	}
}

func (p *fakePort) Read(buf []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.open {
		return 0, ErrNotConnected
	}
	if p.readErr != nil {
		return 0, p.readErr
	}
	if len(p.reads) == 0 {
		return 0, nil
	}

	chunk := p.reads[0]
	n := copy(buf, chunk)
	if n < len(chunk) {
		p.reads[0] = chunk[n:]
	} else {
		p.reads = p.reads[1:]
	}
	return n, nil
}

func (p *fakePort) Write(data []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.open {
		return 0, ErrNotConnected
	}
	if p.writeErr != nil {
		return 0, p.writeErr
	}
	p.written = append(p.written, data...)
	if p.peer != nil {
		p.reads = append(p.reads, p.peer(data))
	}
	return len(data), nil
}

func (p *fakePort) Drain() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.drained++
	return nil
}

func (p *fakePort) SetDTR(state bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dtr = state
	return nil
}

func (p *fakePort) IsOpen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.open && p.reportOK
}

func (p *fakePort) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.open = false
	p.closes++
	return nil
}

// fakeDriver hands out fake ports in place of the real drivers
type fakeDriver struct {
	mu      sync.Mutex
	ports   []*fakePort
	configs []Config
	err     error
	setup   func(*fakePort)
}

func (d *fakeDriver) open(config Config) (port, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.configs = append(d.configs, config)
	if d.err != nil {
		return nil, d.err
	}
	p := newFakePort()
	if d.setup != nil {
		d.setup(p)
	}
	d.ports = append(d.ports, p)
	return p, nil
}

func (d *fakeDriver) last() *fakePort {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.ports) == 0 {
		return nil
	}
	return d.ports[len(d.ports)-1]
}

// useFakeDriver swaps openPort for the duration of the test
func useFakeDriver(t *testing.T, setup func(*fakePort)) *fakeDriver {
	t.Helper()
	d := &fakeDriver{setup: setup}
	orig := openPort
	openPort = d.open
	t.Cleanup(func() { openPort = orig })
	return d
}

// recordSleeps replaces the settle wait of c with a recorder
func recordSleeps(c *Client) *[]time.Duration {
	var slept []time.Duration
	c.sleep = func(d time.Duration) { slept = append(slept, d) }
	return &slept
}

var errFakeIO = errors.New("fake i/o error")
