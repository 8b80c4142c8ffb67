package cmd

import (
	"errors"

	"github.com/allbin/go-inoio"
)

var errFakeTransport = errors.New("fake transport failure")

type fakeResult struct {
	reply inoio.Reply
	err   error
}

// fakeClient answers ReceiveMessage from a script of results
type fakeClient struct {
	connectErr  error
	sendErr     error
	script      []fakeResult
	connected   bool
	sent        []string
	received    int
	disconnects int
}

func (c *fakeClient) Config() inoio.Config {
	return inoio.DefaultConfig()
}

func (c *fakeClient) Connect() error {
	if c.connectErr != nil {
		return c.connectErr
	}
	c.connected = true
	return nil
}

func (c *fakeClient) SendMessage(text string) (int, error) {
	if !c.connected {
		return 0, inoio.ErrNotConnected
	}
	if c.sendErr != nil {
		return 0, c.sendErr
	}
	c.sent = append(c.sent, text)
	return len(text), nil
}

func (c *fakeClient) ReceiveMessage() (inoio.Reply, error) {
	if !c.connected {
		return inoio.Reply{}, inoio.ErrNotConnected
	}
	if c.received >= len(c.script) {
		return inoio.Reply{}, errFakeTransport
	}
	r := c.script[c.received]
	c.received++
	return r.reply, r.err
}

func (c *fakeClient) Disconnect() error {
	if c.connected {
		c.disconnects++
	}
	c.connected = false
	return nil
}
