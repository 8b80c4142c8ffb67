package inoio

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

const (
	// statusSeparator splits a reply into status and message
	statusSeparator = ";"
	// statusSuccess is the only status code reported as success
	statusSuccess = 1
)

// Reply is a decoded reply frame
type Reply struct {
	Success bool
	Message string
}

func (r Reply) String() string {
	if r.Success {
		return "ok: " + r.Message
	}
	return "failed: " + r.Message
}

// ParseReply parses a decoded frame of the form "<status>;<message>".
// Trailing whitespace is ignored and only the first separator splits, so the
// message may itself contain ';'.
func ParseReply(line string) (Reply, error) {
	line = strings.TrimRightFunc(line, unicode.IsSpace)

	status, message, found := strings.Cut(line, statusSeparator)
	if !found {
		return Reply{}, fmt.Errorf("%w: missing %q separator in %q", ErrMalformedFrame, statusSeparator, line)
	}

	code, err := strconv.Atoi(strings.TrimSpace(status))
	if err != nil {
		return Reply{}, fmt.Errorf("%w: status %q is not an integer", ErrMalformedFrame, status)
	}

	return Reply{
		Success: code == statusSuccess,
		Message: message,
	}, nil
}
