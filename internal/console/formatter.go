package console

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Direction tells whether a line was sent or received
type Direction int

const (
	TX Direction = iota
	RX
)

// Status of a transmitted or received message
type Status int

const (
	StatusNone Status = iota
	StatusOK
	StatusFailed
	StatusError
)

// Line is one side of a request/response exchange
type Line struct {
	Timestamp time.Time
	Direction Direction
	Status    Status
	Data      []byte
}

// Formatter renders exchange lines as ASCII, hex or both
type Formatter struct {
	ShowHex       bool
	ShowASCII     bool
	ShowTimestamp bool
}

func NewFormatter(showHex bool) *Formatter {
	return &Formatter{
		ShowHex:       showHex,
		ShowASCII:     true,
		ShowTimestamp: true,
	}
}

func (f *Formatter) indicator(l Line) string {
	var color lipgloss.Color
	var text string

	switch l.Direction {
	case TX:
		color, text = Peach, "↗ TX"
	default:
		color, text = Sky, "↙ RX"
	}

	switch l.Status {
	case StatusOK:
		text += " ✓"
		if l.Direction == RX {
			color = Green
		}
	case StatusFailed:
		text += " ✗"
		color = Red
	case StatusError:
		text += " !"
		color = Red
	}

	return lipgloss.NewStyle().Foreground(color).Bold(true).Render(text)
}

// printable replaces control and non-ASCII bytes with dots
func printable(data []byte) string {
	var b strings.Builder
	for _, c := range data {
		if c >= 32 && c <= 126 {
			b.WriteByte(c)
		} else {
			b.WriteByte('.')
		}
	}
	return b.String()
}

func (f *Formatter) Format(l Line) string {
	var parts []string

	if f.ShowASCII {
		parts = append(parts, lipgloss.NewStyle().Foreground(Text).Render(printable(l.Data)))
	}
	if f.ShowHex {
		parts = append(parts, fmt.Sprintf("HEX: % X", l.Data))
	}
	if len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("BYTES: %d", len(l.Data)))
	}

	line := fmt.Sprintf("%s: %s", f.indicator(l), strings.Join(parts, "  "))
	if !f.ShowTimestamp {
		return line
	}

	ts := lipgloss.NewStyle().
		Foreground(Subtext0).
		Render(fmt.Sprintf("[%s]", l.Timestamp.Format("15:04:05.000")))
	return ts + " " + line
}
