package inoio

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// codec converts between message text and wire bytes.
// UTF-8 and ASCII are checked strictly; the x/text decoders for other
// charsets substitute invalid input instead of failing.
type codec struct {
	name string
	enc  encoding.Encoding // nil for the strict built-in codecs
}

func lookupCodec(name string) (codec, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	switch normalized {
	case "utf-8", "utf8":
		return codec{name: "utf-8"}, nil
	case "ascii", "us-ascii":
		return codec{name: "ascii"}, nil
	}

	enc, err := ianaindex.IANA.Encoding(normalized)
	if err != nil || enc == nil {
		return codec{}, fmt.Errorf("%w: unknown encoding %q", ErrInvalidParameters, name)
	}
	return codec{name: normalized, enc: enc}, nil
}

func (c codec) encode(text string) ([]byte, error) {
	switch {
	case c.enc != nil:
		b, err := c.enc.NewEncoder().Bytes([]byte(text))
		if err != nil {
			return nil, fmt.Errorf("%w with %s: %v", ErrEncoding, c.name, err)
		}
		return b, nil
	case c.name == "ascii":
		for i, r := range text {
			if r >= utf8.RuneSelf {
				return nil, fmt.Errorf("%w: 'ascii' codec can't encode character %q in position %d", ErrEncoding, r, i)
			}
		}
	default:
		if !utf8.ValidString(text) {
			return nil, fmt.Errorf("%w: text is not valid utf-8", ErrEncoding)
		}
	}
	return []byte(text), nil
}

func (c codec) decode(b []byte) (string, error) {
	if c.enc != nil {
		text, err := c.enc.NewDecoder().Bytes(b)
		if err != nil {
			return "", fmt.Errorf("'%s' codec can't decode bytes: %v", c.name, err)
		}
		return string(text), nil
	}

	if c.name == "ascii" {
		for i, ch := range b {
			if ch >= utf8.RuneSelf {
				return "", fmt.Errorf("'ascii' codec can't decode byte 0x%02x in position %d: ordinal not in range(128)", ch, i)
			}
		}
		return string(b), nil
	}

	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return "", fmt.Errorf("'utf-8' codec can't decode byte 0x%02x in position %d: invalid utf-8 sequence", b[i], i)
		}
		i += size
	}
	return string(b), nil
}
