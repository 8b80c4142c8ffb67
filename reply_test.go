package inoio

import (
	"errors"
	"testing"
)

func TestParseReply(t *testing.T) {
	tests := []struct {
		line    string
		want    Reply
		wantErr bool
	}{
		{"1;OK", Reply{Success: true, Message: "OK"}, false},
		{"1;OK\n", Reply{Success: true, Message: "OK"}, false},
		{"0;ERR\n", Reply{Success: false, Message: "ERR"}, false},
		{"5;later", Reply{Success: false, Message: "later"}, false},
		{" 1;padded\t\r\n", Reply{Success: true, Message: "padded"}, false},
		{"1; leading space kept", Reply{Success: true, Message: " leading space kept"}, false},
		{"1;k=v;x=y", Reply{Success: true, Message: "k=v;x=y"}, false},
		{"garbage\n", Reply{}, true},
		{";no status", Reply{}, true},
		{"1.0;float", Reply{}, true},
		{"", Reply{}, true},
	}

	for _, tt := range tests {
		got, err := ParseReply(tt.line)
		if tt.wantErr {
			if !errors.Is(err, ErrMalformedFrame) {
				t.Errorf("ParseReply(%q) error = %v, want ErrMalformedFrame", tt.line, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseReply(%q) error = %v", tt.line, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseReply(%q) = %+v, want %+v", tt.line, got, tt.want)
		}
	}
}

func TestReplyString(t *testing.T) {
	if s := (Reply{Success: true, Message: "OK"}).String(); s != "ok: OK" {
		t.Errorf("String() = %q", s)
	}
	if s := (Reply{Message: "ERR"}).String(); s != "failed: ERR" {
		t.Errorf("String() = %q", s)
	}
}
