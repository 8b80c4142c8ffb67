package inoio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFromSettings(t *testing.T) {
	tests := []struct {
		name     string
		settings map[string]any
		want     func(*Config)
	}{
		{"empty", map[string]any{}, func(*Config) {}},
		{"int baud rate", map[string]any{"baudrate": 115200}, func(c *Config) { c.BaudRate = 115200 }},
		{"string baud rate", map[string]any{"baudrate": "57600"}, func(c *Config) { c.BaudRate = 57600 }},
		{"float baud rate", map[string]any{"baudrate": 19200.0}, func(c *Config) { c.BaudRate = 19200 }},
		{"port", map[string]any{"port": "COM3"}, func(c *Config) { c.Port = "COM3" }},
		{"float seconds", map[string]any{"timeout": 1.5}, func(c *Config) { c.ReadTimeout = 1500 * time.Millisecond }},
		{"int seconds", map[string]any{"timeout": 2}, func(c *Config) { c.ReadTimeout = 2 * time.Second }},
		{"numeric string", map[string]any{"timeout": "0.5"}, func(c *Config) { c.ReadTimeout = 500 * time.Millisecond }},
		{"duration string", map[string]any{"timeout": "750ms"}, func(c *Config) { c.ReadTimeout = 750 * time.Millisecond }},
		{"long timeout", map[string]any{"timeout": 30}, func(c *Config) { c.ReadTimeout = 30 * time.Second }},
		{"sub-tenth seconds", map[string]any{"timeout": 0.15}, func(c *Config) { c.ReadTimeout = 150 * time.Millisecond }},
		{"duration", map[string]any{"timeout": 3 * time.Second}, func(c *Config) { c.ReadTimeout = 3 * time.Second }},
		{"encoding", map[string]any{"encoding": "ascii"}, func(c *Config) { c.Encoding = "ascii" }},
		{"driver", map[string]any{"driver": "portable"}, func(c *Config) { c.Driver = DriverPortable }},
		{"case insensitive keys", map[string]any{"BaudRate": 4800}, func(c *Config) { c.BaudRate = 4800 }},
		{"nil ignored", map[string]any{"port": nil}, func(*Config) {}},
		{"unknown keys ignored", map[string]any{"bytesize": 7}, func(*Config) {}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := DefaultConfig()
			tt.want(&want)

			got, err := ConfigFromSettings(tt.settings)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestConfigFromSettingsInvalidType(t *testing.T) {
	tests := []struct {
		name     string
		settings map[string]any
	}{
		{"invalid port", map[string]any{"port": 27117}},
		{"invalid baudrate", map[string]any{"baudrate": "foobar"}},
		{"boolean baudrate", map[string]any{"baudrate": true}},
		{"fractional baudrate", map[string]any{"baudrate": 9600.5}},
		{"negative baudrate", map[string]any{"baudrate": -9600}},
		{"invalid timeout", map[string]any{"timeout": "foobar"}},
		{"boolean timeout", map[string]any{"timeout": false}},
		{"negative timeout", map[string]any{"timeout": -1.0}},
		{"timeout too long", map[string]any{"timeout": 60}},
		{"unknown encoding", map[string]any{"encoding": "klingon"}},
		{"unknown driver", map[string]any{"driver": "bluetooth"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ConfigFromSettings(tt.settings)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidParameters)
			assert.Contains(t, err.Error(), "parameters is of invalid type")
		})
	}
}
