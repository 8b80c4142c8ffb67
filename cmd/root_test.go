package cmd

import (
	"errors"
	"testing"
	"time"

	"github.com/allbin/go-inoio"
	"github.com/spf13/viper"
)

func TestLoadConfig(t *testing.T) {
	v := viper.New()
	v.Set(inoio.SettingPort, "/dev/ttyACM0")
	v.Set(inoio.SettingBaudRate, 115200)
	v.Set(inoio.SettingTimeout, 2.5)
	v.Set(inoio.SettingEncoding, "ascii")
	v.Set(inoio.SettingDriver, "portable")

	config, err := loadConfig(v)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}

	want := inoio.Config{
		BaudRate:    115200,
		Port:        "/dev/ttyACM0",
		ReadTimeout: 2500 * time.Millisecond,
		Encoding:    "ascii",
		Driver:      inoio.DriverPortable,
	}
	if config != want {
		t.Errorf("loadConfig() = %+v, want %+v", config, want)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	config, err := loadConfig(viper.New())
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if config != inoio.DefaultConfig() {
		t.Errorf("loadConfig() = %+v, want defaults", config)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
	}{
		{"invalid port", inoio.SettingPort, 27117},
		{"invalid baudrate", inoio.SettingBaudRate, "foobar"},
		{"invalid timeout", inoio.SettingTimeout, "foobar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			v.Set(tt.key, tt.value)

			_, err := loadConfig(v)
			if !errors.Is(err, inoio.ErrInvalidParameters) {
				t.Errorf("loadConfig() error = %v, want ErrInvalidParameters", err)
			}
		})
	}
}

func TestLoggingConfig(t *testing.T) {
	v := viper.New()
	if cfg := loggingConfig(v); cfg.Level != "warn" || cfg.Output != "stderr" {
		t.Errorf("loggingConfig() = %+v, want warn level on stderr", cfg)
	}

	v.Set("verbose", true)
	v.Set("log.format", "json")
	v.Set("log.file", "/tmp/inoio.log")

	cfg := loggingConfig(v)
	if cfg.Level != "debug" || cfg.Format != "json" || cfg.Output != "/tmp/inoio.log" {
		t.Errorf("loggingConfig() = %+v", cfg)
	}
}
