package inoio

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Keys understood by ConfigFromSettings
const (
	SettingBaudRate = "baudrate"
	SettingPort     = "port"
	SettingTimeout  = "timeout"
	SettingEncoding = "encoding"
	SettingDriver   = "driver"
)

// ConfigFromSettings builds a Config from loosely typed settings such as those
// read from a config file, environment variables or command line flags.
// Missing keys keep their DefaultConfig value. A value of the wrong type
// yields ErrInvalidParameters.
func ConfigFromSettings(settings map[string]any) (Config, error) {
	config := DefaultConfig()

	for key, raw := range settings {
		if raw == nil {
			continue
		}

		var err error
		switch strings.ToLower(key) {
		case SettingBaudRate:
			config.BaudRate, err = settingBaudRate(raw)
		case SettingPort:
			config.Port, err = settingPort(raw)
		case SettingTimeout:
			config.ReadTimeout, err = settingTimeout(raw)
		case SettingEncoding:
			config.Encoding, err = cast.ToStringE(raw)
		case SettingDriver:
			var name string
			if name, err = cast.ToStringE(raw); err == nil {
				config.Driver, err = ParseDriver(name)
			}
		default:
			continue
		}
		if err != nil {
			return Config{}, invalidSetting(key, raw, err)
		}
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func invalidSetting(key string, raw any, err error) error {
	return openError(ErrInvalidParameters, fmt.Errorf("%s=%v: %w", key, raw, err))
}

func settingBaudRate(raw any) (int, error) {
	switch v := raw.(type) {
	case bool:
		return 0, fmt.Errorf("unable to cast %#v of type %T to int", v, v)
	case float32, float64:
		f := cast.ToFloat64(v)
		if f != math.Trunc(f) {
			return 0, fmt.Errorf("baud rate %v is not an integer", f)
		}
	}
	return cast.ToIntE(raw)
}

// The port must be given as a name; a number is rejected rather than
// converted so that "port: 27117" in a config file is reported.
func settingPort(raw any) (string, error) {
	port, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("port must be a string, got %T", raw)
	}
	return port, nil
}

// Timeouts are seconds (float or numeric string) or a duration string.
func settingTimeout(raw any) (time.Duration, error) {
	switch v := raw.(type) {
	case time.Duration:
		return v, nil
	case bool:
		return 0, fmt.Errorf("unable to cast %#v of type %T to float64", v, v)
	case string:
		if d, err := time.ParseDuration(v); err == nil {
			return d, nil
		}
	}

	seconds, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return 0, fmt.Errorf("timeout %v is not finite", seconds)
	}
	return time.Duration(math.Round(seconds * float64(time.Second))), nil
}
