/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/allbin/go-inoio"
	"github.com/allbin/go-inoio/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "inoio",
	Short: "Talk to a microcontroller over a line-oriented serial protocol",
	Long: `inoio sends text commands to a board attached over USB serial and
prints the "<status>;<message>" reply it answers with.

Opening the port resets Arduino-style boards, so every connection waits two
seconds before the first command is sent.

Settings are read from flags, INOIO_* environment variables and an optional
inoio.yaml config file, in that order of precedence:

  port: /dev/ttyACM0
  baudrate: 115200
  timeout: 2.5
  encoding: utf-8`,
	Version:      "0.1.0",
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config file (default ./inoio.yaml)")

	flags.StringP("port", "p", "/dev/ttyS2", "Serial port device")
	flags.IntP("baud", "b", 9600, "Baud rate")
	flags.Float64P("timeout", "t", 5.0, "Read timeout in seconds (0 waits forever)")
	flags.StringP("encoding", "e", "utf-8", "Text encoding of messages")
	flags.String("driver", "native", "Serial driver: native, portable")

	flags.BoolP("verbose", "v", false, "Log protocol traffic")
	flags.String("log-format", "console", "Log format: console, json")
	flags.String("log-file", "", "Write logs to a rotating file instead of stderr")

	bindFlag(inoio.SettingPort, "port")
	bindFlag(inoio.SettingBaudRate, "baud")
	bindFlag(inoio.SettingTimeout, "timeout")
	bindFlag(inoio.SettingEncoding, "encoding")
	bindFlag(inoio.SettingDriver, "driver")
	bindFlag("verbose", "verbose")
	bindFlag("log.format", "log-format")
	bindFlag("log.file", "log-file")
}

func bindFlag(key, flag string) {
	if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("inoio")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			viper.AddConfigPath(filepath.Join(dir, "inoio"))
		}
	}

	viper.SetEnvPrefix("INOIO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
			os.Exit(1)
		}
	}
}

// loadConfig turns the merged settings into a connection configuration
func loadConfig(v *viper.Viper) (inoio.Config, error) {
	return inoio.ConfigFromSettings(map[string]any{
		inoio.SettingPort:     v.Get(inoio.SettingPort),
		inoio.SettingBaudRate: v.Get(inoio.SettingBaudRate),
		inoio.SettingTimeout:  v.Get(inoio.SettingTimeout),
		inoio.SettingEncoding: v.Get(inoio.SettingEncoding),
		inoio.SettingDriver:   v.Get(inoio.SettingDriver),
	})
}

func loggingConfig(v *viper.Viper) logging.Config {
	cfg := logging.DefaultConfig()
	if v.GetBool("verbose") {
		cfg.Level = "debug"
	}
	if format := v.GetString("log.format"); format != "" {
		cfg.Format = format
	}
	if file := v.GetString("log.file"); file != "" {
		cfg.Output = file
	}
	return cfg
}

// newClient builds an unconnected client from the current settings
func newClient() (*inoio.Client, *zap.Logger, error) {
	config, err := loadConfig(viper.GetViper())
	if err != nil {
		return nil, nil, err
	}

	logger, err := logging.New(loggingConfig(viper.GetViper()))
	if err != nil {
		return nil, nil, err
	}

	return inoio.New(config, logger), logger, nil
}

// Execute runs the root command. It is the only place a failure ends the
// process.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
