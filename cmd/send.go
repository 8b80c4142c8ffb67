/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/allbin/go-inoio"
	"github.com/allbin/go-inoio/internal/console"
	"github.com/spf13/cobra"
)

// errDeviceFailure is returned when the device answers with a non-1 status
var errDeviceFailure = errors.New("device reported failure")

// sendCmd represents the send command
var sendCmd = &cobra.Command{
	Use:   "send <message>",
	Short: "Send one message and print the reply",
	Long: `Open the port, wait for the board to reset, send a message and wait
for its "<status>;<message>" reply.

The command exits with status 1 when the port cannot be opened, the reply is
malformed, or the device reports a status other than 1 (unless
--ignore-status is given).

Example usage:
  inoio send "LED ON" --port /dev/ttyACM0 --newline
  inoio send ping -p /dev/ttyUSB0 -b 115200 --hex
  inoio send reset --no-reply`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addNewline, _ := cmd.Flags().GetBool("newline")
		noReply, _ := cmd.Flags().GetBool("no-reply")
		ignoreStatus, _ := cmd.Flags().GetBool("ignore-status")
		hexMode, _ := cmd.Flags().GetBool("hex")

		message := args[0]
		if addNewline {
			message += "\n"
		}

		client, logger, err := newClient()
		if err != nil {
			return err
		}
		defer logger.Sync()

		return runSend(cmd.OutOrStdout(), client, message, noReply, ignoreStatus, console.NewFormatter(hexMode))
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)

	sendCmd.Flags().BoolP("newline", "n", false, "Append a newline to the message")
	sendCmd.Flags().Bool("no-reply", false, "Do not wait for a reply")
	sendCmd.Flags().Bool("ignore-status", false, "Exit 0 even when the device reports failure")
	sendCmd.Flags().BoolP("hex", "x", false, "Also show the exchanged bytes as hex")
}

// deviceClient is the part of *inoio.Client the commands drive
type deviceClient interface {
	Config() inoio.Config
	Connect() error
	SendMessage(text string) (int, error)
	ReceiveMessage() (inoio.Reply, error)
	Disconnect() error
}

var _ deviceClient = (*inoio.Client)(nil)

// connect opens the client's port with progress output
func connect(out io.Writer, client deviceClient) error {
	config := client.Config()
	fmt.Fprintln(out, console.Info("⚡", fmt.Sprintf("Opening %s @ %d baud...", config.Port, config.BaudRate)))
	fmt.Fprintln(out, console.Pending(fmt.Sprintf("Waiting %v for the device to reset", inoio.SettleDelay)))

	if err := client.Connect(); err != nil {
		return err
	}

	fmt.Fprintln(out, console.Success("Connected, device ready"))
	return nil
}

func runSend(out io.Writer, client deviceClient, message string, noReply, ignoreStatus bool, f *console.Formatter) error {
	if err := connect(out, client); err != nil {
		return err
	}
	defer client.Disconnect()

	reply, err := exchange(out, client, message, noReply, f)
	if err != nil || noReply {
		return err
	}

	if !reply.Success && !ignoreStatus {
		return fmt.Errorf("%w: %s", errDeviceFailure, reply.Message)
	}
	return nil
}

// exchange sends message, prints both sides and returns the reply
func exchange(out io.Writer, client deviceClient, message string, noReply bool, f *console.Formatter) (inoio.Reply, error) {
	if _, err := client.SendMessage(message); err != nil {
		fmt.Fprintln(out, f.Format(console.Line{
			Timestamp: time.Now(),
			Direction: console.TX,
			Status:    console.StatusError,
			Data:      []byte(message),
		}))
		return inoio.Reply{}, err
	}

	fmt.Fprintln(out, f.Format(console.Line{
		Timestamp: time.Now(),
		Direction: console.TX,
		Status:    console.StatusOK,
		Data:      []byte(message),
	}))

	if noReply {
		return inoio.Reply{}, nil
	}

	reply, err := client.ReceiveMessage()
	if err != nil {
		return inoio.Reply{}, err
	}

	status := console.StatusOK
	if !reply.Success {
		status = console.StatusFailed
	}
	fmt.Fprintln(out, f.Format(console.Line{
		Timestamp: time.Now(),
		Direction: console.RX,
		Status:    status,
		Data:      []byte(reply.Message),
	}))

	return reply, nil
}
