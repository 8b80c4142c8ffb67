/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/allbin/go-inoio"
	"github.com/allbin/go-inoio/internal/console"
	"github.com/spf13/cobra"
)

// consoleCmd represents the console command
var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Exchange messages line by line over one connection",
	Long: `Open the port once and send every line read from stdin as a message,
printing each reply as it arrives. The board is reset only once, when the
console starts.

Malformed replies are reported and the session continues; transport errors
end it. The console exits on end of input (Ctrl+D).

Example usage:
  inoio console -p /dev/ttyACM0 --newline
  printf 'LED ON\nLED OFF\n' | inoio console -p /dev/ttyACM0 -n`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addNewline, _ := cmd.Flags().GetBool("newline")
		hexMode, _ := cmd.Flags().GetBool("hex")

		client, logger, err := newClient()
		if err != nil {
			return err
		}
		defer logger.Sync()

		return runConsole(cmd.OutOrStdout(), client, cmd.InOrStdin(), isTerminal(os.Stdin), addNewline, console.NewFormatter(hexMode))
	},
}

func init() {
	rootCmd.AddCommand(consoleCmd)

	consoleCmd.Flags().BoolP("newline", "n", false, "Append a newline to every message")
	consoleCmd.Flags().BoolP("hex", "x", false, "Also show the exchanged bytes as hex")
}

func isTerminal(f *os.File) bool {
	stat, err := f.Stat()
	return err == nil && stat.Mode()&os.ModeCharDevice != 0
}

func runConsole(out io.Writer, client deviceClient, in io.Reader, interactive, addNewline bool, f *console.Formatter) error {
	if err := connect(out, client); err != nil {
		return err
	}
	defer client.Disconnect()

	scanner := bufio.NewScanner(in)
	for {
		if interactive {
			fmt.Fprint(out, console.PromptStyle.Render("> "))
		}
		if !scanner.Scan() {
			break
		}

		message := scanner.Text()
		if message == "" {
			continue
		}
		if addNewline {
			message += "\n"
		}

		_, err := exchange(out, client, message, false, f)
		if errors.Is(err, inoio.ErrMalformedFrame) {
			fmt.Fprintln(out, console.Failure(err.Error()))
			continue
		}
		if err != nil {
			return err
		}
	}

	return scanner.Err()
}
