package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moffa90/go-uartaes/serialport"
	"github.com/moffa90/go-uartaes/vectors"
)

var (
	portName string
	baudRate int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a test session against the design over a serial port",
	Long: `Run the complete test session against the AES design:

  1. Send the block count and read its echo
  2. Send the key and read the 16 subkey bytes
  3. Encrypt each vector block, send it and read the 16-byte echo
  4. Read the decrypted blocks, the 16-byte digest and the 112-byte debug FIFO

The serial line runs at 8 data bits, odd parity and two stop bits.

Echo mismatches are logged and listed in the summary by default, so the
device stays in step with the host. Pass --strict to stop at the first one.

Examples:
  # Test with the default vector file and the all-zero key
  uartaes run --port /dev/ttyUSB1 --baud 115200

  # Custom key, stop on echo mismatches, JSON report
  uartaes run -p /dev/ttyUSB1 -b 115200 --key 2b7e151628aed2a6abf7158809cf4f3c --strict --json`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&portName, "port", "p", "", "serial port device name")
	runCmd.Flags().IntVarP(&baudRate, "baud", "b", 0, "baud rate of the serial port")
	addSessionFlags(runCmd)

	runCmd.MarkFlagRequired("port")
	runCmd.MarkFlagRequired("baud")
}

func runRun(cmd *cobra.Command, args []string) error {
	key, err := parseKey(keyHex)
	if err != nil {
		return err
	}

	blocks, err := vectors.Parse(vectorsPath)
	if err != nil {
		return fmt.Errorf("failed to load vectors: %w", err)
	}

	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "Loaded %d blocks from %s\n", len(blocks), vectorsPath)
		fmt.Fprintf(cmd.ErrOrStderr(), "Opening %s at %d baud...\n", portName, baudRate)
	}

	port, err := serialport.Open(serialport.Config{
		Name:        portName,
		BaudRate:    baudRate,
		ReadTimeout: readTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to open serial port: %w", err)
	}
	defer port.Close()

	_, err = runSession(cmd, port, blocks, key)
	return err
}
