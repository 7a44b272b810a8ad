package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "uartaes",
	Short: "AES design UART test harness and bitmap tools",
	Long: `Hardware-in-the-loop tester for an AES decryption design reached over a
serial link, plus the bitmap transposer that prepares its test vectors.

Examples:
  uartaes run --port /dev/ttyUSB1 --baud 115200          # Test the design
  uartaes simulate --vectors DUMMY_ENCRYPTED_DATA.mem    # Same session against a model
  uartaes transpose bitmap.txt DUMMY_ENCRYPTED_DATA.mem  # Build vectors from a bitmap
  uartaes mark bitmap.txt --line 3 --total 64 --decoy    # Record a gate status
  uartaes ports                                          # List serial ports`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
