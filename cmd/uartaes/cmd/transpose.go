package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moffa90/go-uartaes/bitmap"
)

var transposeCmd = &cobra.Command{
	Use:   "transpose <bitmap> <output>",
	Short: "Transpose a gate bitmap into 128-bit vector rows",
	Long: `Read a bitmap file with one binary record per line and write the
interleaved 128-character rows the run command loads as vectors.

Records are interleaved column by column; when the record count does not
divide 128 the remaining columns are filled with '1' decoy bits.

Examples:
  uartaes transpose bitmap.txt DUMMY_ENCRYPTED_DATA.mem`,
	Args: cobra.ExactArgs(2),
	RunE: runTranspose,
}

func init() {
	rootCmd.AddCommand(transposeCmd)
}

func runTranspose(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd.ErrOrStderr(), verbose)

	if err := bitmap.TransposeFile(args[0], args[1], bitmap.WithLogger(logger)); err != nil {
		return fmt.Errorf("failed to transpose %s: %w", args[0], err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", args[1])
	return nil
}
