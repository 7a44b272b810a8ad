package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moffa90/go-uartaes/bitmap"
)

var (
	markLine  int
	markTotal int
	markValue string
	markDecoy bool
)

var markCmd = &cobra.Command{
	Use:   "mark <bitmap>",
	Short: "Append a gate status to one line of a bitmap file",
	Long: `Append a value to a line of a bitmap file, creating the file with
--total lines when it does not exist.

Without --value the gate status is written: '1' with --decoy, '0' otherwise.

Examples:
  # Gate 3 of 64 is a decoy
  uartaes mark bitmap.txt --line 3 --total 64 --decoy

  # Append an arbitrary value
  uartaes mark bitmap.txt --line 3 --total 64 --value 01`,
	Args: cobra.ExactArgs(1),
	RunE: runMark,
}

func init() {
	rootCmd.AddCommand(markCmd)

	markCmd.Flags().IntVarP(&markLine, "line", "l", 0, "1-based line number")
	markCmd.Flags().IntVarP(&markTotal, "total", "t", 0, "number of lines when the file is created")
	markCmd.Flags().StringVar(&markValue, "value", "", "value to append instead of the gate status")
	markCmd.Flags().BoolVar(&markDecoy, "decoy", false, "the gate is a decoy")

	markCmd.MarkFlagRequired("line")
	markCmd.MarkFlagRequired("total")
	markCmd.MarkFlagsMutuallyExclusive("value", "decoy")
}

func runMark(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd.ErrOrStderr(), verbose)
	path := args[0]

	var res bitmap.Result
	var err error
	if cmd.Flags().Changed("value") {
		res, err = bitmap.AppendValueToLine(path, markLine, markValue, markTotal, bitmap.WithLogger(logger))
	} else {
		res, err = bitmap.AppendGateStatus(path, markLine, markDecoy, markTotal, bitmap.WithLogger(logger))
	}
	if err != nil {
		return err
	}

	if errors.Is(res.Err(), bitmap.ErrLineNotFound) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: line %d does not exist, file unchanged\n", path, markLine)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: line %d %s\n", path, markLine, res)
	return nil
}
