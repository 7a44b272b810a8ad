package cmd

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/moffa90/go-uartaes/harness"
	"github.com/moffa90/go-uartaes/protocol"
	"github.com/moffa90/go-uartaes/vectors"
)

const separator = "================================================================="

// Session flags shared by run and simulate
var (
	vectorsPath string
	keyHex      string
	readTimeout time.Duration
	settleDelay time.Duration
	strictEcho  bool
	jsonOutput  bool
)

func addSessionFlags(c *cobra.Command) {
	c.Flags().StringVar(&vectorsPath, "vectors", "../tb/DUMMY_ENCRYPTED_DATA.mem",
		"vector file with one 128-bit binary block per line")
	c.Flags().StringVarP(&keyHex, "key", "k", "",
		"AES-128 key as 32 hex digits (default all zero)")
	c.Flags().DurationVar(&readTimeout, "timeout", 5*time.Second,
		"timeout for each response window (0 waits forever)")
	c.Flags().DurationVar(&settleDelay, "settle", 200*time.Millisecond,
		"delay before the first write")
	c.Flags().BoolVar(&strictEcho, "strict", false,
		"abort on the first echo mismatch instead of recording it")
	c.Flags().BoolVar(&jsonOutput, "json", false,
		"print the session report as JSON instead of the byte log")
}

// parseKey decodes a hex key. An empty string gives the all-zero key.
func parseKey(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
	if s == "" {
		return make([]byte, protocol.KeySize), nil
	}
	key, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid key: %w", err)
	}
	if len(key) != protocol.KeySize {
		return nil, fmt.Errorf("invalid key: must be %d bytes, got %d", protocol.KeySize, len(key))
	}
	return key, nil
}

// runSession drives one session over device, printing the byte log (or the
// JSON report) to the command output.
func runSession(cmd *cobra.Command, device io.ReadWriter, blocks []vectors.Block, key []byte) (*harness.Report, error) {
	out := cmd.OutOrStdout()
	logger := newLogger(cmd.ErrOrStderr(), verbose)

	opts := []harness.Option{
		harness.WithKey(key),
		harness.WithReadTimeout(readTimeout),
		harness.WithSettleDelay(settleDelay),
		harness.WithStrictEcho(strictEcho),
		harness.WithLogger(logger),
	}

	if !jsonOutput {
		fmt.Fprintf(out, "Block count sent: %d\n", len(blocks))
		fmt.Fprintf(out, "Key sent: %x\n", key)

		lastKind := protocol.FrameKind(255)
		lastBlock := protocol.NoBlock
		opts = append(opts, harness.WithFrameCallback(func(f protocol.Frame) {
			if f.Kind != lastKind || f.Block != lastBlock {
				if f.Kind != protocol.FrameCountEcho {
					fmt.Fprintln(out, separator)
				}
				lastKind, lastBlock = f.Kind, f.Block
			}
			fmt.Fprintf(out, "%s: 0x%02x\n", f.Label(), f.Value)
		}))
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	report, err := harness.New(device, opts...).Run(ctx, blocks)
	if err != nil {
		if report != nil {
			logger.Error("session failed",
				"written", report.BytesWritten,
				"read", report.BytesRead,
				"error", err)
		}
		return report, err
	}

	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return report, fmt.Errorf("failed to encode report: %w", err)
		}
		return report, nil
	}

	fmt.Fprintln(out, separator)
	fmt.Fprintf(out, "Session complete: %d blocks, %d bytes written, %d bytes read in %s\n",
		report.BlockCount, report.BytesWritten, report.BytesRead, report.Elapsed.Round(time.Millisecond))
	if n := len(report.Mismatches); n > 0 {
		fmt.Fprintf(out, "Echo mismatches: %d\n", n)
		for _, m := range report.Mismatches {
			fmt.Fprintf(out, "  %v\n", m)
		}
	}

	return report, nil
}
