package cmd

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moffa90/go-uartaes/harness"
	"github.com/moffa90/go-uartaes/simulator"
	"github.com/moffa90/go-uartaes/vectors"
)

var simChunk int

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a test session against the built-in device model",
	Long: `Run the same session as "run" against an in-process model of the design
and verify every response window against the expected values.

Examples:
  # Simulate with the default vector file
  uartaes simulate

  # Simulate a byte-at-a-time device with a custom key
  uartaes simulate --vectors vectors.mem --key 000102030405060708090a0b0c0d0e0f --chunk 1`,
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	addSessionFlags(simulateCmd)
	simulateCmd.Flags().IntVar(&simChunk, "chunk", 0,
		"maximum bytes returned per read by the model (0 means no limit)")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	key, err := parseKey(keyHex)
	if err != nil {
		return err
	}

	blocks, err := vectors.Parse(vectorsPath)
	if err != nil {
		return fmt.Errorf("failed to load vectors: %w", err)
	}

	opts := []simulator.Option{simulator.WithChunkSize(simChunk)}
	if verbose {
		opts = append(opts, simulator.WithLogger(newLogger(cmd.ErrOrStderr(), true)))
	}
	device := simulator.New(opts...)

	report, err := runSession(cmd, device, blocks, key)
	if err != nil {
		return err
	}

	if err := verifyReport(report, blocks, key, device.Plaintexts()); err != nil {
		return err
	}
	if !jsonOutput {
		fmt.Fprintln(cmd.OutOrStdout(), "Verification passed")
	}
	return nil
}

// verifyReport compares a report with the responses of a correct design.
// modelled holds the blocks the model decrypted from the ciphertext it
// received, which must give back the vectors.
func verifyReport(report *harness.Report, blocks []vectors.Block, key []byte, modelled [][]byte) error {
	plaintexts := make([][]byte, len(blocks))
	for i, b := range blocks {
		plaintexts[i] = b.Bytes()
	}

	if len(modelled) != len(plaintexts) {
		return fmt.Errorf("verification failed: model decrypted %d blocks, expected %d", len(modelled), len(plaintexts))
	}
	for i, p := range plaintexts {
		if !bytes.Equal(modelled[i], p) {
			return fmt.Errorf("verification failed: model decrypted block %d to %x, expected %x", i, modelled[i], p)
		}
	}

	want, err := simulator.Expect(key, plaintexts)
	if err != nil {
		return err
	}

	if !bytes.Equal(report.Subkeys, want.Subkeys) {
		return fmt.Errorf("verification failed: subkeys %s, expected %x", report.Subkeys, want.Subkeys)
	}
	for i, p := range want.Decrypted {
		if i >= len(report.Decrypted) || !bytes.Equal(report.Decrypted[i], p) {
			return fmt.Errorf("verification failed: decrypted block %d does not match vector", i)
		}
	}
	if !bytes.Equal(report.Digest, want.Digest) {
		return fmt.Errorf("verification failed: digest %s, expected %x", report.Digest, want.Digest)
	}
	if !bytes.Equal(report.DebugFIFO, want.DebugFIFO) {
		return fmt.Errorf("verification failed: debug FIFO does not match")
	}
	return nil
}
