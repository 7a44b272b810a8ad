package vectors

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// Write writes blocks as a vector file, one 128-character line per block.
func Write(w io.Writer, blocks []Block) error {
	bw := bufio.NewWriter(w)
	for i, b := range blocks {
		if _, err := bw.WriteString(FormatBlock(b) + "\n"); err != nil {
			return fmt.Errorf("write block %d: %w", i, err)
		}
	}
	return bw.Flush()
}

// WriteFile writes blocks to the named vector file, replacing it.
func WriteFile(path string, blocks []Block) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return Write(f, blocks)
}
