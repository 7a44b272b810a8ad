package vectors

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultBlockCapacity is the default initial capacity for the blocks slice.
const DefaultBlockCapacity = 64

var (
	// ErrInvalidDigit indicates a character other than '0' or '1'
	ErrInvalidDigit = errors.New("invalid binary digit")

	// ErrValueTooLarge indicates a value that does not fit in 128 bits
	ErrValueTooLarge = errors.New("value exceeds 128 bits")

	// ErrNoBlocks indicates an input without any vector line
	ErrNoBlocks = errors.New("no vectors found")
)

// Parse parses a vector file from the given path.
//
// Example:
//
//	blocks, err := vectors.Parse("../tb/DUMMY_ENCRYPTED_DATA.mem")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Blocks: %d\n", len(blocks))
func Parse(path string) ([]Block, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ParseReader(f)
}

// ParseReader parses a vector file from any io.Reader.
func ParseReader(r io.Reader) ([]Block, error) {
	scanner := bufio.NewScanner(r)

	blocks := make([]Block, 0, DefaultBlockCapacity)
	lineNum := 0
	blankLine := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Trailing blank lines are allowed, a blank line before a value is not
		if line == "" {
			if blankLine == 0 {
				blankLine = lineNum
			}
			continue
		}
		if blankLine != 0 {
			return nil, fmt.Errorf("line %d: %w: empty value", blankLine, ErrInvalidDigit)
		}

		block, err := ParseBlock(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		blocks = append(blocks, block)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	if len(blocks) == 0 {
		return nil, ErrNoBlocks
	}

	return blocks, nil
}

// ParseBlock converts one binary string into a big-endian block.
// Leading zeros do not count towards the 128-bit limit.
func ParseBlock(s string) (Block, error) {
	var b Block

	if s == "" {
		return b, fmt.Errorf("%w: empty value", ErrInvalidDigit)
	}

	sig := strings.TrimLeft(s, "0")
	for i := 0; i < len(sig); i++ {
		if c := sig[i]; c != '1' && c != '0' {
			col := len(s) - len(sig) + i + 1
			return b, fmt.Errorf("%w %q at column %d", ErrInvalidDigit, c, col)
		}
	}

	if len(sig) > BlockBits {
		return b, fmt.Errorf("%w: %d significant bits", ErrValueTooLarge, len(sig))
	}

	for i := 0; i < len(sig); i++ {
		if sig[len(sig)-1-i] == '1' {
			b[BlockSize-1-i/8] |= 1 << (i % 8)
		}
	}

	return b, nil
}
