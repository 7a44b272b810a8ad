// Package vectors reads and writes the test vector files sent to the AES design.
//
// # Vector File Format
//
// A vector file is UTF-8 text with one binary string per line. Each line is a
// big-endian integer of at most 128 significant bits and becomes one 16-byte
// block:
//
//	00000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000001
//	  -> 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00 01
//
// Lines shorter than 128 characters are zero-extended on the left, the same as
// an integer conversion would do. A blank line before a value is an error;
// blank lines at the end of the file are ignored.
//
// # Usage
//
// Parse a vector file from disk:
//
//	blocks, err := vectors.Parse("DUMMY_ENCRYPTED_DATA.mem")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for i, b := range blocks {
//	    fmt.Printf("Block %d: %X\n", i, b[:])
//	}
//
// Parse from an io.Reader:
//
//	blocks, err := vectors.ParseReader(strings.NewReader(content))
//
// Write blocks back out as a vector file:
//
//	err := vectors.Write(w, blocks)
//
// # Error Handling
//
// Parse returns errors prefixed with the 1-based line number for:
//   - characters other than '0' and '1' (ErrInvalidDigit)
//   - values needing more than 128 bits (ErrValueTooLarge)
//
// An input without any vector line yields ErrNoBlocks.
package vectors
