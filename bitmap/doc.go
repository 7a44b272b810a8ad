// Package bitmap prepares gate-status bitmaps for the AES design.
//
// # Gate Records
//
// A bitmap input file holds one gate record per line. A record is a string of
// '0' (original gate) and '1' (decoy gate) characters; records may have
// different lengths and are identified only by their line position.
//
// AppendValueToLine and AppendGateStatus build such files one value at a time.
//
// # Transposition
//
// The hardware consumes 128-bit rows. Transpose interleaves the records bit
// position by bit position: for position i it takes the i-th character of
// every record in order, substituting '0' when a record is too short. When
// the number of records n does not divide 128, each row is closed with
// 128 mod n decoy '1' characters once it holds 128 - (128 mod n) transposed
// characters.
//
//	rows, err := bitmap.Transpose([]string{"1010", "0110", "1111"})
//
// TransposeFile applies the same transformation to files:
//
//	err := bitmap.TransposeFile("gates.txt", "DUMMY_ENCRYPTED_DATA.mem")
//
// Every output row is exactly RowWidth characters and newline-terminated, so
// the output is directly readable by the vectors package.
package bitmap
