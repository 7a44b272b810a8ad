package bitmap

import (
	"errors"
	"fmt"
)

var (
	// ErrNoRecords indicates a transposition without any gate record
	ErrNoRecords = errors.New("no gate records")

	// ErrLineNotFound indicates an append to a line past the end of an existing file
	ErrLineNotFound = errors.New("line does not exist")
)

// TooManyRecordsError indicates more records than bits in a row.
type TooManyRecordsError struct {
	Count int
}

func (e *TooManyRecordsError) Error() string {
	return fmt.Sprintf("too many gate records: got %d, a row holds at most %d", e.Count, RowWidth)
}

// RecordFormatError indicates a gate record with a non-binary character.
type RecordFormatError struct {
	Line   int
	Column int
	Char   byte
}

func (e *RecordFormatError) Error() string {
	return fmt.Sprintf("line %d: invalid character %q at column %d", e.Line, e.Char, e.Column)
}

// LineRangeError indicates a line number outside the file being created.
type LineRangeError struct {
	Line       int
	TotalLines int
}

func (e *LineRangeError) Error() string {
	return fmt.Sprintf("line %d is out of range: valid range is 1-%d", e.Line, e.TotalLines)
}
