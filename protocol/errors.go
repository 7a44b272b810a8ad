package protocol

import (
	"errors"
	"fmt"
)

// BlockCountError indicates a block count that cannot be sent in one byte.
type BlockCountError struct {
	Count int
}

func (e *BlockCountError) Error() string {
	return fmt.Sprintf("block count %d out of range: must be 0-%d", e.Count, MaxBlockCount)
}

// WindowSizeError indicates a response window with the wrong number of bytes.
type WindowSizeError struct {
	Kind     FrameKind
	Expected int
	Got      int
}

func (e *WindowSizeError) Error() string {
	return fmt.Sprintf("invalid %s window: got %d bytes, expected %d", e.Kind, e.Got, e.Expected)
}

// IsWindowSizeError returns true if the error is a WindowSizeError.
func IsWindowSizeError(err error) bool {
	var target *WindowSizeError
	return errors.As(err, &target)
}
