package harness

import (
	"errors"
	"fmt"

	"github.com/moffa90/go-uartaes/protocol"
)

var (
	// ErrTransportUnavailable is matched by every TransportError
	ErrTransportUnavailable = errors.New("transport unavailable")

	// ErrResponseTimeout indicates the device stopped sending within a window
	ErrResponseTimeout = errors.New("response timeout")
)

// TransportError indicates that a write or read on the transport failed.
type TransportError struct {
	Op    string
	Phase protocol.Phase
	Err   error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s failed during %s: %v", e.Op, e.Phase, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Is reports ErrTransportUnavailable as a match.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransportUnavailable
}

// IncompleteResponseError indicates a response window that ended before the
// expected number of bytes arrived.
type IncompleteResponseError struct {
	Kind     protocol.FrameKind
	Block    int
	Expected int
	Got      int
	Err      error
}

func (e *IncompleteResponseError) Error() string {
	where := e.Kind.String()
	if e.Block != protocol.NoBlock {
		where = fmt.Sprintf("%s (block %d)", where, e.Block)
	}
	return fmt.Sprintf("incomplete %s response: got %d of %d bytes: %v", where, e.Got, e.Expected, e.Err)
}

func (e *IncompleteResponseError) Unwrap() error { return e.Err }

// EchoMismatchError indicates that the device echoed a different byte than
// the one sent.
type EchoMismatchError struct {
	Kind     protocol.FrameKind `json:"kind"`
	Block    int                `json:"block"`
	Index    int                `json:"index"`
	Expected byte               `json:"expected"`
	Actual   byte               `json:"actual"`
}

func (e *EchoMismatchError) Error() string {
	if e.Block == protocol.NoBlock {
		return fmt.Sprintf("%s mismatch at byte %d: expected 0x%02X, got 0x%02X",
			e.Kind, e.Index, e.Expected, e.Actual)
	}
	return fmt.Sprintf("%s mismatch for block %d at byte %d: expected 0x%02X, got 0x%02X",
		e.Kind, e.Block, e.Index, e.Expected, e.Actual)
}
