package harness

import (
	"time"

	"github.com/moffa90/go-uartaes/protocol"
)

// Progress contains information about the session progress.
// Passed to ProgressCallback before every step and once on completion.
type Progress struct {
	// Phase is the current protocol phase
	Phase protocol.Phase

	// Block is the block being transferred, or protocol.NoBlock
	Block int

	// TotalBlocks is the number of blocks in the session
	TotalBlocks int

	// Percentage is the completion percentage by transferred bytes (0.0 to 100.0)
	Percentage float64

	// BytesWritten is the number of bytes written so far
	BytesWritten int

	// BytesRead is the number of bytes read so far
	BytesRead int

	// ElapsedTime is the time elapsed since the session started
	ElapsedTime time.Duration
}

// ProgressCallback is called during the session to report progress.
// Implementations should return quickly to avoid stalling the exchange.
type ProgressCallback func(Progress)

// FrameCallback is called for every byte received from the device, in order.
type FrameCallback func(protocol.Frame)

// Logger is an optional logging interface that can be provided to the driver.
// This allows integration with any logging framework.
//
// Example with standard log package:
//
//	type StdLogger struct{}
//	func (l *StdLogger) Debug(msg string, kv ...interface{}) { log.Println(msg, kv) }
//	func (l *StdLogger) Info(msg string, kv ...interface{})  { log.Println(msg, kv) }
//	func (l *StdLogger) Error(msg string, kv ...interface{}) { log.Println(msg, kv) }
//
//	drv := harness.New(port, harness.WithLogger(&StdLogger{}))
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}
