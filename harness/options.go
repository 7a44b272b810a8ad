package harness

import (
	"time"

	"github.com/moffa90/go-uartaes/protocol"
)

// Config holds the driver configuration.
type Config struct {
	// Key is the AES key sent to the design and used for the reference
	// ciphertext. Default is 16 zero bytes.
	Key []byte

	// ProgressCallback is called at every step to report progress (optional)
	ProgressCallback ProgressCallback

	// FrameCallback is called for every received byte (optional)
	FrameCallback FrameCallback

	// Logger is used for logging operations (optional)
	Logger Logger

	// ReadTimeout bounds each response window. Zero disables the bound.
	ReadTimeout time.Duration

	// SettleDelay is waited before the first write so the device can settle
	SettleDelay time.Duration

	// StrictEcho makes a count or ciphertext echo mismatch abort the session.
	// When false, mismatches are logged and recorded in the report and the
	// session carries on.
	StrictEcho bool
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Key:         make([]byte, protocol.KeySize),
		ReadTimeout: 5 * time.Second,
		SettleDelay: 200 * time.Millisecond,
	}
}

// Option is a functional option for configuring the Driver.
type Option func(*Config)

// WithKey sets the AES key. The key is validated when the session starts.
//
// Example:
//
//	drv := harness.New(port, harness.WithKey(key))
func WithKey(key []byte) Option {
	return func(c *Config) {
		c.Key = append([]byte(nil), key...)
	}
}

// WithProgressCallback sets a callback function to track session progress.
func WithProgressCallback(callback ProgressCallback) Option {
	return func(c *Config) {
		c.ProgressCallback = callback
	}
}

// WithFrameCallback sets a callback receiving every tagged response byte.
func WithFrameCallback(callback FrameCallback) Option {
	return func(c *Config) {
		c.FrameCallback = callback
	}
}

// WithLogger sets a logger for the driver operations.
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithReadTimeout sets the timeout for each response window.
//
// Example:
//
//	drv := harness.New(port, harness.WithReadTimeout(2*time.Second))
func WithReadTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		if timeout >= 0 {
			c.ReadTimeout = timeout
		}
	}
}

// WithSettleDelay sets the pause before the first write.
func WithSettleDelay(delay time.Duration) Option {
	return func(c *Config) {
		if delay >= 0 {
			c.SettleDelay = delay
		}
	}
}

// WithStrictEcho enables or disables aborting on echo mismatches.
// Default is false.
func WithStrictEcho(strict bool) Option {
	return func(c *Config) {
		c.StrictEcho = strict
	}
}
