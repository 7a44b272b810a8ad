package simulator

// Logger is an optional logging interface, matching harness.Logger.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// echoFault identifies one echoed byte to corrupt.
type echoFault struct {
	block int
	index int
}

// Config holds the device configuration.
type Config struct {
	// Logger is used for logging device activity (optional)
	Logger Logger

	// ChunkSize limits the bytes returned per Read. Zero means no limit.
	ChunkSize int

	// StopAfter cuts the output off after this many bytes. Negative means
	// never.
	StopAfter int

	// ReadError is returned by Read when no output is pending, instead of
	// the timeout-style (0, nil)
	ReadError error

	faults []echoFault
}

func defaultConfig() Config {
	return Config{StopAfter: -1}
}

// Option is a functional option for configuring the Device.
type Option func(*Config)

// WithLogger sets a logger for device activity.
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithChunkSize makes every Read return at most n bytes.
func WithChunkSize(n int) Option {
	return func(c *Config) {
		if n >= 0 {
			c.ChunkSize = n
		}
	}
}

// WithStopAfter makes the device fall silent after n output bytes.
//
// Example:
//
//	// Hang in the middle of the subkey window
//	dev := simulator.New(simulator.WithStopAfter(5))
func WithStopAfter(n int) Option {
	return func(c *Config) {
		c.StopAfter = n
	}
}

// WithReadError sets the error Read returns once output is exhausted.
func WithReadError(err error) Option {
	return func(c *Config) {
		c.ReadError = err
	}
}

// WithEchoFault inverts one echoed byte. Use protocol.NoBlock as the block
// to corrupt the block count echo.
func WithEchoFault(block, index int) Option {
	return func(c *Config) {
		c.faults = append(c.faults, echoFault{block: block, index: index})
	}
}
