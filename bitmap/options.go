package bitmap

// Logger is an optional logging interface with key/value pairs.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// Config holds the file operation configuration.
type Config struct {
	// Logger receives progress and recovered-error messages (optional)
	Logger Logger
}

// Option is a functional option for the file operations.
type Option func(*Config)

// WithLogger sets the logger used by the file operations.
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

func newConfig(opts []Option) Config {
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func (c Config) logDebug(msg string, keysAndValues ...interface{}) {
	if c.Logger != nil {
		c.Logger.Debug(msg, keysAndValues...)
	}
}

func (c Config) logInfo(msg string, keysAndValues ...interface{}) {
	if c.Logger != nil {
		c.Logger.Info(msg, keysAndValues...)
	}
}

func (c Config) logError(msg string, keysAndValues ...interface{}) {
	if c.Logger != nil {
		c.Logger.Error(msg, keysAndValues...)
	}
}
