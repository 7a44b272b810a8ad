package serialport

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.bug.st/serial"
)

// Line settings required by the design.
const (
	DataBits = 8
	Parity   = serial.OddParity
	StopBits = serial.TwoStopBits
)

var (
	// ErrNoPortName indicates an empty device name
	ErrNoPortName = errors.New("serial port name is required")

	// ErrInvalidBaudRate indicates a non-positive baud rate
	ErrInvalidBaudRate = errors.New("baud rate must be positive")

	// ErrClosed is returned by I/O on a closed port
	ErrClosed = errors.New("serial port closed")
)

// openFunc is replaced in tests.
var openFunc = serial.Open

// Config holds serial port configuration.
type Config struct {
	Name        string        // Device path (e.g., /dev/ttyUSB1)
	BaudRate    int           // Baud rate
	ReadTimeout time.Duration // Per-read timeout; zero blocks until data arrives
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Name == "" {
		return ErrNoPortName
	}
	if c.BaudRate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidBaudRate, c.BaudRate)
	}
	return nil
}

// Mode returns the line settings for the configuration.
func (c Config) Mode() *serial.Mode {
	return &serial.Mode{
		BaudRate: c.BaudRate,
		DataBits: DataBits,
		Parity:   Parity,
		StopBits: StopBits,
	}
}

// Port is an open serial port. Close may be called more than once.
type Port struct {
	name string

	mu     sync.Mutex
	port   serial.Port
	closed bool
}

// Open opens and configures the named port. Pending input is discarded.
func Open(cfg Config) (*Port, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p, err := openFunc(cfg.Name, cfg.Mode())
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Name, err)
	}

	port := &Port{name: cfg.Name, port: p}

	if cfg.ReadTimeout > 0 {
		if err := p.SetReadTimeout(cfg.ReadTimeout); err != nil {
			p.Close()
			return nil, fmt.Errorf("set read timeout on %s: %w", cfg.Name, err)
		}
	}
	if err := p.ResetInputBuffer(); err != nil {
		p.Close()
		return nil, fmt.Errorf("reset input on %s: %w", cfg.Name, err)
	}

	return port, nil
}

// Name returns the device name the port was opened with.
func (p *Port) Name() string {
	return p.name
}

func (p *Port) get() (serial.Port, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, ErrClosed
	}
	return p.port, nil
}

// Read reads from the port. A read that times out returns 0 bytes and no error.
func (p *Port) Read(b []byte) (int, error) {
	sp, err := p.get()
	if err != nil {
		return 0, err
	}
	return sp.Read(b)
}

// Write writes to the port.
func (p *Port) Write(b []byte) (int, error) {
	sp, err := p.get()
	if err != nil {
		return 0, err
	}
	return sp.Write(b)
}

// ResetInputBuffer discards bytes received but not yet read.
func (p *Port) ResetInputBuffer() error {
	sp, err := p.get()
	if err != nil {
		return err
	}
	return sp.ResetInputBuffer()
}

// SetReadTimeout sets the per-read timeout.
func (p *Port) SetReadTimeout(t time.Duration) error {
	sp, err := p.get()
	if err != nil {
		return err
	}
	return sp.SetReadTimeout(t)
}

// Close closes the port. Only the first call reaches the device.
func (p *Port) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	return p.port.Close()
}
