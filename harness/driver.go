package harness

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/moffa90/go-uartaes/protocol"
	"github.com/moffa90/go-uartaes/refcipher"
	"github.com/moffa90/go-uartaes/vectors"
)

// inputResetter is implemented by transports that can discard pending input.
type inputResetter interface {
	ResetInputBuffer() error
}

// readTimeoutSetter is implemented by go.bug.st/serial ports. A read that
// times out returns zero bytes and no error.
type readTimeoutSetter interface {
	SetReadTimeout(t time.Duration) error
}

// readDeadlineSetter is implemented by net.Conn and *os.File.
type readDeadlineSetter interface {
	SetReadDeadline(t time.Time) error
}

// inputWaiter is implemented by transports that can report how many bytes
// are buffered and not yet read.
type inputWaiter interface {
	InputWaiting() (int, error)
}

// Driver runs test sessions against the AES design.
//
// A Driver is not safe for concurrent use: the transport is owned by one
// session at a time.
type Driver struct {
	device io.ReadWriter
	config Config
}

// New creates a new Driver with the given transport and options.
//
// Example:
//
//	port, _ := serialport.Open(serialport.Config{Name: "/dev/ttyUSB1", BaudRate: 115200})
//	defer port.Close()
//	drv := harness.New(port, harness.WithReadTimeout(2*time.Second))
func New(device io.ReadWriter, opts ...Option) *Driver {
	if device == nil {
		panic("device cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Driver{
		device: device,
		config: cfg,
	}
}

// session is the state of one Run.
type session struct {
	blocks []vectors.Block
	cipher *refcipher.Cipher
	report *Report
	start  time.Time
	total  int
}

// Run performs the complete session:
//  1. Wait for the device to settle
//  2. Send the block count and read its echo
//  3. Clear pending input and send the key
//  4. Read the 16 subkey bytes
//  5. For every block, send its ciphertext and read the 16-byte echo
//  6. Read the decrypted output of every block
//  7. Read the 16 digest bytes
//  8. Read the 112 debug FIFO bytes
//
// The phases are never retried. The returned report is populated up to the
// point of failure when an error is returned.
func (d *Driver) Run(ctx context.Context, blocks []vectors.Block) (*Report, error) {
	steps, err := protocol.Schedule(len(blocks))
	if err != nil {
		return nil, err
	}

	keyCmd, err := protocol.BuildKeyCmd(d.config.Key)
	if err != nil {
		return nil, err
	}

	c, err := refcipher.New(d.config.Key)
	if err != nil {
		return nil, err
	}

	written, read := protocol.Totals(steps)
	s := &session{
		blocks: blocks,
		cipher: c,
		report: &Report{
			ProtocolVersion: protocol.ProtocolVersion,
			BlockCount:      len(blocks),
			Key:             HexBytes(keyCmd),
		},
		start: time.Now(),
		total: written + read,
	}
	defer func() { s.report.Elapsed = time.Since(s.start) }()

	// Init
	d.reportProgress(s, protocol.PhaseInit, protocol.NoBlock)
	if err := d.settle(ctx); err != nil {
		return s.report, fmt.Errorf("cancelled: %w", err)
	}
	if err := d.configureTimeout(); err != nil {
		return s.report, err
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return s.report, fmt.Errorf("cancelled: %w", err)
		}

		d.reportProgress(s, step.Phase, step.Block)

		if step.Direction == protocol.DirWrite {
			if err := d.writeStep(s, step, keyCmd); err != nil {
				return s.report, fmt.Errorf("%s: %w", step.Phase, err)
			}
			continue
		}

		if err := d.readStep(ctx, s, step); err != nil {
			return s.report, fmt.Errorf("%s: %w", step.Phase, err)
		}
	}

	d.reportProgress(s, protocol.PhaseComplete, protocol.NoBlock)

	d.logInfo("session complete",
		"blocks", len(blocks),
		"written", s.report.BytesWritten,
		"read", s.report.BytesRead,
		"mismatches", len(s.report.Mismatches),
		"elapsed", time.Since(s.start).String(),
	)

	return s.report, nil
}

// writeStep builds and writes the payload of a write step.
func (d *Driver) writeStep(s *session, step protocol.Step, keyCmd []byte) error {
	var payload []byte
	var err error

	switch step.Phase {
	case protocol.PhaseSendBlockCount:
		payload, err = protocol.BuildBlockCountCmd(len(s.blocks))
		if err != nil {
			return err
		}
		d.logInfo("sending block count", "count", len(s.blocks))

	case protocol.PhaseSendKey:
		if err := d.resetInput(); err != nil {
			return err
		}
		payload = keyCmd
		d.logInfo("sending key", "key", HexBytes(keyCmd).String())

	case protocol.PhaseSendCiphertext:
		block := s.blocks[step.Block]
		ct, err := s.cipher.EncryptBlock(block[:])
		if err != nil {
			return err
		}
		payload, err = protocol.BuildCiphertextCmd(ct)
		if err != nil {
			return err
		}
		s.report.CiphertextSent = append(s.report.CiphertextSent, HexBytes(payload))
		d.logInfo("sending ciphertext", "block", step.Block, "ciphertext", HexBytes(payload).String())

	default:
		return fmt.Errorf("no payload for phase %s", step.Phase)
	}

	if err := d.write(step.Phase, payload); err != nil {
		return err
	}
	s.report.BytesWritten += len(payload)
	return nil
}

// readStep drains one response window and records its frames.
func (d *Driver) readStep(ctx context.Context, s *session, step protocol.Step) error {
	if step.Kind == protocol.FrameDecryptedByte || step.Kind == protocol.FrameDigest {
		d.logInputWaiting(step)
	}

	data, err := d.readWindow(ctx, step)
	s.report.BytesRead += len(data)
	if err != nil {
		return err
	}

	frames, err := protocol.ParseWindow(step.Kind, step.Block, data)
	if err != nil {
		return err
	}

	s.report.store(step.Kind, frames)
	for _, f := range frames {
		d.logDebug(f.Label(), "value", fmt.Sprintf("0x%02X", f.Value))
		if d.config.FrameCallback != nil {
			d.config.FrameCallback(f)
		}
	}

	switch step.Kind {
	case protocol.FrameCountEcho:
		return d.checkEcho(s, step, []byte{byte(len(s.blocks))}, data)
	case protocol.FrameCiphertextEcho:
		return d.checkEcho(s, step, s.report.CiphertextSent[step.Block], data)
	}
	return nil
}

// checkEcho compares an echo window with the bytes that were sent.
func (d *Driver) checkEcho(s *session, step protocol.Step, sent, echo []byte) error {
	if bytes.Equal(sent, echo) {
		return nil
	}

	for i := range echo {
		if i < len(sent) && sent[i] == echo[i] {
			continue
		}
		mismatch := &EchoMismatchError{
			Kind:     step.Kind,
			Block:    step.Block,
			Index:    i,
			Expected: sent[i],
			Actual:   echo[i],
		}
		if d.config.StrictEcho {
			return mismatch
		}
		s.report.Mismatches = append(s.report.Mismatches, mismatch)
		d.logError("echo mismatch", "kind", step.Kind.String(), "block", step.Block, "index", i,
			"expected", fmt.Sprintf("0x%02X", mismatch.Expected),
			"actual", fmt.Sprintf("0x%02X", mismatch.Actual))
	}
	return nil
}

// write writes a payload in full.
func (d *Driver) write(phase protocol.Phase, payload []byte) error {
	n, err := d.device.Write(payload)
	if err != nil {
		return &TransportError{Op: "write", Phase: phase, Err: err}
	}
	if n != len(payload) {
		return &TransportError{Op: "write", Phase: phase, Err: io.ErrShortWrite}
	}
	return nil
}

// readWindow reads exactly step.Size bytes, bounded by the read timeout and
// the context. The bytes read so far are returned with any error.
func (d *Driver) readWindow(ctx context.Context, step protocol.Step) ([]byte, error) {
	buf := make([]byte, step.Size)

	var deadline time.Time
	if d.config.ReadTimeout > 0 {
		deadline = time.Now().Add(d.config.ReadTimeout)
	}
	if dl, ok := ctx.Deadline(); ok && (deadline.IsZero() || dl.Before(deadline)) {
		deadline = dl
	}
	if ds, ok := d.device.(readDeadlineSetter); ok && !deadline.IsZero() {
		if err := ds.SetReadDeadline(deadline); err != nil {
			return nil, &TransportError{Op: "set deadline", Phase: step.Phase, Err: err}
		}
	}

	// Transports that cannot bound a read themselves are read in a
	// goroutine so that the timeout and ctx still end the window.
	bounded := d.boundedReads(deadline)
	var expired <-chan time.Time
	if !bounded && d.config.ReadTimeout > 0 {
		t := time.NewTimer(d.config.ReadTimeout)
		defer t.Stop()
		expired = t.C
	}

	incomplete := func(got int, cause error) error {
		return &IncompleteResponseError{
			Kind:     step.Kind,
			Block:    step.Block,
			Expected: step.Size,
			Got:      got,
			Err:      cause,
		}
	}

	got := 0
	for got < len(buf) {
		if err := ctx.Err(); err != nil {
			return buf[:got], incomplete(got, err)
		}

		var n int
		var err error
		if bounded {
			n, err = d.device.Read(buf[got:])
		} else {
			n, err = d.readAsync(ctx, buf[got:], expired)
		}
		got += n
		if got == len(buf) {
			break
		}

		switch {
		case err == nil && n == 0:
			return buf[:got], incomplete(got, ErrResponseTimeout)
		case err == nil:
		case errors.Is(err, errWindowExpired):
			return buf[:got], incomplete(got, ErrResponseTimeout)
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return buf[:got], incomplete(got, err)
		case isTimeout(err):
			return buf[:got], incomplete(got, fmt.Errorf("%w: %v", ErrResponseTimeout, err))
		case errors.Is(err, io.EOF):
			return buf[:got], incomplete(got, io.ErrUnexpectedEOF)
		default:
			return buf[:got], &TransportError{Op: "read", Phase: step.Phase, Err: err}
		}

		if !deadline.IsZero() && time.Now().After(deadline) {
			return buf[:got], incomplete(got, ErrResponseTimeout)
		}
	}

	return buf, nil
}

// boundedReads reports whether a Read on the transport returns on its own
// once the read timeout or deadline passes.
func (d *Driver) boundedReads(deadline time.Time) bool {
	if _, ok := d.device.(readTimeoutSetter); ok && d.config.ReadTimeout > 0 {
		return true
	}
	if _, ok := d.device.(readDeadlineSetter); ok && !deadline.IsZero() {
		return true
	}
	return false
}

// errWindowExpired is returned by readAsync when the read timeout elapses
// while a Read is still blocked.
var errWindowExpired = errors.New("read window expired")

type readResult struct {
	n   int
	err error
}

// readAsync runs one Read in a goroutine and waits for it, ctx or expired.
// A Read abandoned this way keeps running until the transport returns, and
// whatever it reads is dropped.
func (d *Driver) readAsync(ctx context.Context, p []byte, expired <-chan time.Time) (int, error) {
	tmp := make([]byte, len(p))
	done := make(chan readResult, 1)
	go func() {
		n, err := d.device.Read(tmp)
		done <- readResult{n: n, err: err}
	}()

	select {
	case r := <-done:
		copy(p, tmp[:r.n])
		return r.n, r.err
	case <-ctx.Done():
		return 0, ctx.Err()
	case <-expired:
		return 0, errWindowExpired
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}

// settle waits for the configured settle delay or until ctx is done.
func (d *Driver) settle(ctx context.Context) error {
	if d.config.SettleDelay <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d.config.SettleDelay)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// configureTimeout applies the read timeout to transports that support a
// per-read timeout.
func (d *Driver) configureTimeout() error {
	ts, ok := d.device.(readTimeoutSetter)
	if !ok || d.config.ReadTimeout <= 0 {
		return nil
	}
	if err := ts.SetReadTimeout(d.config.ReadTimeout); err != nil {
		return &TransportError{Op: "set read timeout", Phase: protocol.PhaseInit, Err: err}
	}
	return nil
}

// logInputWaiting logs the pending input count when the transport exposes
// it. More bytes than the remaining windows hold means the link is out of
// step.
func (d *Driver) logInputWaiting(step protocol.Step) {
	w, ok := d.device.(inputWaiter)
	if !ok || d.config.Logger == nil {
		return
	}
	n, err := w.InputWaiting()
	if err != nil {
		d.logError("input waiting", "phase", step.Phase.String(), "error", err)
		return
	}
	d.logDebug("input waiting", "phase", step.Phase.String(), "block", step.Block, "bytes", n)
}

// resetInput discards stale input before the key exchange.
func (d *Driver) resetInput() error {
	r, ok := d.device.(inputResetter)
	if !ok {
		return nil
	}
	if err := r.ResetInputBuffer(); err != nil {
		return &TransportError{Op: "reset input", Phase: protocol.PhaseSendKey, Err: err}
	}
	return nil
}

// reportProgress calls the progress callback if configured.
func (d *Driver) reportProgress(s *session, phase protocol.Phase, block int) {
	if d.config.ProgressCallback == nil {
		return
	}

	done := s.report.BytesWritten + s.report.BytesRead
	percentage := 100.0
	if s.total > 0 && phase != protocol.PhaseComplete {
		percentage = float64(done) / float64(s.total) * 100
	}

	d.config.ProgressCallback(Progress{
		Phase:        phase,
		Block:        block,
		TotalBlocks:  len(s.blocks),
		Percentage:   percentage,
		BytesWritten: s.report.BytesWritten,
		BytesRead:    s.report.BytesRead,
		ElapsedTime:  time.Since(s.start),
	})
}

// logDebug logs a debug message if a logger is configured.
func (d *Driver) logDebug(msg string, keysAndValues ...interface{}) {
	if d.config.Logger != nil {
		d.config.Logger.Debug(msg, keysAndValues...)
	}
}

// logInfo logs an info message if a logger is configured.
func (d *Driver) logInfo(msg string, keysAndValues ...interface{}) {
	if d.config.Logger != nil {
		d.config.Logger.Info(msg, keysAndValues...)
	}
}

// logError logs an error message if a logger is configured.
func (d *Driver) logError(msg string, keysAndValues ...interface{}) {
	if d.config.Logger != nil {
		d.config.Logger.Error(msg, keysAndValues...)
	}
}
