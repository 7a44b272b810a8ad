package simulator

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/sha3"

	"github.com/moffa90/go-uartaes/protocol"
	"github.com/moffa90/go-uartaes/refcipher"
)

// ErrSessionComplete is returned by Write after the last block was received.
var ErrSessionComplete = errors.New("session complete: device expects no more input")

type state uint8

const (
	stateCount state = iota
	stateKey
	stateCiphertext
	stateDone
)

// Device plays the design side of one session. It is safe for concurrent use.
type Device struct {
	config Config

	mu         sync.Mutex
	state      state
	count      int
	key        []byte
	cipher     *refcipher.Cipher
	pending    []byte
	block      int
	plaintexts []byte
	out        bytes.Buffer
	emitted    int
	resets     int
}

// New creates a Device waiting for the block count.
func New(opts ...Option) *Device {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Device{config: cfg}
}

// Write feeds host bytes into the device state machine.
func (d *Device) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i, b := range p {
		if d.state == stateDone {
			return i, ErrSessionComplete
		}
		if err := d.feed(b); err != nil {
			return i, err
		}
	}
	return len(p), nil
}

// Read returns pending device output. With nothing pending it returns
// (0, nil), or the configured read error.
func (d *Device) Read(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	limit := len(p)
	if d.config.ChunkSize > 0 && limit > d.config.ChunkSize {
		limit = d.config.ChunkSize
	}
	if d.config.StopAfter >= 0 && limit > d.config.StopAfter-d.emitted {
		limit = d.config.StopAfter - d.emitted
	}

	if d.out.Len() == 0 || limit <= 0 {
		return 0, d.config.ReadError
	}

	n, _ := d.out.Read(p[:limit])
	d.emitted += n
	return n, nil
}

// ResetInputBuffer drops output the host has not read yet.
func (d *Device) ResetInputBuffer() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.resets++
	d.out.Reset()
	return nil
}

// InputWaiting returns the number of output bytes the host has not read.
func (d *Device) InputWaiting() (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.out.Len(), nil
}

// Reset returns the device to its power-on state.
func (d *Device) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = stateCount
	d.count = 0
	d.key, d.cipher, d.pending = nil, nil, nil
	d.block = 0
	d.plaintexts = nil
	d.out.Reset()
	d.emitted = 0
	d.resets = 0
}

// Done reports whether the device has emitted its final windows.
func (d *Device) Done() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state == stateDone
}

// BlockCount returns the block count received from the host.
func (d *Device) BlockCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.count
}

// Plaintexts returns the blocks decrypted so far.
func (d *Device) Plaintexts() [][]byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([][]byte, 0, d.block)
	for i := 0; i < len(d.plaintexts); i += protocol.BlockSize {
		out = append(out, append([]byte(nil), d.plaintexts[i:i+protocol.BlockSize]...))
	}
	return out
}

func (d *Device) feed(b byte) error {
	switch d.state {
	case stateCount:
		d.count = int(b)
		d.emit(d.corrupt(protocol.NoBlock, 0, b))
		d.logDebug("block count received", "count", d.count)
		d.state = stateKey

	case stateKey:
		d.pending = append(d.pending, b)
		if len(d.pending) < protocol.KeySize {
			return nil
		}
		c, err := refcipher.New(d.pending)
		if err != nil {
			return err
		}
		d.key, d.cipher, d.pending = d.pending, c, nil

		var k [16]byte
		copy(k[:], d.key)
		rk := LastRoundKey(k)
		for _, v := range rk {
			d.emit(v)
		}
		d.logDebug("key received", "key", fmt.Sprintf("%x", d.key))

		if d.count == 0 {
			return d.finish()
		}
		d.state = stateCiphertext

	case stateCiphertext:
		d.pending = append(d.pending, b)
		if len(d.pending) < protocol.BlockSize {
			return nil
		}
		for i, v := range d.pending {
			d.emit(d.corrupt(d.block, i, v))
		}
		pt, err := d.cipher.DecryptBlock(d.pending)
		if err != nil {
			return err
		}
		d.plaintexts = append(d.plaintexts, pt...)
		d.logDebug("ciphertext received", "block", d.block)
		d.pending = nil
		d.block++

		if d.block == d.count {
			return d.finish()
		}
	}
	return nil
}

// finish queues the decrypted blocks, the digest and the debug FIFO.
func (d *Device) finish() error {
	digest, fifo, err := Digest(d.key, d.plaintexts)
	if err != nil {
		return err
	}
	d.out.Write(d.plaintexts)
	d.out.Write(digest)
	d.out.Write(fifo)
	d.state = stateDone
	d.logInfo("session complete", "blocks", d.count)
	return nil
}

func (d *Device) emit(b byte) {
	d.out.WriteByte(b)
}

func (d *Device) corrupt(block, index int, b byte) byte {
	for _, f := range d.config.faults {
		if f.block == block && f.index == index {
			d.logError("corrupting echo", "block", block, "index", index)
			return ^b
		}
	}
	return b
}

// Digest computes the digest and debug FIFO windows the device sends for the
// given plaintext. SHAKE128 of the concatenated plaintext is squeezed for
// 128 bytes; the first 16 are encrypted under the key to form the digest and
// the remaining 112 are the FIFO contents.
func Digest(key, plaintext []byte) (digest, fifo []byte, err error) {
	c, err := refcipher.New(key)
	if err != nil {
		return nil, nil, err
	}

	out := make([]byte, protocol.DigestWindowSize+protocol.DebugFIFOWindowSize)
	sha3.ShakeSum128(out, plaintext)

	digest, err = c.EncryptBlock(out[:protocol.DigestWindowSize])
	if err != nil {
		return nil, nil, err
	}
	return digest, out[protocol.DigestWindowSize:], nil
}

// Expectation is what a correct device returns for a session.
type Expectation struct {
	Subkeys   []byte
	Decrypted [][]byte
	Digest    []byte
	DebugFIFO []byte
}

// Expect computes the responses of a correct device for the key and
// plaintext blocks.
func Expect(key []byte, plaintexts [][]byte) (*Expectation, error) {
	if len(key) != protocol.KeySize {
		return nil, fmt.Errorf("key must be exactly %d bytes, got %d", protocol.KeySize, len(key))
	}

	var k [16]byte
	copy(k[:], key)
	rk := LastRoundKey(k)

	var joined []byte
	for _, p := range plaintexts {
		joined = append(joined, p...)
	}
	digest, fifo, err := Digest(key, joined)
	if err != nil {
		return nil, err
	}

	return &Expectation{
		Subkeys:   rk[:],
		Decrypted: plaintexts,
		Digest:    digest,
		DebugFIFO: fifo,
	}, nil
}

func (d *Device) logDebug(msg string, keysAndValues ...interface{}) {
	if d.config.Logger != nil {
		d.config.Logger.Debug(msg, keysAndValues...)
	}
}

func (d *Device) logInfo(msg string, keysAndValues ...interface{}) {
	if d.config.Logger != nil {
		d.config.Logger.Info(msg, keysAndValues...)
	}
}

func (d *Device) logError(msg string, keysAndValues ...interface{}) {
	if d.config.Logger != nil {
		d.config.Logger.Error(msg, keysAndValues...)
	}
}
