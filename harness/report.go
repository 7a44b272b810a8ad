package harness

import (
	"encoding/hex"
	"time"

	"github.com/moffa90/go-uartaes/protocol"
)

// HexBytes is a byte slice that encodes as hex text.
type HexBytes []byte

func (h HexBytes) MarshalText() ([]byte, error) {
	return []byte(hex.EncodeToString(h)), nil
}

func (h HexBytes) String() string {
	return hex.EncodeToString(h)
}

// Report collects everything exchanged during a session. On error Run returns
// the report filled up to the failing step.
type Report struct {
	// ProtocolVersion is the exchange sequence the session followed
	ProtocolVersion string `json:"protocol_version"`

	// BlockCount is the number of blocks announced to the device
	BlockCount int `json:"block_count"`

	// CountEcho is the byte the device returned after the block count
	CountEcho byte `json:"count_echo"`

	// Key is the key sent to the device
	Key HexBytes `json:"key"`

	// Subkeys holds the 16 subkey bytes
	Subkeys HexBytes `json:"subkeys"`

	// CiphertextSent holds the ciphertext written for each block
	CiphertextSent []HexBytes `json:"ciphertext_sent"`

	// CiphertextEchoes holds the 16-byte echo read after each block
	CiphertextEchoes []HexBytes `json:"ciphertext_echoes"`

	// Decrypted holds the decrypted output for each block
	Decrypted []HexBytes `json:"decrypted"`

	// Digest holds the 16 encrypted digest bytes
	Digest HexBytes `json:"digest"`

	// DebugFIFO holds the 112 debug FIFO bytes
	DebugFIFO HexBytes `json:"debug_fifo"`

	// Mismatches lists echo bytes that differ from what was sent
	Mismatches []*EchoMismatchError `json:"mismatches,omitempty"`

	// Frames lists every received byte in order
	Frames []protocol.Frame `json:"-"`

	BytesWritten int           `json:"bytes_written"`
	BytesRead    int           `json:"bytes_read"`
	Elapsed      time.Duration `json:"elapsed_ns"`
}

// FramesOf returns the received frames of one kind.
func (r *Report) FramesOf(kind protocol.FrameKind) []protocol.Frame {
	var out []protocol.Frame
	for _, f := range r.Frames {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}

func (r *Report) store(kind protocol.FrameKind, frames []protocol.Frame) {
	r.Frames = append(r.Frames, frames...)
	values := HexBytes(protocol.FrameValues(frames))

	switch kind {
	case protocol.FrameCountEcho:
		r.CountEcho = values[0]
	case protocol.FrameSubkey:
		r.Subkeys = values
	case protocol.FrameCiphertextEcho:
		r.CiphertextEchoes = append(r.CiphertextEchoes, values)
	case protocol.FrameDecryptedByte:
		r.Decrypted = append(r.Decrypted, values)
	case protocol.FrameDigest:
		r.Digest = values
	case protocol.FrameDebugFIFO:
		r.DebugFIFO = values
	}
}
