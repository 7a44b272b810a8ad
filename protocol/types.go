package protocol

import "fmt"

// Phase is a step of the session state machine. Phases run strictly in the
// declared order; there is no branching or retry.
type Phase uint8

const (
	PhaseInit Phase = iota
	PhaseSendBlockCount
	PhaseSendKey
	PhaseReceiveSubkeys
	PhaseSendCiphertext
	PhaseReceiveDecrypted
	PhaseReceiveDigest
	PhaseReceiveDebugFIFO
	PhaseComplete
)

var phaseNames = map[Phase]string{
	PhaseInit:             "init",
	PhaseSendBlockCount:   "send-block-count",
	PhaseSendKey:          "send-key",
	PhaseReceiveSubkeys:   "receive-subkeys",
	PhaseSendCiphertext:   "send-ciphertext",
	PhaseReceiveDecrypted: "receive-decrypted",
	PhaseReceiveDigest:    "receive-digest",
	PhaseReceiveDebugFIFO: "receive-debug-fifo",
	PhaseComplete:         "complete",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("phase(%d)", uint8(p))
}

// FrameKind tags a received byte with the meaning its window gives it.
type FrameKind uint8

const (
	FrameCountEcho FrameKind = iota
	FrameSubkey
	FrameCiphertextEcho
	FrameDecryptedByte
	FrameDigest
	FrameDebugFIFO
)

func (k FrameKind) String() string {
	switch k {
	case FrameCountEcho:
		return "count-echo"
	case FrameSubkey:
		return "subkey"
	case FrameCiphertextEcho:
		return "ciphertext-echo"
	case FrameDecryptedByte:
		return "decrypted"
	case FrameDigest:
		return "digest"
	case FrameDebugFIFO:
		return "debug-fifo"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// MarshalText encodes the kind by name.
func (k FrameKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Phase returns the phase during which frames of this kind are received.
func (k FrameKind) Phase() Phase {
	switch k {
	case FrameCountEcho:
		return PhaseSendBlockCount
	case FrameSubkey:
		return PhaseReceiveSubkeys
	case FrameCiphertextEcho:
		return PhaseSendCiphertext
	case FrameDecryptedByte:
		return PhaseReceiveDecrypted
	case FrameDigest:
		return PhaseReceiveDigest
	case FrameDebugFIFO:
		return PhaseReceiveDebugFIFO
	default:
		return PhaseInit
	}
}

// WindowSize returns the number of bytes the device sends for one window of
// the given kind, or 0 for an unknown kind.
func WindowSize(k FrameKind) int {
	switch k {
	case FrameCountEcho:
		return CountEchoWindowSize
	case FrameSubkey:
		return SubkeyWindowSize
	case FrameCiphertextEcho:
		return CiphertextEchoWindowSize
	case FrameDecryptedByte:
		return DecryptedWindowSize
	case FrameDigest:
		return DigestWindowSize
	case FrameDebugFIFO:
		return DebugFIFOWindowSize
	default:
		return 0
	}
}

// Frame is one byte received from the device.
type Frame struct {
	// Kind is the response variant
	Kind FrameKind

	// Phase is the session phase the byte was read in
	Phase Phase

	// Block is the vector block the byte belongs to, or NoBlock
	Block int

	// Index is the position of the byte within its window
	Index int

	// Value is the received byte
	Value byte
}

// Label returns a human-readable description of the frame position.
func (f Frame) Label() string {
	switch f.Kind {
	case FrameCountEcho:
		return "Block count echo"
	case FrameSubkey:
		return fmt.Sprintf("Subkey %d", f.Index)
	case FrameCiphertextEcho:
		return fmt.Sprintf("Ciphertext %d received for block %d", f.Index, f.Block)
	case FrameDecryptedByte:
		return fmt.Sprintf("Decrypted bitmap vector %d piece %d", f.Block, f.Index)
	case FrameDigest:
		return fmt.Sprintf("Encrypted SHAKE output %d", f.Index)
	case FrameDebugFIFO:
		return fmt.Sprintf("FIFO chunk output number %d", f.Index)
	default:
		return fmt.Sprintf("%s %d", f.Kind, f.Index)
	}
}

// Direction tells whether a step writes to or reads from the device.
type Direction uint8

const (
	DirWrite Direction = iota
	DirRead
)

func (d Direction) String() string {
	if d == DirWrite {
		return "write"
	}
	return "read"
}

// Step is one transfer in the session schedule.
type Step struct {
	Phase     Phase
	Direction Direction

	// Kind is the frame kind of a read step; unused for writes
	Kind FrameKind

	// Block is the block the step belongs to, or NoBlock
	Block int

	// Size is the number of bytes written or read
	Size int
}
