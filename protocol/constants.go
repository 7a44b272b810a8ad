package protocol

// ProtocolVersion identifies the exchange sequence implemented by this package.
// The device has no version negotiation; this is informational only.
const ProtocolVersion = "1"

// Payload sizes.
const (
	// BlockSize is the AES block size handled by the design (128 bits)
	BlockSize = 16

	// KeySize is the AES-128 key size sent to the design
	KeySize = 16

	// BlockCountSize is the size of the block count written at session start
	BlockCountSize = 1

	// MaxBlockCount is the largest block count that fits the one-byte field
	MaxBlockCount = 255
)

// Response window sizes. The device sends exactly this many bytes per window.
const (
	// CountEchoWindowSize is the block count acknowledgement
	CountEchoWindowSize = 1

	// SubkeyWindowSize is one byte per key schedule round
	SubkeyWindowSize = 16

	// CiphertextEchoWindowSize is the per-block ciphertext acknowledgement
	CiphertextEchoWindowSize = 16

	// DecryptedWindowSize is the decrypted output for one block
	DecryptedWindowSize = 16

	// DigestWindowSize is the encrypted digest output
	DigestWindowSize = 16

	// DebugFIFOWindowSize is the debug FIFO dump (16 chunks of 7 bytes)
	DebugFIFOWindowSize = 112
)

// NoBlock is the block index carried by frames that do not belong to a block.
const NoBlock = -1
