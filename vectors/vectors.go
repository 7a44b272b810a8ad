package vectors

import "encoding/hex"

// Size constants for a vector block.
const (
	// BlockSize is the size of one block in bytes
	BlockSize = 16

	// BlockBits is the width of one block in bits
	BlockBits = BlockSize * 8
)

// Block is one 128-bit test vector in big-endian byte order.
type Block [BlockSize]byte

// Bytes returns the block as a freshly allocated slice.
func (b Block) Bytes() []byte {
	out := make([]byte, BlockSize)
	copy(out, b[:])
	return out
}

// String returns the block as lower-case hex.
func (b Block) String() string {
	return hex.EncodeToString(b[:])
}

// FormatBlock renders a block as a 128-character binary string, most
// significant bit first.
func FormatBlock(b Block) string {
	buf := make([]byte, BlockBits)
	for i := 0; i < BlockBits; i++ {
		if b[i/8]&(0x80>>(i%8)) != 0 {
			buf[i] = '1'
		} else {
			buf[i] = '0'
		}
	}
	return string(buf)
}
