package protocol

import "fmt"

// BuildBlockCountCmd constructs the block count payload that opens a session.
//
// Payload structure:
//
//	[COUNT]
//
// The count is written as a single big-endian byte, so it must be 0-255.
func BuildBlockCountCmd(count int) ([]byte, error) {
	if count < 0 || count > MaxBlockCount {
		return nil, &BlockCountError{Count: count}
	}
	return []byte{byte(count)}, nil
}

// BuildKeyCmd constructs the key payload.
// The key must be exactly KeySize bytes.
//
// Payload structure:
//
//	[KEY(16)]
func BuildKeyCmd(key []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("key must be exactly %d bytes, got %d", KeySize, len(key))
	}

	cmd := make([]byte, KeySize)
	copy(cmd, key)
	return cmd, nil
}

// BuildCiphertextCmd constructs the payload carrying one encrypted block.
//
// Payload structure:
//
//	[CIPHERTEXT(16)]
func BuildCiphertextCmd(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) != BlockSize {
		return nil, fmt.Errorf("ciphertext must be exactly %d bytes, got %d", BlockSize, len(ciphertext))
	}

	cmd := make([]byte, BlockSize)
	copy(cmd, ciphertext)
	return cmd, nil
}

// Schedule returns the complete, ordered list of transfers for a session with
// the given number of blocks.
func Schedule(blocks int) ([]Step, error) {
	if blocks < 0 || blocks > MaxBlockCount {
		return nil, &BlockCountError{Count: blocks}
	}

	steps := make([]Step, 0, 7+3*blocks)

	steps = append(steps,
		Step{Phase: PhaseSendBlockCount, Direction: DirWrite, Block: NoBlock, Size: BlockCountSize},
		Step{Phase: PhaseSendBlockCount, Direction: DirRead, Kind: FrameCountEcho, Block: NoBlock, Size: CountEchoWindowSize},
		Step{Phase: PhaseSendKey, Direction: DirWrite, Block: NoBlock, Size: KeySize},
		Step{Phase: PhaseReceiveSubkeys, Direction: DirRead, Kind: FrameSubkey, Block: NoBlock, Size: SubkeyWindowSize},
	)

	for b := 0; b < blocks; b++ {
		steps = append(steps,
			Step{Phase: PhaseSendCiphertext, Direction: DirWrite, Block: b, Size: BlockSize},
			Step{Phase: PhaseSendCiphertext, Direction: DirRead, Kind: FrameCiphertextEcho, Block: b, Size: CiphertextEchoWindowSize},
		)
	}

	for b := 0; b < blocks; b++ {
		steps = append(steps,
			Step{Phase: PhaseReceiveDecrypted, Direction: DirRead, Kind: FrameDecryptedByte, Block: b, Size: DecryptedWindowSize},
		)
	}

	steps = append(steps,
		Step{Phase: PhaseReceiveDigest, Direction: DirRead, Kind: FrameDigest, Block: NoBlock, Size: DigestWindowSize},
		Step{Phase: PhaseReceiveDebugFIFO, Direction: DirRead, Kind: FrameDebugFIFO, Block: NoBlock, Size: DebugFIFOWindowSize},
	)

	return steps, nil
}

// Totals returns the number of bytes written and read by a schedule.
func Totals(steps []Step) (written, read int) {
	for _, s := range steps {
		if s.Direction == DirWrite {
			written += s.Size
		} else {
			read += s.Size
		}
	}
	return written, read
}
