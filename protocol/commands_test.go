package protocol

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildBlockCountCmd(t *testing.T) {
	tests := []struct {
		name    string
		count   int
		want    []byte
		wantErr bool
	}{
		{name: "zero blocks", count: 0, want: []byte{0x00}},
		{name: "two blocks", count: 2, want: []byte{0x02}},
		{name: "max blocks", count: 255, want: []byte{0xFF}},
		{name: "too many blocks", count: 256, wantErr: true},
		{name: "negative", count: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := BuildBlockCountCmd(tt.count)
			if tt.wantErr {
				var bcErr *BlockCountError
				require.ErrorAs(t, err, &bcErr)
				assert.Equal(t, tt.count, bcErr.Count)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cmd)
		})
	}
}

func TestBuildKeyCmd(t *testing.T) {
	tests := []struct {
		name    string
		key     []byte
		wantErr bool
		errMsg  string
	}{
		{
			name: "all-zero 16-byte key",
			key:  make([]byte, 16),
		},
		{
			name: "patterned 16-byte key",
			key:  []byte{0x2B, 0x7E, 0x15, 0x16, 0x28, 0xAE, 0xD2, 0xA6, 0xAB, 0xF7, 0x15, 0x88, 0x09, 0xCF, 0x4F, 0x3C},
		},
		{
			name:    "short key",
			key:     make([]byte, 15),
			wantErr: true,
			errMsg:  "key must be exactly 16 bytes",
		},
		{
			name:    "long key",
			key:     make([]byte, 32),
			wantErr: true,
			errMsg:  "key must be exactly 16 bytes",
		},
		{
			name:    "nil key",
			key:     nil,
			wantErr: true,
			errMsg:  "key must be exactly 16 bytes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := BuildKeyCmd(tt.key)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.True(t, bytes.Equal(tt.key, cmd))
		})
	}
}

func TestBuildKeyCmdCopiesKey(t *testing.T) {
	key := make([]byte, KeySize)
	cmd, err := BuildKeyCmd(key)
	require.NoError(t, err)

	key[0] = 0xFF
	assert.Equal(t, byte(0x00), cmd[0], "command must not alias the caller's key")
}

func TestBuildCiphertextCmd(t *testing.T) {
	_, err := BuildCiphertextCmd(make([]byte, 8))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ciphertext must be exactly 16 bytes")

	ct := bytes.Repeat([]byte{0xA5}, BlockSize)
	cmd, err := BuildCiphertextCmd(ct)
	require.NoError(t, err)
	assert.Equal(t, ct, cmd)
}

func TestScheduleTwoBlocks(t *testing.T) {
	steps, err := Schedule(2)
	require.NoError(t, err)

	written, read := Totals(steps)
	assert.Equal(t, 1+16+2*16, written)
	assert.Equal(t, 1+16+2*16+32+16+112, read)

	var writes []int
	for _, s := range steps {
		if s.Direction == DirWrite {
			writes = append(writes, s.Size)
		}
	}
	assert.Equal(t, []int{1, 16, 16, 16}, writes)
}

func TestScheduleOrder(t *testing.T) {
	steps, err := Schedule(2)
	require.NoError(t, err)

	type shape struct {
		phase Phase
		dir   Direction
		block int
		size  int
	}
	want := []shape{
		{PhaseSendBlockCount, DirWrite, NoBlock, 1},
		{PhaseSendBlockCount, DirRead, NoBlock, 1},
		{PhaseSendKey, DirWrite, NoBlock, 16},
		{PhaseReceiveSubkeys, DirRead, NoBlock, 16},
		{PhaseSendCiphertext, DirWrite, 0, 16},
		{PhaseSendCiphertext, DirRead, 0, 16},
		{PhaseSendCiphertext, DirWrite, 1, 16},
		{PhaseSendCiphertext, DirRead, 1, 16},
		{PhaseReceiveDecrypted, DirRead, 0, 16},
		{PhaseReceiveDecrypted, DirRead, 1, 16},
		{PhaseReceiveDigest, DirRead, NoBlock, 16},
		{PhaseReceiveDebugFIFO, DirRead, NoBlock, 112},
	}

	require.Len(t, steps, len(want))
	for i, s := range steps {
		got := shape{s.Phase, s.Direction, s.Block, s.Size}
		assert.Equal(t, want[i], got, "step %d", i)
	}
}

func TestScheduleNoBlocks(t *testing.T) {
	steps, err := Schedule(0)
	require.NoError(t, err)

	written, read := Totals(steps)
	assert.Equal(t, 17, written)
	assert.Equal(t, 1+16+16+112, read)
}

func TestScheduleRejectsLargeCounts(t *testing.T) {
	_, err := Schedule(MaxBlockCount + 1)
	var bcErr *BlockCountError
	require.ErrorAs(t, err, &bcErr)
	assert.Contains(t, err.Error(), "0-255")
}
