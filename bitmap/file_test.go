package bitmap

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/moffa90/go-uartaes/vectors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRecords(t *testing.T) {
	records, err := ReadRecords(strings.NewReader("101 \r\n\n 0011\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"101", "", "0011"}, records)
}

func TestWriteRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRows(&buf, []string{"01", "10"}))
	assert.Equal(t, "01\n10\n", buf.String())
}

func TestTransposeFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "gates.txt")
	out := filepath.Join(dir, "rows.mem")
	require.NoError(t, os.WriteFile(in, []byte("1010\n0110\n1111\n"), 0o644))

	logger := &recordingLogger{}
	require.NoError(t, TransposeFile(in, out, WithLogger(logger)))

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(string(raw), "\n"))

	lines := strings.Split(strings.TrimSuffix(string(raw), "\n"), "\n")
	require.Len(t, lines, 4)
	for _, l := range lines {
		assert.Len(t, l, RowWidth)
	}
	assert.NotEmpty(t, logger.infoMsgs)

	// The rows are valid vector input.
	blocks, err := vectors.Parse(out)
	require.NoError(t, err)
	assert.Len(t, blocks, 4)
	assert.Equal(t, lines[0], vectors.FormatBlock(blocks[0]))
}

func TestTransposeFileErrors(t *testing.T) {
	dir := t.TempDir()

	err := TransposeFile(filepath.Join(dir, "missing.txt"), filepath.Join(dir, "out.mem"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open input")

	bad := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte("01\n2\n"), 0o644))
	err = TransposeFile(bad, filepath.Join(dir, "out.mem"))
	var fmtErr *RecordFormatError
	require.ErrorAs(t, err, &fmtErr)
	assert.Equal(t, 2, fmtErr.Line)

	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	err = TransposeFile(empty, filepath.Join(dir, "out.mem"))
	assert.ErrorIs(t, err, ErrNoRecords)
}
