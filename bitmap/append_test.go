package bitmap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	debugMsgs []string
	infoMsgs  []string
	errorMsgs []string
}

func (l *recordingLogger) Debug(msg string, kv ...interface{}) { l.debugMsgs = append(l.debugMsgs, msg) }
func (l *recordingLogger) Info(msg string, kv ...interface{})  { l.infoMsgs = append(l.infoMsgs, msg) }
func (l *recordingLogger) Error(msg string, kv ...interface{}) { l.errorMsgs = append(l.errorMsgs, msg) }

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestAppendValueToLineCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bitmap.txt")

	res, err := AppendValueToLine(path, 2, "x", 3)
	require.NoError(t, err)
	assert.Equal(t, Created, res)
	assert.Equal(t, "\nx\n\n", readFile(t, path))
}

func TestAppendValueToLineAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bitmap.txt")
	require.NoError(t, os.WriteFile(path, []byte("10\n  01  \n11"), 0o600))

	res, err := AppendValueToLine(path, 2, "1", 3)
	require.NoError(t, err)
	assert.Equal(t, Appended, res)
	assert.Equal(t, "10\n011\n11", readFile(t, path))

	res, err = AppendValueToLine(path, 3, "0", 3)
	require.NoError(t, err)
	assert.Equal(t, Appended, res)
	assert.Equal(t, "10\n011\n110\n", readFile(t, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestAppendValueToLineOutOfRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bitmap.txt")
	require.NoError(t, os.WriteFile(path, []byte("1\n0\n"), 0o644))

	logger := &recordingLogger{}
	res, err := AppendValueToLine(path, 5, "1", 5, WithLogger(logger))
	require.NoError(t, err)
	assert.Equal(t, LineMissing, res)
	assert.ErrorIs(t, res.Err(), ErrLineNotFound)
	assert.Equal(t, "1\n0\n", readFile(t, path), "file must be left unmodified")
	assert.Equal(t, []string{"line does not exist"}, logger.errorMsgs)

	res, err = AppendValueToLine(path, 0, "1", 5)
	require.NoError(t, err)
	assert.Equal(t, LineMissing, res)
}

func TestAppendValueToLineCreateOutOfRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bitmap.txt")

	_, err := AppendValueToLine(path, 4, "1", 3)
	var rangeErr *LineRangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, 4, rangeErr.Line)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestAppendGateStatusBuildsRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gates.txt")

	// Two passes over three gates.
	statuses := [][]bool{
		{true, false, true},
		{false, false, true},
	}
	for _, pass := range statuses {
		for gate, decoy := range pass {
			_, err := AppendGateStatus(path, gate+1, decoy, len(pass))
			require.NoError(t, err)
		}
	}

	assert.Equal(t, "10\n00\n11\n", readFile(t, path))

	records, err := ReadRecords(mustOpen(t, path))
	require.NoError(t, err)
	assert.Equal(t, []string{"10", "00", "11"}, records)
}

func TestResultString(t *testing.T) {
	assert.Equal(t, "appended", Appended.String())
	assert.Equal(t, "created", Created.String())
	assert.Equal(t, "line-missing", LineMissing.String())
	assert.Nil(t, Created.Err())
}

func mustOpen(t *testing.T, path string) *os.File {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}
