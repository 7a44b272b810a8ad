package bitmap

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// expectedChar returns the character record rec contributes at position pos.
func expectedChar(rec string, pos int) byte {
	if pos < len(rec) {
		return rec[pos]
	}
	return '0'
}

func randomRecords(rng *rand.Rand, n int) []string {
	records := make([]string, n)
	for i := range records {
		length := rng.Intn(RowWidth + 16)
		var sb strings.Builder
		for j := 0; j < length; j++ {
			if rng.Intn(2) == 1 {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
		records[i] = sb.String()
	}
	return records
}

func TestTransposeThreeRecords(t *testing.T) {
	rows, err := Transpose([]string{"1010", "0110", "1111"})
	require.NoError(t, err)

	require.Len(t, rows, 4)
	want := "101011111001" + strings.Repeat("0", 126-12) + "11"
	assert.Equal(t, want, rows[0])
	for _, row := range rows[1:] {
		assert.Equal(t, strings.Repeat("0", 126)+"11", row)
	}
}

func TestTransposeEvenDivisor(t *testing.T) {
	records := []string{
		strings.Repeat("0", 128),
		strings.Repeat("0", 128),
		strings.Repeat("0", 128),
		strings.Repeat("0", 128),
	}
	rows, err := Transpose(records)
	require.NoError(t, err)

	require.Len(t, rows, 4)
	for _, row := range rows {
		assert.Equal(t, strings.Repeat("0", 128), row, "no decoy padding when n divides 128")
	}
}

func TestTransposeSingleRecord(t *testing.T) {
	rec := strings.Repeat("10", 64)
	rows, err := Transpose([]string{rec})
	require.NoError(t, err)
	assert.Equal(t, []string{rec}, rows)
}

func TestTransposeShortRecordsPadWithZero(t *testing.T) {
	rows, err := Transpose([]string{"1", ""})
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "10"+strings.Repeat("0", 126), rows[0])
	assert.Equal(t, strings.Repeat("0", 128), rows[1])
}

func TestTransposeMaxRecords(t *testing.T) {
	records := make([]string, RowWidth)
	for i := range records {
		records[i] = "1"
	}
	rows, err := Transpose(records)
	require.NoError(t, err)

	require.Len(t, rows, RowWidth)
	assert.Equal(t, strings.Repeat("1", 128), rows[0])
	assert.Equal(t, strings.Repeat("0", 128), rows[1])
}

func TestTransposeErrors(t *testing.T) {
	_, err := Transpose(nil)
	assert.ErrorIs(t, err, ErrNoRecords)

	_, err = Transpose(make([]string, RowWidth+1))
	var tooMany *TooManyRecordsError
	require.ErrorAs(t, err, &tooMany)
	assert.Equal(t, RowWidth+1, tooMany.Count)

	_, err = Transpose([]string{"0101", "01x1"})
	var fmtErr *RecordFormatError
	require.ErrorAs(t, err, &fmtErr)
	assert.Equal(t, 2, fmtErr.Line)
	assert.Equal(t, 3, fmtErr.Column)
	assert.Contains(t, err.Error(), "line 2")
}

func TestTransposeProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for n := 1; n <= RowWidth; n++ {
		records := randomRecords(rng, n)
		rows, err := Transpose(records)
		require.NoError(t, err, "n=%d", n)

		paddingLength, remainder := Padding(n)
		perRow := paddingLength / n
		wantRows := (RowWidth + perRow - 1) / perRow
		require.Len(t, rows, wantRows, "n=%d", n)

		for r, row := range rows {
			require.Len(t, row, RowWidth, "n=%d row=%d", n, r)

			for j := 0; j < paddingLength; j++ {
				pos := r*perRow + j/n
				want := expectedChar(records[j%n], pos)
				if row[j] != want {
					t.Fatalf("n=%d row=%d col=%d: got %c, want %c", n, r, j, row[j], want)
				}
			}

			assert.Equal(t, strings.Repeat("1", remainder), row[paddingLength:], "n=%d row=%d", n, r)
		}
	}
}

func TestPadding(t *testing.T) {
	tests := []struct {
		n             int
		paddingLength int
		remainder     int
	}{
		{1, 128, 0},
		{3, 126, 2},
		{5, 125, 3},
		{16, 128, 0},
		{100, 100, 28},
		{128, 128, 0},
	}
	for _, tt := range tests {
		pl, rem := Padding(tt.n)
		assert.Equal(t, tt.paddingLength, pl, "n=%d", tt.n)
		assert.Equal(t, tt.remainder, rem, "n=%d", tt.n)
	}
}

func BenchmarkTranspose(b *testing.B) {
	records := randomRecords(rand.New(rand.NewSource(1)), 7)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Transpose(records)
	}
}
