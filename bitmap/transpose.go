package bitmap

// RowWidth is the width of one transposed row in bits.
const RowWidth = 128

// Padding returns the decoy padding parameters for n records: the number of
// transposed characters after which a row is padded, and the number of '1'
// characters appended at that point.
func Padding(n int) (paddingLength, remainder int) {
	remainder = RowWidth % n
	return RowWidth - remainder, remainder
}

// Transpose repacks gate records into RowWidth-character rows.
//
// The records are visited bit position by bit position. Positions a record
// does not have contribute '0'. The last row, when the positions do not split
// evenly into rows, is completed the same way: positions past RowWidth are
// absent from every record and contribute '0' until the row is padded.
func Transpose(records []string) ([]string, error) {
	n := len(records)
	if n == 0 {
		return nil, ErrNoRecords
	}
	if n > RowWidth {
		return nil, &TooManyRecordsError{Count: n}
	}
	if err := validateRecords(records); err != nil {
		return nil, err
	}

	paddingLength, remainder := Padding(n)

	rows := make([]string, 0, RowWidth/(paddingLength/n)+1)
	row := make([]byte, 0, RowWidth)

	for pos := 0; pos < RowWidth || len(row) > 0; pos++ {
		for _, rec := range records {
			if pos < len(rec) {
				row = append(row, rec[pos])
			} else {
				row = append(row, '0')
			}
		}

		if len(row) == paddingLength && remainder > 0 {
			for i := 0; i < remainder; i++ {
				row = append(row, '1')
			}
		}

		if len(row) == RowWidth {
			rows = append(rows, string(row))
			row = row[:0]
		}
	}

	return rows, nil
}

func validateRecords(records []string) error {
	for i, rec := range records {
		for j := 0; j < len(rec); j++ {
			if c := rec[j]; c != '0' && c != '1' {
				return &RecordFormatError{Line: i + 1, Column: j + 1, Char: c}
			}
		}
	}
	return nil
}
