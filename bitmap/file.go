package bitmap

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadRecords reads one gate record per line, trimming surrounding
// whitespace. Blank lines are kept as empty records since a record's line
// position is its identity.
func ReadRecords(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var records []string
	for scanner.Scan() {
		records = append(records, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}
	return records, nil
}

// WriteRows writes newline-terminated rows.
func WriteRows(w io.Writer, rows []string) error {
	bw := bufio.NewWriter(w)
	for _, row := range rows {
		if _, err := bw.WriteString(row); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// TransposeFile reads gate records from inputPath, transposes them and
// writes the rows to outputPath, replacing it.
func TransposeFile(inputPath, outputPath string, opts ...Option) (err error) {
	cfg := newConfig(opts)

	in, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	records, err := ReadRecords(in)
	_ = in.Close()
	if err != nil {
		return err
	}

	rows, err := Transpose(records)
	if err != nil {
		return fmt.Errorf("%s: %w", inputPath, err)
	}

	paddingLength, remainder := Padding(len(records))
	cfg.logDebug("transposed gate records",
		"records", len(records),
		"rows", len(rows),
		"padding_length", paddingLength,
		"remainder", remainder,
	)

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	if err := WriteRows(out, rows); err != nil {
		return fmt.Errorf("write %s: %w", outputPath, err)
	}

	cfg.logInfo("wrote bitmap rows", "path", outputPath, "rows", len(rows))
	return nil
}
