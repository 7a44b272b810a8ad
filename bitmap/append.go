package bitmap

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// Result reports what AppendValueToLine did.
type Result int

const (
	// Appended means the value was concatenated to an existing line
	Appended Result = iota

	// Created means the file did not exist and was created
	Created

	// LineMissing means the line is past the end of the existing file and
	// nothing was written
	LineMissing
)

func (r Result) String() string {
	switch r {
	case Appended:
		return "appended"
	case Created:
		return "created"
	case LineMissing:
		return "line-missing"
	default:
		return fmt.Sprintf("result(%d)", int(r))
	}
}

// Err returns ErrLineNotFound for LineMissing and nil otherwise.
func (r Result) Err() error {
	if r == LineMissing {
		return ErrLineNotFound
	}
	return nil
}

// AppendValueToLine concatenates value to the 1-based line lineNumber of the
// file at path.
//
// If the file exists and has the line, only that line is rewritten: its
// surrounding whitespace is trimmed and value appended. If the file does not
// exist it is created with totalLines blank lines and the requested line set
// to value. If the file exists but is shorter than lineNumber the condition is
// logged, the file is left untouched and LineMissing is returned with a nil
// error.
func AppendValueToLine(path string, lineNumber int, value string, totalLines int, opts ...Option) (Result, error) {
	cfg := newConfig(opts)

	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return createWithValue(cfg, path, lineNumber, value, totalLines)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", path, err)
	}

	lines := splitLines(string(content))
	if lineNumber < 1 || lineNumber > len(lines) {
		cfg.logError("line does not exist",
			"path", path,
			"line", lineNumber,
			"lines", len(lines),
		)
		return LineMissing, nil
	}

	lines[lineNumber-1] = strings.TrimSpace(lines[lineNumber-1]) + value + "\n"

	if err := writeFilePreservingMode(path, []byte(strings.Join(lines, ""))); err != nil {
		return 0, err
	}

	cfg.logInfo("appended value", "path", path, "line", lineNumber, "value", value)
	return Appended, nil
}

// AppendGateStatus appends the status of one gate to its record: '1' for a
// decoy gate, '0' for an original gate.
func AppendGateStatus(path string, gate int, decoy bool, totalGates int, opts ...Option) (Result, error) {
	value := "0"
	if decoy {
		value = "1"
	}
	return AppendValueToLine(path, gate, value, totalGates, opts...)
}

func createWithValue(cfg Config, path string, lineNumber int, value string, totalLines int) (Result, error) {
	if lineNumber < 1 || lineNumber > totalLines {
		return 0, &LineRangeError{Line: lineNumber, TotalLines: totalLines}
	}

	lines := make([]string, totalLines)
	for i := range lines {
		lines[i] = "\n"
	}
	lines[lineNumber-1] = value + "\n"

	if err := os.WriteFile(path, []byte(strings.Join(lines, "")), 0o644); err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", path, err)
	}

	cfg.logInfo("created file", "path", path, "line", lineNumber, "value", value)
	return Created, nil
}

// splitLines splits content into lines that keep their terminators.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.SplitAfter(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func writeFilePreservingMode(path string, data []byte) error {
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, data, mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
