package engine

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// maxLineBytes bounds a single maze line; a few hundred cells per side fit easily
const maxLineBytes = 1 << 20

// Parse reads a maze in the text format and returns the validated character
// grid. The first problem found is reported as a *ParseError.
func Parse(r io.Reader) (RawGrid, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineBytes)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, readError(err, 1, ErrMalformedFormat)
		}
		return nil, &ParseError{Kind: ErrMalformedFormat, Line: 1, Detail: "missing dimensions header"}
	}

	rows, cols, err := parseHeader(trimCR(scanner.Text()))
	if err != nil {
		return nil, err
	}

	grid := make(RawGrid, 0, min(rows, 1024))
	lineNo := 1

	for len(grid) < rows && scanner.Scan() {
		lineNo++
		row := []rune(trimCR(scanner.Text()))

		// Row length is checked before characters
		if len(row) != cols {
			return nil, &ParseError{
				Kind:   ErrSizeMismatch,
				Line:   lineNo,
				Detail: fmt.Sprintf("row %d has %d characters, expected %d", len(grid)+1, len(row), cols),
			}
		}

		for i, ch := range row {
			if !IsValidRawChar(ch) {
				return nil, &ParseError{
					Kind:   ErrInvalidCharacter,
					Line:   lineNo,
					Column: i + 1,
					Detail: fmt.Sprintf("character %q is not one of '#', ' ', 'S', 'E', '.'", ch),
				}
			}
		}

		grid = append(grid, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, readError(err, lineNo+1, ErrSizeMismatch)
	}

	if len(grid) < rows {
		return nil, &ParseError{
			Kind:   ErrSizeMismatch,
			Line:   lineNo,
			Detail: fmt.Sprintf("found %d rows, expected %d", len(grid), rows),
		}
	}

	// Only blank lines may follow the last row
	for scanner.Scan() {
		lineNo++
		if trimCR(scanner.Text()) != "" {
			return nil, &ParseError{
				Kind:   ErrSizeMismatch,
				Line:   lineNo,
				Detail: fmt.Sprintf("unexpected content after %d rows", rows),
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, readError(err, lineNo+1, ErrSizeMismatch)
	}

	return grid, nil
}

// ParseString parses a maze held in memory
func ParseString(text string) (RawGrid, error) {
	return Parse(strings.NewReader(text))
}

// LoadFile opens and parses a maze file
func LoadFile(path string) (RawGrid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Kind: ErrNotFound, Detail: err.Error()}
	}
	defer f.Close()

	return Parse(f)
}

// IsValidRawChar reports whether ch may appear in a maze row
func IsValidRawChar(ch rune) bool {
	switch ch {
	case RawWall, RawOpen, RawStart, RawExit, RawReserved:
		return true
	}
	return false
}

// parseHeader validates the "<rows> <cols>" line
func parseHeader(line string) (int, int, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, &ParseError{
			Kind:   ErrMalformedFormat,
			Line:   1,
			Detail: fmt.Sprintf("expected \"<rows> <cols>\", got %d tokens", len(fields)),
		}
	}

	dims := make([]int, 2)
	for i, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil || n <= 0 {
			return 0, 0, &ParseError{
				Kind:   ErrMalformedFormat,
				Line:   1,
				Detail: fmt.Sprintf("dimension %q is not a positive integer", field),
			}
		}
		dims[i] = n
	}

	if dims[0]%2 == 0 || dims[1]%2 == 0 {
		return 0, 0, &ParseError{
			Kind:   ErrMalformedFormat,
			Line:   1,
			Detail: fmt.Sprintf("rows and columns must be odd, got %dx%d", dims[0], dims[1]),
		}
	}

	return dims[0], dims[1], nil
}

// readError classifies a scanner failure. A line over maxLineBytes is a
// content problem reported as tooLong at line; any other failure means the
// source could not be read.
func readError(err error, line int, tooLong error) error {
	if errors.Is(err, bufio.ErrTooLong) {
		return &ParseError{
			Kind:   tooLong,
			Line:   line,
			Detail: fmt.Sprintf("line is longer than %d bytes", maxLineBytes),
		}
	}
	return &ParseError{Kind: ErrNotFound, Detail: fmt.Sprintf("failed to read maze: %v", err)}
}

func trimCR(s string) string {
	return strings.TrimSuffix(s, "\r")
}
