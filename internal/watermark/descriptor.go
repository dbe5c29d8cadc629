// Package watermark loads watermark descriptors: the expected ground truth of a
// watermarked executable, one descriptor per line of a key listing.
package watermark

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const fieldsPerLine = 5

// Descriptor identifies where, when and what to inspect for one watermark.
type Descriptor struct {
	Index      int    `json:"index"`       // 1-based position among loaded descriptors
	SourceLine int    `json:"source_line"` // line number in the listing
	Line       int    `json:"line"`
	Column     int    `json:"column"`
	HitCount   int    `json:"hit_count"`
	Variable   string `json:"variable"`
	Expected   int64  `json:"expected"`
}

// String renders the descriptor as a listing line.
func (d Descriptor) String() string {
	return fmt.Sprintf("%d %d %d %s %d", d.Line, d.Column, d.HitCount, d.Variable, d.Expected)
}

// Location returns "line:column".
func (d Descriptor) Location() string {
	return fmt.Sprintf("%d:%d", d.Line, d.Column)
}

// Validate checks the invariants of a descriptor built outside of Parse.
func (d Descriptor) Validate() error {
	switch {
	case d.Line < 1:
		return fmt.Errorf("%w: line must be >= 1, got %d", ErrMalformedDescriptor, d.Line)
	case d.Column < 1:
		return fmt.Errorf("%w: column must be >= 1, got %d", ErrMalformedDescriptor, d.Column)
	case d.HitCount < 1:
		return fmt.Errorf("%w: hit count must be >= 1, got %d", ErrMalformedDescriptor, d.HitCount)
	case !isIdentifier(d.Variable):
		return fmt.Errorf("%w: invalid variable name %q", ErrMalformedDescriptor, d.Variable)
	}
	return nil
}

// Load reads the descriptor listing at path.
func Load(path string) ([]Descriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open descriptor file %q: %w", path, err)
	}
	defer f.Close()

	descriptors, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load descriptor file %q: %w", path, err)
	}
	return descriptors, nil
}

// Parse reads descriptors from r. Blank lines and lines starting with '#' are ignored.
// Any malformed line aborts parsing; no partial set is returned.
func Parse(r io.Reader) ([]Descriptor, error) {
	var descriptors []Descriptor

	scanner := bufio.NewScanner(r)
	lineNr := 0
	for scanner.Scan() {
		lineNr++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		d, err := parseLine(lineNr, text)
		if err != nil {
			return nil, err
		}
		d.Index = len(descriptors) + 1
		descriptors = append(descriptors, d)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read descriptors: %w", err)
	}

	return descriptors, nil
}

func parseLine(lineNr int, text string) (Descriptor, error) {
	fields := strings.Fields(text)
	if len(fields) != fieldsPerLine {
		return Descriptor{}, malformed(lineNr, text, "expected %d fields, got %d", fieldsPerLine, len(fields))
	}

	var positions [3]int
	for i, name := range []string{"line", "column", "hit count"} {
		n, err := strconv.Atoi(fields[i])
		if err != nil {
			return Descriptor{}, malformed(lineNr, text, "%s %q is not an integer", name, fields[i])
		}
		if n < 1 {
			return Descriptor{}, malformed(lineNr, text, "%s must be >= 1, got %d", name, n)
		}
		positions[i] = n
	}

	variable := fields[3]
	if !isIdentifier(variable) {
		return Descriptor{}, malformed(lineNr, text, "invalid variable name %q", variable)
	}

	expected, err := strconv.ParseInt(fields[4], 10, 64)
	if err != nil {
		return Descriptor{}, malformed(lineNr, text, "expected value %q is not an integer", fields[4])
	}

	return Descriptor{
		SourceLine: lineNr,
		Line:       positions[0],
		Column:     positions[1],
		HitCount:   positions[2],
		Variable:   variable,
		Expected:   expected,
	}, nil
}

// Write writes descriptors in listing format, one per line.
func Write(w io.Writer, descriptors []Descriptor) error {
	bw := bufio.NewWriter(w)
	for _, d := range descriptors {
		if _, err := fmt.Fprintln(bw, d.String()); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// isIdentifier accepts C-like identifiers. Debugger commands are built from the
// name, so anything else would be able to inject extra commands.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
