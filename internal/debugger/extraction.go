package debugger

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind classifies an Extraction.
type Kind int

const (
	KindParseError Kind = iota
	KindValue
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindUnavailable:
		return "unavailable"
	default:
		return "parse-error"
	}
}

// Extraction is the value recovered from a debugger session.
// Value is meaningful for KindValue only, Err for KindParseError only.
type Extraction struct {
	Kind  Kind
	Value int64
	Raw   string
	Err   error
}

// Value returns a successful extraction.
func Value(n int64, raw string) Extraction {
	return Extraction{Kind: KindValue, Value: n, Raw: raw}
}

// Unavailable returns an extraction for a variable the debugger cannot show.
func Unavailable(raw string) Extraction {
	return Extraction{Kind: KindUnavailable, Raw: raw}
}

// ParseError returns a failed extraction. err is wrapped with ErrExtraction.
func ParseError(raw string, err error) Extraction {
	return Extraction{Kind: KindParseError, Raw: raw, Err: fmt.Errorf("%w: %v", ErrExtraction, err)}
}

// rawToken returns the text following the first occurrence of marker at or after
// from, up to the end of that line. ok is false when the marker is absent.
func rawToken(output, marker string, from int) (token string, ok bool) {
	idx := indexWord(output[from:], marker)
	if idx < 0 {
		return "", false
	}
	rest := output[from+idx+len(marker):]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[:nl]
	}
	return strings.TrimRight(rest, " \t\r"), true
}

// indexWord finds marker in s where it is not preceded by an identifier character,
// so "x = " does not match inside "max = ".
func indexWord(s, marker string) int {
	offset := 0
	for {
		idx := strings.Index(s[offset:], marker)
		if idx < 0 {
			return -1
		}
		pos := offset + idx
		if pos == 0 || !isIdentByte(s[pos-1]) || !isIdentByte(marker[0]) {
			return pos
		}
		offset = pos + 1
	}
}

func isIdentByte(b byte) bool {
	return b == '_' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

// parseInteger parses the textual rendering of an integer variable. Besides plain
// decimals it accepts hex (0x2a), a char literal ('*') and a decimal followed by a
// char rendering (42 '*').
func parseInteger(raw string) (int64, error) {
	token := strings.TrimSpace(raw)
	if token == "" {
		return 0, fmt.Errorf("empty value")
	}

	if n, err := strconv.ParseInt(token, 10, 64); err == nil {
		return n, nil
	}

	if fields := strings.Fields(token); len(fields) == 2 && strings.HasPrefix(fields[1], "'") {
		if n, err := strconv.ParseInt(fields[0], 10, 64); err == nil {
			return n, nil
		}
	}

	lower := strings.ToLower(token)
	if strings.HasPrefix(lower, "0x") || strings.HasPrefix(lower, "-0x") {
		if n, err := strconv.ParseInt(token, 0, 64); err == nil {
			return n, nil
		}
	}

	if strings.HasPrefix(token, "'") {
		s, err := strconv.Unquote(token)
		if err == nil && len(s) == 1 {
			return int64(s[0]), nil
		}
		if err == nil {
			r := []rune(s)
			if len(r) == 1 {
				return int64(r[0]), nil
			}
		}
	}

	return 0, fmt.Errorf("%q is not an integer", token)
}
