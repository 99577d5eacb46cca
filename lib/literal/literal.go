// Package literal provides a tolerant deserializer for the small literal
// grammar used in component declarations and inline attribute values:
// numbers, booleans, null, quoted strings, and JSON-like arrays and objects.
//
// The grammar is deliberately looser than JSON. Single-quoted strings are
// accepted anywhere JSON would require double quotes, and unquoted
// identifier keys are accepted inside objects. Everything is normalized to
// strict JSON before decoding so quote, escape, and bracket edge cases are
// handled in exactly one place.
package literal

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// ErrUnterminated is returned when a quoted string or bracketed group is
// opened but never closed.
var ErrUnterminated = errors.New("literal: unterminated literal")

// ErrEmpty is returned when Parse is given only whitespace.
var ErrEmpty = errors.New("literal: empty literal")

// Parse decodes a single literal. Supported forms:
//
//   - numbers: 42, -3.5, 1e3
//   - booleans: true, false
//   - null (decodes to nil)
//   - strings: "double", 'single', `backtick`
//   - arrays: [1, 'two', true]
//   - objects: { label: 'hi', count: 2 }
//
// Numbers decode to float64 and objects to map[string]any, matching
// encoding/json conventions.
func Parse(src string) (any, error) {
	s := strings.TrimSpace(src)
	if s == "" {
		return nil, ErrEmpty
	}

	switch s {
	case "true":
		return true, nil
	case "false":
		return false, nil
	case "null", "undefined":
		return nil, nil
	}

	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return n, nil
	}

	switch s[0] {
	case '"', '\'', '`':
		return parseQuoted(s)
	case '[', '{':
		normalized, err := normalize(s)
		if err != nil {
			return nil, err
		}
		var v any
		if err := json.Unmarshal([]byte(normalized), &v); err != nil {
			return nil, err
		}
		return v, nil
	}

	// Bare words fall back to their string form. This keeps the parser
	// tolerant of unquoted enum-like values (e.g. color names).
	return s, nil
}

// SplitTop splits src on top-level commas, ignoring commas nested inside
// quotes, parentheses, brackets, or braces. Empty segments are dropped.
func SplitTop(src string) []string {
	var (
		parts []string
		depth int
		start int
	)
	i := 0
	for i < len(src) {
		c := src[i]
		switch c {
		case '"', '\'', '`':
			end, ok := scanString(src, i)
			if !ok {
				// Unterminated string: treat the remainder as one segment.
				i = len(src)
				continue
			}
			i = end
			continue
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				if seg := strings.TrimSpace(src[start:i]); seg != "" {
					parts = append(parts, seg)
				}
				start = i + 1
			}
		}
		i++
	}
	if seg := strings.TrimSpace(src[start:]); seg != "" {
		parts = append(parts, seg)
	}
	return parts
}

// Balanced extracts the first balanced group delimited by open/close in src,
// respecting quoted strings. It returns the inner text (delimiters stripped)
// and the index just past the closing delimiter.
func Balanced(src string, open, close byte) (inner string, end int, err error) {
	start := -1
	depth := 0
	i := 0
	for i < len(src) {
		c := src[i]
		switch c {
		case '"', '\'', '`':
			next, ok := scanString(src, i)
			if !ok {
				return "", 0, ErrUnterminated
			}
			i = next
			continue
		case open:
			if depth == 0 {
				start = i
			}
			depth++
		case close:
			depth--
			if depth == 0 && start >= 0 {
				return src[start+1 : i], i + 1, nil
			}
		}
		i++
	}
	if start >= 0 {
		return "", 0, ErrUnterminated
	}
	return "", 0, errors.New("literal: no balanced group found")
}

// parseQuoted decodes a quoted string literal in any of the three quote
// styles. Escapes follow JSON rules for double quotes; single quotes and
// backticks only honor escaping of their own delimiter.
func parseQuoted(s string) (string, error) {
	if len(s) < 2 {
		return "", ErrUnterminated
	}
	quote := s[0]
	end, ok := scanString(s, 0)
	if !ok || end != len(s) {
		return "", ErrUnterminated
	}
	body := s[1 : len(s)-1]
	if quote == '"' {
		var out string
		if err := json.Unmarshal([]byte(s), &out); err != nil {
			return "", err
		}
		return out, nil
	}
	return strings.ReplaceAll(body, `\`+string(quote), string(quote)), nil
}

// scanString scans a quoted string starting at src[i] (which must be a quote
// character) and returns the index just past the closing quote.
func scanString(src string, i int) (int, bool) {
	quote := src[i]
	for j := i + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++
		case quote:
			return j + 1, true
		}
	}
	return 0, false
}

// normalize rewrites a tolerant array/object literal to strict JSON:
// single-quoted and backtick strings become double-quoted, and bare
// identifier keys are quoted.
func normalize(src string) (string, error) {
	var b strings.Builder
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == '"':
			end, ok := scanString(src, i)
			if !ok {
				return "", ErrUnterminated
			}
			b.WriteString(src[i:end])
			i = end
		case c == '\'' || c == '`':
			end, ok := scanString(src, i)
			if !ok {
				return "", ErrUnterminated
			}
			body, err := parseQuoted(src[i:end])
			if err != nil {
				return "", err
			}
			quoted, err := json.Marshal(body)
			if err != nil {
				return "", err
			}
			b.Write(quoted)
			i = end
		case isIdentStart(c):
			j := i
			for j < len(src) && isIdent(src[j]) {
				j++
			}
			word := src[i:j]
			if word == "true" || word == "false" || word == "null" {
				b.WriteString(word)
			} else {
				// Bare identifiers are quoted whether they appear in key
				// or value position.
				b.WriteString(strconv.Quote(word))
			}
			i = j
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String(), nil
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdent(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
