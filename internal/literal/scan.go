// Package literal scans object and array literals in script source without a
// full grammar. Every scanner is quote-aware (", ' and `), skips // and /* */
// comments, and tolerates unterminated input.
package literal

import "strings"

// closer maps an opening bracket to its closing partner.
var closer = map[byte]byte{'[': ']', '{': '}', '(': ')'}

// Close returns the index of the bracket matching s[open]. ok is false if s[open]
// is not an opening bracket or the literal runs off the end of s.
func Close(s string, open int) (end int, ok bool) {
	if open < 0 || open >= len(s) {
		return len(s), false
	}
	if _, isOpen := closer[s[open]]; !isOpen {
		return len(s), false
	}

	var stack []byte
	for i := open; i < len(s); i++ {
		if skip := skipNonCode(s, i); skip > i {
			i = skip - 1
			continue
		}
		ch := s[i]
		if c, isOpen := closer[ch]; isOpen {
			stack = append(stack, c)
			continue
		}
		if ch == ']' || ch == '}' || ch == ')' {
			if len(stack) == 0 || stack[len(stack)-1] != ch {
				// Mismatched closer: treat as noise.
				continue
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return i, true
			}
		}
	}
	return len(s), false
}

// skipNonCode returns the index just past a string literal or comment starting at i,
// or i itself when s[i] starts neither.
func skipNonCode(s string, i int) int {
	switch s[i] {
	case '"', '\'', '`':
		return skipString(s, i)
	case '/':
		if i+1 < len(s) {
			switch s[i+1] {
			case '/':
				if nl := strings.IndexByte(s[i:], '\n'); nl >= 0 {
					return i + nl + 1
				}
				return len(s)
			case '*':
				if end := strings.Index(s[i+2:], "*/"); end >= 0 {
					return i + 2 + end + 2
				}
				return len(s)
			}
		}
	}
	return i
}

// skipString returns the index just past the quoted literal starting at s[i].
func skipString(s string, i int) int {
	quote := s[i]
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case quote:
			return j + 1
		}
	}
	return len(s)
}

// Objects returns every top-level {...} literal in body, in order. An unterminated
// trailing object is returned as-is so callers can still salvage its fields.
func Objects(body string) []string {
	var out []string
	for i := 0; i < len(body); i++ {
		if skip := skipNonCode(body, i); skip > i {
			i = skip - 1
			continue
		}
		switch body[i] {
		case '{':
			end, ok := Close(body, i)
			if !ok {
				return append(out, body[i:])
			}
			out = append(out, body[i:end+1])
			i = end
		case '[', '(':
			// Nested arrays at the top level are not records.
			end, ok := Close(body, i)
			if !ok {
				return out
			}
			i = end
		}
	}
	return out
}

// SplitBoundary splits body on top-level "}" "," "{" boundaries and re-attaches the
// braces the split consumed, so each piece is an independently parseable literal.
// It works on truncated bodies where Objects would lose the tail.
func SplitBoundary(body string) []string {
	body = strings.TrimSpace(body)
	start := strings.IndexByte(body, '{')
	if start < 0 {
		return nil
	}
	body = body[start:]

	var parts []string
	depth := 0
	last := 0
	for i := 0; i < len(body); i++ {
		if skip := skipNonCode(body, i); skip > i {
			i = skip - 1
			continue
		}
		switch body[i] {
		case '{', '[', '(':
			depth++
		case '}', ']', ')':
			depth--
		case ',':
			if depth != 0 {
				continue
			}
			next := NextCode(body, i+1)
			if next < len(body) && body[next] == '{' {
				parts = append(parts, strings.TrimSpace(body[last:i]))
				last = next
				i = next - 1
			}
		}
	}
	if tail := strings.TrimSpace(body[last:]); tail != "" {
		parts = append(parts, tail)
	}

	out := parts[:0]
	for _, p := range parts {
		p = strings.TrimRight(p, ", \t\r\n")
		if !strings.HasPrefix(p, "{") {
			p = "{" + p
		}
		if _, ok := Close(p, 0); !ok {
			p += "}"
		}
		out = append(out, p)
	}
	return out
}

// Quoted returns the decoded contents of every string literal in s, skipping
// comments.
func Quoted(s string) []string {
	var out []string
	for i := 0; i < len(s); i++ {
		skip := skipNonCode(s, i)
		if skip == i {
			continue
		}
		if s[i] != '/' {
			if v, ok := String(s[i:skip]); ok {
				out = append(out, v)
			}
		}
		i = skip - 1
	}
	return out
}

// NextCode returns the index of the first character at or after i that is not
// whitespace or a comment.
func NextCode(s string, i int) int {
	for i < len(s) {
		switch s[i] {
		case ' ', '\t', '\r', '\n':
			i++
			continue
		case '/':
			if skip := skipNonCode(s, i); skip > i {
				i = skip
				continue
			}
		}
		return i
	}
	return i
}

// Elements splits the body of an array literal (without its brackets) into raw
// top-level elements.
func Elements(body string) []string {
	var out []string
	depth := 0
	last := 0
	for i := 0; i < len(body); i++ {
		if skip := skipNonCode(body, i); skip > i {
			i = skip - 1
			continue
		}
		switch body[i] {
		case '{', '[', '(':
			depth++
		case '}', ']', ')':
			depth--
		case ',':
			if depth == 0 {
				if el := strings.TrimSpace(body[last:i]); el != "" {
					out = append(out, el)
				}
				last = i + 1
			}
		}
	}
	if el := strings.TrimSpace(body[last:]); el != "" {
		out = append(out, el)
	}
	return out
}

// InCode reports whether s[idx] lies outside every string literal and comment.
func InCode(s string, idx int) bool {
	for i := 0; i < len(s) && i <= idx; i++ {
		if skip := skipNonCode(s, i); skip > i {
			if idx < skip {
				return false
			}
			i = skip - 1
		}
	}
	return idx >= 0 && idx < len(s)
}

// Positions returns the index of every occurrence of ch that lies in code.
func Positions(s string, ch byte) []int {
	var out []int
	for i := 0; i < len(s); i++ {
		if skip := skipNonCode(s, i); skip > i {
			i = skip - 1
			continue
		}
		if s[i] == ch {
			out = append(out, i)
		}
	}
	return out
}
