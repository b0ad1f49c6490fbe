package literal

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// String decodes a quoted literal ("...", '...' or `...`).
func String(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if len(raw) < 2 {
		return "", false
	}
	q := raw[0]
	if (q != '"' && q != '\'' && q != '`') || raw[len(raw)-1] != q {
		return "", false
	}
	if skipString(raw, 0) != len(raw) {
		// Two adjacent literals or a concatenation.
		return "", false
	}
	if q == '`' {
		return raw[1 : len(raw)-1], true
	}
	return unescape(raw[1 : len(raw)-1]), true
}

// unescape resolves JS-style backslash escapes. Unknown escapes keep the escaped character.
func unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch != '\\' || i+1 >= len(s) {
			b.WriteByte(ch)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'u':
			if i+4 < len(s) {
				if r, err := strconv.ParseUint(s[i+1:i+5], 16, 32); err == nil {
					b.WriteRune(rune(r))
					i += 4
					continue
				}
			}
			b.WriteByte('u')
		case 'x':
			if i+2 < len(s) {
				if r, err := strconv.ParseUint(s[i+1:i+3], 16, 8); err == nil {
					var buf [utf8.UTFMax]byte
					n := utf8.EncodeRune(buf[:], rune(r))
					b.Write(buf[:n])
					i += 2
					continue
				}
			}
			b.WriteByte('x')
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// Float decodes a numeric literal. Quoted numbers and hex integers are accepted.
func Float(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if s, ok := String(raw); ok {
		raw = strings.TrimSpace(s)
	}
	if raw == "" {
		return 0, false
	}
	neg := false
	switch raw[0] {
	case '-':
		neg = true
		raw = strings.TrimSpace(raw[1:])
	case '+':
		raw = strings.TrimSpace(raw[1:])
	}
	var f float64
	if strings.HasPrefix(raw, "0x") || strings.HasPrefix(raw, "0X") {
		n, err := strconv.ParseInt(raw[2:], 16, 64)
		if err != nil {
			return 0, false
		}
		f = float64(n)
	} else {
		v, err := strconv.ParseFloat(strings.ReplaceAll(raw, "_", ""), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		f = v
	}
	if neg {
		f = -f
	}
	return f, true
}

// Int decodes a (possibly signed or fractional) numeric literal, truncating toward zero.
func Int(raw string) (int, bool) {
	f, ok := Float(raw)
	if !ok {
		return 0, false
	}
	return int(f), true
}

// Bool decodes true/false, minified !0/!1 and numeric 1/0.
func Bool(raw string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "!0", "1", `"true"`, "'true'":
		return true, true
	case "false", "!1", "0", `"false"`, "'false'", "null", "nil", "undefined":
		return false, true
	}
	return false, false
}

// List decodes an array literal into its raw top-level elements.
func List(raw string) ([]string, bool) {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "[") && !strings.HasPrefix(raw, "{") {
		return nil, false
	}
	end, _ := Close(raw, 0)
	body := raw[1:end]
	if raw[0] == '{' {
		// Lua tables double as arrays.
		if obj := ParseObject(raw); len(obj.keys) > 0 {
			return nil, false
		}
	}
	return Elements(body), true
}

// Ints decodes an array literal of numbers. Non-numeric elements are skipped.
func Ints(raw string) ([]int, bool) {
	els, ok := List(raw)
	if !ok {
		return nil, false
	}
	out := make([]int, 0, len(els))
	for _, el := range els {
		if n, isNum := Int(el); isNum {
			out = append(out, n)
		}
	}
	return out, true
}

// Strings decodes an array literal of strings. Bare identifiers and numbers are kept
// as text.
func Strings(raw string) ([]string, bool) {
	els, ok := List(raw)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(els))
	for _, el := range els {
		if s, isStr := String(el); isStr {
			out = append(out, s)
			continue
		}
		if el != "" && !strings.ContainsAny(el[:1], "[{(") {
			out = append(out, el)
		}
	}
	return out, true
}
