package literal

import (
	"regexp"
	"strings"
	"sync"
)

// Object is the top level of one object literal: keys mapped to their raw,
// undecoded value text. Nested objects and arrays stay raw until asked for.
type Object struct {
	// Raw is the text the object was parsed from.
	Raw string
	// Complete is false when the literal was unterminated; lookups then fall
	// back to a pattern search over Raw.
	Complete bool

	fields map[string]string
	keys   []string
}

// ParseObject scans the first {...} literal in s. Text before the opening brace and
// after its matching close is ignored. Lua-style "key = value" pairs are accepted
// alongside "key: value".
func ParseObject(s string) *Object {
	obj := &Object{Raw: s, fields: make(map[string]string)}

	start := strings.IndexByte(s, '{')
	if start < 0 {
		return obj
	}
	end, ok := Close(s, start)
	obj.Complete = ok
	body := s[start+1 : end]

	i := 0
	for i < len(body) {
		i = NextCode(body, i)
		if i >= len(body) {
			break
		}
		if body[i] == ',' {
			i++
			continue
		}

		key, after, ok := readKey(body, i)
		if !ok {
			i = valueEnd(body, i) + 1
			continue
		}
		j := NextCode(body, after)
		if j >= len(body) || (body[j] != ':' && body[j] != '=') {
			// Shorthand property or spread: nothing to record.
			i = valueEnd(body, j) + 1
			continue
		}
		j = NextCode(body, j+1)
		vend := valueEnd(body, j)
		value := strings.TrimSpace(body[j:vend])

		lk := strings.ToLower(key)
		if _, dup := obj.fields[lk]; !dup {
			obj.fields[lk] = value
			obj.keys = append(obj.keys, key)
		}
		i = vend + 1
	}
	return obj
}

// readKey reads an identifier, number or quoted key at body[i].
func readKey(body string, i int) (key string, after int, ok bool) {
	switch body[i] {
	case '"', '\'', '`':
		end := skipString(body, i)
		if end > len(body) || end-i < 2 {
			return "", i, false
		}
		return unescape(body[i+1 : end-1]), end, true
	case '[':
		// Computed key such as ["name"].
		end, closed := Close(body, i)
		if !closed {
			return "", i, false
		}
		inner := strings.TrimSpace(body[i+1 : end])
		if s, isStr := String(inner); isStr {
			return s, end + 1, true
		}
		return inner, end + 1, inner != ""
	}
	j := i
	for j < len(body) && isIdentByte(body[j]) {
		j++
	}
	if j == i {
		return "", i, false
	}
	return body[i:j], j, true
}

func isIdentByte(b byte) bool {
	return b == '_' || b == '$' || b >= 0x80 ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// valueEnd returns the index of the top-level ',' ending the value starting at i,
// or len(body).
func valueEnd(body string, i int) int {
	depth := 0
	for j := i; j < len(body); j++ {
		if skip := skipNonCode(body, j); skip > j {
			j = skip - 1
			continue
		}
		switch body[j] {
		case '{', '[', '(':
			depth++
		case '}', ']', ')':
			depth--
			if depth < 0 {
				return j
			}
		case ',':
			if depth == 0 {
				return j
			}
		}
	}
	return len(body)
}

// Keys returns the object's keys in source order.
func (o *Object) Keys() []string {
	return append([]string(nil), o.keys...)
}

// Has reports whether any of keys is present.
func (o *Object) Has(keys ...string) bool {
	_, ok := o.Get(keys...)
	return ok
}

// Get returns the raw value of the first key present, matching case-insensitively.
func (o *Object) Get(keys ...string) (string, bool) {
	for _, k := range keys {
		if v, ok := o.fields[strings.ToLower(k)]; ok {
			return v, true
		}
	}
	if o.Complete {
		return "", false
	}
	for _, k := range keys {
		if v, ok := Search(o.Raw, k); ok {
			return v, true
		}
	}
	return "", false
}

// String returns the first present key decoded as a quoted string.
func (o *Object) String(keys ...string) (string, bool) {
	v, ok := o.Get(keys...)
	if !ok {
		return "", false
	}
	return String(v)
}

// Text is like String but also accepts bare identifiers and numbers.
func (o *Object) Text(keys ...string) (string, bool) {
	v, ok := o.Get(keys...)
	if !ok {
		return "", false
	}
	if s, isStr := String(v); isStr {
		return s, true
	}
	if v == "" || strings.ContainsAny(v[:1], "[{(") {
		return "", false
	}
	return v, true
}

// Int returns the first present key decoded as an integer.
func (o *Object) Int(keys ...string) (int, bool) {
	v, ok := o.Get(keys...)
	if !ok {
		return 0, false
	}
	return Int(v)
}

// Float returns the first present key decoded as a number.
func (o *Object) Float(keys ...string) (float64, bool) {
	v, ok := o.Get(keys...)
	if !ok {
		return 0, false
	}
	return Float(v)
}

// Bool returns the first present key decoded as a boolean.
func (o *Object) Bool(keys ...string) (bool, bool) {
	v, ok := o.Get(keys...)
	if !ok {
		return false, false
	}
	return Bool(v)
}

// List returns the first present key decoded as an array of raw elements.
func (o *Object) List(keys ...string) ([]string, bool) {
	v, ok := o.Get(keys...)
	if !ok {
		return nil, false
	}
	return List(v)
}

// Ints returns the first present key decoded as an array of numbers.
func (o *Object) Ints(keys ...string) ([]int, bool) {
	v, ok := o.Get(keys...)
	if !ok {
		return nil, false
	}
	return Ints(v)
}

// Strings returns the first present key decoded as an array of strings.
func (o *Object) Strings(keys ...string) ([]string, bool) {
	v, ok := o.Get(keys...)
	if !ok {
		return nil, false
	}
	return Strings(v)
}

// Object returns the first present key parsed as a nested object.
func (o *Object) Object(keys ...string) (*Object, bool) {
	v, ok := o.Get(keys...)
	if !ok || !strings.HasPrefix(v, "{") {
		return nil, false
	}
	return ParseObject(v), true
}

var (
	searchMu    sync.Mutex
	searchCache = map[string]*regexp.Regexp{}
)

// Search finds "key: value" anywhere in raw and returns the raw value. It is the
// tolerant path for literals whose structure could not be scanned.
func Search(raw, key string) (string, bool) {
	re := keyPattern(key)
	for _, loc := range re.FindAllStringIndex(raw, -1) {
		if !InCode(raw, loc[1]-1) {
			continue
		}
		start := NextCode(raw, loc[1])
		end := valueEnd(raw, start)
		if v := strings.TrimSpace(raw[start:end]); v != "" {
			return v, true
		}
	}
	return "", false
}

func keyPattern(key string) *regexp.Regexp {
	searchMu.Lock()
	defer searchMu.Unlock()
	if re, ok := searchCache[key]; ok {
		return re
	}
	re := regexp.MustCompile(`(?i)(?:^|[^\w$.])["']?` + regexp.QuoteMeta(key) + `["']?\s*[:=]`)
	searchCache[key] = re
	return re
}
