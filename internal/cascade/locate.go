package cascade

import (
	"regexp"
	"strings"

	"gamescript-extractor/internal/literal"
)

// keyPattern matches `key: [`, `"key": [`, `key = [` (or the same with open)
// where key is not the tail of a longer identifier.
func keyPattern(key string, open byte) *regexp.Regexp {
	return regexp.MustCompile(`(?:^|[^\w$])["']?` + regexp.QuoteMeta(key) + `["']?\s*[:=]\s*` + regexp.QuoteMeta(string(open)))
}

// keyed builds a locator that captures, for each key, the bracketed value of its
// first occurrence in code that no foreign claim covers.
func keyed(open byte, keys []string, foreign *Claims) LocatorFunc {
	patterns := make([]*regexp.Regexp, len(keys))
	for i, k := range keys {
		patterns[i] = keyPattern(k, open)
	}
	return func(src string) []Container {
		spans := foreign.Spans(src)
		var out []Container
		for i, re := range patterns {
			if c, ok := firstContainer(src, re, spans); ok {
				c.Key = keys[i]
				out = append(out, c)
			}
		}
		return out
	}
}

func firstContainer(src string, re *regexp.Regexp, claimed []Span) (Container, bool) {
	for _, loc := range re.FindAllStringIndex(src, -1) {
		open := loc[1] - 1
		if !literal.InCode(src, open) || covered(claimed, open) {
			continue
		}
		end, ok := literal.Close(src, open)
		return Container{Body: src[open+1 : end], Offset: open, Complete: ok}, true
	}
	return Container{}, false
}

// KeyedArray locates `key: [ ... ]` containers.
func KeyedArray(keys ...string) LocatorFunc {
	return keyed('[', keys, nil)
}

// KeyedObject locates map-style `key: { id: {...}, ... }` containers. Lua
// tables used as lists (`key = { {...}, {...} }`) are matched as well.
func KeyedObject(keys ...string) LocatorFunc {
	return keyed('{', keys, nil)
}

// Signature locates the first array literal whose first record carries every
// required field. A field may list alternatives separated by "|", as in
// "price|buy".
func Signature(fields ...string) LocatorFunc {
	return signature(fields, nil)
}

func signature(fields []string, foreign *Claims) LocatorFunc {
	alts := make([][]string, len(fields))
	for i, f := range fields {
		alts[i] = strings.Split(f, "|")
	}
	return func(src string) []Container {
		spans := foreign.Spans(src)
		for _, open := range literal.Positions(src, '[') {
			if covered(spans, open) {
				continue
			}
			first := literal.NextCode(src, open+1)
			if first >= len(src) || src[first] != '{' {
				continue
			}
			obj := literal.ParseObject(src[first:])
			if !obj.Complete || !hasAll(obj, alts) {
				continue
			}
			end, ok := literal.Close(src, open)
			return []Container{{Body: src[open+1 : end], Offset: open, Complete: ok}}
		}
		return nil
	}
}

// Span is the extent of a container literal, from its opening bracket to its
// closing bracket inclusive.
type Span struct {
	Open, End int
}

// Contains reports whether pos lies within the span.
func (s Span) Contains(pos int) bool {
	return pos >= s.Open && pos <= s.End
}

func covered(spans []Span, pos int) bool {
	for _, s := range spans {
		if s.Contains(pos) {
			return true
		}
	}
	return false
}

// Claims finds the containers introduced by a set of identifiers. A locator
// for one kind skips any bracket inside a container claimed by another kind.
type Claims struct {
	re *regexp.Regexp
}

// NewClaims builds Claims for keys. A nil or keyless Claims claims nothing.
func NewClaims(keys ...string) *Claims {
	if len(keys) == 0 {
		return &Claims{}
	}
	quoted := make([]string, len(keys))
	for i, k := range keys {
		quoted[i] = regexp.QuoteMeta(k)
	}
	return &Claims{re: regexp.MustCompile(`(?:^|[^\w$])["']?(?:` + strings.Join(quoted, "|") + `)["']?\s*[:=]\s*[\[{]`)}
}

// Spans returns every claimed container in src, in source order.
func (c *Claims) Spans(src string) []Span {
	if c == nil || c.re == nil {
		return nil
	}
	var out []Span
	for _, loc := range c.re.FindAllStringIndex(src, -1) {
		open := loc[1] - 1
		if !literal.InCode(src, open) {
			continue
		}
		end, _ := literal.Close(src, open)
		out = append(out, Span{Open: open, End: end})
	}
	return out
}

func hasAll(obj *literal.Object, alts [][]string) bool {
	for _, keys := range alts {
		if !obj.Has(keys...) {
			return false
		}
	}
	return true
}

// SplitRecords returns each top-level {...} literal of the container. Bodies of
// unterminated containers go through SplitOnBoundary instead.
func SplitRecords(c Container) []string {
	if !c.Complete {
		return SplitOnBoundary(c)
	}
	return literal.Objects(c.Body)
}

// SplitOnBoundary cuts the body on `},{` boundaries and re-attaches the braces.
func SplitOnBoundary(c Container) []string {
	return literal.SplitBoundary(c.Body)
}
