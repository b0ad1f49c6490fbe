package parser

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"gamescript-extractor/internal/cascade"
	"gamescript-extractor/internal/classify"
	"gamescript-extractor/internal/literal"
	"gamescript-extractor/internal/model"
)

// ErrDiscard is returned for a candidate without a usable name. Only that
// candidate is dropped.
var ErrDiscard = errors.New("record has no name")

var nameKeys = []string{"name", "nm", "title", "label"}

// Parser turns candidates into entities. It is safe for concurrent use; the
// keyword table is only read.
type Parser struct {
	table *classify.Table
}

// New returns a parser classifying with t, or the built-in table when t is nil.
func New(t *classify.Table) *Parser {
	if t == nil {
		t = classify.DefaultTable()
	}
	return &Parser{table: t}
}

// Table returns the keyword table in use.
func (p *Parser) Table() *classify.Table { return p.table }

// record is a candidate opened for field lookup.
type record struct {
	*literal.Object
	cand cascade.Candidate
	name string
}

func open(c cascade.Candidate) (*record, error) {
	obj := literal.ParseObject(c.Text)
	name, _ := obj.String(nameKeys...)
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%s record %d: %w", c.Strategy, c.Index, ErrDiscard)
	}
	return &record{Object: obj, cand: c, name: name}, nil
}

func (r *record) intOr(def int, keys ...string) int {
	if v, ok := r.Int(keys...); ok {
		return v
	}
	return def
}

func (r *record) textOr(def string, keys ...string) string {
	if v, ok := r.Text(keys...); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func (r *record) boolOr(def bool, keys ...string) bool {
	if v, ok := r.Bool(keys...); ok {
		return v
	}
	return def
}

// hints joins the record's string values other than its name, for keyword
// matching against descriptions and notes.
func (r *record) hints() string {
	var parts []string
	for _, s := range literal.Quoted(r.Raw) {
		if s != r.name {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// stats returns the nested stat block, if any.
func (r *record) stats() (*literal.Object, bool) {
	return r.Object.Object("st", "stats", "stat", "params", "param", "bonus", "bonuses")
}

// jobList decodes a list of job indices or job names.
func jobList(raw []string) []int {
	var out []int
	for _, el := range raw {
		if n, ok := literal.Int(el); ok {
			out = append(out, n)
			continue
		}
		name := el
		if s, ok := literal.String(el); ok {
			name = s
		}
		if idx, ok := model.JobIndex(name); ok {
			out = append(out, idx)
		}
	}
	return normalizeJobs(out)
}

// normalizeJobs sorts and de-duplicates job indices, dropping ones outside the
// job table. The result is never nil.
func normalizeJobs(jobs []int) []int {
	out := []int{}
	seen := make(map[int]bool, len(jobs))
	for _, j := range jobs {
		if j < 0 || j >= len(model.Jobs) || seen[j] {
			continue
		}
		seen[j] = true
		out = append(out, j)
	}
	sort.Ints(out)
	return out
}

// complement returns every job index not in allowed.
func complement(allowed []int) []int {
	in := make(map[int]bool, len(allowed))
	for _, j := range allowed {
		in[j] = true
	}
	out := []int{}
	for j := range model.Jobs {
		if !in[j] {
			out = append(out, j)
		}
	}
	return out
}

// slug lowercases s and joins its words with underscores.
func slug(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "_")
}

// All parses every candidate with fn. Discarded candidates are logged and
// counted; other errors are logged and skipped the same way so one bad record
// never stops its siblings.
func All[T any](kind model.EntityType, cands []cascade.Candidate, fn func(cascade.Candidate) (T, error)) (out []T, discarded int) {
	out = make([]T, 0, len(cands))
	for _, c := range cands {
		v, err := fn(c)
		if err != nil {
			discarded++
			log.Debug().Str("kind", string(kind)).Int("index", c.Index).Err(err).Msg("Record discarded")
			continue
		}
		out = append(out, v)
	}
	return out, discarded
}
