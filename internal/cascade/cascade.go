// Package cascade locates record literals for one entity type by trying an
// ordered list of strategies against the source text. The first strategy that
// yields at least one candidate wins; later strategies are never consulted.
package cascade

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"gamescript-extractor/internal/model"
)

var (
	// ErrStrategyMiss means one strategy found no container or no records in it.
	ErrStrategyMiss = errors.New("strategy found no records")
	// ErrEmptyExtraction means every strategy for a type missed.
	ErrEmptyExtraction = errors.New("no records extracted")
)

// Container is a span of source text introduced by a known identifier.
type Container struct {
	// Key is the identifier that introduced the container, empty for signature matches.
	Key string
	// Body is the text between the container's brackets.
	Body string
	// Offset is the index of the opening bracket in the source.
	Offset int
	// Complete is false when the closing bracket was never found.
	Complete bool
}

// Candidate is the raw text of one record literal, before field parsing.
type Candidate struct {
	Text string
	// Container is the key of the container the record came from.
	Container string
	// Strategy names the strategy that produced the candidate.
	Strategy string
	// Index is the record's position within its container.
	Index int
}

// Locator finds containers in the source. Implementations return at most one
// container per identifier: the first occurrence.
type Locator interface {
	Locate(src string) []Container
}

// LocatorFunc adapts a function to Locator.
type LocatorFunc func(src string) []Container

func (f LocatorFunc) Locate(src string) []Container { return f(src) }

// Splitter cuts a container body into record literals.
type Splitter func(c Container) []string

// Strategy is one (locator, splitter) attempt.
type Strategy struct {
	Name   string
	Locate Locator
	Split  Splitter
}

// Apply runs the strategy. It returns ErrStrategyMiss when no container was
// found or none of the containers held a record.
func (s Strategy) Apply(src string) ([]Candidate, error) {
	containers := s.Locate.Locate(src)
	if len(containers) == 0 {
		return nil, fmt.Errorf("%s: no container: %w", s.Name, ErrStrategyMiss)
	}
	var out []Candidate
	for _, c := range containers {
		for i, text := range s.Split(c) {
			out = append(out, Candidate{Text: text, Container: c.Key, Strategy: s.Name, Index: i})
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s: %d empty container(s): %w", s.Name, len(containers), ErrStrategyMiss)
	}
	return out, nil
}

// Cascade is the ordered strategy table for one entity type.
type Cascade struct {
	Kind       model.EntityType
	Strategies []Strategy
}

// Run tries each strategy in order and returns the candidates of the first one
// that yields any. ErrEmptyExtraction is returned when all of them miss.
func (c *Cascade) Run(src string) ([]Candidate, error) {
	for _, s := range c.Strategies {
		cands, err := s.Apply(src)
		if err != nil {
			log.Debug().Str("kind", string(c.Kind)).Err(err).Msg("Strategy miss")
			continue
		}
		log.Debug().
			Str("kind", string(c.Kind)).
			Str("strategy", s.Name).
			Int("candidates", len(cands)).
			Msg("Strategy matched")
		return cands, nil
	}
	return nil, fmt.Errorf("%s: %d strategies tried: %w", c.Kind, len(c.Strategies), ErrEmptyExtraction)
}
