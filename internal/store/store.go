// Package store holds the entities of one game script. A single extraction
// pass fills seven lists, one per entity type, and records which types fell
// back to their default dataset. Later edits go through the Update and Remove
// setters, which flag the store as changed.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"gamescript-extractor/internal/classify"
	"gamescript-extractor/internal/model"
	"gamescript-extractor/internal/parser"
	"gamescript-extractor/internal/textutil"
	"gamescript-extractor/internal/worker"
)

var (
	// ErrSourceUnreadable means the script could not be read. The store keeps its
	// previous contents.
	ErrSourceUnreadable = errors.New("source unreadable")
	// ErrNotFound means no entity of the requested type has that name.
	ErrNotFound = errors.New("entity not found")
	// ErrDuplicateName means an update would give two entities of one type the same name.
	ErrDuplicateName = errors.New("duplicate entity name")
)

// Store is safe for concurrent use.
type Store struct {
	parser  *parser.Parser
	workers int

	mu       sync.RWMutex
	path     string
	source   string
	hash     string
	data     lists
	defaults map[model.EntityType]bool
	changed  bool
}

// Option configures a Store.
type Option func(*Store)

// WithTable sets the keyword table used for classification.
func WithTable(t *classify.Table) Option {
	return func(s *Store) { s.parser = parser.New(t) }
}

// WithWorkers sets how many entity types are extracted concurrently.
func WithWorkers(n int) Option {
	return func(s *Store) { s.workers = n }
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		parser:   parser.New(nil),
		workers:  len(model.AllKinds),
		defaults: map[model.EntityType]bool{},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Load reads a script from disk and extracts it. On a read failure the store
// is left untouched and the error wraps ErrSourceUnreadable.
func (s *Store) Load(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnreadable, err)
	}
	rep := s.extract(string(data), path)
	return rep, nil
}

// LoadAndExtract runs one extraction pass over src and replaces the store's
// contents. The change flag is reset.
func (s *Store) LoadAndExtract(src string) *Report {
	return s.extract(src, "")
}

func (s *Store) extract(src, path string) *Report {
	start := time.Now()
	src = textutil.StripBOM(src)
	rep := &Report{Source: path, Hash: textutil.Hash(src), Bytes: len(src)}

	pool := worker.New(s.workers, extractKind(s.parser, src))
	var next lists
	defaults := make(map[model.EntityType]bool, len(model.AllKinds))
	for _, o := range pool.Run(context.Background(), model.AllKinds) {
		if o.Err != nil {
			// Only an unknown kind can fail; AllKinds has none.
			log.Error().Err(o.Err).Str("kind", string(o.Input)).Msg("Pipeline failed")
			continue
		}
		o.Value.assign(&next)
		defaults[o.Input] = o.Value.report.Default
		rep.Kinds = append(rep.Kinds, o.Value.report)
	}
	rep.Elapsed = time.Since(start)

	s.mu.Lock()
	s.path = path
	s.source = src
	s.hash = rep.Hash
	s.data = next
	s.defaults = defaults
	s.changed = false
	s.mu.Unlock()

	log.Info().
		Str("hash", rep.Hash[:12]).
		Int("bytes", rep.Bytes).
		Int("defaulted", len(rep.Defaults())).
		Dur("elapsed", rep.Elapsed).
		Msg("Extraction complete")
	return rep
}

// Path returns the file the store was loaded from, if any.
func (s *Store) Path() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.path
}

// Hash returns the SHA-256 of the extracted source.
func (s *Store) Hash() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hash
}

// IsDefault reports whether kind holds its default dataset because extraction
// found nothing.
func (s *Store) IsDefault(kind model.EntityType) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.defaults[kind]
}

// MarkChanged records an external edit.
func (s *Store) MarkChanged() {
	s.mu.Lock()
	s.changed = true
	s.mu.Unlock()
}

// HasChanges reports whether anything was edited since the last load or save.
func (s *Store) HasChanges() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.changed
}

// Snapshot returns a deep copy of everything the store holds.
func (s *Store) Snapshot() *model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	defaults := make(map[model.EntityType]bool, len(s.defaults))
	for k, v := range s.defaults {
		defaults[k] = v
	}
	return &model.Snapshot{
		SourceHash: s.hash,
		Characters: cloneList(s.data.characters, model.Character.Clone),
		Items:      cloneList(s.data.items, model.Item.Clone),
		Spells:     cloneList(s.data.spells, model.Spell.Clone),
		Monsters:   cloneList(s.data.monsters, model.Monster.Clone),
		Maps:       cloneList(s.data.maps, model.Map.Clone),
		Battles:    cloneList(s.data.battles, model.Battle.Clone),
		NPCs:       cloneList(s.data.npcs, model.NPC.Clone),
		Defaults:   defaults,
	}
}

// Lookup finds an entity by type and exact name.
func (s *Store) Lookup(kind model.EntityType, name string) (model.Entity, error) {
	switch kind {
	case model.KindCharacter:
		return unwrap(s.Character(name))
	case model.KindItem:
		return unwrap(s.Item(name))
	case model.KindSpell:
		return unwrap(s.Spell(name))
	case model.KindMonster:
		return unwrap(s.Monster(name))
	case model.KindMap:
		return unwrap(s.Map(name))
	case model.KindBattle:
		return unwrap(s.Battle(name))
	case model.KindNPC:
		return unwrap(s.NPC(name))
	}
	return nil, fmt.Errorf("lookup %q in unknown kind %q: %w", name, kind, ErrNotFound)
}

func unwrap[T model.Entity](v T, err error) (model.Entity, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Entities returns a copy of one type's list as entities.
func (s *Store) Entities(kind model.EntityType) []model.Entity {
	return s.Snapshot().Entities(kind)
}
