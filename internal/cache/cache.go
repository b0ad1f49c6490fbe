package cache

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"gamescript-extractor/internal/model"
	"gamescript-extractor/internal/textutil"
)

// Backend persists snapshots beyond the life of the process.
type Backend interface {
	GetSnapshot(ctx context.Context, hash string) (*model.Snapshot, error)
	PutSnapshot(ctx context.Context, hash string, snap *model.Snapshot) error
}

// SnapshotCache provides in-memory + optional backend caching of extraction
// results, keyed by the hash of the script text.
type SnapshotCache struct {
	backend Backend
	mu      sync.RWMutex
	memory  map[string]*model.Snapshot
}

// NewSnapshotCache creates a cache. backend may be nil for a memory-only cache.
func NewSnapshotCache(backend Backend) *SnapshotCache {
	return &SnapshotCache{
		backend: backend,
		memory:  make(map[string]*model.Snapshot),
	}
}

// Key returns the cache key of a script: the hash the store reports for it.
func Key(src string) string {
	return textutil.Hash(textutil.StripBOM(src))
}

// Get returns a copy of the snapshot extracted from src, if cached.
func (c *SnapshotCache) Get(ctx context.Context, src string) (*model.Snapshot, bool) {
	hash := Key(src)

	c.mu.RLock()
	if snap, ok := c.memory[hash]; ok {
		c.mu.RUnlock()
		return cloneSnapshot(snap), true
	}
	c.mu.RUnlock()

	if c.backend == nil {
		return nil, false
	}
	snap, err := c.backend.GetSnapshot(ctx, hash)
	if err != nil || snap == nil {
		return nil, false
	}

	c.mu.Lock()
	c.memory[hash] = snap
	c.mu.Unlock()

	log.Debug().Str("hash", hash[:12]).Msg("Snapshot loaded from backend")
	return cloneSnapshot(snap), true
}

// Set stores the snapshot extracted from src in memory and in the backend.
func (c *SnapshotCache) Set(ctx context.Context, src string, snap *model.Snapshot) error {
	hash := Key(src)
	stored := cloneSnapshot(snap)

	c.mu.Lock()
	c.memory[hash] = stored
	c.mu.Unlock()

	if c.backend == nil {
		return nil
	}
	if err := c.backend.PutSnapshot(ctx, hash, stored); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Len returns the number of snapshots held in memory.
func (c *SnapshotCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.memory)
}

func cloneSnapshot(s *model.Snapshot) *model.Snapshot {
	out := &model.Snapshot{
		SourceHash: s.SourceHash,
		Characters: cloneAll(s.Characters, model.Character.Clone),
		Items:      cloneAll(s.Items, model.Item.Clone),
		Spells:     cloneAll(s.Spells, model.Spell.Clone),
		Monsters:   cloneAll(s.Monsters, model.Monster.Clone),
		Maps:       cloneAll(s.Maps, model.Map.Clone),
		Battles:    cloneAll(s.Battles, model.Battle.Clone),
		NPCs:       cloneAll(s.NPCs, model.NPC.Clone),
		Defaults:   make(map[model.EntityType]bool, len(s.Defaults)),
	}
	for k, v := range s.Defaults {
		out.Defaults[k] = v
	}
	return out
}

func cloneAll[T any](list []T, clone func(T) T) []T {
	if list == nil {
		return nil
	}
	out := make([]T, len(list))
	for i, v := range list {
		out[i] = clone(v)
	}
	return out
}
