package graph

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog/log"

	"gamescript-extractor/internal/model"
)

// Node labels per entity kind.
var labels = map[model.EntityType]string{
	model.KindCharacter: "Character",
	model.KindItem:      "Item",
	model.KindSpell:     "Spell",
	model.KindMonster:   "Monster",
	model.KindMap:       "Map",
	model.KindBattle:    "Battle",
	model.KindNPC:       "NPC",
}

// Relationship types.
const (
	RelFeatures  = "FEATURES"
	RelLocatedIn = "LOCATED_IN"
	RelEquips    = "EQUIPS"
)

// Label returns the node label for kind.
func Label(kind model.EntityType) (string, bool) {
	l, ok := labels[kind]
	return l, ok
}

// Relationship represents a directed edge between two entities of one source.
type Relationship struct {
	FromKind model.EntityType
	From     string
	RelType  string
	ToKind   model.EntityType
	To       string
}

// Relations derives the edges implied by a snapshot: battles feature their
// enemies, NPCs are located in their map and characters equip items. An
// equipment slot holds an index into the items of that slot's type.
func Relations(snap *model.Snapshot) []Relationship {
	var out []Relationship
	for _, b := range snap.Battles {
		seen := map[string]bool{}
		for _, e := range b.Enemies {
			if e == "" || seen[e] {
				continue
			}
			seen[e] = true
			out = append(out, Relationship{model.KindBattle, b.Name, RelFeatures, model.KindMonster, e})
		}
	}
	for _, n := range snap.NPCs {
		if n.Map != "" {
			out = append(out, Relationship{model.KindNPC, n.Name, RelLocatedIn, model.KindMap, n.Map})
		}
	}
	for _, c := range snap.Characters {
		slots := []struct {
			typ model.ItemType
			idx int
		}{
			{model.ItemWeapon, c.Equipment.Weapon},
			{model.ItemArmor, c.Equipment.Armor},
			{model.ItemHelmet, c.Equipment.Helmet},
			{model.ItemAccessory, c.Equipment.Accessory},
		}
		for _, s := range slots {
			if name, ok := itemAt(snap.Items, s.typ, s.idx); ok {
				out = append(out, Relationship{model.KindCharacter, c.Name, RelEquips, model.KindItem, name})
			}
		}
	}
	return out
}

func itemAt(items []model.Item, typ model.ItemType, idx int) (string, bool) {
	if idx < 0 {
		return "", false
	}
	n := 0
	for _, it := range items {
		if it.Type != typ {
			continue
		}
		if n == idx {
			return it.Name, true
		}
		n++
	}
	return "", false
}

// GraphBuilder publishes snapshots into the Neo4j graph.
type GraphBuilder struct {
	driver neo4j.DriverWithContext
}

// NewGraphBuilder creates a new graph builder.
func NewGraphBuilder(driver neo4j.DriverWithContext) *GraphBuilder {
	return &GraphBuilder{driver: driver}
}

// EnsureSchema creates one uniqueness constraint per entity label.
func (gb *GraphBuilder) EnsureSchema(ctx context.Context) error {
	session := gb.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	for _, kind := range model.AllKinds {
		stmt := fmt.Sprintf("CREATE CONSTRAINT IF NOT EXISTS FOR (n:%s) REQUIRE (n.source, n.name) IS UNIQUE", labels[kind])
		if _, err := session.Run(ctx, stmt, nil); err != nil {
			return fmt.Errorf("create constraint: %w", err)
		}
	}

	log.Info().Msg("Graph schema ensured")
	return nil
}

// Publish upserts every entity of snap as a node keyed by source hash and name,
// then links them. Failed relationships are logged and skipped.
func (gb *GraphBuilder) Publish(ctx context.Context, snap *model.Snapshot) (nodes, rels int, err error) {
	session := gb.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	for _, kind := range model.AllKinds {
		for _, e := range snap.Entities(kind) {
			payload, err := json.Marshal(e)
			if err != nil {
				return nodes, rels, fmt.Errorf("encode %s %q: %w", kind, e.EntityName(), err)
			}
			_, err = session.Run(ctx, fmt.Sprintf(`
				MERGE (n:%s {source: $source, name: $name})
				SET n.kind = $kind,
				    n.payload = $payload,
				    n.is_default = $is_default
			`, labels[kind]), map[string]any{
				"source":     snap.SourceHash,
				"name":       e.EntityName(),
				"kind":       string(kind),
				"payload":    string(payload),
				"is_default": snap.Defaults[kind],
			})
			if err != nil {
				return nodes, rels, fmt.Errorf("upsert %s %q: %w", kind, e.EntityName(), err)
			}
			nodes++
		}
	}
	log.Info().Int("nodes", nodes).Msg("Published entity nodes")

	for _, r := range Relations(snap) {
		_, err := session.Run(ctx, fmt.Sprintf(`
			MATCH (a:%s {source: $source, name: $from})
			MERGE (b:%s {source: $source, name: $to})
			MERGE (a)-[:%s]->(b)
		`, labels[r.FromKind], labels[r.ToKind], r.RelType), map[string]any{
			"source": snap.SourceHash,
			"from":   r.From,
			"to":     r.To,
		})
		if err != nil {
			log.Warn().Err(err).
				Str("from", r.From).
				Str("to", r.To).
				Str("rel", r.RelType).
				Msg("Failed to create relationship")
			continue
		}
		rels++
	}

	log.Info().Int("relationships", rels).Msg("Published entity relationships")
	return nodes, rels, nil
}
