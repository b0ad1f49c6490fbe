package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog/log"
)

// GraphQuerier answers relationship questions about published sources.
type GraphQuerier struct {
	driver neo4j.DriverWithContext
}

// NewGraphQuerier creates a new graph querier.
func NewGraphQuerier(driver neo4j.DriverWithContext) *GraphQuerier {
	return &GraphQuerier{driver: driver}
}

// BattlesWith returns the names of the battles in a source that feature the
// named monster.
func (gq *GraphQuerier) BattlesWith(ctx context.Context, source, monster string) ([]string, error) {
	names, err := gq.names(ctx, `
		MATCH (b:Battle {source: $source})-[:`+RelFeatures+`]->(m:Monster {source: $source, name: $name})
		RETURN DISTINCT b.name AS name
		ORDER BY name
	`, source, monster)
	if err != nil {
		return nil, fmt.Errorf("query battles with %q: %w", monster, err)
	}
	log.Debug().Str("monster", monster).Int("battles", len(names)).Msg("Graph query complete")
	return names, nil
}

// NPCsOn returns the names of the NPCs placed on the named map.
func (gq *GraphQuerier) NPCsOn(ctx context.Context, source, mapName string) ([]string, error) {
	names, err := gq.names(ctx, `
		MATCH (n:NPC {source: $source})-[:`+RelLocatedIn+`]->(m:Map {source: $source, name: $name})
		RETURN DISTINCT n.name AS name
		ORDER BY name
	`, source, mapName)
	if err != nil {
		return nil, fmt.Errorf("query NPCs on %q: %w", mapName, err)
	}
	log.Debug().Str("map", mapName).Int("npcs", len(names)).Msg("Graph query complete")
	return names, nil
}

func (gq *GraphQuerier) names(ctx context.Context, cypher, source, name string) ([]string, error) {
	session := gq.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx, cypher, map[string]any{"source": source, "name": name})
	if err != nil {
		return nil, err
	}
	var out []string
	for result.Next(ctx) {
		v, _ := result.Record().Get("name")
		out = append(out, fmt.Sprintf("%v", v))
	}
	if err := result.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
