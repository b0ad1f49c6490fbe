package classify

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadTable reads a YAML keyword file and overlays it on the defaults. Any
// section present in the file replaces the built-in section of the same name;
// absent sections keep their defaults. An empty path returns the defaults.
func LoadTable(path string) (*Table, error) {
	t := DefaultTable()
	if path == "" {
		return t, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keyword file: %w", err)
	}
	if err := t.Overlay(data); err != nil {
		return nil, fmt.Errorf("parse keyword file %s: %w", path, err)
	}
	return t, nil
}

// Overlay decodes YAML into t. Maps are merged key by key; lists are replaced.
func (t *Table) Overlay(data []byte) error {
	var over Table
	if err := yaml.Unmarshal(data, &over); err != nil {
		return err
	}

	for k, v := range over.Categories {
		t.Categories[k] = v
	}
	for k, v := range over.CategoryDefaults {
		t.CategoryDefaults[k] = v
	}
	for k, v := range over.Effects {
		t.Effects[NormalizeAction(k)] = v
	}
	for k, v := range over.StatAliases {
		t.StatAliases[k] = v
	}
	for k, v := range over.TilesetEncounters {
		t.TilesetEncounters[k] = v
	}

	replace(&t.ItemTypes, over.ItemTypes)
	replace(&t.SpellElements, over.SpellElements)
	replace(&t.SpellAreaKeywords, over.SpellAreaKeywords)
	replace(&t.SpellAllyKeywords, over.SpellAllyKeywords)
	replace(&t.MonsterAffinities, over.MonsterAffinities)
	replace(&t.MapTilesets, over.MapTilesets)
	replace(&t.BattleBackgrounds, over.BattleBackgrounds)
	replace(&t.BossKeywords, over.BossKeywords)
	replace(&t.NPCRoles, over.NPCRoles)
	replace(&t.QuestKeywords, over.QuestKeywords)
	return nil
}

func replace[T any](dst *[]T, src []T) {
	if src != nil {
		*dst = src
	}
}

// YAML renders the table in the format LoadTable accepts.
func (t *Table) YAML() ([]byte, error) {
	out, err := yaml.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("encode keyword table: %w", err)
	}
	return out, nil
}
