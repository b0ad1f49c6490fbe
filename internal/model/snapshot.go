package model

// Snapshot is a detached copy of everything a store holds after extraction.
type Snapshot struct {
	SourceHash string              `json:"source_hash" yaml:"source_hash"`
	Characters []Character         `json:"characters" yaml:"characters"`
	Items      []Item              `json:"items" yaml:"items"`
	Spells     []Spell             `json:"spells" yaml:"spells"`
	Monsters   []Monster           `json:"monsters" yaml:"monsters"`
	Maps       []Map               `json:"maps" yaml:"maps"`
	Battles    []Battle            `json:"battles" yaml:"battles"`
	NPCs       []NPC               `json:"npcs" yaml:"npcs"`
	Defaults   map[EntityType]bool `json:"defaults" yaml:"defaults"`
}

// Entities returns the records of one kind as the Entity interface.
func (s *Snapshot) Entities(kind EntityType) []Entity {
	switch kind {
	case KindCharacter:
		return AsEntities(s.Characters)
	case KindItem:
		return AsEntities(s.Items)
	case KindSpell:
		return AsEntities(s.Spells)
	case KindMonster:
		return AsEntities(s.Monsters)
	case KindMap:
		return AsEntities(s.Maps)
	case KindBattle:
		return AsEntities(s.Battles)
	case KindNPC:
		return AsEntities(s.NPCs)
	}
	return nil
}

// Count returns the number of records of one kind.
func (s *Snapshot) Count(kind EntityType) int {
	return len(s.Entities(kind))
}

// AsEntities widens a typed list to the Entity interface.
func AsEntities[T Entity](list []T) []Entity {
	out := make([]Entity, len(list))
	for i, e := range list {
		out[i] = e
	}
	return out
}
