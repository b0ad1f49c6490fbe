package model

import "slices"

// Spell is a castable ability.
type Spell struct {
	Name    string `json:"name" yaml:"name"`
	Element string `json:"element" yaml:"element"`
	Power   int    `json:"power" yaml:"power"`
	MPCost  int    `json:"mp_cost" yaml:"mp_cost"`
	Target  string `json:"target" yaml:"target"`
	// Level is the spell tier; 0 when the script does not say.
	Level       int    `json:"level,omitempty" yaml:"level,omitempty"`
	Description string `json:"description" yaml:"description"`
}

func (s Spell) EntityName() string { return s.Name }
func (s Spell) Kind() EntityType   { return KindSpell }
func (s Spell) Clone() Spell       { return s }

// Monster is an enemy definition.
type Monster struct {
	Name        string   `json:"name" yaml:"name"`
	HP          int      `json:"hp" yaml:"hp"`
	Attack      int      `json:"attack" yaml:"attack"`
	Defense     int      `json:"defense" yaml:"defense"`
	Exp         int      `json:"exp" yaml:"exp"`
	Gold        int      `json:"gold" yaml:"gold"`
	Sprite      string   `json:"sprite" yaml:"sprite"`
	Weaknesses  []string `json:"weaknesses" yaml:"weaknesses"`
	Resistances []string `json:"resistances" yaml:"resistances"`
}

func (m Monster) EntityName() string { return m.Name }
func (m Monster) Kind() EntityType   { return KindMonster }

func (m Monster) Clone() Monster {
	out := m
	out.Weaknesses = cloneStrings(m.Weaknesses)
	out.Resistances = cloneStrings(m.Resistances)
	return out
}

// Map is a field, town or dungeon floor.
type Map struct {
	Name          string `json:"name" yaml:"name"`
	Width         int    `json:"width" yaml:"width"`
	Height        int    `json:"height" yaml:"height"`
	Tileset       string `json:"tileset" yaml:"tileset"`
	EncounterRate int    `json:"encounter_rate" yaml:"encounter_rate"`
}

func (m Map) EntityName() string { return m.Name }
func (m Map) Kind() EntityType   { return KindMap }
func (m Map) Clone() Map         { return m }

// Battle is a fixed encounter: an ordered enemy line-up on a background.
type Battle struct {
	Name       string   `json:"name" yaml:"name"`
	Enemies    []string `json:"enemies" yaml:"enemies"`
	Background string   `json:"background" yaml:"background"`
	Boss       bool     `json:"boss" yaml:"boss"`
	NoEscape   bool     `json:"no_escape" yaml:"no_escape"`
}

func (b Battle) EntityName() string { return b.Name }
func (b Battle) Kind() EntityType   { return KindBattle }

func (b Battle) Clone() Battle {
	out := b
	out.Enemies = cloneStrings(b.Enemies)
	return out
}

// NPC is a non-player character placed on a map.
type NPC struct {
	ID       int    `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Role     string `json:"role" yaml:"role"`
	Dialogue string `json:"dialogue" yaml:"dialogue"`
	Map      string `json:"map" yaml:"map"`
	X        int    `json:"x" yaml:"x"`
	Y        int    `json:"y" yaml:"y"`
	Sprite   string `json:"sprite" yaml:"sprite"`
	Quest    bool   `json:"quest" yaml:"quest"`
}

func (n NPC) EntityName() string { return n.Name }
func (n NPC) Kind() EntityType   { return KindNPC }
func (n NPC) Clone() NPC         { return n }

func cloneStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return slices.Clone(s)
}
