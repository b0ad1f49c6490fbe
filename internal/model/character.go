package model

import "strings"

// MPSlots is the number of per-level spell charge slots a character carries.
const MPSlots = 8

// EmptySlot marks an unequipped equipment slot.
const EmptySlot = -1

// Jobs are the playable classes, indexed the way scripts reference them.
var Jobs = []string{"Warrior", "Thief", "Monk", "Red Mage", "White Mage", "Black Mage"}

// JobName returns the display name for a job index, or "Unknown".
func JobName(idx int) string {
	if idx < 0 || idx >= len(Jobs) {
		return "Unknown"
	}
	return Jobs[idx]
}

// JobIndex resolves a display name (case-insensitive, spaces optional) to its index.
func JobIndex(name string) (int, bool) {
	norm := strings.ReplaceAll(strings.ToLower(name), " ", "")
	for i, j := range Jobs {
		if strings.ReplaceAll(strings.ToLower(j), " ", "") == norm {
			return i, true
		}
	}
	return 0, false
}

// JobUsesMP reports whether the job casts spells. Non-casters keep all MP slots at zero.
func JobUsesMP(idx int) bool {
	return idx >= 3 && idx < len(Jobs)
}

// Job pairs a job index with its display name.
type Job struct {
	Index int    `json:"index" yaml:"index"`
	Name  string `json:"name" yaml:"name"`
}

// Stats is a character's attribute block.
type Stats struct {
	Power        int `json:"power" yaml:"power"`
	Speed        int `json:"speed" yaml:"speed"`
	Intelligence int `json:"intelligence" yaml:"intelligence"`
	Stamina      int `json:"stamina" yaml:"stamina"`
	Luck         int `json:"luck" yaml:"luck"`
	WeaponPower  int `json:"weapon_power" yaml:"weapon_power"`
	Dexterity    int `json:"dexterity" yaml:"dexterity"`
	Armor        int `json:"armor" yaml:"armor"`
	Evasion      int `json:"evasion" yaml:"evasion"`
}

// Equipment holds item references per slot; EmptySlot means nothing equipped.
type Equipment struct {
	Weapon    int `json:"weapon" yaml:"weapon"`
	Armor     int `json:"armor" yaml:"armor"`
	Helmet    int `json:"helmet" yaml:"helmet"`
	Accessory int `json:"accessory" yaml:"accessory"`
}

// EmptyEquipment returns a loadout with every slot empty.
func EmptyEquipment() Equipment {
	return Equipment{Weapon: EmptySlot, Armor: EmptySlot, Helmet: EmptySlot, Accessory: EmptySlot}
}

// Character is a party member.
type Character struct {
	ID        int          `json:"id" yaml:"id"`
	Name      string       `json:"name" yaml:"name"`
	Job       Job          `json:"job" yaml:"job"`
	Level     int          `json:"level" yaml:"level"`
	HP        int          `json:"hp" yaml:"hp"`
	MaxHP     int          `json:"max_hp" yaml:"max_hp"`
	MP        [MPSlots]int `json:"mp" yaml:"mp"`
	MaxMP     [MPSlots]int `json:"max_mp" yaml:"max_mp"`
	Stats     Stats        `json:"stats" yaml:"stats"`
	Equipment Equipment    `json:"equipment" yaml:"equipment"`
	Poisoned  bool         `json:"poisoned" yaml:"poisoned"`
	Paralyzed bool         `json:"paralyzed" yaml:"paralyzed"`
	Sprite    string       `json:"sprite" yaml:"sprite"`
}

func (c Character) EntityName() string { return c.Name }
func (c Character) Kind() EntityType   { return KindCharacter }

// Clone returns an independent copy. Character has no reference fields, so a value copy suffices.
func (c Character) Clone() Character { return c }
