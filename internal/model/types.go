package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// EntityType identifies one of the seven kinds of game data held in a script.
type EntityType string

const (
	KindCharacter EntityType = "character"
	KindItem      EntityType = "item"
	KindSpell     EntityType = "spell"
	KindMonster   EntityType = "monster"
	KindMap       EntityType = "map"
	KindBattle    EntityType = "battle"
	KindNPC       EntityType = "npc"
)

// AllKinds lists every entity type in the order reports and exports use.
var AllKinds = []EntityType{
	KindCharacter,
	KindItem,
	KindSpell,
	KindMonster,
	KindMap,
	KindBattle,
	KindNPC,
}

var kindAliases = map[string]EntityType{
	"character": KindCharacter, "characters": KindCharacter, "char": KindCharacter, "party": KindCharacter,
	"item": KindItem, "items": KindItem,
	"spell": KindSpell, "spells": KindSpell, "magic": KindSpell,
	"monster": KindMonster, "monsters": KindMonster, "enemy": KindMonster, "enemies": KindMonster,
	"map": KindMap, "maps": KindMap,
	"battle": KindBattle, "battles": KindBattle, "troop": KindBattle, "troops": KindBattle,
	"npc": KindNPC, "npcs": KindNPC,
}

// ParseKind resolves a user-supplied kind name, accepting plurals and a few aliases.
func ParseKind(s string) (EntityType, error) {
	if k, ok := kindAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return k, nil
	}
	return "", fmt.Errorf("unknown entity kind %q", s)
}

// Entity is implemented by every extracted record.
type Entity interface {
	EntityName() string
	Kind() EntityType
}

// ItemType is the broad equipment/usage class of an item.
type ItemType int

const (
	ItemWeapon ItemType = iota
	ItemArmor
	ItemHelmet
	ItemShield
	ItemAccessory
	ItemConsumable
	ItemKey
	ItemMisc
)

var itemTypeNames = []string{"Weapon", "Armor", "Helmet", "Shield", "Accessory", "Consumable", "KeyItem", "Misc"}

func (t ItemType) String() string {
	if t < 0 || int(t) >= len(itemTypeNames) {
		return "Misc"
	}
	return itemTypeNames[t]
}

// ItemTypes returns every item type in declaration order.
func ItemTypes() []ItemType {
	out := make([]ItemType, len(itemTypeNames))
	for i := range out {
		out[i] = ItemType(i)
	}
	return out
}

// ParseItemType matches a type name case-insensitively. A few script spellings
// ("key", "key_item", "use") are accepted.
func ParseItemType(s string) (ItemType, bool) {
	norm := strings.ToLower(strings.NewReplacer("_", "", " ", "", "-", "").Replace(s))
	switch norm {
	case "key", "keyitem", "important":
		return ItemKey, true
	case "use", "usable", "item", "consumable":
		return ItemConsumable, true
	case "helm", "helmet", "head":
		return ItemHelmet, true
	case "body", "armor", "armour":
		return ItemArmor, true
	}
	for i, name := range itemTypeNames {
		if strings.EqualFold(name, norm) {
			return ItemType(i), true
		}
	}
	return ItemMisc, false
}

func (t ItemType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *ItemType) UnmarshalText(b []byte) error {
	v, ok := ParseItemType(string(b))
	if !ok {
		return fmt.Errorf("unknown item type %q", b)
	}
	*t = v
	return nil
}

// Rarity is the item tier, ordered from most to least common.
type Rarity int

const (
	RarityCommon Rarity = iota
	RarityUncommon
	RarityRare
	RarityEpic
	RarityLegendary
	RarityUnique
)

var rarityNames = []string{"Common", "Uncommon", "Rare", "Epic", "Legendary", "Unique"}

func (r Rarity) String() string {
	if r < 0 || int(r) >= len(rarityNames) {
		return "Common"
	}
	return rarityNames[r]
}

// ParseRarity matches a rarity name case-insensitively.
func ParseRarity(s string) (Rarity, bool) {
	for i, name := range rarityNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return Rarity(i), true
		}
	}
	return RarityCommon, false
}

func (r Rarity) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *Rarity) UnmarshalText(b []byte) error {
	v, ok := ParseRarity(string(b))
	if !ok {
		return fmt.Errorf("unknown rarity %q", b)
	}
	*r = v
	return nil
}

// StatusSet is a bit set of status conditions.
type StatusSet uint16

const (
	StatusPoison StatusSet = 1 << iota
	StatusParalysis
	StatusSleep
	StatusSilence
	StatusBlind
	StatusStone
	StatusDeath
	StatusConfusion
)

var statusNames = []struct {
	flag StatusSet
	name string
}{
	{StatusPoison, "poison"},
	{StatusParalysis, "paralysis"},
	{StatusSleep, "sleep"},
	{StatusSilence, "silence"},
	{StatusBlind, "blind"},
	{StatusStone, "stone"},
	{StatusDeath, "death"},
	{StatusConfusion, "confusion"},
}

// Has reports whether every flag in f is set.
func (s StatusSet) Has(f StatusSet) bool { return f != 0 && s&f == f }

// Names returns the set flags in declaration order.
func (s StatusSet) Names() []string {
	names := []string{}
	for _, sn := range statusNames {
		if s&sn.flag != 0 {
			names = append(names, sn.name)
		}
	}
	return names
}

func (s StatusSet) String() string {
	if s == 0 {
		return "none"
	}
	return strings.Join(s.Names(), "|")
}

// ParseStatus maps a single status name to its flag.
func ParseStatus(name string) (StatusSet, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, sn := range statusNames {
		if sn.name == n {
			return sn.flag, true
		}
	}
	return 0, false
}

func (s StatusSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Names())
}

func (s *StatusSet) UnmarshalJSON(b []byte) error {
	var names []string
	if err := json.Unmarshal(b, &names); err != nil {
		return fmt.Errorf("decode status set: %w", err)
	}
	var out StatusSet
	for _, n := range names {
		f, ok := ParseStatus(n)
		if !ok {
			return fmt.Errorf("unknown status %q", n)
		}
		out |= f
	}
	*s = out
	return nil
}

func (s StatusSet) MarshalYAML() (any, error) {
	return s.Names(), nil
}
