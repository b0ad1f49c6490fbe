// Package fallback holds the hand-authored datasets substituted for an entity
// type when extraction finds nothing. Every accessor returns a deep copy.
package fallback

import (
	"fmt"

	"gamescript-extractor/internal/model"
)

func equip(weapon, armor, helmet, accessory int) model.Equipment {
	return model.Equipment{Weapon: weapon, Armor: armor, Helmet: helmet, Accessory: accessory}
}

func job(idx int) model.Job { return model.Job{Index: idx, Name: model.JobName(idx)} }

var characters = []model.Character{
	{
		ID: 0, Name: "Fighter", Job: job(0), Level: 1, HP: 35, MaxHP: 35,
		Stats:     model.Stats{Power: 20, Speed: 5, Intelligence: 1, Stamina: 10, Luck: 5, WeaponPower: 10, Dexterity: 10, Armor: 4, Evasion: 53},
		Equipment: equip(0, 4, model.EmptySlot, model.EmptySlot),
		Sprite:    "warrior",
	},
	{
		ID: 1, Name: "Thief", Job: job(1), Level: 1, HP: 30, MaxHP: 30,
		Stats:     model.Stats{Power: 5, Speed: 10, Intelligence: 5, Stamina: 5, Luck: 15, WeaponPower: 5, Dexterity: 5, Armor: 2, Evasion: 58},
		Equipment: equip(1, 5, model.EmptySlot, model.EmptySlot),
		Sprite:    "thief",
	},
	{
		ID: 2, Name: "White Mage", Job: job(4), Level: 1, HP: 28, MaxHP: 28,
		MP:        [model.MPSlots]int{2},
		MaxMP:     [model.MPSlots]int{2},
		Stats:     model.Stats{Power: 5, Speed: 5, Intelligence: 15, Stamina: 10, Luck: 5, WeaponPower: 6, Dexterity: 5, Armor: 1, Evasion: 53},
		Equipment: equip(2, 5, model.EmptySlot, model.EmptySlot),
		Sprite:    "white_mage",
	},
	{
		ID: 3, Name: "Black Mage", Job: job(5), Level: 1, HP: 25, MaxHP: 25,
		MP:        [model.MPSlots]int{2},
		MaxMP:     [model.MPSlots]int{2},
		Stats:     model.Stats{Power: 1, Speed: 10, Intelligence: 20, Stamina: 1, Luck: 10, WeaponPower: 3, Dexterity: 5, Armor: 1, Evasion: 58},
		Equipment: equip(1, 5, model.EmptySlot, model.EmptySlot),
		Sprite:    "black_mage",
	},
}

func heal(amount int) model.Effect {
	return model.Effect{Target: "Single Ally", Type: "Restore HP", Strength: amount}
}

func cure(s model.StatusSet) model.Effect {
	return model.Effect{Target: "Single Ally", Type: "Cure Status", Status: s}
}

var items = []model.Item{
	{Name: "Broadsword", Type: model.ItemWeapon, Category: "Sword", Power: 15, Price: 200, Quantity: 1, Effect: model.NoEffect(), ExcludedJobs: []int{4, 5}},
	{Name: "Dagger", Type: model.ItemWeapon, Category: "Dagger", Power: 7, Price: 60, Quantity: 1, Effect: model.NoEffect(), ExcludedJobs: []int{}},
	{Name: "Oak Staff", Type: model.ItemWeapon, Category: "Staff", Power: 6, Price: 50, Quantity: 1, Effect: model.NoEffect(), ExcludedJobs: []int{}},
	{Name: "Silver Sword", Type: model.ItemWeapon, Category: "Sword", Power: 23, Price: 4000, Quantity: 1, Rarity: model.RarityUncommon, Effect: model.NoEffect(), ExcludedJobs: []int{1, 2, 4, 5}},
	{Name: "Leather Armor", Type: model.ItemArmor, Category: "Medium", Power: 4, Price: 50, Quantity: 1, Effect: model.NoEffect(), ExcludedJobs: []int{}},
	{Name: "Cloth Robe", Type: model.ItemArmor, Category: "Light", Power: 1, Price: 10, Quantity: 1, Effect: model.NoEffect(), ExcludedJobs: []int{}},
	{Name: "Leather Cap", Type: model.ItemHelmet, Category: "Hat", Power: 1, Price: 80, Quantity: 1, Effect: model.NoEffect(), ExcludedJobs: []int{}},
	{Name: "Buckler", Type: model.ItemShield, Category: "Buckler", Power: 2, Price: 2500, Quantity: 1, Rarity: model.RarityUncommon, Effect: model.NoEffect(), ExcludedJobs: []int{2, 3, 4, 5}},
	{Name: "Protect Ring", Type: model.ItemAccessory, Category: "Ring", Power: 8, Price: 20000, Quantity: 1, Rarity: model.RarityEpic, Effect: model.NoEffect(), ExcludedJobs: []int{}},
	{Name: "Potion", Type: model.ItemConsumable, Category: "Potion", Power: 30, Price: 60, Quantity: 1, Effect: heal(30), ExcludedJobs: []int{}},
	{Name: "Antidote", Type: model.ItemConsumable, Category: "Cure", Price: 75, Quantity: 1, Effect: cure(model.StatusPoison), ExcludedJobs: []int{}},
	{Name: "Tent", Type: model.ItemConsumable, Category: "Rest", Price: 75, Quantity: 1, Effect: model.Effect{Target: "All Allies", Type: "Full Restore"}, ExcludedJobs: []int{}},
	{Name: "Mystic Key", Type: model.ItemKey, Category: "Key", Quantity: 1, Rarity: model.RarityUnique, Effect: model.NoEffect(), ExcludedJobs: []int{}},
}

var spells = []model.Spell{
	{Name: "Fire", Element: "Fire", Power: 15, MPCost: 5, Target: "Single Enemy", Level: 1, Description: "Burns one enemy."},
	{Name: "Blizzard", Element: "Ice", Power: 15, MPCost: 5, Target: "Single Enemy", Level: 1, Description: "Freezes one enemy."},
	{Name: "Thunder", Element: "Lightning", Power: 15, MPCost: 5, Target: "Single Enemy", Level: 1, Description: "Strikes one enemy with lightning."},
	{Name: "Cure", Element: "Healing", Power: 16, MPCost: 4, Target: "Single Ally", Level: 1, Description: "Restores HP to one ally."},
	{Name: "Poisona", Element: "Healing", MPCost: 6, Target: "Single Ally", Level: 2, Description: "Cures poison."},
	{Name: "Sleep", Element: "None", MPCost: 8, Target: "All Enemies", Level: 1, Description: "Puts enemies to sleep."},
}

var monsters = []model.Monster{
	{Name: "Goblin", HP: 8, Attack: 4, Defense: 4, Exp: 6, Gold: 6, Sprite: "goblin", Weaknesses: []string{}, Resistances: []string{}},
	{Name: "Wolf", HP: 20, Attack: 8, Defense: 0, Exp: 24, Gold: 6, Sprite: "wolf", Weaknesses: []string{}, Resistances: []string{}},
	{Name: "Skeleton", HP: 10, Attack: 10, Defense: 10, Exp: 9, Gold: 3, Sprite: "skeleton", Weaknesses: []string{"Fire", "Holy"}, Resistances: []string{"Dark", "Poison"}},
	{Name: "Crazy Horse", HP: 64, Attack: 10, Defense: 2, Exp: 63, Gold: 15, Sprite: "crazy_horse", Weaknesses: []string{}, Resistances: []string{}},
	{Name: "Green Slime", HP: 24, Attack: 1, Defense: 255, Exp: 84, Gold: 20, Sprite: "green_slime", Weaknesses: []string{"Fire", "Ice"}, Resistances: []string{}},
	{Name: "Garland", HP: 106, Attack: 15, Defense: 10, Exp: 130, Gold: 250, Sprite: "garland", Weaknesses: []string{}, Resistances: []string{}},
}

var maps = []model.Map{
	{Name: "World Map", Width: 256, Height: 256, Tileset: "overworld", EncounterRate: 8},
	{Name: "Cornelia Town", Width: 64, Height: 64, Tileset: "town", EncounterRate: 0},
	{Name: "Cornelia Castle", Width: 64, Height: 64, Tileset: "castle", EncounterRate: 0},
	{Name: "Temple of Fiends", Width: 64, Height: 64, Tileset: "dungeon", EncounterRate: 12},
}

var battles = []model.Battle{
	{Name: "Goblin Pack", Enemies: []string{"Goblin", "Goblin", "Goblin"}, Background: "field"},
	{Name: "Wolf Den", Enemies: []string{"Wolf", "Wolf"}, Background: "forest"},
	{Name: "Temple Bones", Enemies: []string{"Skeleton", "Skeleton", "Green Slime"}, Background: "dungeon"},
	{Name: "Garland", Enemies: []string{"Garland"}, Background: "dungeon", Boss: true, NoEscape: true},
}

var npcs = []model.NPC{
	{ID: 0, Name: "King of Cornelia", Role: "Royalty", Dialogue: "Please rescue the princess from Garland!", Map: "Cornelia Castle", X: 32, Y: 8, Sprite: "king", Quest: true},
	{ID: 1, Name: "Innkeeper", Role: "Innkeeper", Dialogue: "Rest here for 30 gil?", Map: "Cornelia Town", X: 12, Y: 20, Sprite: "innkeeper"},
	{ID: 2, Name: "Weapon Shop Owner", Role: "Merchant", Dialogue: "Take a look at my wares.", Map: "Cornelia Town", X: 20, Y: 14, Sprite: "merchant"},
	{ID: 3, Name: "Castle Guard", Role: "Guard", Dialogue: "The king awaits you.", Map: "Cornelia Castle", X: 30, Y: 40, Sprite: "guard"},
	{ID: 4, Name: "Dancer", Role: "Villager", Dialogue: "Have you heard of the four crystals?", Map: "Cornelia Town", X: 40, Y: 30, Sprite: "dancer"},
}

// Characters returns the default party.
func Characters() []model.Character { return cloneAll(characters, model.Character.Clone) }

// Items returns the default inventory.
func Items() []model.Item { return cloneAll(items, model.Item.Clone) }

// Spells returns the default spell list. Fire comes first.
func Spells() []model.Spell { return cloneAll(spells, model.Spell.Clone) }

// Monsters returns the default bestiary.
func Monsters() []model.Monster { return cloneAll(monsters, model.Monster.Clone) }

// Maps returns the default maps.
func Maps() []model.Map { return cloneAll(maps, model.Map.Clone) }

// Battles returns the default encounters.
func Battles() []model.Battle { return cloneAll(battles, model.Battle.Clone) }

// NPCs returns the default townsfolk.
func NPCs() []model.NPC { return cloneAll(npcs, model.NPC.Clone) }

// For returns the default dataset of kind as entities.
func For(kind model.EntityType) ([]model.Entity, error) {
	switch kind {
	case model.KindCharacter:
		return model.AsEntities(Characters()), nil
	case model.KindItem:
		return model.AsEntities(Items()), nil
	case model.KindSpell:
		return model.AsEntities(Spells()), nil
	case model.KindMonster:
		return model.AsEntities(Monsters()), nil
	case model.KindMap:
		return model.AsEntities(Maps()), nil
	case model.KindBattle:
		return model.AsEntities(Battles()), nil
	case model.KindNPC:
		return model.AsEntities(NPCs()), nil
	}
	return nil, fmt.Errorf("no fallback dataset for %q", kind)
}

func cloneAll[T any](src []T, clone func(T) T) []T {
	out := make([]T, len(src))
	for i, v := range src {
		out[i] = clone(v)
	}
	return out
}
