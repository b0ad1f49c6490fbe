package catalog

import (
	"gamescript-extractor/internal/model"
)

// ProfileDims is the length of every stat profile vector.
const ProfileDims = 8

// Profile projects an entity onto a fixed-length numeric vector so entities of
// one kind can be compared by distance. Each kind fills the slots with its own
// stats; unused slots stay zero.
func Profile(e model.Entity) []float32 {
	v := make([]float32, ProfileDims)
	set := func(vals ...int) {
		for i, n := range vals {
			v[i] = float32(n)
		}
	}
	switch x := e.(type) {
	case model.Character:
		set(x.Level, x.MaxHP, x.Stats.Power, x.Stats.Speed, x.Stats.Intelligence,
			x.Stats.Stamina, x.Stats.Luck, x.Stats.WeaponPower+x.Stats.Armor)
	case model.Item:
		bonus := 0
		for _, b := range x.StatBonuses {
			bonus += b
		}
		set(int(x.Type), x.Power, x.Price, int(x.Rarity), x.Quantity,
			x.Effect.Strength, len(x.ExcludedJobs), bonus)
	case model.Spell:
		set(x.Power, x.MPCost, x.Level, flag(x.Element == "Healing"),
			flag(x.Target == "All Enemies" || x.Target == "All Allies"),
			flag(x.Target == "Single Ally" || x.Target == "All Allies"))
	case model.Monster:
		set(x.HP, x.Attack, x.Defense, x.Exp, x.Gold, len(x.Weaknesses), len(x.Resistances))
	case model.Map:
		set(x.Width, x.Height, x.EncounterRate, x.Width*x.Height)
	case model.Battle:
		set(len(x.Enemies), flag(x.Boss), flag(x.NoEscape))
	case model.NPC:
		set(x.X, x.Y, flag(x.Quest), len(x.Dialogue))
	}
	return v
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}
