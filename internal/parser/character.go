package parser

import (
	"gamescript-extractor/internal/cascade"
	"gamescript-extractor/internal/literal"
	"gamescript-extractor/internal/model"
)

// Field defaults for characters.
const (
	DefaultLevel = 1
	DefaultHP    = 30
)

// ParseCharacter builds a party member from one candidate.
func (p *Parser) ParseCharacter(c cascade.Candidate) (model.Character, error) {
	r, err := open(c)
	if err != nil {
		return model.Character{}, err
	}

	ch := model.Character{
		ID:        r.intOr(c.Index, "id", "idx", "index"),
		Name:      r.name,
		Level:     r.intOr(DefaultLevel, "level", "lv", "lvl"),
		Equipment: characterEquipment(r),
	}
	if ch.Level < 1 {
		ch.Level = DefaultLevel
	}

	job := characterJob(r)
	ch.Job = model.Job{Index: job, Name: model.JobName(job)}

	hp, hasHP := r.Int("hp", "curhp", "hp_now")
	maxHP, hasMax := r.Int("maxhp", "max_hp", "mhp", "hpmax")
	switch {
	case hasHP && hasMax:
		ch.HP, ch.MaxHP = hp, maxHP
	case hasHP:
		ch.HP, ch.MaxHP = hp, hp
	case hasMax:
		ch.HP, ch.MaxHP = maxHP, maxHP
	default:
		ch.HP, ch.MaxHP = DefaultHP, DefaultHP
	}

	if model.JobUsesMP(job) {
		ch.MP = mpSlots(r, "mp", "charges")
		ch.MaxMP = ch.MP
		if _, ok := r.Get("maxmp", "max_mp", "mpmax"); ok {
			ch.MaxMP = mpSlots(r, "maxmp", "max_mp", "mpmax")
		}
	}

	ch.Stats = p.characterStats(r)
	ch.Poisoned = r.boolOr(false, "poisoned", "poison", "psn")
	ch.Paralyzed = r.boolOr(false, "paralyzed", "paralysis", "para", "stun")
	if status, ok := r.Strings("status", "conditions"); ok {
		for _, s := range status {
			f, _ := model.ParseStatus(s)
			ch.Poisoned = ch.Poisoned || f == model.StatusPoison
			ch.Paralyzed = ch.Paralyzed || f == model.StatusParalysis
		}
	}
	ch.Sprite = r.textOr(slug(ch.Job.Name), "sprite", "img", "image", "graphic", "charset")
	return ch, nil
}

// characterJob accepts a job index or a job name. Unknown jobs fall back to 0.
func characterJob(r *record) int {
	v, ok := r.Text("job", "class", "jobid", "job_id")
	if !ok {
		return 0
	}
	if n, isNum := literal.Int(v); isNum {
		if n >= 0 && n < len(model.Jobs) {
			return n
		}
		return 0
	}
	if idx, known := model.JobIndex(v); known {
		return idx
	}
	return 0
}

// mpSlots reads per-level spell charges: either a list filling the slots in
// order or a single number for the first slot.
func mpSlots(r *record, keys ...string) [model.MPSlots]int {
	var out [model.MPSlots]int
	if list, ok := r.Ints(keys...); ok {
		copy(out[:], list)
		return out
	}
	if n, ok := r.Int(keys...); ok {
		out[0] = n
	}
	return out
}

func characterEquipment(r *record) model.Equipment {
	eq := model.EmptyEquipment()
	obj, ok := r.Object.Object("eq", "equip", "equipment", "gear")
	if !ok {
		return eq
	}
	slot := func(def int, keys ...string) int {
		if v, ok := obj.Int(keys...); ok {
			return v
		}
		return def
	}
	eq.Weapon = slot(model.EmptySlot, "weapon", "wep", "w")
	eq.Armor = slot(model.EmptySlot, "armor", "arm", "body")
	eq.Helmet = slot(model.EmptySlot, "helmet", "hlm", "head")
	eq.Accessory = slot(model.EmptySlot, "accessory", "acc")
	return eq
}

// characterStats reads stats through the table's stat aliases: top-level keys
// first, then the nested stat block, which wins on conflict.
func (p *Parser) characterStats(r *record) model.Stats {
	values := map[string]int{}
	collect := func(obj *literal.Object, skip map[string]bool) {
		for _, k := range obj.Keys() {
			if skip[k] {
				continue
			}
			name, known := p.table.StatName(k)
			if !known {
				continue
			}
			if v, ok := obj.Int(k); ok {
				values[name] = v
			}
		}
	}
	// Top-level "acc" and "arm" name equipment slots on characters.
	collect(r.Object, map[string]bool{"acc": true, "arm": true})
	if st, ok := r.stats(); ok {
		collect(st, nil)
	}
	return model.Stats{
		Power:        values["power"],
		Speed:        values["speed"],
		Intelligence: values["intelligence"],
		Stamina:      values["stamina"],
		Luck:         values["luck"],
		WeaponPower:  values["weapon_power"],
		Dexterity:    values["dexterity"],
		Armor:        values["armor"],
		Evasion:      values["evasion"],
	}
}
