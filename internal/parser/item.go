package parser

import (
	"strings"

	"gamescript-extractor/internal/cascade"
	"gamescript-extractor/internal/classify"
	"gamescript-extractor/internal/literal"
	"gamescript-extractor/internal/model"
)

// DefaultQuantity is the stack size of an item that does not declare one.
const DefaultQuantity = 1

var (
	itemPowerKeys  = []string{"power", "pow", "atk", "attack"}
	itemPriceKeys  = []string{"price", "buy", "cost", "gold", "value"}
	itemActionKeys = []string{"effect", "action", "use", "fx"}
	excludedKeys   = []string{"ng", "excl", "exclude", "excluded", "excluded_jobs", "nouse", "no_jobs"}
	allowedKeys    = []string{"jobs", "equip", "usable", "usable_by"}
	// Stat block keys that carry an item's own power, tried in order.
	weaponPowerStats = []string{"wp", "atk", "attack"}
	armorPowerStats  = []string{"def", "ap", "arm", "armor"}
)

// ParseItem builds an item from one candidate.
func (p *Parser) ParseItem(c cascade.Candidate) (model.Item, error) {
	r, err := open(c)
	if err != nil {
		return model.Item{}, err
	}
	hints := r.hints()

	it := model.Item{
		Name:     r.name,
		Type:     p.itemType(r, hints),
		Quantity: r.intOr(DefaultQuantity, "quantity", "qty", "count", "num"),
		Price:    r.intOr(0, itemPriceKeys...),
	}
	it.Category = r.textOr("", "category", "cat", "subtype", "wtype", "atype")
	if it.Category == "" {
		it.Category = p.table.Category(it.Type, it.Name, hints)
	}

	powerStat := ""
	if v, ok := r.Int(itemPowerKeys...); ok {
		it.Power = v
	} else if st, ok := r.stats(); ok {
		for _, k := range append(append([]string{}, weaponPowerStats...), armorPowerStats...) {
			if v, ok := st.Int(k); ok {
				it.Power, powerStat = v, k
				break
			}
		}
	}

	it.Rarity = p.itemRarity(r, it)
	it.Effect = p.itemEffect(r, it.Power)
	it.ExcludedJobs = itemExcludedJobs(r)
	it.StatBonuses = p.statBonuses(r, powerStat)
	return it, nil
}

// itemType resolves the type from the container first, then an explicit field,
// then the keyword table.
func (p *Parser) itemType(r *record, hints string) model.ItemType {
	if t, ok := cascade.ItemContainers[r.cand.Container]; ok {
		return t
	}
	if v, ok := r.Text("type", "kind", "itype", "item_type"); ok {
		if n, isNum := literal.Int(v); isNum && n >= 0 && n < len(model.ItemTypes()) {
			return model.ItemType(n)
		}
		if t, known := model.ParseItemType(v); known {
			return t
		}
	}
	if t, ok := p.table.ItemType(r.name, hints); ok {
		return t
	}
	return model.ItemMisc
}

func (p *Parser) itemRarity(r *record, it model.Item) model.Rarity {
	if v, ok := r.Text("rarity", "rare", "tier"); ok {
		if n, isNum := literal.Int(v); isNum && n >= 0 && n <= int(model.RarityUnique) {
			return model.Rarity(n)
		}
		if rr, known := model.ParseRarity(v); known {
			return rr
		}
	}
	if it.Price > 0 {
		return classify.Rarity(it.Price)
	}
	return classify.Rarity(it.Power)
}

// itemEffect reads the action either as a bare identifier or as a nested
// {type, target, strength, status} object.
func (p *Parser) itemEffect(r *record, power int) model.Effect {
	strength := r.intOr(power, "strength", "amount", "heal", "restore")
	action, _ := r.Text(itemActionKeys...)
	var target string
	var status []string

	if obj, ok := r.Object.Object(itemActionKeys...); ok {
		action, _ = obj.Text("type", "action", "id", "name")
		if v, ok := obj.Int("strength", "power", "amount", "value"); ok {
			strength = v
		}
		target, _ = obj.Text("target", "tgt")
		status, _ = obj.Strings("status", "cures", "inflicts")
	}
	if action == "" {
		return model.NoEffect()
	}

	eff, _ := p.table.Effect(action, strength)
	if t, ok := r.Text("target", "tgt"); ok && target == "" {
		target = t
	}
	if target != "" {
		eff.Target = target
	}
	if status == nil {
		status, _ = r.Strings("status", "cures", "inflicts")
	}
	for _, s := range status {
		if f, ok := model.ParseStatus(s); ok {
			eff.Status |= f
		}
	}
	return eff
}

// itemExcludedJobs reads an explicit exclusion list, or the complement of an
// allowed-jobs list. Neither present means usable by every job.
func itemExcludedJobs(r *record) []int {
	if raw, ok := r.List(excludedKeys...); ok {
		return jobList(raw)
	}
	if raw, ok := r.List(allowedKeys...); ok {
		return complement(jobList(raw))
	}
	return []int{}
}

// statBonuses collects the stat block, minus the entry used as the item's power,
// under canonical stat names. Unknown stat keys are kept lowercased.
func (p *Parser) statBonuses(r *record, skip string) map[string]int {
	out := map[string]int{}
	st, ok := r.stats()
	if !ok {
		return out
	}
	for _, k := range st.Keys() {
		if strings.EqualFold(k, skip) {
			continue
		}
		v, isNum := st.Int(k)
		if !isNum {
			continue
		}
		name, known := p.table.StatName(k)
		if !known {
			name = strings.ToLower(k)
		}
		if _, dup := out[name]; !dup {
			out[name] = v
		}
	}
	return out
}
