package parser

import (
	"gamescript-extractor/internal/cascade"
	"gamescript-extractor/internal/model"
)

// ParseSpell builds a spell from one candidate. Element and target fall back to
// name keywords; level stays 0 when absent.
func (p *Parser) ParseSpell(c cascade.Candidate) (model.Spell, error) {
	r, err := open(c)
	if err != nil {
		return model.Spell{}, err
	}
	sp := model.Spell{
		Name:        r.name,
		Power:       r.intOr(0, "power", "pow", "dmg", "damage", "heal", "base"),
		MPCost:      r.intOr(0, "mp", "mp_cost", "mpcost", "cost"),
		Level:       r.intOr(0, "level", "lv", "lvl", "tier"),
		Description: r.textOr("", "description", "desc", "help", "info"),
	}
	sp.Element = r.textOr(p.table.SpellElement(sp.Name), "element", "elem", "school")
	sp.Target = r.textOr(p.table.SpellTarget(sp.Name, sp.Element), "target", "tgt", "scope")
	if sp.Level < 0 {
		sp.Level = 0
	}
	return sp, nil
}
