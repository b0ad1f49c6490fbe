package parser

import (
	"gamescript-extractor/internal/cascade"
	"gamescript-extractor/internal/model"
)

// DefaultMonsterHP is the hit point total of a monster that does not declare one.
const DefaultMonsterHP = 10

// ParseMonster builds an enemy from one candidate. Explicit weakness or
// resistance lists replace the keyword-derived ones independently.
func (p *Parser) ParseMonster(c cascade.Candidate) (model.Monster, error) {
	r, err := open(c)
	if err != nil {
		return model.Monster{}, err
	}
	m := model.Monster{
		Name:    r.name,
		HP:      r.intOr(DefaultMonsterHP, "hp", "maxhp", "mhp"),
		Attack:  r.intOr(0, "attack", "atk", "str"),
		Defense: r.intOr(0, "defense", "def", "ap"),
		Exp:     r.intOr(0, "exp", "xp"),
		Gold:    r.intOr(0, "gold", "gil", "money"),
	}
	m.Sprite = r.textOr(slug(m.Name), "sprite", "img", "image", "graphic")

	m.Weaknesses, m.Resistances = p.table.Affinities(m.Name)
	if weak, ok := r.Strings("weak", "weakness", "weaknesses"); ok {
		m.Weaknesses = weak
	}
	if res, ok := r.Strings("resist", "resistance", "resistances", "res"); ok {
		m.Resistances = res
	}
	return m, nil
}
