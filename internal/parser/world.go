package parser

import (
	"strings"

	"gamescript-extractor/internal/cascade"
	"gamescript-extractor/internal/literal"
	"gamescript-extractor/internal/model"
)

// DefaultMapSize is the width and height of a map that does not declare them.
const DefaultMapSize = 32

// ParseMap builds a map from one candidate. The encounter rate follows the
// tileset when not given.
func (p *Parser) ParseMap(c cascade.Candidate) (model.Map, error) {
	r, err := open(c)
	if err != nil {
		return model.Map{}, err
	}
	m := model.Map{
		Name:   r.name,
		Width:  r.intOr(DefaultMapSize, "width", "w", "cols"),
		Height: r.intOr(DefaultMapSize, "height", "h", "rows"),
	}
	m.Tileset = r.textOr(p.table.Tileset(m.Name), "tileset", "tiles", "ts")
	m.EncounterRate = r.intOr(p.table.EncounterRate(m.Tileset), "encounter", "encounter_rate", "enc", "rate")
	return m, nil
}

// ParseBattle builds an enemy formation from one candidate. Enemies may be
// listed as names, ids or nested monster records.
func (p *Parser) ParseBattle(c cascade.Candidate) (model.Battle, error) {
	r, err := open(c)
	if err != nil {
		return model.Battle{}, err
	}
	b := model.Battle{Name: r.name, Enemies: battleEnemies(r)}
	b.Background = r.textOr(p.table.Background(b.Name, b.Enemies), "background", "bg", "back", "battleback")
	b.Boss = r.boolOr(p.table.IsBoss(append([]string{b.Name}, b.Enemies...)...), "boss", "is_boss")
	b.NoEscape = b.Boss
	if v, ok := r.Bool("no_escape", "noescape", "cant_escape"); ok {
		b.NoEscape = v
	} else if v, ok := r.Bool("escape", "can_escape"); ok {
		b.NoEscape = !v
	}
	return b, nil
}

func battleEnemies(r *record) []string {
	out := []string{}
	raw, ok := r.List("enemies", "members", "troop", "mon")
	if !ok {
		return out
	}
	for _, el := range raw {
		if s, isStr := literal.String(el); isStr {
			out = append(out, s)
			continue
		}
		if strings.HasPrefix(el, "{") {
			if name, ok := literal.ParseObject(el).String(nameKeys...); ok {
				out = append(out, name)
			}
			continue
		}
		out = append(out, el)
	}
	return out
}

// DefaultNPCSprite is the sprite of an NPC that does not declare one.
const DefaultNPCSprite = "npc"

// ParseNPC builds a non-player character from one candidate. Dialogue given as
// a list of lines is joined with newlines.
func (p *Parser) ParseNPC(c cascade.Candidate) (model.NPC, error) {
	r, err := open(c)
	if err != nil {
		return model.NPC{}, err
	}
	n := model.NPC{
		ID:       r.intOr(c.Index, "id", "idx", "index"),
		Name:     r.name,
		Dialogue: npcDialogue(r),
		Map:      r.textOr("", "map", "location", "loc", "area"),
		X:        r.intOr(0, "x", "px"),
		Y:        r.intOr(0, "y", "py"),
		Sprite:   r.textOr(DefaultNPCSprite, "sprite", "img", "image", "charset"),
	}
	if pos, ok := r.Ints("pos", "position", "xy"); ok && len(pos) >= 2 {
		if !r.Has("x", "px") {
			n.X = pos[0]
		}
		if !r.Has("y", "py") {
			n.Y = pos[1]
		}
	}
	n.Role = r.textOr(p.table.NPCRole(n.Name, n.Dialogue), "role", "type", "job")
	n.Quest = r.boolOr(p.table.IsQuestGiver(n.Dialogue), "quest", "has_quest", "questgiver")
	return n, nil
}

func npcDialogue(r *record) string {
	keys := []string{"dialogue", "dialog", "text", "msg", "message", "say"}
	if lines, ok := r.Strings(keys...); ok {
		return strings.Join(lines, "\n")
	}
	return r.textOr("", keys...)
}
