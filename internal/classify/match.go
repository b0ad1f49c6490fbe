package classify

import (
	"strings"
	"unicode"

	"gamescript-extractor/internal/model"
)

// match returns the value of the first rule with a keyword contained in any of
// texts. Each text is tried against every rule before moving to the next text,
// so a hint in the name beats one buried in the raw literal.
func match(rules []Rule, texts ...string) (string, bool) {
	for _, text := range texts {
		lower := strings.ToLower(text)
		if lower == "" {
			continue
		}
		for _, r := range rules {
			if containsAny(lower, r.Keywords) {
				return r.Value, true
			}
		}
	}
	return "", false
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// words splits s into lowercase letter/digit runs.
func words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// matchWords checks keywords against whole words of s. A keyword with a leading
// "-" matches a word suffix ("-ga" matches "firaga"); non-Latin keywords match
// anywhere in s.
func matchWords(s string, keywords []string) bool {
	ws := words(s)
	lower := strings.ToLower(s)
	for _, kw := range keywords {
		kw = strings.ToLower(kw)
		switch {
		case kw == "":
			continue
		case !isASCII(kw):
			if strings.Contains(lower, kw) {
				return true
			}
		case strings.HasPrefix(kw, "-"):
			suffix := kw[1:]
			for _, w := range ws {
				if len(w) > len(suffix)+2 && strings.HasSuffix(w, suffix) {
					return true
				}
			}
		default:
			for _, w := range ws {
				if w == kw {
					return true
				}
			}
		}
	}
	return false
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

// Category infers an item's subtype from its name, then its raw text. Items with
// no recognisable keyword get the type's fixed default.
func (t *Table) Category(typ model.ItemType, name, raw string) string {
	if v, ok := match(t.Categories[typ.String()], name, raw); ok {
		return v
	}
	return t.DefaultCategory(typ)
}

// DefaultCategory returns the fixed subtype for an item type.
func (t *Table) DefaultCategory(typ model.ItemType) string {
	if v, ok := t.CategoryDefaults[typ.String()]; ok {
		return v
	}
	return typ.String()
}

// ItemType infers an item type from its name, then its raw text.
func (t *Table) ItemType(name, raw string) (model.ItemType, bool) {
	v, ok := match(t.ItemTypes, name, raw)
	if !ok {
		return model.ItemMisc, false
	}
	return model.ParseItemType(v)
}

// NormalizeAction folds an action identifier to its table key: lowercase with
// separators removed.
func NormalizeAction(action string) string {
	return strings.Map(func(r rune) rune {
		if r == '_' || r == '-' || r == ' ' || r == '.' {
			return -1
		}
		return unicode.ToLower(r)
	}, strings.TrimSpace(action))
}

// Effect resolves an action identifier. Unknown actions yield the neutral effect.
func (t *Table) Effect(action string, strength int) (model.Effect, bool) {
	rule, ok := t.Effects[NormalizeAction(action)]
	if !ok {
		eff := model.NoEffect()
		return eff, false
	}
	eff := model.Effect{Target: rule.Target, Type: rule.Type, Strength: strength}
	for _, s := range rule.Status {
		if flag, known := model.ParseStatus(s); known {
			eff.Status |= flag
		}
	}
	return eff, true
}

// StatName maps a script stat key to its canonical name.
func (t *Table) StatName(key string) (string, bool) {
	v, ok := t.StatAliases[strings.ToLower(key)]
	return v, ok
}

// SpellElement infers a spell's element from its name.
func (t *Table) SpellElement(name string) string {
	if v, ok := match(t.SpellElements, name); ok {
		return v
	}
	return DefaultElement
}

// SpellTarget infers who a spell hits from its name and element.
func (t *Table) SpellTarget(name, element string) string {
	area := matchWords(name, t.SpellAreaKeywords)
	if element == "Healing" || matchWords(name, t.SpellAllyKeywords) {
		if area {
			return "All Allies"
		}
		return "Single Ally"
	}
	if area {
		return "All Enemies"
	}
	return "Single Enemy"
}

// Affinities returns the weaknesses and resistances for a monster name. Both slices
// are fresh copies and never nil.
func (t *Table) Affinities(name string) (weak, resist []string) {
	lower := strings.ToLower(name)
	for _, r := range t.MonsterAffinities {
		if containsAny(lower, r.Keywords) {
			return append([]string{}, r.Weaknesses...), append([]string{}, r.Resistances...)
		}
	}
	return []string{}, []string{}
}

// Tileset infers a map tileset from its name.
func (t *Table) Tileset(name string) string {
	if v, ok := match(t.MapTilesets, name); ok {
		return v
	}
	return DefaultTileset
}

// EncounterRate returns the default random-encounter rate for a tileset.
func (t *Table) EncounterRate(tileset string) int {
	if v, ok := t.TilesetEncounters[strings.ToLower(tileset)]; ok {
		return v
	}
	return DefaultEncounter
}

// Background infers a battle background from the battle's name and enemy line-up.
func (t *Table) Background(name string, enemies []string) string {
	if v, ok := match(t.BattleBackgrounds, append([]string{name}, enemies...)...); ok {
		return v
	}
	return DefaultBackground
}

// IsBoss reports whether a battle or enemy name signals a boss fight.
func (t *Table) IsBoss(texts ...string) bool {
	for _, s := range texts {
		if matchWords(s, t.BossKeywords) {
			return true
		}
	}
	return false
}

// NPCRole infers an NPC role from the words of its name, then of its dialogue.
// Keywords match word prefixes so "shopkeeper" hits "shop" and "Finn" misses "inn".
func (t *Table) NPCRole(name, dialogue string) string {
	for _, text := range []string{name, dialogue} {
		for _, r := range t.NPCRoles {
			if matchPrefix(text, r.Keywords) {
				return r.Value
			}
		}
	}
	return DefaultRole
}

func matchPrefix(s string, keywords []string) bool {
	ws := words(s)
	lower := strings.ToLower(s)
	for _, kw := range keywords {
		kw = strings.ToLower(kw)
		if kw == "" {
			continue
		}
		if !isASCII(kw) {
			if strings.Contains(lower, kw) {
				return true
			}
			continue
		}
		for _, w := range ws {
			if strings.HasPrefix(w, kw) {
				return true
			}
		}
	}
	return false
}

// IsQuestGiver reports whether dialogue reads like a quest hook.
func (t *Table) IsQuestGiver(dialogue string) bool {
	return containsAny(strings.ToLower(dialogue), t.QuestKeywords)
}
