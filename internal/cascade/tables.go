package cascade

import (
	"fmt"
	"sort"
	"strings"

	"gamescript-extractor/internal/model"
)

// tier is one row of a strategy table: the identifiers tried as keyed array,
// then as keyed object.
type tier struct {
	name string
	keys []string
}

type table struct {
	tiers     []tier
	signature []string
}

// ItemContainers maps the short per-type item container identifiers to the
// item type they hold.
var ItemContainers = map[string]model.ItemType{
	"wep": model.ItemWeapon,
	"arm": model.ItemArmor,
	"hlm": model.ItemHelmet,
	"shd": model.ItemShield,
	"acc": model.ItemAccessory,
	"itm": model.ItemConsumable,
}

var tables = map[model.EntityType]table{
	model.KindItem: {
		tiers: []tier{
			{"short", []string{"wep", "arm", "hlm", "shd", "acc", "itm"}},
			{"named", []string{"items", "item_list"}},
		},
		signature: []string{"name", "price|buy|cost"},
	},
	model.KindSpell: {
		tiers: []tier{
			{"short", []string{"mag", "magic"}},
			{"named", []string{"spells", "spell"}},
		},
		signature: []string{"name", "mp|mp_cost|mpcost|cost"},
	},
	model.KindCharacter: {
		tiers: []tier{
			{"short", []string{"chr", "chars"}},
			{"named", []string{"characters", "party"}},
		},
		signature: []string{"name", "job|class"},
	},
	model.KindMonster: {
		tiers: []tier{
			{"short", []string{"mon", "enm"}},
			{"named", []string{"monsters", "bestiary"}},
		},
		signature: []string{"name", "exp|xp"},
	},
	model.KindMap: {
		tiers: []tier{
			{"short", []string{"mps"}},
			{"named", []string{"maps"}},
		},
		signature: []string{"name", "tileset|tiles"},
	},
	model.KindBattle: {
		tiers: []tier{
			{"short", []string{"btl"}},
			{"named", []string{"battles", "troops"}},
		},
		signature: []string{"name", "enemies|members"},
	},
	model.KindNPC: {
		tiers: []tier{
			{"short", []string{"npc"}},
			{"named", []string{"npcs", "people"}},
		},
		signature: []string{"name", "dialogue|text|msg"},
	},
}

// foreignKeys returns every container identifier belonging to a kind other
// than kind, sorted.
func foreignKeys(kind model.EntityType) []string {
	var keys []string
	for k, tbl := range tables {
		if k == kind {
			continue
		}
		for _, t := range tbl.tiers {
			keys = append(keys, t.keys...)
		}
	}
	sort.Strings(keys)
	return keys
}

// For returns the strategy table for kind. Each tier is tried as an array
// container and then as a map-style object container; the field signature
// comes last. No strategy looks inside a container introduced by another
// kind's identifier.
func For(kind model.EntityType) (*Cascade, error) {
	tbl, ok := tables[kind]
	if !ok {
		return nil, fmt.Errorf("no strategy table for %q", kind)
	}
	foreign := NewClaims(foreignKeys(kind)...)
	c := &Cascade{Kind: kind}
	for _, t := range tbl.tiers {
		label := t.name + "(" + strings.Join(t.keys, ",") + ")"
		c.Strategies = append(c.Strategies,
			Strategy{Name: label + " array", Locate: keyed('[', t.keys, foreign), Split: SplitRecords},
			Strategy{Name: label + " object", Locate: keyed('{', t.keys, foreign), Split: SplitRecords},
		)
	}
	c.Strategies = append(c.Strategies, Strategy{
		Name:   "signature(" + strings.Join(tbl.signature, "+") + ")",
		Locate: signature(tbl.signature, foreign),
		Split:  SplitRecords,
	})
	return c, nil
}

// builtin holds the compiled cascade of every kind. Cascades are read-only
// once built and safe to share between goroutines.
var builtin = func() map[model.EntityType]*Cascade {
	out := make(map[model.EntityType]*Cascade, len(tables))
	for kind := range tables {
		c, err := For(kind)
		if err != nil {
			panic(err)
		}
		out[kind] = c
	}
	return out
}()

// MustFor returns the shared cascade for a built-in kind; it panics on an
// unknown kind.
func MustFor(kind model.EntityType) *Cascade {
	c, ok := builtin[kind]
	if !ok {
		panic(fmt.Sprintf("no strategy table for %q", kind))
	}
	return c
}
