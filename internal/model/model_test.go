package model_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamescript-extractor/internal/model"
)

func TestParseKind(t *testing.T) {
	testCases := map[string]model.EntityType{
		"item":     model.KindItem,
		"Monsters": model.KindMonster,
		" troop ":  model.KindBattle,
		"magic":    model.KindSpell,
		"NPCs":     model.KindNPC,
	}
	for in, want := range testCases {
		got, err := model.ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := model.ParseKind("vehicle")
	assert.Error(t, err)
}

func TestJobs(t *testing.T) {
	assert.Equal(t, "White Mage", model.JobName(4))
	assert.Equal(t, "Unknown", model.JobName(9))

	idx, ok := model.JobIndex("blackmage")
	require.True(t, ok)
	assert.Equal(t, 5, idx)

	assert.False(t, model.JobUsesMP(0))
	assert.True(t, model.JobUsesMP(3))
	assert.False(t, model.JobUsesMP(len(model.Jobs)))
}

func TestParseItemType(t *testing.T) {
	typ, ok := model.ParseItemType("key_item")
	require.True(t, ok)
	assert.Equal(t, model.ItemKey, typ)

	typ, ok = model.ParseItemType("Shield")
	require.True(t, ok)
	assert.Equal(t, model.ItemShield, typ)

	_, ok = model.ParseItemType("vehicle")
	assert.False(t, ok)
}

func TestStatusSet_JSON(t *testing.T) {
	s := model.StatusPoison | model.StatusSleep
	assert.True(t, s.Has(model.StatusSleep))
	assert.False(t, s.Has(model.StatusStone))
	assert.Equal(t, "poison|sleep", s.String())

	b, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `["poison","sleep"]`, string(b))

	var back model.StatusSet
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, s, back)

	assert.Error(t, json.Unmarshal([]byte(`["itchy"]`), &back))
}

func TestItem_CloneIsDeep(t *testing.T) {
	it := model.Item{Name: "Dagger", ExcludedJobs: []int{4, 5}, StatBonuses: map[string]int{"dexterity": 10}}
	c := it.Clone()
	c.ExcludedJobs[0] = 0
	c.StatBonuses["dexterity"] = 99

	assert.Equal(t, []int{4, 5}, it.ExcludedJobs)
	assert.Equal(t, 10, it.StatBonuses["dexterity"])
	assert.True(t, it.UsableBy(0))
	assert.False(t, it.UsableBy(5))
}

func TestSnapshot_Entities(t *testing.T) {
	snap := &model.Snapshot{
		Items:    []model.Item{{Name: "Potion"}, {Name: "Ether"}},
		Monsters: []model.Monster{{Name: "Goblin"}},
	}
	assert.Equal(t, 2, snap.Count(model.KindItem))
	assert.Equal(t, 0, snap.Count(model.KindSpell))

	ents := snap.Entities(model.KindMonster)
	require.Len(t, ents, 1)
	assert.Equal(t, "Goblin", ents[0].EntityName())
	assert.Equal(t, model.KindMonster, ents[0].Kind())
}
