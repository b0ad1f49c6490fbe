package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gamescript-extractor/internal/graph"
	"gamescript-extractor/internal/model"
)

func TestLabel_EveryKind(t *testing.T) {
	for _, k := range model.AllKinds {
		l, ok := graph.Label(k)
		assert.True(t, ok, "kind %s", k)
		assert.NotEmpty(t, l)
	}
	_, ok := graph.Label(model.EntityType("vehicle"))
	assert.False(t, ok)
}

func TestRelations(t *testing.T) {
	eq := model.EmptyEquipment()
	eq.Weapon = 1
	eq.Armor = 0
	eq.Helmet = 3
	snap := &model.Snapshot{
		Characters: []model.Character{{Name: "Luke", Equipment: eq}},
		Items: []model.Item{
			{Name: "Iron Sword", Type: model.ItemWeapon},
			{Name: "Leather Armor", Type: model.ItemArmor},
			{Name: "Dagger", Type: model.ItemWeapon},
		},
		Battles: []model.Battle{
			{Name: "Goblin Pack", Enemies: []string{"Goblin", "Goblin", "Wolf"}},
			{Name: "Empty", Enemies: []string{}},
		},
		NPCs: []model.NPC{
			{Name: "King", Map: "Cornelia Castle"},
			{Name: "Wanderer"},
		},
	}

	assert.Equal(t, []graph.Relationship{
		{FromKind: model.KindBattle, From: "Goblin Pack", RelType: graph.RelFeatures, ToKind: model.KindMonster, To: "Goblin"},
		{FromKind: model.KindBattle, From: "Goblin Pack", RelType: graph.RelFeatures, ToKind: model.KindMonster, To: "Wolf"},
		{FromKind: model.KindNPC, From: "King", RelType: graph.RelLocatedIn, ToKind: model.KindMap, To: "Cornelia Castle"},
		{FromKind: model.KindCharacter, From: "Luke", RelType: graph.RelEquips, ToKind: model.KindItem, To: "Dagger"},
		{FromKind: model.KindCharacter, From: "Luke", RelType: graph.RelEquips, ToKind: model.KindItem, To: "Leather Armor"},
	}, graph.Relations(snap))
}

func TestRelations_Empty(t *testing.T) {
	assert.Empty(t, graph.Relations(&model.Snapshot{}))
}
