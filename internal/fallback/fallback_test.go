package fallback_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamescript-extractor/internal/classify"
	"gamescript-extractor/internal/dedupe"
	"gamescript-extractor/internal/fallback"
	"gamescript-extractor/internal/model"
)

func TestSpells_FirstIsFire(t *testing.T) {
	spells := fallback.Spells()
	require.Len(t, spells, 6)
	assert.Equal(t, "Fire", spells[0].Name)
	assert.Equal(t, 15, spells[0].Power)
	assert.Equal(t, 5, spells[0].MPCost)
}

func TestDatasets_ReturnDeepCopies(t *testing.T) {
	items := fallback.Items()
	items[0].Name = "Changed"
	items[0].ExcludedJobs[0] = 99
	items[0].StatBonuses["power"] = 5
	fresh := fallback.Items()
	assert.Equal(t, "Broadsword", fresh[0].Name)
	assert.Equal(t, []int{4, 5}, fresh[0].ExcludedJobs)
	assert.Empty(t, fresh[0].StatBonuses)

	battles := fallback.Battles()
	battles[0].Enemies[0] = "Dragon"
	assert.Equal(t, "Goblin", fallback.Battles()[0].Enemies[0])

	monsters := fallback.Monsters()
	monsters[2].Weaknesses[0] = "Ice"
	assert.Equal(t, "Fire", fallback.Monsters()[2].Weaknesses[0])

	chars := fallback.Characters()
	chars[2].MP[0] = 9
	assert.Equal(t, 2, fallback.Characters()[2].MP[0])
}

func TestDatasets_AreWellFormed(t *testing.T) {
	for _, kind := range model.AllKinds {
		list, err := fallback.For(kind)
		require.NoError(t, err)
		require.NotEmpty(t, list, "kind %s", kind)

		unique, dropped := dedupe.ByName(list)
		assert.Zero(t, dropped, "kind %s has duplicate names", kind)
		for _, e := range unique {
			assert.NotEmpty(t, e.EntityName())
			assert.Equal(t, kind, e.Kind())
		}
	}

	_, err := fallback.For(model.EntityType("vehicle"))
	assert.Error(t, err)
}

func TestItems_ConsistentWithClassification(t *testing.T) {
	for _, it := range fallback.Items() {
		if it.Rarity == model.RarityUnique {
			continue
		}
		assert.Equal(t, classify.Rarity(it.Price), it.Rarity, it.Name)
		assert.NotNil(t, it.ExcludedJobs)
	}
}

func TestCharacters_NonCastersHaveNoMP(t *testing.T) {
	for _, c := range fallback.Characters() {
		if !model.JobUsesMP(c.Job.Index) {
			assert.Equal(t, [model.MPSlots]int{}, c.MP, c.Name)
		}
		assert.Equal(t, model.JobName(c.Job.Index), c.Job.Name)
	}
}
