package dedupe_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"gamescript-extractor/internal/dedupe"
	"gamescript-extractor/internal/model"
)

func TestByName_FirstWins(t *testing.T) {
	items := []model.Item{
		{Name: "Potion", Price: 50},
		{Name: "Ether", Price: 150},
		{Name: "Potion", Price: 999},
	}
	out, dropped := dedupe.ByName(items)
	require.Len(t, out, 2)
	assert.Equal(t, 1, dropped)
	assert.Equal(t, "Potion", out[0].Name)
	assert.Equal(t, 50, out[0].Price)
	assert.Equal(t, "Ether", out[1].Name)
	assert.Equal(t, 999, items[2].Price, "input untouched")
}

func TestByName_CaseSensitive(t *testing.T) {
	out, dropped := dedupe.ByName([]model.Spell{{Name: "Fire"}, {Name: "fire"}})
	assert.Len(t, out, 2)
	assert.Zero(t, dropped)
}

func TestByName_Empty(t *testing.T) {
	out, dropped := dedupe.ByName([]model.Monster(nil))
	assert.NotNil(t, out)
	assert.Empty(t, out)
	assert.Zero(t, dropped)
}

func TestPropertyByNameStableAndUnique(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		names := rapid.SliceOf(rapid.SampledFrom([]string{"Potion", "Ether", "Tent", "Elixir"})).Draw(t, "names")
		in := make([]model.Item, len(names))
		for i, n := range names {
			in[i] = model.Item{Name: n, Price: i}
		}
		out, dropped := dedupe.ByName(in)

		if len(out)+dropped != len(in) {
			t.Fatalf("kept %d + dropped %d != %d", len(out), dropped, len(in))
		}
		seen := map[string]bool{}
		last := -1
		for _, it := range out {
			if seen[it.Name] {
				t.Fatalf("duplicate %q in output", it.Name)
			}
			seen[it.Name] = true
			// Price holds the input index: the kept record is the first one and order is preserved.
			for j := 0; j < it.Price; j++ {
				if in[j].Name == it.Name {
					t.Fatalf("%q kept index %d but first seen at %d", it.Name, it.Price, j)
				}
			}
			if it.Price <= last {
				t.Fatalf("order not preserved")
			}
			last = it.Price
		}
	})
}
