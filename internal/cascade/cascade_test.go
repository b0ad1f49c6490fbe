package cascade_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamescript-extractor/internal/cascade"
	"gamescript-extractor/internal/model"
)

func run(t *testing.T, kind model.EntityType, src string) ([]cascade.Candidate, error) {
	t.Helper()
	c, err := cascade.For(kind)
	require.NoError(t, err)
	return c.Run(src)
}

func TestRun_ShortContainer(t *testing.T) {
	cands, err := run(t, model.KindItem, `wep: [{idx:0, name:"Iron Sword", buy:200, st:{wp:15}}]`)
	require.NoError(t, err)
	require.Len(t, cands, 1)
	assert.Equal(t, `{idx:0, name:"Iron Sword", buy:200, st:{wp:15}}`, cands[0].Text)
	assert.Equal(t, "wep", cands[0].Container)
	assert.True(t, strings.HasPrefix(cands[0].Strategy, "short("))
}

func TestRun_ItemShortContainersAreMerged(t *testing.T) {
	src := `var db={wep:[{name:"Knife"}],arm:[{name:"Robe"},{name:"Vest"}],itm:[{name:"Potion"}]};`
	cands, err := run(t, model.KindItem, src)
	require.NoError(t, err)
	require.Len(t, cands, 4)

	containers := make([]string, len(cands))
	for i, c := range cands {
		containers[i] = c.Container
	}
	assert.Equal(t, []string{"wep", "arm", "arm", "itm"}, containers)
	assert.Equal(t, 1, cands[2].Index)
}

func TestRun_FirstOccurrenceOnly(t *testing.T) {
	src := `items: [{name:"First"}]; later = {items: [{name:"Second"}]}`
	cands, err := run(t, model.KindItem, src)
	require.NoError(t, err)
	require.Len(t, cands, 1)
	assert.Contains(t, cands[0].Text, "First")
}

func TestRun_PriorityBeatsSourceOrder(t *testing.T) {
	src := `spells: [{name:"Cure", mp:4}], mag: [{name:"Fire", mp:5}]`
	cands, err := run(t, model.KindSpell, src)
	require.NoError(t, err)
	require.Len(t, cands, 1)
	assert.Contains(t, cands[0].Text, "Fire")
	assert.Equal(t, "mag", cands[0].Container)
}

func TestRun_ObjectContainer(t *testing.T) {
	src := `mon: { slime: {name:"Slime", exp:1}, bat: {name:"Bat", exp:2} }`
	cands, err := run(t, model.KindMonster, src)
	require.NoError(t, err)
	require.Len(t, cands, 2)
	assert.Contains(t, cands[1].Text, "Bat")
	assert.True(t, strings.HasSuffix(cands[0].Strategy, " object"))
}

func TestRun_LuaTable(t *testing.T) {
	src := "maps = {\n  { name = \"Cornelia\", w = 32 },\n  { name = \"Marsh Cave\", w = 48 },\n}\n"
	cands, err := run(t, model.KindMap, src)
	require.NoError(t, err)
	require.Len(t, cands, 2)
}

func TestRun_SignatureFallback(t *testing.T) {
	src := `var shop = [{name:"Dagger", price:30}, {name:"Sword", price:100}];`
	cands, err := run(t, model.KindItem, src)
	require.NoError(t, err)
	require.Len(t, cands, 2)
	assert.Empty(t, cands[0].Container)
	assert.True(t, strings.HasPrefix(cands[0].Strategy, "signature("))
}

func TestRun_JSON(t *testing.T) {
	cands, err := run(t, model.KindCharacter, `{"chr":[{"name":"Luke","job":0},{"name":"Ria","job":4}]}`)
	require.NoError(t, err)
	assert.Len(t, cands, 2)
}

func TestRun_IgnoresStringsAndComments(t *testing.T) {
	src := "// wep: [{name:\"Fake\"}]\nvar s = \"wep: [{name:'Fake'}]\";\n/* items: [{name:\"Fake\"}] */"
	_, err := run(t, model.KindItem, src)
	assert.True(t, errors.Is(err, cascade.ErrEmptyExtraction))
}

func TestRun_Unterminated(t *testing.T) {
	cands, err := run(t, model.KindSpell, `mag: [{name:"Fire", mp:5}, {name:"Ice", mp:6`)
	require.NoError(t, err)
	require.Len(t, cands, 2)
	assert.Equal(t, `{name:"Ice", mp:6}`, cands[1].Text)
}

func TestRun_EmptyContainerFallsThrough(t *testing.T) {
	src := `npc: [], people: [{name:"Elder", dialogue:"Hi"}]`
	cands, err := run(t, model.KindNPC, src)
	require.NoError(t, err)
	require.Len(t, cands, 1)
	assert.Equal(t, "people", cands[0].Container)
}

func TestStrategy_Miss(t *testing.T) {
	s := cascade.Strategy{Name: "test", Locate: cascade.KeyedArray("wep"), Split: cascade.SplitRecords}

	_, err := s.Apply(`arm: [{name:"Robe"}]`)
	assert.ErrorIs(t, err, cascade.ErrStrategyMiss)

	_, err = s.Apply(`wep: [1, 2]`)
	assert.ErrorIs(t, err, cascade.ErrStrategyMiss)
}

func TestFor_UnknownKind(t *testing.T) {
	_, err := cascade.For(model.EntityType("vehicle"))
	assert.Error(t, err)
}

func TestFor_EveryKindHasATable(t *testing.T) {
	for _, kind := range model.AllKinds {
		c := cascade.MustFor(kind)
		assert.Len(t, c.Strategies, 5, "kind %s", kind)
		assert.Same(t, c, cascade.MustFor(kind), "kind %s", kind)
	}
}

func TestMustFor_UnknownKindPanics(t *testing.T) {
	assert.Panics(t, func() { cascade.MustFor(model.EntityType("vehicle")) })
}

func TestRun_IgnoresOtherKindsContainers(t *testing.T) {
	testCases := []struct {
		name string
		kind model.EntityType
		src  string
	}{
		{"character exp is not a monster", model.KindMonster, `chr: [{name:"Hero", job:0, exp:100}]`},
		{"item cost is not a spell", model.KindSpell, `itm: [{name:"Potion", cost:50}]`},
		{"spell cost is not an item", model.KindItem, `mag: [{name:"Fire", cost:5}]`},
		{"battle enemies are not monsters", model.KindMonster, `btl: [{name:"Ambush", enemies:[{name:"Goblin", exp:5}]}]`},
		{"npc job is not a character", model.KindCharacter, `npc: [{name:"Guard", job:"soldier", text:"Halt!"}]`},
		{"keyed array inside another container", model.KindItem, `npc: [{name:"Merchant", items:[{name:"Rope", price:5}]}]`},
		{"array inside an object container", model.KindMonster, `party: { list: [{name:"Hero", class:"Knight", exp:9}] }`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := run(t, tc.kind, tc.src)
			assert.ErrorIs(t, err, cascade.ErrEmptyExtraction)
		})
	}
}

func TestRun_SignatureSkipsClaimedArraysOnly(t *testing.T) {
	src := `chr: [{name:"Hero", job:0, exp:100}]; var pool = [{name:"Slime", exp:2}];`
	cands, err := run(t, model.KindMonster, src)
	require.NoError(t, err)
	require.Len(t, cands, 1)
	assert.Contains(t, cands[0].Text, "Slime")
}

func TestClaims_Spans(t *testing.T) {
	src := `{chr: [{name:"A"}], "mag": {fire: {}}, note: "itm: [", itm: [1`
	spans := cascade.NewClaims("chr", "mag", "itm").Spans(src)
	require.Len(t, spans, 3)
	assert.Equal(t, "[", src[spans[0].Open:spans[0].Open+1])
	assert.Equal(t, "]", src[spans[0].End:spans[0].End+1])
	assert.Equal(t, "{", src[spans[1].Open:spans[1].Open+1])
	assert.Equal(t, len(src), spans[2].End)
	assert.True(t, spans[0].Contains(spans[0].Open+3))

	assert.Empty(t, cascade.NewClaims().Spans(src))
}
