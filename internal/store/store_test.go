package store_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"gamescript-extractor/internal/fallback"
	"gamescript-extractor/internal/model"
	"gamescript-extractor/internal/store"
)

type StoreTestSuite struct {
	suite.Suite
	store  *store.Store
	report *store.Report
	path   string
}

func (s *StoreTestSuite) SetupTest() {
	src, err := os.ReadFile(filepath.Join("testdata", "game.js"))
	s.Require().NoError(err)

	s.path = filepath.Join(s.T().TempDir(), "game.js")
	s.Require().NoError(os.WriteFile(s.path, src, 0o644))

	s.store = store.New()
	s.report, err = s.store.Load(s.path)
	s.Require().NoError(err)
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func (s *StoreTestSuite) TestEveryKindExtracted() {
	want := map[model.EntityType]int{
		model.KindCharacter: 2,
		model.KindItem:      5,
		model.KindSpell:     2,
		model.KindMonster:   2,
		model.KindMap:       2,
		model.KindBattle:    2,
		model.KindNPC:       1,
	}
	s.Len(s.report.Kinds, len(model.AllKinds))
	for i, kind := range model.AllKinds {
		rep := s.report.Kinds[i]
		s.Equal(kind, rep.Kind)
		s.Equal(want[kind], rep.Count, "kind %s", kind)
		s.False(rep.Default, "kind %s", kind)
		s.False(s.store.IsDefault(kind), "kind %s", kind)
		s.True(strings.HasPrefix(rep.Strategy, "short("), "kind %s used %s", kind, rep.Strategy)
	}
	s.Empty(s.report.Defaults())
	s.Equal(s.path, s.store.Path())
	s.False(s.store.HasChanges())
}

func (s *StoreTestSuite) TestItemsReport() {
	rep, ok := s.report.Kind(model.KindItem)
	s.Require().True(ok)
	s.Equal(7, rep.Candidates)
	s.Equal(1, rep.Discarded)
	s.Equal(1, rep.Duplicates)

	names := []string{}
	for _, it := range s.store.Items() {
		names = append(names, it.Name)
	}
	s.Equal([]string{"Iron Sword", "Dagger", "Leather Armor", "Potion", "Antidote"}, names)
}

func (s *StoreTestSuite) TestParsedFields() {
	dagger, err := s.store.Item("Dagger")
	s.Require().NoError(err)
	s.Equal(model.ItemWeapon, dagger.Type)
	s.Equal("Dagger", dagger.Category)
	s.Equal(7, dagger.Power)
	s.Equal([]int{4, 5}, dagger.ExcludedJobs)
	s.Equal(map[string]int{"dexterity": 10}, dagger.StatBonuses)

	potion, err := s.store.Item("Potion")
	s.Require().NoError(err)
	s.Equal(60, potion.Price)
	s.Equal("Restore HP", potion.Effect.Type)

	ria, err := s.store.Character("Ria")
	s.Require().NoError(err)
	s.Equal("White Mage", ria.Job.Name)
	s.Equal(2, ria.MP[0])

	zombie, err := s.store.Monster("Zombie")
	s.Require().NoError(err)
	s.Equal([]string{"Fire", "Holy"}, zombie.Weaknesses)

	cave, err := s.store.Map("Marsh Cave")
	s.Require().NoError(err)
	s.Equal("dungeon", cave.Tileset)
	s.Equal(12, cave.EncounterRate)

	lich, err := s.store.Battle("Lich")
	s.Require().NoError(err)
	s.True(lich.Boss)

	king, err := s.store.NPC("King")
	s.Require().NoError(err)
	s.Equal("Royalty", king.Role)
	s.True(king.Quest)
}

func (s *StoreTestSuite) TestLookup() {
	e, err := s.store.Lookup(model.KindSpell, "Cure")
	s.Require().NoError(err)
	s.Equal(model.KindSpell, e.Kind())
	s.Equal(4, e.(model.Spell).MPCost)

	_, err = s.store.Lookup(model.KindSpell, "Meteor")
	s.ErrorIs(err, store.ErrNotFound)

	_, err = s.store.Lookup(model.EntityType("vehicle"), "Airship")
	s.ErrorIs(err, store.ErrNotFound)
}

func (s *StoreTestSuite) TestGettersReturnCopies() {
	items := s.store.Items()
	items[1].ExcludedJobs[0] = 0
	items[0].StatBonuses["luck"] = 99

	dagger, _ := s.store.Item("Dagger")
	s.Equal([]int{4, 5}, dagger.ExcludedJobs)
	sword, _ := s.store.Item("Iron Sword")
	s.Empty(sword.StatBonuses)
	s.False(s.store.HasChanges())
}

func (s *StoreTestSuite) TestUpdateAndRemove() {
	err := s.store.UpdateItem("Iron Sword", func(it *model.Item) { it.Price = 300 })
	s.Require().NoError(err)
	s.True(s.store.HasChanges())
	sword, _ := s.store.Item("Iron Sword")
	s.Equal(300, sword.Price)

	err = s.store.UpdateItem("Excalibur", func(it *model.Item) {})
	s.ErrorIs(err, store.ErrNotFound)

	err = s.store.UpdateItem("Dagger", func(it *model.Item) { it.Name = "Potion" })
	s.ErrorIs(err, store.ErrDuplicateName)
	_, err = s.store.Item("Dagger")
	s.NoError(err, "rejected rename leaves the entity alone")

	s.Require().NoError(s.store.RemoveMonster("Goblin"))
	s.Len(s.store.Monsters(), 1)
	s.ErrorIs(s.store.RemoveMonster("Goblin"), store.ErrNotFound)
	s.False(s.store.IsDefault(model.KindMonster))
}

func (s *StoreTestSuite) TestGenericRenameAndRemove() {
	s.Require().NoError(s.store.Rename(model.KindMap, "Marsh Cave", "Swamp Cave"))
	_, err := s.store.Map("Swamp Cave")
	s.NoError(err)
	s.ErrorIs(s.store.Rename(model.KindMap, "Swamp Cave", "Cornelia Town"), store.ErrDuplicateName)
	s.Error(s.store.Rename(model.KindNPC, "King", ""))

	s.Require().NoError(s.store.Remove(model.KindNPC, "King"))
	s.Empty(s.store.NPCs())
	s.ErrorIs(s.store.Remove(model.EntityType("vehicle"), "Airship"), store.ErrNotFound)
	s.True(s.store.HasChanges())
}

func (s *StoreTestSuite) TestReloadResetsChanges() {
	s.store.MarkChanged()
	s.True(s.store.HasChanges())
	s.store.LoadAndExtract(`wep: [{name:"Knife"}]`)
	s.False(s.store.HasChanges())
	s.True(s.store.IsDefault(model.KindSpell))
}

func (s *StoreTestSuite) TestLoadFailureKeepsState() {
	s.store.MarkChanged()
	_, err := s.store.Load(filepath.Join(s.T().TempDir(), "missing.js"))
	s.ErrorIs(err, store.ErrSourceUnreadable)
	s.Len(s.store.Items(), 5)
	s.True(s.store.HasChanges())
	s.Equal(s.path, s.store.Path())
}

func (s *StoreTestSuite) TestSave() {
	original, err := os.ReadFile(s.path)
	s.Require().NoError(err)
	s.Require().NoError(s.store.UpdateSpell("Fire", func(sp *model.Spell) { sp.Power = 20 }))

	s.Require().NoError(s.store.Save("", store.SaveOptions{}))
	s.False(s.store.HasChanges())

	backup, err := os.ReadFile(s.path + store.DefaultBackupSuffix)
	s.Require().NoError(err)
	s.Equal(original, backup)

	rewritten, err := os.ReadFile(s.path)
	s.Require().NoError(err)
	s.Equal(original, rewritten)

	data, err := os.ReadFile(s.path + store.EntitiesSuffix)
	s.Require().NoError(err)
	var snap model.Snapshot
	s.Require().NoError(json.Unmarshal(data, &snap))
	s.Equal(s.store.Hash(), snap.SourceHash)
	s.Require().Len(snap.Spells, 2)
	s.Equal(20, snap.Spells[0].Power)
	s.Equal(s.store.Snapshot().Items, snap.Items)
}

func TestSave_NoPath(t *testing.T) {
	s := store.New()
	s.LoadAndExtract("")
	assert.Error(t, s.Save("", store.SaveOptions{}))
}

func TestScenario_WeaponContainer(t *testing.T) {
	s := store.New()
	s.LoadAndExtract(`wep: [{idx:0, name:"Iron Sword", buy:200, st:{wp:15}}]`)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, model.ItemWeapon, items[0].Type)
	assert.Equal(t, "Iron Sword", items[0].Name)
	assert.Equal(t, 15, items[0].Power)
	assert.Equal(t, 200, items[0].Price)
	assert.Equal(t, "Sword", items[0].Category)
	assert.False(t, s.IsDefault(model.KindItem))
}

func TestScenario_NoSpellContainer(t *testing.T) {
	s := store.New()
	s.LoadAndExtract(`wep: [{idx:0, name:"Iron Sword", buy:200, st:{wp:15}}]`)

	spells := s.Spells()
	assert.True(t, s.IsDefault(model.KindSpell))
	assert.Equal(t, fallback.Spells(), spells)
	require.Len(t, spells, 6)
	assert.Equal(t, "Fire", spells[0].Name)
	assert.Equal(t, 15, spells[0].Power)
	assert.Equal(t, 5, spells[0].MPCost)
}

func TestScenario_DuplicateKeepsFirst(t *testing.T) {
	s := store.New()
	s.LoadAndExtract(`itm: [{name:"Potion", buy:50}, {name:"Potion", buy:80}]`)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Potion", items[0].Name)
	assert.Equal(t, 50, items[0].Price)
}

func TestScenario_NamelessRecordDiscarded(t *testing.T) {
	s := store.New()
	rep := s.LoadAndExtract(`mon: [{name:"Goblin", exp:6}, {hp:5, exp:1}, {name:"Wolf", exp:24}]`)

	monsters := s.Monsters()
	require.Len(t, monsters, 2)
	assert.Equal(t, "Goblin", monsters[0].Name)
	assert.Equal(t, "Wolf", monsters[1].Name)
	kr, _ := rep.Kind(model.KindMonster)
	assert.Equal(t, 1, kr.Discarded)
}

func TestEmptySource_EveryKindDefaults(t *testing.T) {
	s := store.New()
	rep := s.LoadAndExtract("")
	assert.Len(t, rep.Defaults(), len(model.AllKinds))

	for _, kind := range model.AllKinds {
		assert.True(t, s.IsDefault(kind), "kind %s", kind)
		want, err := fallback.For(kind)
		require.NoError(t, err)
		assert.Equal(t, want, s.Entities(kind), "kind %s", kind)
	}
}

func TestSingleContainer_OtherKindsStayDefault(t *testing.T) {
	testCases := []struct {
		name  string
		src   string
		owner model.EntityType
		want  []string
	}{
		{"characters with exp", `chr: [{name:"Hero", job:0, exp:100}]`, model.KindCharacter, []string{"Hero"}},
		{"items with cost", `itm: [{name:"Potion", cost:50}]`, model.KindItem, []string{"Potion"}},
		{"spells with cost", `mag: [{name:"Fire", cost:5}]`, model.KindSpell, []string{"Fire"}},
		{"battles with enemy records", `btl: [{name:"Ambush", enemies:[{name:"Goblin", exp:5}]}]`, model.KindBattle, []string{"Ambush"}},
		{"npcs with a job", `npc: [{name:"Guard", job:"soldier", text:"Halt!"}]`, model.KindNPC, []string{"Guard"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := store.New()
			s.LoadAndExtract(tc.src)

			require.False(t, s.IsDefault(tc.owner))
			var names []string
			for _, e := range s.Entities(tc.owner) {
				names = append(names, e.EntityName())
			}
			assert.Equal(t, tc.want, names)

			for _, kind := range model.AllKinds {
				if kind == tc.owner {
					continue
				}
				assert.True(t, s.IsDefault(kind), "kind %s", kind)
				want, err := fallback.For(kind)
				require.NoError(t, err)
				assert.Equal(t, want, s.Entities(kind), "kind %s", kind)
			}
		})
	}
}

func TestDefaultsAreIndependentCopies(t *testing.T) {
	s := store.New()
	s.LoadAndExtract("")
	require.NoError(t, s.UpdateBattle("Goblin Pack", func(b *model.Battle) { b.Enemies[0] = "Dragon" }))
	assert.Equal(t, "Goblin", fallback.Battles()[0].Enemies[0])
}

func TestWorkerCountDoesNotChangeResult(t *testing.T) {
	src, err := os.ReadFile(filepath.Join("testdata", "game.js"))
	require.NoError(t, err)

	serial := store.New(store.WithWorkers(1))
	serial.LoadAndExtract(string(src))
	parallel := store.New(store.WithWorkers(8))
	parallel.LoadAndExtract(string(src))

	assert.Equal(t, serial.Snapshot(), parallel.Snapshot())
}

func TestConcurrentReadsAndWrites(t *testing.T) {
	s := store.New()
	s.LoadAndExtract("")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = s.Snapshot()
			_, _ = s.Lookup(model.KindItem, "Potion")
		}()
		go func(n int) {
			defer wg.Done()
			_ = s.UpdateItem("Potion", func(it *model.Item) { it.Quantity = n })
		}(i)
	}
	wg.Wait()
	assert.True(t, s.HasChanges())
}
