package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamescript-extractor/internal/model"
	"gamescript-extractor/internal/store"
)

const script = `var $db = {
  wep: [{idx:0, name:"Iron Sword", buy:200, st:{wp:15}}, {idx:1, name:"Dagger", buy:60}],
  itm: [{idx:0, name:"Potion", buy:50, effect:"heal"}],
  mon: [{name:"Goblin", hp:8, exp:6}, {name:"Wolf", hp:20, exp:24}]
};`

func writeScript(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(script), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("KEYWORDS_FILE", "")
	var out bytes.Buffer
	root := rootCmd()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestExtract_File(t *testing.T) {
	path := writeScript(t, t.TempDir(), "game.js")
	out, err := run(t, "extract", path)
	require.NoError(t, err)
	assert.Contains(t, out, "short(wep,arm,hlm,shd,acc,itm) array")
	assert.Contains(t, out, "KIND")
	assert.Contains(t, out, "spell")
}

func TestExtract_DirectoryReusesIdenticalFiles(t *testing.T) {
	t.Setenv("WORKER_COUNT", "1")
	dir := t.TempDir()
	writeScript(t, dir, "a.js")
	writeScript(t, dir, "b.js")

	out, err := run(t, "extract", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "a.js")
	assert.Contains(t, out, "b.js")
	assert.Contains(t, out, "true", "second identical file is served from the cache")
}

func TestExtract_Missing(t *testing.T) {
	_, err := run(t, "extract", filepath.Join(t.TempDir(), "nope.js"))
	assert.Error(t, err)
}

func TestList(t *testing.T) {
	path := writeScript(t, t.TempDir(), "game.js")

	out, err := run(t, "list", path, "monsters")
	require.NoError(t, err)
	assert.Equal(t, "  0  Goblin\n  1  Wolf\n", out)

	out, err = run(t, "list", path, "spell")
	require.NoError(t, err)
	assert.Contains(t, out, "default dataset")
	assert.Contains(t, out, "Fire")

	_, err = run(t, "list", path, "vehicle")
	assert.Error(t, err)
}

func TestShow(t *testing.T) {
	path := writeScript(t, t.TempDir(), "game.js")
	out, err := run(t, "show", path, "item", "Iron Sword")
	require.NoError(t, err)

	var it model.Item
	require.NoError(t, json.Unmarshal([]byte(out), &it))
	assert.Equal(t, model.ItemWeapon, it.Type)
	assert.Equal(t, "Sword", it.Category)
	assert.Equal(t, 15, it.Power)

	_, err = run(t, "show", path, "item", "Excalibur")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestExport_TSVToFile(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "game.js")
	output := filepath.Join(dir, "items.tsv")

	_, err := run(t, "export", path, "--format", "tsv", "--kind", "item", "--output", output)
	require.NoError(t, err)
	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Dagger\tWeapon\tDagger\t")

	_, err = run(t, "export", path, "--format", "xml")
	assert.Error(t, err)
}

func TestSave_AppliesEdits(t *testing.T) {
	path := writeScript(t, t.TempDir(), "game.js")
	t.Setenv("BACKUP_SUFFIX", ".orig")

	_, err := run(t, "save", path, "--remove", "monster:Wolf", "--rename", "item:Potion=Tonic")
	require.NoError(t, err)

	_, err = os.Stat(path + ".orig")
	require.NoError(t, err)
	src, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, script, string(src))

	data, err := os.ReadFile(path + store.EntitiesSuffix)
	require.NoError(t, err)
	var snap model.Snapshot
	require.NoError(t, json.Unmarshal(data, &snap))
	require.Len(t, snap.Monsters, 1)
	assert.Equal(t, "Goblin", snap.Monsters[0].Name)
	assert.Equal(t, "Tonic", snap.Items[2].Name)
}

func TestSave_BadReference(t *testing.T) {
	path := writeScript(t, t.TempDir(), "game.js")
	_, err := run(t, "save", path, "--remove", "Wolf")
	assert.Error(t, err)
	_, err = run(t, "save", path, "--rename", "item:Potion")
	assert.Error(t, err)
}

func TestKeywords(t *testing.T) {
	out, err := run(t, "keywords")
	require.NoError(t, err)
	assert.Contains(t, out, "categories:")
	assert.Contains(t, out, "boss_keywords:")
}

func TestKeywords_Overlay(t *testing.T) {
	overlay := filepath.Join(t.TempDir(), "kw.yaml")
	require.NoError(t, os.WriteFile(overlay, []byte("boss_keywords: [warlord]\n"), 0o644))
	out, err := run(t, "keywords", "--keywords", overlay)
	require.NoError(t, err)
	assert.Contains(t, out, "warlord")
	assert.NotContains(t, out, "- fiend")
}
