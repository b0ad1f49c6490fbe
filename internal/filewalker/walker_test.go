package filewalker_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamescript-extractor/internal/filewalker"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestWalk(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b", "Data.JS"), "var $db = {};")
	writeFile(t, filepath.Join(root, "a.json"), "{}")
	writeFile(t, filepath.Join(root, "a.json.entities.json"), "{}")
	writeFile(t, filepath.Join(root, "b", "Data.JS.bak"), "var $db = {};")
	writeFile(t, filepath.Join(root, "b", "Data.min.js.map"), "{}")
	writeFile(t, filepath.Join(root, "notes.md"), "# notes")
	writeFile(t, filepath.Join(root, ".git", "config.txt"), "x")
	writeFile(t, filepath.Join(root, "c", "items.rb"), "ITEMS = []")

	entries, err := filewalker.NewWalker().Walk(root)
	require.NoError(t, err)

	var rel []string
	for _, e := range entries {
		r, err := filepath.Rel(root, e.Path)
		require.NoError(t, err)
		rel = append(rel, filepath.ToSlash(r))
	}
	assert.Equal(t, []string{"a.json", "b/Data.JS", "c/items.rb"}, rel)
	assert.Equal(t, ".js", entries[1].Ext)
	assert.Equal(t, int64(len("var $db = {};")), entries[1].Size)
}

func TestWalk_MaxSize(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "small.js"), "x")
	writeFile(t, filepath.Join(root, "large.js"), "0123456789")

	w := &filewalker.Walker{MaxSize: 5}
	entries, err := w.Walk(root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "small.js", filepath.Base(entries[0].Path))
}

func TestWalk_NotADirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.js")
	writeFile(t, path, "")
	_, err := filewalker.NewWalker().Walk(path)
	assert.Error(t, err)

	_, err = filewalker.NewWalker().Walk(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestSupported(t *testing.T) {
	assert.True(t, filewalker.Supported("data/System.json"))
	assert.True(t, filewalker.Supported("Scripts.RB"))
	assert.False(t, filewalker.Supported("game.js.entities.json"))
	assert.False(t, filewalker.Supported("image.png"))
}
