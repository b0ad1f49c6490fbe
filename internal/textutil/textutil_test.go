package textutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gamescript-extractor/internal/textutil"
)

func TestHash(t *testing.T) {
	assert.Len(t, textutil.Hash("wep: []"), 64)
	assert.Equal(t, textutil.Hash("a"), textutil.Hash("a"))
	assert.NotEqual(t, textutil.Hash("a"), textutil.Hash("b"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", textutil.Truncate("short", 10))
	assert.Equal(t, "Hello...", textutil.Truncate("Hello world", 5))
	assert.Equal(t, "勇者よ...", textutil.Truncate("勇者よ、目覚めよ", 3))
	assert.Equal(t, "line one line two", textutil.Truncate("line one\nline two", 40))
}

func TestStripBOM(t *testing.T) {
	assert.Equal(t, "wep: []", textutil.StripBOM("\ufeffwep: []"))
	assert.Equal(t, "wep: []", textutil.StripBOM("wep: []"))
}
