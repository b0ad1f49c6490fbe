package config

import (
	"strconv"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{
		"DATABASE_URL", "NEO4J_URI", "NEO4J_USER", "NEO4J_PASSWORD", "WORKER_COUNT",
		"LOG_LEVEL", "KEYWORDS_FILE", "BACKUP_SUFFIX", "SIMILAR_LIMIT",
	} {
		t.Setenv(k, "")
	}
	cfg := FromEnv()
	assert.Equal(t, "bolt://localhost:7687", cfg.Neo4jURI)
	assert.Equal(t, 8, cfg.WorkerCount)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
	assert.Equal(t, "", cfg.KeywordsFile)
	assert.Equal(t, ".bak", cfg.BackupSuffix)
	assert.Equal(t, 5, cfg.SimilarLimit)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("WORKER_COUNT", " 3 ")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("KEYWORDS_FILE", "keywords.yaml")
	t.Setenv("BACKUP_SUFFIX", ".orig")
	cfg := FromEnv()
	assert.Equal(t, 3, cfg.WorkerCount)
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
	assert.Equal(t, "keywords.yaml", cfg.KeywordsFile)
	assert.Equal(t, ".orig", cfg.BackupSuffix)
}

func TestFromEnv_BadValuesFallBack(t *testing.T) {
	t.Setenv("WORKER_COUNT", "many")
	t.Setenv("LOG_LEVEL", "loud")
	t.Setenv("SIMILAR_LIMIT", "-2")
	cfg := FromEnv()
	assert.Equal(t, 8, cfg.WorkerCount)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
	assert.Equal(t, 5, cfg.SimilarLimit)
}

func TestGetEnvInt_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(-1000, 1000).Draw(rt, "n")
		t.Setenv("GAMESCRIPT_TEST_INT", strconv.Itoa(n))
		got := getEnvInt("GAMESCRIPT_TEST_INT", 7)
		if n > 0 && got != n {
			rt.Fatalf("getEnvInt(%d) = %d", n, got)
		}
		if n <= 0 && got != 7 {
			rt.Fatalf("getEnvInt(%d) = %d, want fallback", n, got)
		}
	})
}
