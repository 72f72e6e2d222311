package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"hrassistant/internal/config"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, "tfidf", cfg.Embedder.Type)
	require.Equal(t, "memory", cfg.VectorStore.Type)
	require.Equal(t, 1000, cfg.Chunker.ChunkSize)
	require.Equal(t, 100, cfg.Chunker.ChunkOverlap)
	require.Equal(t, 10, cfg.Retrieval.SearchK)
	require.Equal(t, 3, cfg.Retrieval.RerankTopK)
	require.Equal(t, "gemini-2.5-flash", cfg.Generator.Gemini.Model)
	require.Equal(t, 0.3, cfg.Generator.Temperature)
	require.Equal(t, 800, cfg.Generator.MaxOutputTokens)
	require.Equal(t, 0.5, cfg.Leave.MinDays)
	require.Equal(t, 30.0, cfg.Leave.MaxDays)
	require.Equal(t, 3, cfg.Auth.MaxLoginAttempts)
	require.Equal(t, "Sheet1", cfg.Sheets.SheetName)
	require.Equal(t, "LeaveHistory", cfg.Sheets.HistorySheet)
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	cfg.Policy.Path = "docs/policies.pdf"
	cfg.Leave.MaxDays = 25

	require.NoError(t, config.Save(path, cfg))

	loaded, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "docs/policies.pdf", loaded.Policy.Path)
	require.Equal(t, 25.0, loaded.Leave.MaxDays)
	require.Equal(t, cfg.Retrieval, loaded.Retrieval)
}

func TestLoadEnforcesSearchKFloor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "retrieval:\n  search_k: 2\n  rerank_top_k: 5\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, 5, cfg.Retrieval.RerankTopK)
	require.GreaterOrEqual(t, cfg.Retrieval.SearchK, cfg.Retrieval.RerankTopK)
}

func TestLoadRepairsChunkOverlap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "chunker:\n  chunk_size: 50\n  chunk_overlap: 60\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, 50, cfg.Chunker.ChunkSize)
	require.Less(t, cfg.Chunker.ChunkOverlap, cfg.Chunker.ChunkSize)
	require.GreaterOrEqual(t, cfg.Chunker.ChunkOverlap, 0)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("retrieval: [oops"), 0o644))

	_, err := config.Load(path)
	require.Error(t, err)
}
