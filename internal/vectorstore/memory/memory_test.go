package memory_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"hrassistant/internal/domain"
	"hrassistant/internal/vectorstore/memory"
)

func TestSearchRanksByCosine(t *testing.T) {
	s := memory.NewStorage()
	require.NoError(t, s.Init(3))

	chunks := []domain.Chunk{
		{ChunkID: "a", Text: "a"},
		{ChunkID: "b", Text: "b"},
		{ChunkID: "c", Text: "c"},
	}
	vectors := [][]float64{
		{1, 0, 0},
		{0, 1, 0},
		{0.9, 0.1, 0},
	}
	require.NoError(t, s.Upsert(chunks, vectors))

	results, err := s.Search([]float64{1, 0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, "a", results[0].Chunk.ChunkID)
	require.Equal(t, "c", results[1].Chunk.ChunkID)
	require.InDelta(t, 1.0, results[0].Score, 1e-9)
	require.Greater(t, results[0].Score, results[1].Score)
}

func TestUpsertDimensionMismatch(t *testing.T) {
	s := memory.NewStorage()
	require.NoError(t, s.Init(3))

	err := s.Upsert([]domain.Chunk{{ChunkID: "a"}}, [][]float64{{1, 0}})
	require.Error(t, err)

	err = s.Upsert([]domain.Chunk{{ChunkID: "a"}}, nil)
	require.Error(t, err)
}

func TestInitRejectsInvalidDimension(t *testing.T) {
	s := memory.NewStorage()
	require.Error(t, s.Init(0))
	require.Error(t, s.Init(-1))
}

func TestClear(t *testing.T) {
	s := memory.NewStorage()
	require.NoError(t, s.Init(2))
	require.NoError(t, s.Upsert([]domain.Chunk{{ChunkID: "a"}}, [][]float64{{1, 0}}))
	require.NoError(t, s.Clear())

	results, err := s.Search([]float64{1, 0}, 5)
	require.NoError(t, err)
	require.Empty(t, results)
}
