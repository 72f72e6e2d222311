package rerank_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"hrassistant/internal/domain"
	"hrassistant/internal/embedding/tfidf"
	"hrassistant/internal/rerank"
)

func preparedEmbedder(t *testing.T, texts []string) *tfidf.Embedder {
	t.Helper()
	emb := tfidf.NewEmbedder()
	require.NoError(t, emb.Prepare(texts))
	return emb
}

func TestRerankOrdersByRelevance(t *testing.T) {
	candidates := []domain.Chunk{
		{ChunkID: "c0", Text: "travel allowance covers fuel expenses for grades above L2"},
		{ChunkID: "c1", Text: "annual leave entitlement is twenty days per calendar year"},
		{ChunkID: "c2", Text: "the provident fund contribution is matched by the company"},
		{ChunkID: "c3", Text: "leave applications need manager approval beyond five days"},
	}
	texts := make([]string, len(candidates))
	for i, c := range candidates {
		texts[i] = c.Text
	}
	emb := preparedEmbedder(t, texts)
	r := rerank.New(emb)

	results, err := r.Rerank("how many days of annual leave do I get", candidates, 3)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// scores descend and the leave chunk wins
	for i := 1; i < len(results); i++ {
		require.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
	require.Equal(t, "c1", results[0].Chunk.ChunkID)

	// every result is one of the candidates
	ids := map[string]struct{}{}
	for _, c := range candidates {
		ids[c.ChunkID] = struct{}{}
	}
	for _, res := range results {
		require.Contains(t, ids, res.Chunk.ChunkID)
	}
}

func TestRerankTopKBound(t *testing.T) {
	candidates := []domain.Chunk{
		{ChunkID: "c0", Text: "alpha beta"},
		{ChunkID: "c1", Text: "gamma delta"},
	}
	emb := preparedEmbedder(t, []string{"alpha beta", "gamma delta"})
	r := rerank.New(emb)

	// topK larger than the candidate set returns everything
	results, err := r.Rerank("alpha", candidates, 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
}

func TestRerankStableOnTies(t *testing.T) {
	// identical texts embed identically, so all scores tie and the
	// original order must survive
	candidates := []domain.Chunk{
		{ChunkID: "c0", Text: "identical text"},
		{ChunkID: "c1", Text: "identical text"},
		{ChunkID: "c2", Text: "identical text"},
	}
	emb := preparedEmbedder(t, []string{"identical text"})
	r := rerank.New(emb)

	results, err := r.Rerank("identical text", candidates, 3)
	require.NoError(t, err)
	require.Len(t, results, 3)
	require.Equal(t, "c0", results[0].Chunk.ChunkID)
	require.Equal(t, "c1", results[1].Chunk.ChunkID)
	require.Equal(t, "c2", results[2].Chunk.ChunkID)
}

func TestRerankEmptyCandidates(t *testing.T) {
	emb := preparedEmbedder(t, []string{"something"})
	r := rerank.New(emb)

	results, err := r.Rerank("anything", nil, 3)
	require.NoError(t, err)
	require.NotNil(t, results)
	require.Empty(t, results)
}

func TestCosine(t *testing.T) {
	require.InDelta(t, 1.0, rerank.Cosine([]float64{1, 2, 3}, []float64{1, 2, 3}), 1e-12)
	require.InDelta(t, 0.0, rerank.Cosine([]float64{1, 0}, []float64{0, 1}), 1e-12)
	require.InDelta(t, -1.0, rerank.Cosine([]float64{1, 0}, []float64{-1, 0}), 1e-12)
	require.Equal(t, 0.0, rerank.Cosine([]float64{0, 0}, []float64{1, 1}))
}
