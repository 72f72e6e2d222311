package rerank

import (
	"math"
	"sort"

	"hrassistant/internal/domain"
)

// Reranker recomputes query and candidate embeddings and reorders
// candidates by cosine similarity. Embeddings are recomputed rather
// than reused from the index so the similarity metric can diverge from
// the index's later without reindexing.
type Reranker struct {
	embedder domain.Embedder
}

func New(embedder domain.Embedder) *Reranker {
	return &Reranker{embedder: embedder}
}

// Rerank returns at most topK candidates sorted by descending cosine
// similarity to the query. The sort is stable: ties keep the original
// candidate order. An empty candidate set yields an empty result.
func (r *Reranker) Rerank(query string, candidates []domain.Chunk, topK int) ([]domain.SearchResult, error) {
	if len(candidates) == 0 {
		return []domain.SearchResult{}, nil
	}
	queryVec, err := r.embedder.Embed(query)
	if err != nil {
		return nil, err
	}
	texts := make([]string, len(candidates))
	for i, c := range candidates {
		texts[i] = c.Text
	}
	vecs, err := r.embedder.EmbedBatch(texts)
	if err != nil {
		return nil, err
	}
	results := make([]domain.SearchResult, len(candidates))
	for i := range candidates {
		results[i] = domain.SearchResult{
			Chunk: candidates[i],
			Score: Cosine(queryVec, vecs[i]),
		}
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if topK > 0 && topK < len(results) {
		results = results[:topK]
	}
	return results, nil
}

// Cosine returns the cosine similarity of two vectors, 0 when either
// is the zero vector.
func Cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
