package domain

import "context"

// Embedder converts free text into a numeric vector representation.
// Implementations must be deterministic for identical input and may
// require a preparation phase over the corpus.
type Embedder interface {
	Name() string
	Prepare(corpus []string) error
	Dimension() int
	Embed(text string) ([]float64, error)
	EmbedBatch(texts []string) ([][]float64, error)
}

// Chunker splits documents into chunks suitable for retrieval indexing.
type Chunker interface {
	Chunk(document Document) ([]Chunk, error)
}

// VectorStore persists vectors and supports similarity search.
type VectorStore interface {
	Init(dimension int) error
	Upsert(chunks []Chunk, vectors [][]float64) error
	Search(vector []float64, topK int) ([]SearchResult, error)
	Clear() error
}

// GenerateOptions controls a single text-generation call.
type GenerateOptions struct {
	Temperature     float64
	MaxOutputTokens int
}

// Generator is a text-generation backend.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}

// UserStore is the external credential/row store. Username lookup is
// case-insensitive. Updates are best-effort, not transactional.
type UserStore interface {
	FindUser(ctx context.Context, username string) (User, error)
	UpdateRemainingLeaves(ctx context.Context, username string, remaining float64) error
	AppendLeaveHistory(ctx context.Context, rec LeaveRecord) error
}

// Summarizer produces a brief summary of the provided text.
type Summarizer interface {
	Summarize(text string, maxSentences int) (string, error)
}
