package gemini

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"

	"hrassistant/internal/domain"
)

// Embedder produces sentence embeddings via the Gemini API.
type Embedder struct {
	client    *genai.Client
	model     string
	dimension int
}

// NewEmbedder creates a Gemini embeddings client. The API key is read
// from the named environment variable.
func NewEmbedder(ctx context.Context, apiKeyEnv, model string) (*Embedder, error) {
	key := os.Getenv(apiKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API key in env %s", apiKeyEnv)
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	if model == "" {
		model = "gemini-embedding-001"
	}
	return &Embedder{client: client, model: model}, nil
}

// Name returns the identifier of this embedder implementation.
func (e *Embedder) Name() string { return "gemini" }

// Prepare is not required for remote embedding. The dimension is set
// lazily on the first embed call.
func (e *Embedder) Prepare(corpus []string) error { return nil }

// Dimension returns the dimensionality of the produced embedding vectors.
func (e *Embedder) Dimension() int { return e.dimension }

// Embed returns an embedding vector for the given text.
func (e *Embedder) Embed(text string) ([]float64, error) {
	vecs, err := e.EmbedBatch([]string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// EmbedBatch embeds a batch of texts in one request.
func (e *Embedder) EmbedBatch(texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	contents := make([]*genai.Content, len(texts))
	for i, t := range texts {
		contents[i] = &genai.Content{Parts: []*genai.Part{{Text: t}}}
	}
	resp, err := e.client.Models.EmbedContent(context.Background(), e.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: gemini embed: %v", domain.ErrBackend, err)
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("%w: expected %d embeddings, got %d", domain.ErrBackend, len(texts), len(resp.Embeddings))
	}
	out := make([][]float64, len(texts))
	for i, emb := range resp.Embeddings {
		vec := make([]float64, len(emb.Values))
		for j, v := range emb.Values {
			vec[j] = float64(v)
		}
		out[i] = vec
	}
	if e.dimension == 0 && len(out[0]) > 0 {
		e.dimension = len(out[0])
	}
	return out, nil
}
