package tfidf_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"hrassistant/internal/embedding/tfidf"
)

var corpus = []string{
	"annual leave entitlement is twenty days",
	"travel allowance covers fuel and commute costs",
	"provident fund contributions vest after two years",
}

func TestEmbedRequiresPrepare(t *testing.T) {
	emb := tfidf.NewEmbedder()
	_, err := emb.Embed("anything")
	require.Error(t, err)
	require.Error(t, emb.Prepare(nil))
}

func TestEmbedDeterministic(t *testing.T) {
	a := tfidf.NewEmbedder()
	b := tfidf.NewEmbedder()
	require.NoError(t, a.Prepare(corpus))
	require.NoError(t, b.Prepare(corpus))
	require.Equal(t, a.Dimension(), b.Dimension())

	va, err := a.Embed("annual leave days")
	require.NoError(t, err)
	vb, err := b.Embed("annual leave days")
	require.NoError(t, err)
	require.Equal(t, va, vb)
}

func TestEmbedNormalized(t *testing.T) {
	emb := tfidf.NewEmbedder()
	require.NoError(t, emb.Prepare(corpus))

	vec, err := emb.Embed(corpus[0])
	require.NoError(t, err)
	require.Len(t, vec, emb.Dimension())

	norm := 0.0
	for _, v := range vec {
		norm += v * v
	}
	require.InDelta(t, 1.0, math.Sqrt(norm), 1e-9)
}

func TestEmbedUnknownTermsYieldZeroVector(t *testing.T) {
	emb := tfidf.NewEmbedder()
	require.NoError(t, emb.Prepare(corpus))

	vec, err := emb.Embed("zzz qqq xyzzy")
	require.NoError(t, err)
	for _, v := range vec {
		require.Zero(t, v)
	}
}

func TestEmbedBatchMatchesEmbed(t *testing.T) {
	emb := tfidf.NewEmbedder()
	require.NoError(t, emb.Prepare(corpus))

	batch, err := emb.EmbedBatch(corpus)
	require.NoError(t, err)
	require.Len(t, batch, len(corpus))
	single, err := emb.Embed(corpus[1])
	require.NoError(t, err)
	require.Equal(t, single, batch[1])
}
