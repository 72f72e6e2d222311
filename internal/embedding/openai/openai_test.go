package openai

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hrassistant/internal/domain"
)

func testClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	t.Setenv("TEST_OPENAI_KEY", "secret")
	c, err := NewClient(Config{BaseURL: baseURL, APIKeyEnv: "TEST_OPENAI_KEY", Model: "test-model"})
	require.NoError(t, err)
	return c
}

func TestEmbedBatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Write([]byte(`{"data":[{"embedding":[0.1,0.2]},{"embedding":[0.3,0.4]}]}`))
	}))
	t.Cleanup(srv.Close)

	c := testClient(t, srv.URL)
	vecs, err := c.EmbedBatch([]string{"a", "b"})
	require.NoError(t, err)
	require.Equal(t, [][]float64{{0.1, 0.2}, {0.3, 0.4}}, vecs)
	require.Equal(t, 2, c.Dimension())
}

func TestEmbedBatchRetriesTransientFailures(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"data":[{"embedding":[1,0]}]}`))
	}))
	t.Cleanup(srv.Close)

	c := testClient(t, srv.URL)
	vecs, err := c.EmbedBatch([]string{"a"})
	require.NoError(t, err)
	require.Len(t, vecs, 1)
	require.Equal(t, 3, calls)
}

func TestEmbedBatchClientErrorNotRetried(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
	}))
	t.Cleanup(srv.Close)

	c := testClient(t, srv.URL)
	_, err := c.EmbedBatch([]string{"a"})
	require.ErrorIs(t, err, domain.ErrBackend)
	require.Equal(t, 1, calls)
}

func TestEmbedBatchNoSleepAfterFinalAttempt(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	c := testClient(t, srv.URL)
	c.maxRetries = 1

	start := time.Now()
	_, err := c.EmbedBatch([]string{"a"})
	elapsed := time.Since(start)

	require.ErrorIs(t, err, domain.ErrBackend)
	require.Equal(t, 2, calls)
	// one 200ms backoff between the two attempts, none after the last
	require.Less(t, elapsed, 350*time.Millisecond)
}
