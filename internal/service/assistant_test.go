package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"hrassistant/internal/chunker"
	"hrassistant/internal/domain"
	"hrassistant/internal/embedding/tfidf"
	"hrassistant/internal/generate"
	"hrassistant/internal/leave"
	"hrassistant/internal/router"
	"hrassistant/internal/service"
	"hrassistant/internal/summarizer"
	usermemory "hrassistant/internal/userstore/memory"
	vecmemory "hrassistant/internal/vectorstore/memory"
)

type staticLoader struct {
	docs []domain.Document
}

func (l staticLoader) LoadAll() ([]domain.Document, error) { return l.docs, nil }

// echoBackend records prompts and replies with a fixed answer.
type echoBackend struct {
	reply   string
	prompts []string
}

func (b *echoBackend) Generate(ctx context.Context, prompt string, opts domain.GenerateOptions) (string, error) {
	b.prompts = append(b.prompts, prompt)
	return b.reply, nil
}

func policyDocs() []domain.Document {
	return []domain.Document{
		{ID: "d1", Source: "txt", Content: "Leave Policy: employees receive twenty days of annual leave per calendar year.\n\n" +
			"Travel Allowance: fuel and commute costs are reimbursed monthly for eligible grades.\n\n" +
			"Provident Fund: contributions vest after two years of continuous service.\n\n" +
			"Resignation Policy: a thirty day notice period applies to all grades."},
		{ID: "d2", Source: "sheet:Employees", Content: "Name\tTeam\nAlice\tPlatform\nBob\tSupport"},
	}
}

func newAssistant(t *testing.T, backend domain.Generator, store *usermemory.Store) *service.Assistant {
	t.Helper()
	a := service.New(service.Config{
		Loader:     staticLoader{docs: policyDocs()},
		Chunker:    chunker.NewRecursiveChunker(100, 20),
		Embedder:   tfidf.NewEmbedder(),
		Store:      vecmemory.NewStorage(),
		Users:      store,
		Answers:    generate.NewAnswerGenerator(backend, 0.3, 800, nil),
		Leaves:     leave.NewService(store, 0.5, 30),
		Summarizer: summarizer.NewFrequencySummarizer(),
		SearchK:    10,
		RerankTopK: 3,
	})
	summary, err := a.Ingest(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, summary)
	return a
}

func alice() domain.User {
	return domain.User{Username: "Alice", Password: 1234, RemainingLeaves: 10, Grade: "L2"}
}

func TestIngestKeepsSheetsWhole(t *testing.T) {
	a := newAssistant(t, &echoBackend{reply: "ok"}, usermemory.NewStore(alice()))

	// the employee sheet must survive as one chunk despite the small
	// chunk size
	chunks, err := a.Retrieve("alice bob platform support", 10)
	require.NoError(t, err)
	found := false
	for _, ch := range chunks {
		if ch.Source == "sheet:Employees" {
			found = true
			require.Equal(t, "Name\tTeam\nAlice\tPlatform\nBob\tSupport", ch.Text)
		}
	}
	require.True(t, found)
}

func TestRetrieveExpandsSynonyms(t *testing.T) {
	a := newAssistant(t, &echoBackend{reply: "ok"}, usermemory.NewStore(alice()))

	// "vacation" never appears in the corpus; expansion to "Leave
	// Policy" must still surface the leave chunk
	chunks, err := a.Retrieve("vacation", 3)
	require.NoError(t, err)
	require.NotEmpty(t, chunks)
	found := false
	for _, ch := range chunks {
		if strings.Contains(ch.Text, "annual leave") {
			found = true
		}
	}
	require.True(t, found)
}

func TestRetrieveLexicalFallback(t *testing.T) {
	a := newAssistant(t, &echoBackend{reply: "ok"}, usermemory.NewStore(alice()))

	// stopword-only queries embed to the zero vector; lexical overlap
	// still has to produce candidates
	chunks, err := a.Retrieve("to all of the", 5)
	require.NoError(t, err)
	require.NotEmpty(t, chunks)
}

func TestHandleQueryPolicyQuestion(t *testing.T) {
	backend := &echoBackend{reply: "Notice period is thirty days."}
	a := newAssistant(t, backend, usermemory.NewStore(alice()))

	reply := a.HandleQuery(context.Background(), alice(), "what is the notice period for resignation")
	require.Equal(t, "Notice period is thirty days.", reply)

	require.NotEmpty(t, backend.prompts)
	require.Contains(t, backend.prompts[0], "notice period")
	require.Contains(t, backend.prompts[0], "User Grade: L2")
}

func TestHandleQueryLeaveAnswerShowsBalance(t *testing.T) {
	backend := &echoBackend{reply: "You get twenty days of annual leave."}
	a := newAssistant(t, backend, usermemory.NewStore(alice()))

	reply := a.HandleQuery(context.Background(), alice(), "how much annual leave do i get")
	require.True(t, strings.HasSuffix(reply, "Your current leave balance: 10 days"))
}

func TestHandleQueryVacationQuestionGetsLeaveContext(t *testing.T) {
	backend := &echoBackend{reply: "Twenty days."}
	a := newAssistant(t, backend, usermemory.NewStore(alice()))

	a.HandleQuery(context.Background(), alice(), "how many vacation days do I get?")
	require.NotEmpty(t, backend.prompts)
	// synonym expansion must put the leave chunk into the reranked context
	require.Contains(t, backend.prompts[0], "twenty days of annual leave")
}

func TestHandleQueryBalance(t *testing.T) {
	a := newAssistant(t, &echoBackend{reply: "ok"}, usermemory.NewStore(alice()))

	reply := a.HandleQuery(context.Background(), alice(), "how many leaves do I have left?")
	require.Equal(t, "Your current leave balance: 10 days", reply)
}

func TestHandleQueryApplyForLeave(t *testing.T) {
	store := usermemory.NewStore(alice())
	a := newAssistant(t, &echoBackend{reply: "ok"}, store)

	reply := a.HandleQuery(context.Background(), alice(), "apply for leave 2")
	require.Equal(t,
		"Leave application for 2 days submitted successfully!\nRemaining leaves: 8\nStatus: Pending Approval",
		reply)

	user, err := store.FindUser(context.Background(), "alice")
	require.NoError(t, err)
	require.Equal(t, 8.0, user.RemainingLeaves)
	require.Len(t, store.History(), 1)

	// the balance branch now reports the decremented value
	reply = a.HandleQuery(context.Background(), alice(), "what is my leave balance")
	require.Equal(t, "Your current leave balance: 8 days", reply)
}

func TestHandleQueryApplyValidationMessages(t *testing.T) {
	a := newAssistant(t, &echoBackend{reply: "ok"}, usermemory.NewStore(alice()))

	tests := []struct {
		query string
		want  string
	}{
		{"apply for leave", router.MissingDaysMessage},
		{"apply for leave soon", router.MissingDaysMessage},
		{"apply for leave 0", "leave days must be positive"},
		{"apply for leave 0.25", "minimum leave is 0.5 day"},
		{"apply for leave 31", "maximum leave is 30 days"},
		{"apply for leave 11", "not enough remaining leaves"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, a.HandleQuery(context.Background(), alice(), tt.query), tt.query)
	}
}

func TestHandleQueryFractionalDays(t *testing.T) {
	store := usermemory.NewStore(alice())
	a := newAssistant(t, &echoBackend{reply: "ok"}, store)

	reply := a.HandleQuery(context.Background(), alice(), "apply for leave 2.5")
	require.Equal(t,
		"Leave application for 2.5 days submitted successfully!\nRemaining leaves: 7.5\nStatus: Pending Approval",
		reply)
}
