package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"hrassistant/internal/domain"
	"hrassistant/internal/generate"
	"hrassistant/internal/leave"
	"hrassistant/internal/rerank"
	"hrassistant/internal/router"
)

// DocumentLoader is the ingestion-facing subset of the document store.
type DocumentLoader interface {
	LoadAll() ([]domain.Document, error)
}

// Assistant wires the corpus, retrieval, routing, generation and leave
// workflow together. It is synchronous and request-per-call: one query
// is fully handled before the next is accepted. The corpus is built
// once at startup and never mutated afterward.
type Assistant struct {
	loader     DocumentLoader
	chunker    domain.Chunker
	embedder   domain.Embedder
	store      domain.VectorStore
	users      domain.UserStore
	answers    *generate.AnswerGenerator
	leaves     *leave.Service
	reranker   *rerank.Reranker
	router     *router.Router
	summarizer domain.Summarizer
	searchK    int
	rerankTopK int
	log        *zap.Logger

	chunks []domain.Chunk // kept for lexical fallback ranking
}

// Config collects the assistant's collaborators.
type Config struct {
	Loader     DocumentLoader
	Chunker    domain.Chunker
	Embedder   domain.Embedder
	Store      domain.VectorStore
	Users      domain.UserStore
	Answers    *generate.AnswerGenerator
	Leaves     *leave.Service
	Summarizer domain.Summarizer
	SearchK    int
	RerankTopK int
	Logger     *zap.Logger
}

func New(cfg Config) *Assistant {
	if cfg.SearchK <= 0 {
		cfg.SearchK = 10
	}
	if cfg.RerankTopK <= 0 {
		cfg.RerankTopK = 3
	}
	if cfg.SearchK < cfg.RerankTopK {
		cfg.SearchK = cfg.RerankTopK
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Assistant{
		loader:     cfg.Loader,
		chunker:    cfg.Chunker,
		embedder:   cfg.Embedder,
		store:      cfg.Store,
		users:      cfg.Users,
		answers:    cfg.Answers,
		leaves:     cfg.Leaves,
		reranker:   rerank.New(cfg.Embedder),
		router:     router.New(),
		summarizer: cfg.Summarizer,
		searchK:    cfg.SearchK,
		rerankTopK: cfg.RerankTopK,
		log:        cfg.Logger,
	}
}

// Ingest builds the corpus: load sources, chunk, prepare the embedder,
// embed every chunk and populate the vector store. Ingestion is
// all-or-nothing; any failure leaves no corpus and must abort startup.
// Returns a short overview of the ingested material.
func (a *Assistant) Ingest(ctx context.Context) (string, error) {
	docs, err := a.loader.LoadAll()
	if err != nil {
		return "", err
	}
	var allChunks []domain.Chunk
	var texts []string
	var concat strings.Builder
	for _, d := range docs {
		chunks, err := a.chunkDocument(d)
		if err != nil {
			return "", err
		}
		for _, ch := range chunks {
			allChunks = append(allChunks, ch)
			texts = append(texts, ch.Text)
		}
		concat.WriteString("\n")
		concat.WriteString(d.Content)
	}
	if len(allChunks) == 0 {
		return "", fmt.Errorf("%w: sources produced no chunks", domain.ErrNotFound)
	}
	if err := a.embedder.Prepare(texts); err != nil {
		return "", err
	}
	vectors, err := a.embedder.EmbedBatch(texts)
	if err != nil {
		return "", err
	}
	dimension := a.embedder.Dimension()
	if dimension == 0 {
		dimension = len(vectors[0])
	}
	if err := a.store.Init(dimension); err != nil {
		return "", err
	}
	if err := a.store.Clear(); err != nil {
		return "", err
	}
	if err := a.store.Upsert(allChunks, vectors); err != nil {
		return "", err
	}
	a.chunks = allChunks
	a.log.Info("corpus ingested",
		zap.Int("documents", len(docs)),
		zap.Int("chunks", len(allChunks)),
		zap.Int("dimension", dimension))
	summary, err := a.summarizer.Summarize(concat.String(), 5)
	if err != nil {
		return "", err
	}
	return summary, nil
}

// chunkDocument splits policy documents and keeps each spreadsheet
// sheet as a single chunk.
func (a *Assistant) chunkDocument(d domain.Document) ([]domain.Chunk, error) {
	if strings.HasPrefix(d.Source, "sheet:") {
		text := strings.TrimSpace(d.Content)
		if text == "" {
			return nil, nil
		}
		return []domain.Chunk{{
			DocumentID: d.ID,
			ChunkID:    d.ID + ":0",
			Text:       text,
			Source:     d.Source,
		}}, nil
	}
	return a.chunker.Chunk(d)
}

// HandleQuery classifies the query and runs the matching branch. Every
// failure becomes a user-visible explanation; the interaction loop
// never sees an error.
func (a *Assistant) HandleQuery(ctx context.Context, user domain.User, query string) string {
	cls, err := a.router.Classify(query)
	if err != nil {
		return err.Error()
	}
	a.log.Info("query classified",
		zap.String("kind", cls.Kind.String()),
		zap.String("user", user.Username))
	switch cls.Kind {
	case domain.KindBalance:
		return a.handleBalance(ctx, user)
	case domain.KindLeaveApplication:
		return a.handleLeaveApplication(ctx, user, cls.Days)
	default:
		return a.handlePolicyQuestion(ctx, user, cls.Question)
	}
}

func (a *Assistant) handleBalance(ctx context.Context, user domain.User) string {
	fresh, err := a.users.FindUser(ctx, user.Username)
	if err != nil {
		a.log.Warn("could not refresh user record", zap.Error(err))
		fresh = user
	}
	return "Your current leave balance: " + formatDays(fresh.RemainingLeaves) + " days"
}

func (a *Assistant) handleLeaveApplication(ctx context.Context, user domain.User, days float64) string {
	remaining, err := a.leaves.Apply(ctx, user.Username, days)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return err.Error()
		}
		a.log.Error("leave application failed", zap.Error(err))
		return "Failed to apply for leave: " + err.Error()
	}
	return fmt.Sprintf("Leave application for %s days submitted successfully!\nRemaining leaves: %s\nStatus: %s",
		formatDays(days), formatDays(remaining), leave.StatusPending)
}

func (a *Assistant) handlePolicyQuestion(ctx context.Context, user domain.User, question string) string {
	candidates, err := a.Retrieve(question, a.searchK)
	if err != nil {
		a.log.Error("retrieval failed", zap.Error(err))
		return "Sorry, there was an error handling your question: " + err.Error()
	}
	expanded := a.answers.Synonyms().Expand(question)
	ranked, err := a.reranker.Rerank(expanded, candidates, a.rerankTopK)
	if err != nil {
		a.log.Error("rerank failed", zap.Error(err))
		return "Sorry, there was an error handling your question: " + err.Error()
	}
	parts := make([]string, 0, len(ranked))
	for _, r := range ranked {
		parts = append(parts, r.Chunk.Text)
	}
	answer := a.answers.Answer(ctx, question, strings.Join(parts, "\n\n"), user.Grade)
	return a.refineAnswer(ctx, user, answer)
}

// refineAnswer suffixes leave-related answers with the user's live
// balance.
func (a *Assistant) refineAnswer(ctx context.Context, user domain.User, answer string) string {
	if !strings.Contains(strings.ToLower(answer), "leave") {
		return answer
	}
	fresh, err := a.users.FindUser(ctx, user.Username)
	if err != nil {
		return answer
	}
	return answer + "\n\nYour current leave balance: " + formatDays(fresh.RemainingLeaves) + " days"
}

// Retrieve embeds the synonym-expanded query and returns the k nearest
// chunks. Falls back to lexical overlap ranking when the query embeds
// to the zero vector or every vector score is zero.
func (a *Assistant) Retrieve(query string, k int) ([]domain.Chunk, error) {
	if k <= 0 {
		k = a.searchK
	}
	expanded := a.answers.Synonyms().Expand(query)
	vec, err := a.embedder.Embed(expanded)
	if err != nil {
		return nil, err
	}
	if isZero(vec) {
		return a.lexicalSearch(expanded, k), nil
	}
	results, err := a.store.Search(vec, k)
	if err != nil {
		return nil, err
	}
	if allZeroScores(results) {
		return a.lexicalSearch(expanded, k), nil
	}
	chunks := make([]domain.Chunk, 0, len(results))
	for _, r := range results {
		chunks = append(chunks, r.Chunk)
	}
	return chunks, nil
}

func formatDays(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func isZero(vec []float64) bool {
	for _, v := range vec {
		if v != 0 {
			return false
		}
	}
	return true
}

func allZeroScores(results []domain.SearchResult) bool {
	for _, r := range results {
		if r.Score > 1e-9 {
			return false
		}
	}
	return true
}
