package generate

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"hrassistant/internal/domain"
)

// Condense predicate thresholds: answers longer than this, or with more
// sentence breaks, get one bounded compression call.
const (
	maxAnswerChars     = 600
	maxSentenceBreaks  = 4
	condenseTemp       = 0.3
	condenseMaxTokens  = 400
	defaultGrade       = "Unknown"
	errorReplyPrefix   = "Error processing your query: "
	initializingAnswer = "System initializing, please wait..."
)

// AnswerGenerator fills the answer prompt with retrieved context and a
// question, invokes the text-generation backend, and compresses
// overlong answers with a single bounded follow-up call. Backend
// failures surface as user-visible strings, never as panics or errors
// that would end the interaction loop.
type AnswerGenerator struct {
	backend   domain.Generator
	synonyms  SynonymTable
	fallbacks FallbackResponses
	opts      domain.GenerateOptions
	log       *zap.Logger
}

func NewAnswerGenerator(backend domain.Generator, temperature float64, maxTokens int, log *zap.Logger) *AnswerGenerator {
	if log == nil {
		log = zap.NewNop()
	}
	return &AnswerGenerator{
		backend:   backend,
		synonyms:  DefaultSynonyms(),
		fallbacks: DefaultFallbacks(),
		opts:      domain.GenerateOptions{Temperature: temperature, MaxOutputTokens: maxTokens},
		log:       log,
	}
}

// Synonyms exposes the table so retrieval can reuse it for query
// expansion.
func (g *AnswerGenerator) Synonyms() SynonymTable { return g.synonyms }

// SetFallbacks replaces the fallback phrases rendered into the prompt.
func (g *AnswerGenerator) SetFallbacks(f FallbackResponses) { g.fallbacks = f }

// Answer produces a grounded, tone-controlled answer for the question
// given the retrieved context and the user's grade. With a
// deterministic backend, identical inputs yield identical output.
func (g *AnswerGenerator) Answer(ctx context.Context, question, contextText, grade string) string {
	if g.backend == nil {
		return initializingAnswer
	}
	if grade == "" {
		grade = defaultGrade
	}
	prompt, err := renderPrompt(promptData{
		Context:   contextText,
		Grade:     grade,
		Question:  question,
		Synonyms:  g.synonyms.PromptLines(),
		Fallbacks: g.fallbacks,
	})
	if err != nil {
		g.log.Error("prompt render failed", zap.Error(err))
		return errorReplyPrefix + err.Error()
	}
	raw, err := g.backend.Generate(ctx, prompt, g.opts)
	if err != nil {
		g.log.Error("generation failed", zap.Error(err))
		return errorReplyPrefix + err.Error()
	}
	raw = strings.TrimSpace(raw)
	if !NeedsCondense(raw) {
		return raw
	}
	// single bounded retry, not a loop
	g.log.Info("condensing overlong answer", zap.Int("chars", len(raw)))
	condensed, err := g.backend.Generate(ctx, condensePrompt+raw, domain.GenerateOptions{
		Temperature:     condenseTemp,
		MaxOutputTokens: condenseMaxTokens,
	})
	if err != nil {
		g.log.Error("condense failed", zap.Error(err))
		return errorReplyPrefix + err.Error()
	}
	return strings.TrimSpace(condensed)
}

// NeedsCondense reports whether a raw answer is long-winded enough to
// warrant the compression call.
func NeedsCondense(answer string) bool {
	return len(answer) > maxAnswerChars || strings.Count(answer, ". ") > maxSentenceBreaks
}
