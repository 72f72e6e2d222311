package service

import (
	"math"
	"sort"
	"strings"

	"hrassistant/internal/domain"
)

// lexicalSearch ranks the corpus by token-set Ochiai coefficient,
// overlap / sqrt(|q|*|c|). Used when vector scores carry no signal,
// typically a query made entirely of out-of-vocabulary words.
func (a *Assistant) lexicalSearch(query string, k int) []domain.Chunk {
	queryTokens := tokenSet(query)
	if len(queryTokens) == 0 {
		return nil
	}
	type scored struct {
		chunk domain.Chunk
		score float64
	}
	ranked := make([]scored, 0, len(a.chunks))
	for _, ch := range a.chunks {
		chunkTokens := tokenSet(ch.Text)
		if len(chunkTokens) == 0 {
			continue
		}
		overlap := 0
		for tok := range queryTokens {
			if _, ok := chunkTokens[tok]; ok {
				overlap++
			}
		}
		if overlap == 0 {
			continue
		}
		score := float64(overlap) / math.Sqrt(float64(len(queryTokens))*float64(len(chunkTokens)))
		ranked = append(ranked, scored{chunk: ch, score: score})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	if len(ranked) > k {
		ranked = ranked[:k]
	}
	chunks := make([]domain.Chunk, 0, len(ranked))
	for _, s := range ranked {
		chunks = append(chunks, s.chunk)
	}
	return chunks
}

func tokenSet(text string) map[string]struct{} {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	})
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}
