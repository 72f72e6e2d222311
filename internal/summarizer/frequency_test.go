package summarizer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"hrassistant/internal/summarizer"
)

func TestSummarizeLimitsSentences(t *testing.T) {
	s := summarizer.NewFrequencySummarizer()
	text := "Leave policy grants twenty days. Travel allowance covers fuel. " +
		"Provident fund vests after two years. Health insurance covers dependents. " +
		"Gratuity applies after five years. Bonuses depend on performance."

	out, err := s.Summarize(text, 3)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	require.LessOrEqual(t, strings.Count(out, "."), 3)
}

func TestSummarizeShortTextPassesThrough(t *testing.T) {
	s := summarizer.NewFrequencySummarizer()

	out, err := s.Summarize("no sentence terminator here", 5)
	require.NoError(t, err)
	require.Equal(t, "no sentence terminator here", out)
}

func TestSummarizeKeepsOriginalOrder(t *testing.T) {
	s := summarizer.NewFrequencySummarizer()
	text := "Alpha policy first. Beta policy second. Gamma policy third."

	out, err := s.Summarize(text, 3)
	require.NoError(t, err)
	require.Less(t, strings.Index(out, "Alpha"), strings.Index(out, "Beta"))
	require.Less(t, strings.Index(out, "Beta"), strings.Index(out, "Gamma"))
}
