package chunk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wordEstimator counts whitespace-separated words as tokens, which makes
// budget arithmetic in tests exact.
func wordEstimator() Estimator {
	return EstimatorFunc(func(text string) int {
		return len(strings.Fields(text))
	})
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func TestSplitEmptyTextYieldsZeroChunks(t *testing.T) {
	t.Parallel()

	c := NewChunker(100, wordEstimator())
	assert.Empty(t, c.Split("doc.txt", ""))
	assert.Empty(t, c.Split("doc.txt", "  \n\n \t"))
}

func TestSplitShortTextYieldsOneChunk(t *testing.T) {
	t.Parallel()

	c := NewChunker(100, wordEstimator())
	chunks := c.Split("doc.txt", "A short paragraph.\n\nAnother short one.")
	require.Len(t, chunks, 1)
	assert.Equal(t, 0, chunks[0].Index)
	assert.Equal(t, "doc.txt", chunks[0].SourceName)
}

func TestSplitPrefersParagraphBoundaries(t *testing.T) {
	t.Parallel()

	para1 := strings.Repeat("alpha ", 30)
	para2 := strings.Repeat("beta ", 30)
	text := strings.TrimSpace(para1) + "\n\n" + strings.TrimSpace(para2)

	c := NewChunker(40, wordEstimator())
	chunks := c.Split("doc.txt", text)

	require.Len(t, chunks, 2)
	assert.Contains(t, chunks[0].Text, "alpha")
	assert.NotContains(t, chunks[0].Text, "beta")
	assert.Contains(t, chunks[1].Text, "beta")
}

func TestSplitOversizedParagraphFallsBackToSentences(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	for i := 0; i < 10; i++ {
		sb.WriteString("This sentence has exactly seven words in it. ")
	}

	c := NewChunker(20, wordEstimator())
	chunks := c.Split("doc.txt", sb.String())

	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, chunk.Tokens, 20, "chunk %d exceeds budget", chunk.Index)
	}
}

func TestSplitHardSplitsGiantSentence(t *testing.T) {
	t.Parallel()

	// One "sentence" with no terminal punctuation, far over any budget.
	text := strings.Repeat("x", 5000)

	c := NewChunker(50, HeuristicEstimator())
	chunks := c.Split("doc.txt", text)

	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, chunk.Tokens, 50)
	}
}

func TestSplitReassemblyProperty(t *testing.T) {
	t.Parallel()

	texts := []string{
		"Single paragraph, short and sweet.",
		"First paragraph here.\n\nSecond paragraph with more words. It has two sentences.\n\nThird.",
		strings.Repeat("A fairly long sentence that repeats a few times to exceed budgets. ", 40),
	}

	for _, text := range texts {
		for _, budget := range []int{10, 40, 1000} {
			c := NewChunker(budget, wordEstimator())
			chunks := c.Split("doc.txt", text)

			var parts []string
			for i, chunk := range chunks {
				assert.Equal(t, i, chunk.Index, "chunk indexes must be ordered")
				assert.LessOrEqual(t, chunk.Tokens, budget)
				parts = append(parts, chunk.Text)
			}

			reassembled := collapseWhitespace(strings.Join(parts, " "))
			assert.Equal(t, collapseWhitespace(text), reassembled)
		}
	}
}

func TestChunkerDefaults(t *testing.T) {
	t.Parallel()

	c := NewChunker(0, nil)
	chunks := c.Split("doc.txt", "Some text.")
	require.Len(t, chunks, 1)
	assert.Greater(t, chunks[0].Tokens, 0)
}

func TestHeuristicEstimator(t *testing.T) {
	t.Parallel()

	e := HeuristicEstimator()
	assert.Equal(t, 0, e.EstimateTokens(""))
	assert.Greater(t, e.EstimateTokens("hello world"), 0)
	// Roughly one token per three runes.
	assert.InDelta(t, 100, e.EstimateTokens(strings.Repeat("abc", 100)), 2)
}
