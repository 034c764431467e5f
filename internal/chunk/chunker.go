// Package chunk splits normalized document text into ordered, bounded-size
// segments for independent generation. Splitting prefers paragraph
// boundaries, falls back to sentences for oversized paragraphs, and to a
// hard rune split only as a last resort. Reassembling the chunks in order
// reproduces the input modulo whitespace normalization.
package chunk

import (
	"strings"
	"unicode"
)

// Chunk is one ordered text segment with source attribution. Chunks exist
// only between the chunker and the generation step; they are never persisted.
type Chunk struct {
	SourceName string
	Index      int
	Text       string
	Tokens     int
}

// Chunker splits text against a per-chunk token budget.
type Chunker struct {
	budget    int
	estimator Estimator
}

// DefaultTokenBudget is used when the configured budget is zero or negative.
const DefaultTokenBudget = 800

// NewChunker creates a Chunker with the given token budget and estimator.
func NewChunker(budget int, estimator Estimator) *Chunker {
	if budget <= 0 {
		budget = DefaultTokenBudget
	}
	if estimator == nil {
		estimator = HeuristicEstimator()
	}
	return &Chunker{budget: budget, estimator: estimator}
}

// Split divides text into ordered chunks at or below the token budget.
// Empty (or whitespace-only) text yields zero chunks; the caller reports
// that as a no-content warning rather than an error.
func (c *Chunker) Split(sourceName, text string) []Chunk {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var pieces []string
	for _, paragraph := range splitParagraphs(text) {
		if c.estimator.EstimateTokens(paragraph) <= c.budget {
			pieces = append(pieces, paragraph)
			continue
		}
		pieces = append(pieces, c.splitOversized(paragraph)...)
	}

	// Greedily pack consecutive pieces back together while under budget so
	// short paragraphs don't each become a tiny chunk.
	var chunks []Chunk
	var current strings.Builder
	flush := func() {
		if current.Len() == 0 {
			return
		}
		segment := current.String()
		chunks = append(chunks, Chunk{
			SourceName: sourceName,
			Index:      len(chunks),
			Text:       segment,
			Tokens:     c.estimator.EstimateTokens(segment),
		})
		current.Reset()
	}

	for _, piece := range pieces {
		if current.Len() > 0 {
			candidate := current.String() + "\n\n" + piece
			if c.estimator.EstimateTokens(candidate) > c.budget {
				flush()
			} else {
				current.Reset()
				current.WriteString(candidate)
				continue
			}
		}
		current.WriteString(piece)
	}
	flush()

	return chunks
}

// splitOversized breaks one over-budget paragraph into sentence groups, hard
// splitting any single sentence that still exceeds the budget.
func (c *Chunker) splitOversized(paragraph string) []string {
	var pieces []string
	for _, sentence := range splitSentences(paragraph) {
		if c.estimator.EstimateTokens(sentence) <= c.budget {
			pieces = append(pieces, sentence)
			continue
		}
		pieces = append(pieces, c.hardSplit(sentence)...)
	}
	return pieces
}

// hardSplit cuts text into rune windows that each fit the budget. Binary
// search finds the longest fitting prefix at every step.
func (c *Chunker) hardSplit(text string) []string {
	runes := []rune(text)
	var pieces []string

	for len(runes) > 0 {
		lo, hi := 1, len(runes)
		for lo < hi {
			mid := (lo + hi + 1) / 2
			if c.estimator.EstimateTokens(string(runes[:mid])) <= c.budget {
				lo = mid
			} else {
				hi = mid - 1
			}
		}
		// Back off to the last whitespace so the cut does not land inside a
		// word; a single word longer than the whole budget is cut as-is.
		cut := lo
		if cut < len(runes) {
			for cut > 1 && !unicode.IsSpace(runes[cut-1]) && !unicode.IsSpace(runes[cut]) {
				cut--
			}
			if cut == 1 {
				cut = lo
			}
		}

		piece := strings.TrimSpace(string(runes[:cut]))
		if piece != "" {
			pieces = append(pieces, piece)
		}
		runes = runes[cut:]
		for len(runes) > 0 && unicode.IsSpace(runes[0]) {
			runes = runes[1:]
		}
	}
	return pieces
}

func splitParagraphs(text string) []string {
	var out []string
	for _, p := range strings.Split(text, "\n\n") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// splitSentences divides text after terminal punctuation followed by
// whitespace. It is deliberately simple: the split only has to find
// reasonable boundaries, not parse prose.
func splitSentences(text string) []string {
	var out []string
	runes := []rune(text)
	start := 0

	for i := 0; i < len(runes); i++ {
		if runes[i] != '.' && runes[i] != '!' && runes[i] != '?' {
			continue
		}
		// Consume any run of closing punctuation.
		end := i + 1
		for end < len(runes) && (runes[end] == '.' || runes[end] == '!' || runes[end] == '?' || runes[end] == '"' || runes[end] == '\'') {
			end++
		}
		if end < len(runes) && unicode.IsSpace(runes[end]) {
			sentence := strings.TrimSpace(string(runes[start:end]))
			if sentence != "" {
				out = append(out, sentence)
			}
			start = end
			i = end - 1
		}
	}

	if tail := strings.TrimSpace(string(runes[start:])); tail != "" {
		out = append(out, tail)
	}
	return out
}
