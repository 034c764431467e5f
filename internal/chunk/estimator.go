package chunk

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// Estimator maps text to an approximate token count. The chunker only needs
// an upper-bound-ish estimate, not billing-grade accuracy.
type Estimator interface {
	EstimateTokens(text string) int
}

// EstimatorFunc adapts a plain function to the Estimator interface.
type EstimatorFunc func(text string) int

// EstimateTokens implements Estimator.
func (f EstimatorFunc) EstimateTokens(text string) int { return f(text) }

// TiktokenEstimator counts tokens with the cl100k_base encoding, which is
// close enough for every backend this tool targets.
type TiktokenEstimator struct {
	encoding *tiktoken.Tiktoken
}

// NewTiktokenEstimator initializes the cl100k_base encoding.
func NewTiktokenEstimator() (*TiktokenEstimator, error) {
	encoding, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, fmt.Errorf("failed to get tiktoken encoding: %w", err)
	}
	return &TiktokenEstimator{encoding: encoding}, nil
}

// EstimateTokens implements Estimator.
func (e *TiktokenEstimator) EstimateTokens(text string) int {
	return len(e.encoding.Encode(text, nil, nil))
}

// HeuristicEstimator approximates one token per three runes. It is the
// fallback when the tiktoken dictionaries are unavailable (offline builds)
// and the estimator used by most tests.
func HeuristicEstimator() Estimator {
	return EstimatorFunc(func(text string) int {
		n := len([]rune(text))
		if n == 0 {
			return 0
		}
		return n/3 + 1
	})
}
