package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/phrazzld/cardforge/internal/chunk"
	"github.com/phrazzld/cardforge/internal/domain"
	"github.com/phrazzld/cardforge/internal/language"
)

// Config holds the orchestrator's retry ceilings and concurrency limits.
// The calling layer constructs it explicitly; the orchestrator never reads
// ambient environment state.
type Config struct {
	// MaxTokens is the completion budget passed to the backend per call.
	MaxTokens int

	// ParseRetries is how many times a chunk's backend call is re-invoked
	// with an unmodified prompt after a malformed response.
	ParseRetries int

	// TransientRetries is how many times a failed backend call is retried
	// before the failure is classified as permanent for that chunk.
	TransientRetries int

	// ValidationRetries is how many times generation is re-run for a chunk
	// whose output fails language validation.
	ValidationRetries int

	// Workers bounds the number of simultaneous in-flight backend calls.
	Workers int

	// RetryBaseDelay is the base for exponential backoff between transient
	// retries. Zero picks a default suitable for API rate limits.
	RetryBaseDelay time.Duration
}

func (c Config) withDefaults() Config {
	if c.MaxTokens <= 0 {
		c.MaxTokens = 2048
	}
	if c.ParseRetries < 0 {
		c.ParseRetries = 0
	}
	if c.TransientRetries < 0 {
		c.TransientRetries = 0
	}
	if c.ValidationRetries < 0 {
		c.ValidationRetries = 0
	}
	if c.Workers <= 0 {
		c.Workers = 4
	}
	if c.RetryBaseDelay <= 0 {
		c.RetryBaseDelay = 2 * time.Second
	}
	return c
}

// chunkState is the explicit per-chunk state machine. Every chunk terminates
// in accepted, exhaustedBestEffort, or failed; none is silently dropped.
type chunkState int

const (
	stateGenerating chunkState = iota
	stateValidating
	stateAccepted
	stateExhaustedBestEffort
	stateFailed
)

// ChunkOutcome is the terminal result for one chunk. Cards are nil only when
// Err is set. Warning carries the non-fatal LanguageValidationError when the
// best-effort attempt was kept.
type ChunkOutcome struct {
	Index   int
	Cards   []Candidate
	Err     error
	Warning error
}

// Orchestrator fans chunks out to the completion backend with bounded
// parallelism and gathers per-chunk outcomes in source order.
type Orchestrator struct {
	backend   CompletionBackend
	prompts   *PromptBuilder
	validator language.Validator
	cfg       Config
	logger    *slog.Logger
}

// NewOrchestrator wires a backend, prompt builder, and language validator
// together. Configuration is validated here, once, so that per-chunk work
// can assume a sound setup.
func NewOrchestrator(
	backend CompletionBackend,
	prompts *PromptBuilder,
	validator language.Validator,
	cfg Config,
	logger *slog.Logger,
) (*Orchestrator, error) {
	if backend == nil {
		return nil, fmt.Errorf("%w: completion backend cannot be nil", ErrInvalidConfig)
	}
	if prompts == nil {
		return nil, fmt.Errorf("%w: prompt builder cannot be nil", ErrInvalidConfig)
	}
	if validator == nil {
		return nil, fmt.Errorf("%w: language validator cannot be nil", ErrInvalidConfig)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Orchestrator{
		backend:   backend,
		prompts:   prompts,
		validator: validator,
		cfg:       cfg.withDefaults(),
		logger:    logger,
	}, nil
}

// GenerateAll processes every chunk and returns one outcome per chunk,
// ordered by source chunk index regardless of completion order. Failures are
// per-chunk: an outcome carries its own error and the others proceed. When
// ctx is cancelled, chunks not yet started fail with the context error and
// the run degrades to a partial result instead of aborting.
func (o *Orchestrator) GenerateAll(ctx context.Context, chunks []chunk.Chunk) []ChunkOutcome {
	outcomes := make([]ChunkOutcome, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.cfg.Workers)

	for i, ch := range chunks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				outcomes[i] = ChunkOutcome{
					Index: i,
					Err:   &domain.LLMError{Source: ch.SourceName, ChunkIndex: ch.Index, Cause: err},
				}
				return nil
			}
			outcomes[i] = o.processChunk(gctx, ch)
			return nil
		})
	}

	// Workers never return errors; outcomes carry them per chunk.
	_ = g.Wait()

	return outcomes
}

// attempt is one full generate-then-validate pass over a chunk.
type attempt struct {
	cards []Candidate
	score float64
}

// processChunk drives the chunk's state machine: generating -> validating,
// looping on rejection up to the validation retry ceiling, terminating in
// accepted, exhaustedBestEffort (highest-scoring attempt kept), or failed.
func (o *Orchestrator) processChunk(ctx context.Context, ch chunk.Chunk) ChunkOutcome {
	prompt, err := o.prompts.Build(ch.Text)
	if err != nil {
		return ChunkOutcome{
			Index: ch.Index,
			Err:   &domain.LLMError{Source: ch.SourceName, ChunkIndex: ch.Index, Cause: err},
		}
	}

	state := stateGenerating
	var best, current *attempt
	var failure error
	attemptsLeft := o.cfg.ValidationRetries + 1

	for {
		switch state {
		case stateGenerating:
			cards, err := o.generateOnce(ctx, ch, prompt)
			if err != nil {
				// A chunk that already produced a scorable attempt keeps its
				// best effort instead of terminating in the failed state.
				if best != nil {
					state = stateExhaustedBestEffort
					break
				}
				failure = err
				state = stateFailed
				break
			}

			current = &attempt{cards: cards, score: o.scoreCards(cards)}
			// Tie-break policy: keep the highest-scoring attempt, earliest
			// attempt winning ties.
			if best == nil || current.score > best.score {
				best = current
			}
			state = stateValidating

		case stateValidating:
			if o.cardsPass(current.cards) {
				state = stateAccepted
				break
			}

			attemptsLeft--
			if attemptsLeft <= 0 {
				state = stateExhaustedBestEffort
				break
			}

			o.logger.Debug("language validation rejected attempt, retrying",
				"source", ch.SourceName,
				"chunk", ch.Index,
				"score", current.score,
				"attempts_left", attemptsLeft)
			state = stateGenerating

		case stateAccepted:
			return ChunkOutcome{Index: ch.Index, Cards: current.cards}

		case stateFailed:
			return ChunkOutcome{
				Index: ch.Index,
				Err:   &domain.LLMError{Source: ch.SourceName, ChunkIndex: ch.Index, Cause: failure},
			}

		case stateExhaustedBestEffort:
			return ChunkOutcome{
				Index: ch.Index,
				Cards: best.cards,
				Warning: &domain.LanguageValidationError{
					Source:     ch.SourceName,
					ChunkIndex: ch.Index,
					Score:      best.score,
					Threshold:  language.AcceptThreshold,
				},
			}
		}
	}
}

// generateOnce performs one backend invocation with transient-failure and
// parse retries. The prompt is never modified between retries.
func (o *Orchestrator) generateOnce(ctx context.Context, ch chunk.Chunk, prompt string) ([]Candidate, error) {
	parseAttempts := o.cfg.ParseRetries + 1

	for parseAttempt := 0; parseAttempt < parseAttempts; parseAttempt++ {
		payload, err := o.completeWithRetry(ctx, prompt)
		if err != nil {
			return nil, err
		}

		cards, err := parseResponse(payload)
		if err == nil {
			return cards, nil
		}

		o.logger.Warn("malformed backend response",
			"source", ch.SourceName,
			"chunk", ch.Index,
			"backend", o.backend.Name(),
			"parse_attempt", parseAttempt+1,
			"error", err)

		if parseAttempt == parseAttempts-1 {
			return nil, err
		}
	}

	return nil, ErrInvalidResponse
}

// completeWithRetry retries the backend on any failure up to the transient
// ceiling with exponential backoff and jitter, honoring cancellation. After
// the ceiling the failure is permanent for this chunk.
func (o *Orchestrator) completeWithRetry(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	for attemptNum := 0; attemptNum <= o.cfg.TransientRetries; attemptNum++ {
		if attemptNum > 0 {
			backoff := o.cfg.RetryBaseDelay << (attemptNum - 1)
			jitter := time.Duration(rand.Int63n(int64(backoff)/2 + 1))
			select {
			case <-ctx.Done():
				return "", fmt.Errorf("%w: %v", ErrTransientFailure, ctx.Err())
			case <-time.After(backoff + jitter):
			}
		}

		payload, err := o.backend.Complete(ctx, prompt, o.cfg.MaxTokens)
		if err == nil {
			return payload, nil
		}
		lastErr = err

		// Blocked content never resolves on retry.
		if errors.Is(err, ErrContentBlocked) {
			return "", err
		}
		if ctx.Err() != nil {
			return "", fmt.Errorf("%w: %v", ErrTransientFailure, ctx.Err())
		}
	}

	return "", fmt.Errorf("%w: exceeded %d retries: %v", ErrTransientFailure, o.cfg.TransientRetries, lastErr)
}

// cardsPass reports whether every card's question and answer independently
// meet the validator's threshold.
func (o *Orchestrator) cardsPass(cards []Candidate) bool {
	for _, card := range cards {
		if !o.validator.Validate(card.Question) || !o.validator.Validate(card.Answer) {
			return false
		}
	}
	return true
}

// scoreCards is the attempt score used for best-effort selection: the mean
// over cards of the lower of the question and answer scores.
func (o *Orchestrator) scoreCards(cards []Candidate) float64 {
	if len(cards) == 0 {
		return 0
	}
	total := 0.0
	for _, card := range cards {
		q := o.validator.Score(card.Question)
		a := o.validator.Score(card.Answer)
		if a < q {
			q = a
		}
		total += q
	}
	return total / float64(len(cards))
}
