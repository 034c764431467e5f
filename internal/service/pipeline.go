package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/cardforge/internal/chunk"
	"github.com/phrazzld/cardforge/internal/domain"
	"github.com/phrazzld/cardforge/internal/export"
	"github.com/phrazzld/cardforge/internal/extract"
	"github.com/phrazzld/cardforge/internal/generation"
	"github.com/phrazzld/cardforge/internal/ingest"
)

// ChunkGenerator defines the generation interface for the service layer.
// The production implementation is generation.Orchestrator; tests substitute
// a scripted one.
type ChunkGenerator interface {
	// GenerateAll processes every chunk and returns one outcome per chunk
	// in source order. Failures are per-chunk, never run-aborting.
	GenerateAll(ctx context.Context, chunks []chunk.Chunk) []generation.ChunkOutcome
}

// PipelineService runs the end-to-end flow from input paths to a flashcard
// collection, and exports the accumulated collection on demand.
type PipelineService interface {
	// Process resolves, extracts, chunks, and generates flashcards for the
	// given source paths. Per-unit and per-chunk failures are collected in
	// the result rather than aborting the run, so a single bad file in a
	// batch degrades the outcome to partial-success instead of failure.
	Process(ctx context.Context, sources []string) *domain.ProcessingResult

	// Collection returns the flashcard collection accumulated so far, for
	// review, edit, and delete operations before export.
	Collection() *domain.FlashcardCollection

	// Export writes the current collection to a CSV file at path.
	Export(path string) (export.Summary, error)
}

// pipelineService is the concrete implementation of PipelineService.
type pipelineService struct {
	resolver   *ingest.Resolver
	chunker    *chunk.Chunker
	generator  ChunkGenerator
	collection *domain.FlashcardCollection
	logger     *slog.Logger
}

// NewPipelineService wires the resolver, chunker, and generator into a
// pipeline with a fresh, empty collection.
func NewPipelineService(
	resolver *ingest.Resolver,
	chunker *chunk.Chunker,
	generator ChunkGenerator,
	logger *slog.Logger,
) (PipelineService, error) {
	if resolver == nil {
		return nil, NewPipelineError("construction", "resolver cannot be nil", nil)
	}
	if chunker == nil {
		return nil, NewPipelineError("construction", "chunker cannot be nil", nil)
	}
	if generator == nil {
		return nil, NewPipelineError("construction", "generator cannot be nil", nil)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &pipelineService{
		resolver:   resolver,
		chunker:    chunker,
		generator:  generator,
		collection: domain.NewFlashcardCollection(),
		logger:     logger,
	}, nil
}

// Process implements PipelineService.
func (s *pipelineService) Process(ctx context.Context, sources []string) *domain.ProcessingResult {
	var (
		errs      []error
		warnings  []string
		processed int
		failed    int
		cardCount int
	)

	for _, source := range sources {
		units, resolveWarnings, err := s.resolver.Resolve(source)
		warnings = append(warnings, resolveWarnings...)
		if err != nil {
			s.logger.Warn("failed to resolve source", "source", source, "error", err)
			failed++
			errs = append(errs, err)
			continue
		}

		for _, unit := range units {
			added, unitFailed, unitErrs, unitWarnings := s.processUnit(ctx, unit)
			cardCount += added
			errs = append(errs, unitErrs...)
			warnings = append(warnings, unitWarnings...)
			if unitFailed {
				failed++
			} else {
				processed++
			}
		}
	}

	result := domain.NewProcessingResult(processed, failed, cardCount, errs, warnings)
	s.logger.Info("processing run complete",
		"status", result.Status,
		"files_processed", result.FilesProcessed,
		"files_failed", result.FilesFailed,
		"card_count", result.CardCount,
		"error_count", len(result.Errors),
		"warning_count", len(result.Warnings))
	return result
}

// processUnit runs one extraction unit through extract, chunk, and generate.
// A unit counts as failed when its text cannot be extracted or when every
// one of its chunks errored; generating cards for only some chunks still
// counts the unit as processed, with the chunk errors carried alongside.
func (s *pipelineService) processUnit(
	ctx context.Context,
	unit ingest.Unit,
) (added int, unitFailed bool, errs []error, warnings []string) {
	text, err := extract.Text(unit)
	if err != nil {
		// A well-formed but empty document is a quality warning, not a
		// failed unit; everything else fails the unit.
		if errors.Is(err, extract.ErrEmptyDocument) {
			s.logger.Warn("no extractable content", "source", unit.SourceName)
			return 0, false, nil, []string{fmt.Sprintf("no extractable content in %s", unit.SourceName)}
		}
		s.logger.Warn("failed to extract text", "source", unit.SourceName, "error", err)
		return 0, true, []error{err}, nil
	}

	chunks := s.chunker.Split(unit.SourceName, text)
	if len(chunks) == 0 {
		s.logger.Warn("no extractable content", "source", unit.SourceName)
		return 0, false, nil, []string{fmt.Sprintf("no extractable content in %s", unit.SourceName)}
	}

	failedChunks := 0
	for _, outcome := range s.generator.GenerateAll(ctx, chunks) {
		if outcome.Warning != nil {
			warnings = append(warnings, outcome.Warning.Error())
		}
		if outcome.Err != nil {
			failedChunks++
			errs = append(errs, outcome.Err)
			continue
		}

		for _, candidate := range outcome.Cards {
			card, err := domain.NewFlashcard(
				candidate.Question, candidate.Answer, candidate.Type, unit.SourceName)
			if err != nil {
				errs = append(errs, &domain.LLMError{
					Source:     unit.SourceName,
					ChunkIndex: outcome.Index,
					Cause:      err,
				})
				continue
			}
			if err := s.collection.Add(card); err != nil {
				errs = append(errs, err)
				continue
			}
			added++
		}
	}

	return added, failedChunks == len(chunks), errs, warnings
}

// Collection implements PipelineService.
func (s *pipelineService) Collection() *domain.FlashcardCollection {
	return s.collection
}

// Export implements PipelineService.
func (s *pipelineService) Export(path string) (export.Summary, error) {
	summary, err := export.ToFile(path, s.collection)
	if err != nil {
		return export.Summary{}, NewPipelineError("export", "failed to write CSV", err)
	}

	s.logger.Info("exported collection", "destination", summary.Destination, "rows", summary.RowCount)
	return summary, nil
}
