// Package main implements the cardforge command line interface, which turns
// documents into Anki-importable flashcards using an LLM backend.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/phrazzld/cardforge/internal/chunk"
	"github.com/phrazzld/cardforge/internal/config"
	"github.com/phrazzld/cardforge/internal/domain"
	"github.com/phrazzld/cardforge/internal/generation"
	"github.com/phrazzld/cardforge/internal/ingest"
	"github.com/phrazzld/cardforge/internal/language"
	"github.com/phrazzld/cardforge/internal/platform/gemini"
	"github.com/phrazzld/cardforge/internal/platform/logger"
	"github.com/phrazzld/cardforge/internal/platform/openai"
	"github.com/phrazzld/cardforge/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.Command{
		Name:  "cardforge",
		Usage: "generate Anki-importable flashcards from documents with an LLM",
		Commands: []*cli.Command{
			{
				Name:      "generate",
				Usage:     "generate flashcards from files, folders, or zip archives",
				ArgsUsage: "<path> [<path>...]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "config",
						Usage: "configuration file path",
					},
					&cli.StringFlag{
						Name:    "language",
						Aliases: []string{"l"},
						Usage:   "target card language (en, fr, es, de, it)",
						Value:   "en",
					},
					&cli.StringFlag{
						Name:  "style",
						Usage: "card style (basic, cloze, mixed)",
						Value: string(generation.StyleMixed),
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "CSV output path",
						Value:   "cards.csv",
					},
				},
				Action: generateAction,
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func generateAction(ctx context.Context, cmd *cli.Command) error {
	sources := cmd.Args().Slice()
	if len(sources) == 0 {
		return fmt.Errorf("at least one input path is required")
	}

	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	appLogger := logger.Setup(cfg.LogLevel)

	lang, ok := language.Parse(cmd.String("language"))
	if !ok {
		appLogger.Warn("unrecognized language code, falling back to default",
			"requested", cmd.String("language"), "language", string(lang))
	}
	style, err := generation.ParseCardStyle(cmd.String("style"))
	if err != nil {
		return err
	}

	svc, err := buildPipeline(ctx, appLogger, cfg, lang, style)
	if err != nil {
		return err
	}

	result := svc.Process(ctx, sources)
	reportResult(appLogger, result)

	if result.Status == domain.StatusFailure {
		return fmt.Errorf("no flashcards were generated")
	}

	summary, err := svc.Export(cmd.String("output"))
	if err != nil {
		return err
	}

	fmt.Printf("wrote %d cards to %s\n", summary.RowCount, summary.Destination)
	return nil
}

// buildPipeline assembles the pipeline service from configuration: backend
// selection happens here, once, and everything downstream depends only on
// the generation.CompletionBackend interface.
func buildPipeline(
	ctx context.Context,
	appLogger *slog.Logger,
	cfg *config.Config,
	lang language.Language,
	style generation.CardStyle,
) (service.PipelineService, error) {
	var backend generation.CompletionBackend
	switch cfg.LLM.Backend {
	case "openai":
		b, err := openai.New(appLogger, cfg.LLM)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize OpenAI backend: %w", err)
		}
		backend = b
	default:
		b, err := gemini.New(ctx, appLogger, cfg.LLM)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Gemini backend: %w", err)
		}
		backend = b
	}

	prompts, err := generation.NewPromptBuilder(lang, style)
	if err != nil {
		return nil, err
	}

	orchestrator, err := generation.NewOrchestrator(
		backend,
		prompts,
		language.ForLanguage(lang),
		generation.Config{
			MaxTokens:         cfg.Generation.MaxCompletionTokens,
			ParseRetries:      cfg.Generation.ParseRetries,
			TransientRetries:  cfg.Generation.TransientRetries,
			ValidationRetries: cfg.Generation.ValidationRetries,
			Workers:           cfg.Generation.Workers,
		},
		appLogger,
	)
	if err != nil {
		return nil, err
	}

	var estimator chunk.Estimator
	if tk, err := chunk.NewTiktokenEstimator(); err == nil {
		estimator = tk
	} else {
		appLogger.Warn("tiktoken encoding unavailable, using heuristic token estimator",
			"error", err)
		estimator = chunk.HeuristicEstimator()
	}

	resolver := ingest.NewResolver(appLogger, ingest.Options{
		MaxFileSize:    cfg.Ingest.MaxFileSizeMB * 1024 * 1024,
		MaxArchiveSize: cfg.Ingest.MaxArchiveSizeMB * 1024 * 1024,
		Recurse:        cfg.Ingest.Recurse,
	})

	return service.NewPipelineService(
		resolver,
		chunk.NewChunker(cfg.Generation.TokenBudget, estimator),
		orchestrator,
		appLogger,
	)
}

// reportResult logs every collected error and warning, then the run summary.
// The run is best-effort: partial success still exports whatever was
// generated, with the degradation visible here.
func reportResult(appLogger *slog.Logger, result *domain.ProcessingResult) {
	for _, err := range result.Errors {
		appLogger.Warn("processing error", "error", err)
	}
	for _, warning := range result.Warnings {
		appLogger.Warn("processing warning", "warning", warning)
	}

	appLogger.Info("generation run finished",
		"status", result.Status,
		"files_processed", result.FilesProcessed,
		"files_failed", result.FilesFailed,
		"card_count", result.CardCount)
}
