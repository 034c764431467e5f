package domain

// ProcessingStatus is the overall outcome of one ingestion run.
type ProcessingStatus string

const (
	// StatusSuccess means every input unit produced flashcards without error.
	StatusSuccess ProcessingStatus = "success"

	// StatusPartial means some units failed but at least one produced output.
	StatusPartial ProcessingStatus = "partial-success"

	// StatusFailure means no unit produced any flashcards.
	StatusFailure ProcessingStatus = "failure"
)

// ProcessingResult is the aggregate, immutable outcome record of one
// ingestion run. It is created once when the run completes and consumed by
// the calling interface layer; callers must not mutate it.
type ProcessingResult struct {
	FilesProcessed int
	FilesFailed    int
	CardCount      int
	Errors         []error
	Warnings       []string
	Status         ProcessingStatus
}

// NewProcessingResult assembles a completed result and derives its status:
// failure when nothing was produced, partial-success when output coexists
// with per-unit or per-chunk errors, success otherwise.
func NewProcessingResult(filesProcessed, filesFailed, cardCount int, errs []error, warnings []string) *ProcessingResult {
	status := StatusSuccess
	switch {
	case cardCount == 0:
		status = StatusFailure
	case filesFailed > 0 || len(errs) > 0:
		status = StatusPartial
	}

	return &ProcessingResult{
		FilesProcessed: filesProcessed,
		FilesFailed:    filesFailed,
		CardCount:      cardCount,
		Errors:         errs,
		Warnings:       warnings,
		Status:         status,
	}
}
