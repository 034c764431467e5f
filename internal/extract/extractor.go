// Package extract turns raw document bytes of a known format into normalized
// plain text. One extractor exists per supported format; all of them are pure
// functions over the input bytes. Malformed input fails with a
// FileProcessingError carrying the source name, and the caller continues
// with the remaining units.
package extract

import (
	"errors"

	"github.com/phrazzld/cardforge/internal/domain"
	"github.com/phrazzld/cardforge/internal/ingest"
)

// Error definitions for the extract package.
var (
	// ErrEmptyDocument is returned when a well-formed document yields no text.
	ErrEmptyDocument = errors.New("document contains no extractable text")

	// ErrCorruptDocument is returned when the bytes do not form a valid
	// document of the claimed format.
	ErrCorruptDocument = errors.New("document is corrupt or not in the expected format")
)

// Extractor extracts normalized UTF-8 plain text from raw bytes of one
// document format. Structural content such as headings and paragraph breaks
// is preserved as blank-line separators.
type Extractor interface {
	// Extract returns the plain text of the document.
	Extract(data []byte) (string, error)

	// Format returns the document format this extractor handles.
	Format() ingest.Format
}

// ForFormat returns the extractor for the given format. The set of supported
// formats is closed; ok is false for anything else.
func ForFormat(format ingest.Format) (Extractor, bool) {
	switch format {
	case ingest.FormatText:
		return textExtractor{}, true
	case ingest.FormatMarkdown:
		return markdownExtractor{}, true
	case ingest.FormatPDF:
		return pdfExtractor{}, true
	case ingest.FormatDOCX:
		return docxExtractor{}, true
	default:
		return nil, false
	}
}

// Text extracts plain text from one resolved unit, wrapping any failure in a
// FileProcessingError with the unit's source name.
func Text(unit ingest.Unit) (string, error) {
	extractor, ok := ForFormat(unit.Format)
	if !ok {
		return "", domain.NewFileProcessingError(unit.SourceName, ingest.ErrUnsupportedFormat)
	}

	text, err := extractor.Extract(unit.Data)
	if err != nil {
		return "", domain.NewFileProcessingError(unit.SourceName, err)
	}
	return text, nil
}
