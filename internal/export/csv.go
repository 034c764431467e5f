// Package export serializes a flashcard collection into an import-compatible
// CSV file. Output is deterministic: the same collection always produces
// byte-identical bytes, with RFC 4180 quoting for embedded delimiters,
// quotes, and newlines.
package export

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/phrazzld/cardforge/internal/domain"
)

// Header is the fixed first row of every export.
var Header = []string{"front", "back", "tag"}

// Summary reports what one export produced. Exporting zero cards is not an
// error; the caller sees it in RowCount.
type Summary struct {
	Destination string
	RowCount    int
}

// Write serializes the collection to w in insertion order and returns the
// number of data rows written. Failures are wrapped in ExportError by the
// callers that know the destination name.
func Write(w io.Writer, collection *domain.FlashcardCollection) (int, error) {
	writer := csv.NewWriter(w)

	if err := writer.Write(Header); err != nil {
		return 0, err
	}

	cards := collection.List()
	for _, card := range cards {
		if err := writer.Write([]string{card.Question, card.Answer, string(card.Type)}); err != nil {
			return 0, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return 0, err
	}
	return len(cards), nil
}

// ToFile exports the collection to the given path, creating or truncating
// the file. Destination failures surface as ExportError.
func ToFile(path string, collection *domain.FlashcardCollection) (Summary, error) {
	f, err := os.Create(path)
	if err != nil {
		return Summary{}, &domain.ExportError{Destination: path, Cause: err}
	}

	rows, err := Write(f, collection)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return Summary{}, &domain.ExportError{Destination: path, Cause: err}
	}

	return Summary{Destination: path, RowCount: rows}, nil
}
