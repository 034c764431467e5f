package extract

import "github.com/phrazzld/cardforge/internal/ingest"

// textExtractor handles plain text files. The only work is permissive
// decoding and whitespace normalization.
type textExtractor struct{}

func (textExtractor) Format() ingest.Format { return ingest.FormatText }

func (textExtractor) Extract(data []byte) (string, error) {
	text := normalizeText(decodePermissive(data))
	if text == "" {
		return "", ErrEmptyDocument
	}
	return text, nil
}
