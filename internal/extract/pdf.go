package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/phrazzld/cardforge/internal/ingest"
)

// pdfExtractor extracts text from PDF documents page by page, inserting a
// paragraph break between pages.
type pdfExtractor struct{}

func (pdfExtractor) Format() ingest.Format { return ingest.FormatPDF }

func (pdfExtractor) Extract(data []byte) (text string, err error) {
	// The pdf library panics on some malformed files; convert that into the
	// same corrupt-document error as a parse failure.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: %v", ErrCorruptDocument, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}

	var pages []string
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page does not invalidate the document.
			continue
		}
		if strings.TrimSpace(content) != "" {
			pages = append(pages, strings.TrimSpace(content))
		}
	}

	result := normalizeText(decodePermissive([]byte(strings.Join(pages, "\n\n"))))
	if result == "" {
		return "", ErrEmptyDocument
	}
	return result, nil
}
