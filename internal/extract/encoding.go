package extract

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// decodePermissive turns raw bytes into a UTF-8 string. Valid UTF-8 passes
// through unchanged. Anything else is first tried as Windows-1252, the most
// common legacy encoding for the text documents this tool sees; if that also
// fails, invalid sequences are replaced with the Unicode replacement
// character rather than aborting extraction.
func decodePermissive(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}

	if decoded, err := charmap.Windows1252.NewDecoder().Bytes(data); err == nil && utf8.Valid(decoded) {
		return string(decoded)
	}

	return strings.ToValidUTF8(string(data), string(utf8.RuneError))
}

// normalizeText canonicalizes line endings, strips trailing whitespace per
// line, and collapses runs of three or more newlines into a single paragraph
// break so that downstream chunking sees consistent separators.
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	text = strings.Join(lines, "\n")

	for strings.Contains(text, "\n\n\n") {
		text = strings.ReplaceAll(text, "\n\n\n", "\n\n")
	}

	return strings.TrimSpace(text)
}
