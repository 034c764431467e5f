package extract

import (
	"regexp"
	"strings"

	"github.com/phrazzld/cardforge/internal/ingest"
)

var (
	mdHeadingPrefix  = regexp.MustCompile(`^#{1,6}\s+`)
	mdStrong         = regexp.MustCompile(`\*\*([^*]+)\*\*|__([^_]+)__`)
	mdEmphasis       = regexp.MustCompile(`\*([^*]+)\*|_([^_]+)_`)
	mdInlineCode     = regexp.MustCompile("`([^`]*)`")
	mdLink           = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	mdImage          = regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`)
	mdListMarker     = regexp.MustCompile(`^(\s*)([-*+]|\d+\.)\s+`)
	mdBlockquote     = regexp.MustCompile(`^>\s?`)
	mdHorizontalRule = regexp.MustCompile(`^\s*([-*_]\s*){3,}$`)
)

// markdownExtractor strips markdown syntax down to plain text. Headings
// become their own paragraphs so that structure survives as separators;
// code fences are kept verbatim without the fence lines.
type markdownExtractor struct{}

func (markdownExtractor) Format() ingest.Format { return ingest.FormatMarkdown }

func (markdownExtractor) Extract(data []byte) (string, error) {
	text := decodePermissive(data)
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var out []string
	inFence := false
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
			continue
		}
		if inFence {
			out = append(out, line)
			continue
		}

		if mdHorizontalRule.MatchString(line) && trimmed != "" {
			out = append(out, "")
			continue
		}

		if mdHeadingPrefix.MatchString(trimmed) {
			heading := mdHeadingPrefix.ReplaceAllString(trimmed, "")
			// A heading separates paragraphs on both sides.
			out = append(out, "", heading, "")
			continue
		}

		line = mdBlockquote.ReplaceAllString(line, "")
		line = mdListMarker.ReplaceAllString(line, "$1")
		line = mdImage.ReplaceAllString(line, "$1")
		line = mdLink.ReplaceAllString(line, "$1")
		line = mdInlineCode.ReplaceAllString(line, "$1")
		line = mdStrong.ReplaceAllString(line, "$1$2")
		line = mdEmphasis.ReplaceAllString(line, "$1$2")
		out = append(out, line)
	}

	result := normalizeText(strings.Join(out, "\n"))
	if result == "" {
		return "", ErrEmptyDocument
	}
	return result, nil
}
