package document

import (
	"strings"
	"unicode/utf8"
)

// UntitledTitle is used when the document has no level-one heading.
const UntitledTitle = "Untitled"

const headingPrefix = "# "

// Title returns the text of the first line starting with "# ", marker
// removed and trimmed. Lines like "## Section" or "#publish" are not headings
// for this purpose. When that first heading is empty, or there is none, the
// title is UntitledTitle.
func Title(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if !strings.HasPrefix(line, headingPrefix) {
			continue
		}
		if title := strings.TrimSpace(StripMarker(strings.TrimPrefix(line, headingPrefix))); title != "" {
			return title
		}
		return UntitledTitle
	}
	return UntitledTitle
}

// Truncate cuts s to at most limit characters. It does not look for word
// boundaries.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}
