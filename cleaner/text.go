package cleaner

import (
	"regexp"
	"strings"
	"unicode"
)

// Fragments of inline script and style markup that leak into review text
// nodes on commerce pages. They are removed, not escaped.
var injectedPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?s)\(function\(\)\s*\{.*?\}\);`),
	regexp.MustCompile(`(?s)\.review-text-read-more-expander.*?Read (?:more|less)`),
}

// StripInjected removes known injected script/style fragments from s.
func StripInjected(s string) string {
	for _, re := range injectedPatterns {
		s = re.ReplaceAllString(s, "")
	}
	return s
}

// CollapseSpace replaces every run of whitespace with a single space and
// trims both ends.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Text is the normalizer applied to every free-text field: injected
// fragments are stripped first, then whitespace is collapsed and trimmed.
func Text(s string) string {
	return CollapseSpace(StripInjected(s))
}

// WordCount counts whitespace-separated words that contain at least one
// letter or digit.
func WordCount(s string) int {
	n := 0
	for _, w := range strings.Fields(s) {
		if strings.IndexFunc(w, func(r rune) bool {
			return unicode.IsLetter(r) || unicode.IsDigit(r)
		}) >= 0 {
			n++
		}
	}
	return n
}
