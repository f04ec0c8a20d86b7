package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/use-agent/pagelens/models"
)

const (
	seoCheckCount        = 7
	maxTitleLength       = 60
	maxDescriptionLength = 160
)

// AnalyzeSEO scores meta against keyword. It returns nil for an empty
// keyword. Keyword checks are case-insensitive substring matches; lengths
// are counted in characters.
func AnalyzeSEO(meta *models.WebsiteMetadata, keyword string) *models.SEOAnalysis {
	if keyword == "" {
		return nil
	}

	kw := strings.ToLower(keyword)
	contains := func(s string) bool { return strings.Contains(strings.ToLower(s), kw) }

	titleWords := strings.Fields(meta.Title)
	if len(titleWords) > 5 {
		titleWords = titleWords[:5]
	}
	first5 := strings.Join(titleWords, " ")

	var checks models.SEOChecks
	checks.KeywordInTitle = check(contains(meta.Title),
		"✓ Keyword found in title", "✗ Keyword not found in title")
	checks.KeywordInMetaTitle = check(contains(meta.MetaTitle),
		"✓ Keyword found in meta title", "✗ Keyword not found in meta title")
	checks.KeywordInDescription = check(contains(meta.MetaDescription),
		"✓ Keyword found in meta description", "✗ Keyword not found in meta description")
	checks.KeywordInSchema = check(contains(schemaJSON(meta.SchemaData)),
		"✓ Keyword found in schema markup", "✗ Keyword not found in schema markup")
	checks.KeywordInFirst5Words = check(contains(first5),
		"✓ Keyword appears in first 5 words of title", "✗ Keyword not in first 5 words of title")
	checks.TitleLength = titleLength(meta.Title)
	checks.DescriptionLength = descriptionLength(meta.MetaDescription)

	passed := 0
	for _, ok := range []bool{
		checks.KeywordInTitle.Status,
		checks.KeywordInMetaTitle.Status,
		checks.KeywordInDescription.Status,
		checks.KeywordInSchema.Status,
		checks.KeywordInFirst5Words.Status,
		checks.TitleLength.Status,
		checks.DescriptionLength.Status,
	} {
		if ok {
			passed++
		}
	}

	return &models.SEOAnalysis{
		Keyword: keyword,
		Checks:  checks,
		Score: models.SEOScore{
			Passed:     passed,
			Total:      seoCheckCount,
			Percentage: int(math.Round(100 * float64(passed) / seoCheckCount)),
		},
	}
}

func check(ok bool, pass, fail string) models.SEOCheck {
	if ok {
		return models.SEOCheck{Status: true, Message: pass}
	}
	return models.SEOCheck{Status: false, Message: fail}
}

func titleLength(title string) models.SEOLengthCheck {
	n := utf8.RuneCountInString(title)
	switch {
	case n == 0:
		return models.SEOLengthCheck{Message: "✗ No title found"}
	case n <= maxTitleLength:
		return models.SEOLengthCheck{Status: true, Length: n,
			Message: fmt.Sprintf("✓ Title length is optimal (%d characters)", n)}
	default:
		return models.SEOLengthCheck{Length: n,
			Message: fmt.Sprintf("✗ Title is too long (%d characters, recommended: %d or less)", n, maxTitleLength)}
	}
}

func descriptionLength(desc string) models.SEOLengthCheck {
	n := utf8.RuneCountInString(desc)
	switch {
	case n == 0:
		return models.SEOLengthCheck{Message: "✗ No meta description found"}
	case n <= maxDescriptionLength:
		return models.SEOLengthCheck{Status: true, Length: n,
			Message: fmt.Sprintf("✓ Description length is optimal (%d characters)", n)}
	default:
		return models.SEOLengthCheck{Length: n,
			Message: fmt.Sprintf("✗ Description is too long (%d characters, recommended: %d or less)", n, maxDescriptionLength)}
	}
}

// schemaJSON serializes the schema blocks as one JSON array with literal
// characters: source \uXXXX escapes are decoded and &, < and > stay as is.
func schemaJSON(blocks []json.RawMessage) string {
	values := make([]any, 0, len(blocks))
	for _, b := range blocks {
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.UseNumber()
		var v any
		if err := dec.Decode(&v); err != nil {
			continue
		}
		values = append(values, v)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(values); err != nil {
		return ""
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
