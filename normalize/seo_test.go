package normalize

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/use-agent/pagelens/models"
)

func TestAnalyzeSEOEmptyKeyword(t *testing.T) {
	assert.Nil(t, AnalyzeSEO(&models.WebsiteMetadata{Title: "anything"}, ""))
}

func TestAnalyzeSEOAllPass(t *testing.T) {
	meta := &models.WebsiteMetadata{
		Title:           "Running Shoes for Trail Runners",
		MetaTitle:       "Best running shoes",
		MetaDescription: "Our guide to running shoes.",
		SchemaData:      []json.RawMessage{json.RawMessage(`{"name":"Running Shoes"}`)},
	}

	a := AnalyzeSEO(meta, "RUNNING SHOES")
	require.NotNil(t, a)

	assert.Equal(t, "RUNNING SHOES", a.Keyword)
	assert.Equal(t, models.SEOScore{Passed: 7, Total: 7, Percentage: 100}, a.Score)
	assert.Equal(t, "✓ Keyword found in schema markup", a.Checks.KeywordInSchema.Message)
	assert.Equal(t, 31, a.Checks.TitleLength.Length)
	assert.Equal(t, "✓ Title length is optimal (31 characters)", a.Checks.TitleLength.Message)
}

func TestAnalyzeSEOSchemaMatchesLiteralCharacters(t *testing.T) {
	meta := &models.WebsiteMetadata{
		SchemaData: []json.RawMessage{
			json.RawMessage(`{"name":"AT&T <Store>"}`),
			json.RawMessage(`{"@type":"Restaurant","name":"Caf\u00e9 Central","rating":4.50}`),
		},
	}

	assert.Equal(t,
		`[{"name":"AT&T <Store>"},{"@type":"Restaurant","name":"Café Central","rating":4.50}]`,
		schemaJSON(meta.SchemaData))

	for _, kw := range []string{"AT&T", "<store>", "café"} {
		a := AnalyzeSEO(meta, kw)
		require.NotNil(t, a)
		assert.True(t, a.Checks.KeywordInSchema.Status, "keyword %q", kw)
	}
}

func TestSchemaJSONEmpty(t *testing.T) {
	assert.Equal(t, "[]", schemaJSON(nil))
}

func TestAnalyzeSEOKeywordAbsentEverywhere(t *testing.T) {
	meta := &models.WebsiteMetadata{
		Title:           "Home",
		MetaTitle:       "Home",
		MetaDescription: "Welcome",
		SchemaData:      []json.RawMessage{},
	}

	a := AnalyzeSEO(meta, "kettle")
	require.NotNil(t, a)

	// Only the two length checks pass.
	assert.Equal(t, 2, a.Score.Passed)
	assert.Equal(t, 29, a.Score.Percentage)
	assert.False(t, a.Checks.KeywordInTitle.Status)
	assert.Equal(t, "✗ Keyword not found in title", a.Checks.KeywordInTitle.Message)
}

func TestAnalyzeSEOLengths(t *testing.T) {
	meta := &models.WebsiteMetadata{
		Title:           strings.Repeat("é", 61),
		MetaDescription: "",
	}

	a := AnalyzeSEO(meta, "x")
	require.NotNil(t, a)

	assert.False(t, a.Checks.TitleLength.Status)
	assert.Equal(t, 61, a.Checks.TitleLength.Length, "length counts characters, not bytes")
	assert.Equal(t, "✗ Title is too long (61 characters, recommended: 60 or less)", a.Checks.TitleLength.Message)
	assert.False(t, a.Checks.DescriptionLength.Status)
	assert.Equal(t, "✗ No meta description found", a.Checks.DescriptionLength.Message)
	assert.Equal(t, 0, a.Score.Passed)
	assert.Equal(t, 0, a.Score.Percentage)
}

func TestAnalyzeSEOFirstFiveWords(t *testing.T) {
	meta := &models.WebsiteMetadata{Title: "one two three four five kettle"}

	a := AnalyzeSEO(meta, "kettle")
	require.NotNil(t, a)

	assert.True(t, a.Checks.KeywordInTitle.Status)
	assert.False(t, a.Checks.KeywordInFirst5Words.Status)
}

func TestAnalyzeSEOPercentageInvariant(t *testing.T) {
	titles := []string{"", "kettle", "Kettle guide", strings.Repeat("kettle ", 12)}
	descs := []string{"", "kettle", strings.Repeat("d", 161)}
	metas := []string{"", "KETTLE"}
	schemas := [][]json.RawMessage{nil, {json.RawMessage(`{"k":"kettle"}`)}}

	for _, title := range titles {
		for _, desc := range descs {
			for _, mt := range metas {
				for _, schema := range schemas {
					meta := &models.WebsiteMetadata{Title: title, MetaTitle: mt, MetaDescription: desc, SchemaData: schema}
					a := AnalyzeSEO(meta, "kettle")
					require.NotNil(t, a)

					assert.Equal(t, 7, a.Score.Total)
					want := int(math.Round(100 * float64(a.Score.Passed) / 7))
					assert.Equal(t, want, a.Score.Percentage)
					assert.Equal(t, countPassed(a.Checks), a.Score.Passed)
				}
			}
		}
	}
}

func countPassed(c models.SEOChecks) int {
	n := 0
	for _, ok := range []bool{
		c.KeywordInTitle.Status, c.KeywordInMetaTitle.Status, c.KeywordInDescription.Status,
		c.KeywordInSchema.Status, c.KeywordInFirst5Words.Status,
		c.TitleLength.Status, c.DescriptionLength.Status,
	} {
		if ok {
			n++
		}
	}
	return n
}
