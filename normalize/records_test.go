package normalize

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/use-agent/pagelens/extract"
	"github.com/use-agent/pagelens/models"
)

func TestWebsite(t *testing.T) {
	raw := extract.NewRawFields(map[string]string{
		extract.FieldTitle:           "Docs",
		extract.FieldMetaTitle:       "Docs",
		extract.FieldMetaDescription: "",
		extract.FieldFavicon:         "/img/icon.png",
	}, map[string][]string{
		extract.ListSchemaScripts: {"{ \"@type\" : \"WebSite\" }", "{broken"},
	})

	got := Website(raw, "https://example.com/docs/intro")

	want := &models.WebsiteMetadata{
		Title:      "Docs",
		MetaTitle:  "Docs",
		SchemaData: []json.RawMessage{json.RawMessage(`{"@type":"WebSite"}`)},
		FaviconURL: "https://example.com/img/icon.png",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Website() mismatch (-want +got):\n%s", diff)
	}
}

func TestWebsiteDefaultFavicon(t *testing.T) {
	raw := extract.NewRawFields(map[string]string{extract.FieldFavicon: ""}, nil)

	got := Website(raw, "https://shop.example.com:8443/a/b?c=d")

	assert.Equal(t, "https://shop.example.com:8443/favicon.ico", got.FaviconURL)
	assert.NotNil(t, got.SchemaData)
	assert.Empty(t, got.SchemaData)
}

func TestListing(t *testing.T) {
	tests := []struct {
		name         string
		price, list  string
		wantOriginal string
		wantNote     string
	}{
		{"sale", "$24.99", "$39.99", "$39.99", SalePriceNote},
		{"same price is not a sale", "$24.99", "$24.99", "", ""},
		{"no list price", "$24.99", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := extract.NewRawFields(map[string]string{
				extract.FieldPrice:     tt.price,
				extract.FieldListPrice: tt.list,
				extract.FieldImage:     "/images/I/k.jpg",
			}, map[string][]string{
				extract.ListFeatures: {"Boils fast", "boils fast", "Auto shut-off"},
			})

			got := Listing(raw, "https://www.amazon.com/dp/B0KETTLE01")

			assert.Equal(t, tt.wantOriginal, got.OriginalPrice)
			assert.Equal(t, tt.wantNote, got.PriceNote)
			assert.Equal(t, "https://www.amazon.com/images/I/k.jpg", got.Image)
			assert.Equal(t, "https://www.amazon.com/dp/B0KETTLE01", got.URL)
			assert.Equal(t, []string{"Boils fast", "Auto shut-off"}, got.Features)
		})
	}
}

func TestListingFeaturesNeverNil(t *testing.T) {
	got := Listing(extract.NewRawFields(map[string]string{}, nil), "https://www.amazon.com/dp/B0KETTLE01")
	require.NotNil(t, got.Features)
	assert.Empty(t, got.Features)
}

func TestReviews(t *testing.T) {
	three := 3
	raws := []extract.RawFields{
		extract.NewRawFields(map[string]string{
			extract.FieldRating:   "4.6",
			extract.FieldTitle:    "Great",
			extract.FieldAuthor:   "Ana",
			extract.FieldDate:     "1 May 2024",
			extract.FieldText:     "Works well",
			extract.FieldVerified: "true",
			extract.FieldHelpful:  "3",
		}, nil),
		// no rating and no text: not a review
		extract.NewRawFields(map[string]string{
			extract.FieldRating: "",
			extract.FieldText:   "",
			extract.FieldAuthor: extract.DefaultAuthor,
		}, nil),
		// text only, zero helpful votes
		extract.NewRawFields(map[string]string{
			extract.FieldRating:  "",
			extract.FieldTitle:   extract.DefaultReviewTitle,
			extract.FieldAuthor:  "Ben",
			extract.FieldText:    "Too loud",
			extract.FieldHelpful: "0",
		}, nil),
		// exact repeat of the first review
		extract.NewRawFields(map[string]string{
			extract.FieldRating:   "4.6",
			extract.FieldTitle:    "Great",
			extract.FieldAuthor:   "Ana",
			extract.FieldDate:     "1 May 2024",
			extract.FieldText:     "Works well",
			extract.FieldVerified: "true",
			extract.FieldHelpful:  "3",
		}, nil),
	}

	got := Reviews(raws)

	want := []models.Review{
		{Rating: 5, Title: "Great", Author: "Ana", Date: "1 May 2024", Text: "Works well", Verified: true, Helpful: &three},
		{Rating: 0, Title: extract.DefaultReviewTitle, Author: "Ben", Text: "Too loud", Helpful: nil},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Reviews() mismatch (-want +got):\n%s", diff)
	}
}

func TestReviewsKeepsSameWordingFromDifferentReviews(t *testing.T) {
	raws := []extract.RawFields{
		extract.NewRawFields(map[string]string{
			extract.FieldRating: "5",
			extract.FieldTitle:  "Good",
			extract.FieldAuthor: "Amazon Customer",
			extract.FieldDate:   "2 March 2024",
			extract.FieldText:   "Good product",
		}, nil),
		extract.NewRawFields(map[string]string{
			extract.FieldRating: "3",
			extract.FieldTitle:  "Good",
			extract.FieldAuthor: "Amazon Customer",
			extract.FieldDate:   "9 April 2024",
			extract.FieldText:   "Good product",
		}, nil),
	}

	got := Reviews(raws)

	require.Len(t, got, 2)
	assert.Equal(t, 5, got[0].Rating)
	assert.Equal(t, 3, got[1].Rating)
}

func TestTranscript(t *testing.T) {
	raw := extract.NewRawFields(map[string]string{
		extract.FieldTitle:    "Talk",
		extract.FieldChannel:  "Chan",
		extract.FieldDuration: "10:00",
	}, map[string][]string{extract.ListSegments: {"hello", "and welcome", "everyone"}})

	got := Transcript(raw)

	assert.Equal(t, "hello and welcome everyone", got.Transcript)
	assert.Equal(t, 3, got.SegmentCount)
	assert.Equal(t, got, Transcript(raw), "normalization is deterministic")

	info := VideoInfo(got)
	assert.Equal(t, 4, info.WordCount)
	assert.Equal(t, "Talk", info.Title)
}

func TestVideoInfoCountsEveryToken(t *testing.T) {
	info := VideoInfo(&models.TranscriptBundle{Transcript: "so - it begins ... [Music] ♪"})
	assert.Equal(t, 7, info.WordCount)
}
