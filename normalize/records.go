// Package normalize turns raw extracted fields into caller-facing records.
// Every function here is pure: no I/O, same input gives the same output.
package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/use-agent/pagelens/extract"
	"github.com/use-agent/pagelens/models"
)

// SalePriceNote is set on listings that show a distinct original price.
const SalePriceNote = "Sale price shown"

// Website builds WebsiteMetadata from the website profile output.
// pageURL is the URL the page was finally served from.
func Website(raw extract.RawFields, pageURL string) *models.WebsiteMetadata {
	return &models.WebsiteMetadata{
		Title:           raw.Get(extract.FieldTitle),
		MetaTitle:       raw.Get(extract.FieldMetaTitle),
		MetaDescription: raw.Get(extract.FieldMetaDescription),
		SchemaData:      schemaBlocks(raw.List(extract.ListSchemaScripts)),
		FaviconURL:      favicon(raw.Get(extract.FieldFavicon), pageURL),
	}
}

// schemaBlocks keeps the JSON-LD scripts that parse, compacted.
func schemaBlocks(scripts []string) []json.RawMessage {
	out := make([]json.RawMessage, 0, len(scripts))
	for _, s := range scripts {
		var buf bytes.Buffer
		if err := json.Compact(&buf, []byte(strings.TrimSpace(s))); err != nil {
			continue
		}
		out = append(out, json.RawMessage(buf.Bytes()))
	}
	return out
}

// favicon resolves href against pageURL, or points at /favicon.ico on the
// page's origin when the page declares no icon.
func favicon(href, pageURL string) string {
	base, err := url.Parse(pageURL)
	if err != nil || base.Host == "" {
		return href
	}
	if href == "" {
		return base.Scheme + "://" + base.Host + "/favicon.ico"
	}
	return resolve(base, href)
}

func resolve(base *url.URL, ref string) string {
	u, err := base.Parse(ref)
	if err != nil {
		return ref
	}
	return u.String()
}

// Listing builds a ProductListing from the listing profile output.
// requestURL is echoed back as the listing URL.
func Listing(raw extract.RawFields, requestURL string) *models.ProductListing {
	price := raw.Get(extract.FieldPrice)

	original := raw.Get(extract.FieldListPrice)
	if original == price {
		original = ""
	}
	note := ""
	if original != "" {
		note = SalePriceNote
	}

	image := raw.Get(extract.FieldImage)
	if base, err := url.Parse(requestURL); err == nil && image != "" {
		image = resolve(base, image)
	}

	return &models.ProductListing{
		Title:         raw.Get(extract.FieldTitle),
		Price:         price,
		OriginalPrice: original,
		Rating:        raw.Get(extract.FieldRating),
		ReviewCount:   raw.Get(extract.FieldReviewCount),
		Availability:  raw.Get(extract.FieldAvailability),
		Image:         image,
		Brand:         raw.Get(extract.FieldBrand),
		ASIN:          raw.Get(extract.FieldASIN),
		Category:      raw.Get(extract.FieldCategory),
		Features:      dedupe(nonNil(raw.List(extract.ListFeatures)), func(s string) string { return s }),
		URL:           requestURL,
		PriceNote:     note,
	}
}

// Reviews builds the review list. A container counts as a review only when
// it produced a positive rating or some body text. A review repeated field
// for field, as when two container locators match the same element, is
// kept once; distinct reviews with the same wording are all kept.
func Reviews(raws []extract.RawFields) []models.Review {
	out := make([]models.Review, 0, len(raws))
	for _, raw := range raws {
		rating := extract.Rating(raw.Get(extract.FieldRating))
		if rating <= 0 && !raw.Found(extract.FieldText) {
			continue
		}
		out = append(out, models.Review{
			Rating:   rating,
			Title:    raw.Get(extract.FieldTitle),
			Author:   raw.Get(extract.FieldAuthor),
			Date:     raw.Get(extract.FieldDate),
			Text:     raw.Get(extract.FieldText),
			Verified: raw.Get(extract.FieldVerified) == "true",
			Helpful:  extract.Helpful(raw.Get(extract.FieldHelpful)),
		})
	}
	return unique(out, reviewKey)
}

func reviewKey(r models.Review) string {
	helpful := -1
	if r.Helpful != nil {
		helpful = *r.Helpful
	}
	return fmt.Sprintf("%d\x00%s\x00%s\x00%s\x00%s\x00%t\x00%d",
		r.Rating, r.Title, r.Author, r.Date, r.Text, r.Verified, helpful)
}

// Transcript builds a TranscriptBundle. Segments are joined with single
// spaces in the order they were read.
func Transcript(raw extract.RawFields) *models.TranscriptBundle {
	segments := raw.List(extract.ListSegments)
	return &models.TranscriptBundle{
		Title:        raw.Get(extract.FieldTitle),
		Channel:      raw.Get(extract.FieldChannel),
		Duration:     raw.Get(extract.FieldDuration),
		Transcript:   strings.Join(segments, " "),
		SegmentCount: len(segments),
	}
}

// VideoInfo is the opening payload of a summarize-by-URL stream.
func VideoInfo(t *models.TranscriptBundle) *models.VideoInfo {
	return &models.VideoInfo{
		Title:      t.Title,
		Channel:    t.Channel,
		Duration:   t.Duration,
		Transcript: t.Transcript,
		WordCount:  len(strings.Fields(t.Transcript)),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
