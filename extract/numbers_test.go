package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHelpful(t *testing.T) {
	three := 3
	tests := []struct {
		name string
		in   string
		want *int
	}{
		{"no digit", "One person found this helpful", nil},
		{"zero collapses to absent", "0 people found this helpful", nil},
		{"count", "3 people found this helpful", &three},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Helpful(tt.in))
		})
	}
}

func TestRating(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"4.6 out of 5 stars", 5},
		{"4.4 out of 5 stars", 4},
		{"a-icon a-icon-star a-star-3 review-rating", 3},
		{"no stars", 0},
		{"", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Rating(tt.in))
		})
	}
}

func TestASIN(t *testing.T) {
	assert.Equal(t, "B0ABCDEF12", ASINFromURL("https://www.amazon.in/Some-Thing/dp/B0ABCDEF12/ref=sr_1_1"))
	assert.Equal(t, "", ASINFromURL("https://www.amazon.in/gp/product/B0ABCDEF12"))
	assert.Equal(t, "B0ZZZZZZZZ", ASINFromText("Manufacturer : Acme ASIN : B0ZZZZZZZZ Item weight"))

	doc := mustParse(t, `<html><body><div id="detailBullets_feature_div">ASIN: B0FROMPAGE</div></body></html>`)
	fromURL, _ := ASIN("https://www.amazon.in/dp/B0FROMURL1").Eval(doc.Selection)
	assert.Equal(t, "B0FROMURL1", fromURL, "URL match wins over page text")
	fromPage, _ := ASIN("https://www.amazon.in/s?k=x").Eval(doc.Selection)
	assert.Equal(t, "B0FROMPAGE", fromPage)
}
