package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Review field names. FieldTitle and FieldRating are shared with other profiles.
const (
	FieldAuthor   = "author"
	FieldDate     = "date"
	FieldText     = "text"
	FieldVerified = "verified"
	FieldHelpful  = "helpful"
)

// Review defaults.
const (
	DefaultReviewTitle = "No title"
	DefaultAuthor      = "Anonymous"
	DefaultDate        = "Date not available"
	DefaultReviewText  = "No review text"
)

var (
	starPrefixRe = regexp.MustCompile(`(?i)^\d+\.?\d*\s+out of \d+ stars\s*`)
	reviewedInRe = regexp.MustCompile(`(?i)Reviewed in [^o]* on `)
	leadingOnRe  = regexp.MustCompile(`(?i)^on `)
)

func stripStarPrefix(v string) string {
	return strings.TrimSpace(starPrefixRe.ReplaceAllString(v, ""))
}

func stripReviewedIn(v string) string {
	v = reviewedInRe.ReplaceAllString(v, "")
	return strings.TrimSpace(leadingOnRe.ReplaceAllString(v, ""))
}

// Review is the per-container review profile. Every cascade is scoped to
// a single review container.
var Review = Profile{
	Name: "review",
	Fields: []Field{
		{Name: FieldRating, Cascade: Cascade{
			Map(TextOrAttr(`[data-hook="review-star-rating"]`, "class"), FirstDecimal),
			Map(TextOrAttr(`i[data-hook="review-star-rating"]`, "class"), FirstDecimal),
			Map(TextOrAttr(".review-rating", "class"), FirstDecimal),
		}},
		{Name: FieldTitle, Default: DefaultReviewTitle, Cascade: Cascade{
			Map(Text(`[data-hook="review-title"]`), stripStarPrefix),
			Map(Text(`a[data-hook="review-title"]`), stripStarPrefix),
			Map(Text(".review-title"), stripStarPrefix),
		}},
		{Name: FieldAuthor, Default: DefaultAuthor, Cascade: Cascade{
			Text(".a-profile-name"),
			Text(`[data-hook="review-author"]`),
		}},
		{Name: FieldDate, Default: DefaultDate, Cascade: Cascade{
			Map(Text(`[data-hook="review-date"]`), stripReviewedIn),
			Map(Text(".review-date"), stripReviewedIn),
		}},
		{Name: FieldText, Default: DefaultReviewText, Cascade: Cascade{
			Text(`[data-hook="review-body"] span`),
			Text(`[data-hook="review-body"]`),
			Text(".review-text-content span:not(.cr-original-review-text)"),
			Text(".review-text"),
		}},
		{Name: FieldVerified, Cascade: Cascade{
			Present(`[data-hook="avp-badge"]`),
			Present(".avp-badge"),
		}},
		{Name: FieldHelpful, Cascade: Cascade{
			Map(Text(`[data-hook="helpful-vote-statement"]`), FirstInteger),
			Map(Text(".cr-vote-text"), FirstInteger),
		}},
	},
}

// Locator finds a set of containers under scope.
type Locator func(scope *goquery.Selection) *goquery.Selection

// All locates every element matching css.
func All(css string) Locator {
	m := Sel(css)
	return func(scope *goquery.Selection) *goquery.Selection {
		return scope.FindMatcher(m)
	}
}

// Within locates inner elements under the first element matching outer.
func Within(outer, inner string) Locator {
	om, im := Sel(outer), Sel(inner)
	return func(scope *goquery.Selection) *goquery.Selection {
		return scope.FindMatcher(om).First().FindMatcher(im)
	}
}

// Containers is a cascade of locators: the first one that finds at least
// one element wins.
type Containers []Locator

// Find returns at most limit containers from the first matching locator.
func (c Containers) Find(scope *goquery.Selection, limit int) *goquery.Selection {
	for _, locate := range c {
		if found := locate(scope); found.Length() > 0 {
			if limit > 0 && found.Length() > limit {
				return found.Slice(0, limit)
			}
			return found
		}
	}
	return scope.FindNodes()
}

// ProductPageReviews locates the top reviews embedded in a listing page.
var ProductPageReviews = Containers{
	All(`[data-hook="review"]`),
}

// ReviewsPageReviews locates reviews on a dedicated reviews page, where
// the markup varies more.
var ReviewsPageReviews = Containers{
	All(`[data-hook="review"]`),
	All(".review"),
	All(`[id^="customer_review"]`),
	Within("#cm_cr-review_list", `div[data-hook="review"], div.review, div[id*="review"]`),
}

// Reviews applies the Review profile to each container found by c.
func Reviews(scope *goquery.Selection, c Containers, limit int) []RawFields {
	var out []RawFields
	c.Find(scope, limit).Each(func(_ int, container *goquery.Selection) {
		out = append(out, Review.Extract(container))
	})
	return out
}

// DedicatedPage is the cascade for the link to the full reviews listing.
var DedicatedPage = Cascade{
	Attr(`[data-hook="see-all-reviews-link-foot"]`, "href"),
	Attr(`a[data-hook="see-all-reviews-link"]`, "href"),
}
