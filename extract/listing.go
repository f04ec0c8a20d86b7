package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Listing field names.
const (
	FieldPrice        = "price"
	FieldListPrice    = "listPrice"
	FieldRating       = "rating"
	FieldReviewCount  = "reviewCount"
	FieldAvailability = "availability"
	FieldImage        = "image"
	FieldBrand        = "brand"
	FieldASIN         = "asin"
	FieldCategory     = "category"
	ListFeatures      = "features"
)

// Listing defaults.
const (
	DefaultPrice        = "Price not available"
	DefaultAvailability = "Availability unknown"
	defaultCurrency     = "₹"
)

var (
	priceWhole    = Text(".a-price-whole")
	priceFraction = Text(".a-price-fraction")
	priceSymbol   = Text(".a-price-symbol")
)

// compositePrice assembles symbol, whole and fraction parts when the
// whole part is present.
func compositePrice(scope *goquery.Selection) string {
	whole := priceWhole(scope)
	if whole == "" {
		return ""
	}
	symbol := priceSymbol(scope)
	if symbol == "" {
		symbol = defaultCurrency
	}
	return symbol + whole + priceFraction(scope)
}

func cleanBrand(v string) string {
	v = strings.Replace(v, "Visit the", "", 1)
	v = strings.Replace(v, "Store", "", 1)
	return strings.TrimSpace(v)
}

// Listing is the commerce-listing profile for the product at pageURL.
func Listing(pageURL string) Profile {
	return Profile{
		Name: "listing",
		Fields: []Field{
			{Name: FieldTitle, Cascade: Cascade{
				Text("#productTitle"),
				Text("h1.product-title"),
				Text("h1"),
			}},
			{Name: FieldPrice, Default: DefaultPrice, Cascade: Cascade{
				compositePrice,
				Text("#priceblock_ourprice"),
				Text("#priceblock_dealprice"),
				Text(".a-price .a-offscreen"),
				Text("#price_inside_buybox"),
			}},
			{Name: FieldListPrice, Cascade: Cascade{
				Text(".a-text-price .a-offscreen"),
				Text("#priceblock_saleprice"),
			}},
			{Name: FieldRating, Cascade: Cascade{
				Map(Text(`[data-hook="rating-out-of-text"]`), FirstWord),
				Map(Text(".a-icon-star .a-icon-alt"), FirstWord),
			}},
			{Name: FieldReviewCount, Cascade: Cascade{
				Map(Text("#acrCustomerReviewText"), FirstWord),
				Map(Text(`[data-hook="total-review-count"]`), FirstWord),
			}},
			{Name: FieldAvailability, Default: DefaultAvailability, Cascade: Cascade{
				Text("#availability span"),
				Text(".a-color-success"),
				Text(".a-color-state"),
			}},
			{Name: FieldImage, Cascade: Cascade{
				Attr("#landingImage", "src"),
				Attr("#imgBlkFront", "src"),
				Attr(".a-dynamic-image", "src"),
				Attr("#altImages img", "src"),
			}},
			{Name: FieldBrand, Cascade: Cascade{
				Map(Text("#bylineInfo"), cleanBrand),
				Text(".a-row.a-spacing-small a"),
			}},
			{Name: FieldASIN, Cascade: ASIN(pageURL)},
			{Name: FieldCategory, Cascade: Cascade{
				Text("#wayfinding-breadcrumbs_feature_div a"),
				Text(".a-breadcrumb a"),
			}},
		},
		Lists: []ListField{
			{Name: ListFeatures, Collect: AllText("#feature-bullets ul li span.a-list-item")},
		},
	}
}
