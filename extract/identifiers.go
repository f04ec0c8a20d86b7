package extract

import "regexp"

var (
	asinURLRe  = regexp.MustCompile(`/dp/([A-Z0-9]{10})`)
	asinTextRe = regexp.MustCompile(`ASIN[:\s]+([A-Z0-9]{10})`)
)

// ASINFromURL matches the product identifier in a listing URL.
func ASINFromURL(rawURL string) string {
	if m := asinURLRe.FindStringSubmatch(rawURL); len(m) > 1 {
		return m[1]
	}
	return ""
}

// ASINFromText matches the identifier in a product-details text block.
func ASINFromText(text string) string {
	if m := asinTextRe.FindStringSubmatch(text); len(m) > 1 {
		return m[1]
	}
	return ""
}

// ASIN derives the identifier from the URL first and the details block
// second. The first match wins.
func ASIN(rawURL string) Cascade {
	return Cascade{
		Value(ASINFromURL(rawURL)),
		Submatch(Text("#detailBullets_feature_div"), asinTextRe),
	}
}
