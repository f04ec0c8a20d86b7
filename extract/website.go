package extract

// Website field names.
const (
	FieldTitle           = "title"
	FieldMetaTitle       = "metaTitle"
	FieldMetaDescription = "metaDescription"
	FieldFavicon         = "favicon"
	ListSchemaScripts    = "schemaScripts"
)

var websiteTitle = Cascade{
	Text("head > title"),
	Text("title"),
}

// Website is the generic-page metadata profile.
var Website = Profile{
	Name: "website",
	Fields: []Field{
		{Name: FieldTitle, Cascade: websiteTitle},
		{Name: FieldMetaTitle, Cascade: Cascade{
			Attr(`meta[property="og:title"]`, "content"),
			Attr(`meta[name="twitter:title"]`, "content"),
			websiteTitle.Strategy(),
		}},
		{Name: FieldMetaDescription, Cascade: Cascade{
			Attr(`meta[name="description"]`, "content"),
			Attr(`meta[property="og:description"]`, "content"),
			Attr(`meta[name="twitter:description"]`, "content"),
		}},
		{Name: FieldFavicon, Cascade: Cascade{
			Attr(`link[rel="icon"]`, "href"),
			Attr(`link[rel="shortcut icon"]`, "href"),
			Attr(`link[rel="apple-touch-icon"]`, "href"),
		}},
	},
	Lists: []ListField{
		{Name: ListSchemaScripts, Collect: AllRaw(`script[type="application/ld+json"]`)},
	},
}
