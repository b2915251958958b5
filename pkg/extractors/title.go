package extractors

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/dtnitsch/link-preview-api/pkg/urlx"
)

// Title runs the title priority chain and falls back to a URL-derived title,
// so the result is never empty.
func Title(doc *goquery.Document, pageURL string) string {
	title := firstNonEmpty(doc,
		metaProperty("og:title"),
		metaName("twitter:title"),
		metaName("title"),
		func(d *goquery.Document) string { return d.Find("title").First().Text() },
		func(d *goquery.Document) string { return d.Find("h1").First().Text() },
	)
	if title != "" {
		return title
	}
	return urlx.TitleFromURL(pageURL)
}

// Description runs the description chain. Author meta tags serve as a weak
// descriptive fallback when no real description exists.
func Description(doc *goquery.Document) string {
	return firstNonEmpty(doc,
		metaProperty("og:description"),
		metaName("twitter:description"),
		metaName("description"),
		metaName("author"),
		metaProperty("article:author"),
	)
}
