package extractors

import (
	"net/url"

	"github.com/PuerkitoBio/goquery"
)

// Image returns the best social-card image as an absolute URL, or empty.
func Image(doc *goquery.Document, base *url.URL) string {
	raw := firstNonEmpty(doc,
		metaProperty("og:image"),
		metaName("twitter:image"),
		metaName("twitter:image:src"),
	)
	if raw == "" {
		return ""
	}
	return absoluteURL(raw, base)
}
