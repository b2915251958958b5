// Package extractors implements the per-field metadata heuristics. Every
// extractor is a pure function over a parsed document plus the page URL, and
// each runs a priority chain: an ordered list of lookup strategies where the
// first non-empty, trimmed result wins. The ordering encodes editorial trust —
// structured social metadata (Open Graph, Twitter Card) outranks generic HTML.
package extractors

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// strategy is one link in a priority chain.
type strategy func(doc *goquery.Document) string

func firstNonEmpty(doc *goquery.Document, chain ...strategy) string {
	for _, s := range chain {
		if v := strings.TrimSpace(s(doc)); v != "" {
			return v
		}
	}
	return ""
}

// metaProperty reads <meta property=...> content.
func metaProperty(name string) strategy {
	return func(doc *goquery.Document) string {
		v, _ := doc.Find(`meta[property="` + name + `"]`).First().Attr("content")
		return v
	}
}

// metaName reads <meta name=...> content.
func metaName(name string) strategy {
	return func(doc *goquery.Document) string {
		v, _ := doc.Find(`meta[name="` + name + `"]`).First().Attr("content")
		return v
	}
}

// absoluteURL resolves a possibly-relative candidate against the page URL.
func absoluteURL(raw string, base *url.URL) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || base == nil {
		return raw
	}
	ref, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
