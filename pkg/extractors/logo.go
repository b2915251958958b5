package extractors

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// logoSelectors run from strongest to loosest brand signal.
var logoSelectors = []string{
	".site-logo img",
	".brand-logo img",
	".header-logo img",
	".navbar-brand img",
	"header img[alt*=logo]",
	"header img[class*=logo]",
	".logo img",
	"img[alt*=brand]",
	"img[class*=brand]",
}

// adURLMarkers identify known ad-network image hosts.
var adURLMarkers = []string{
	"doubleclick",
	"googlesyndication",
	"adsystem",
	"adserver",
	"amazon-adsystem",
	"/ads/",
	"/ad/",
}

var imageExtensions = []string{".png", ".svg", ".jpg", ".jpeg", ".gif", ".webp", ".ico"}

// Logo finds a site logo for article pages. Each candidate must pass three
// filters — plausible logo URL, plausible pixel size, and not an
// advertisement — and the first survivor wins, resolved to an absolute URL.
func Logo(doc *goquery.Document, base *url.URL) string {
	for _, sel := range logoSelectors {
		var found string
		doc.Find(sel).EachWithBreak(func(_ int, img *goquery.Selection) bool {
			src, _ := img.Attr("src")
			if !plausibleLogoURL(src) {
				return true
			}
			if !plausibleLogoSize(img) {
				return true
			}
			if isAdvertisement(src, img) {
				return true
			}
			found = absoluteURL(src, base)
			return false
		})
		if found != "" {
			return found
		}
	}
	return ""
}

// plausibleLogoURL rejects data URLs and tracking pixels, and requires either
// an image extension or "logo" in the path.
func plausibleLogoURL(src string) bool {
	src = strings.TrimSpace(src)
	if src == "" || strings.HasPrefix(src, "data:") {
		return false
	}
	lower := strings.ToLower(src)
	if strings.Contains(lower, "pixel") || strings.Contains(lower, "1x1") || strings.Contains(lower, "spacer") {
		return false
	}
	if strings.Contains(lower, "logo") {
		return true
	}
	for _, ext := range imageExtensions {
		if strings.Contains(lower, ext) {
			return true
		}
	}
	return false
}

// plausibleLogoSize filters on declared width/height attributes when present:
// nothing tiny, nothing banner-sized, no extreme aspect ratios.
func plausibleLogoSize(img *goquery.Selection) bool {
	w := attrInt(img, "width")
	h := attrInt(img, "height")
	if w == 0 && h == 0 {
		return true
	}
	if (w > 0 && w < 20) || (h > 0 && h < 20) {
		return false
	}
	if w > 800 || h > 400 {
		return false
	}
	if w > 0 && h > 0 {
		ratio := float64(w) / float64(h)
		if ratio > 10 || ratio < 0.1 {
			return false
		}
	}
	return true
}

// isAdvertisement rejects known ad-network URLs and elements whose class or id
// carries an ad marker.
func isAdvertisement(src string, img *goquery.Selection) bool {
	lower := strings.ToLower(src)
	for _, marker := range adURLMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	class, _ := img.Attr("class")
	id, _ := img.Attr("id")
	for _, token := range strings.FieldsFunc(strings.ToLower(class+" "+id), func(r rune) bool {
		return r == ' ' || r == '-' || r == '_'
	}) {
		if token == "ad" || token == "ads" || strings.Contains(token, "advert") || strings.Contains(token, "sponsor") {
			return true
		}
	}
	return false
}

func attrInt(s *goquery.Selection, name string) int {
	raw, ok := s.Attr(name)
	if !ok {
		return 0
	}
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "px")
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
