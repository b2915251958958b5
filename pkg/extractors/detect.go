package extractors

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dtnitsch/link-preview-api/models"
)

// PageType classifies the page with domain-based overrides first, document
// structure second.
func PageType(doc *goquery.Document, pageURL string) string {
	u, err := url.Parse(pageURL)
	if err == nil {
		host := strings.ToLower(strings.TrimPrefix(u.Hostname(), "www."))
		path := strings.ToLower(u.Path)

		if host == "github.com" {
			return models.TypeGitHub
		}
		if strings.Contains(host, "docs") || strings.Contains(host, "documentation") ||
			strings.Contains(path, "docs") || strings.Contains(path, "documentation") {
			return models.TypeDocs
		}
	}

	if doc != nil && doc.Find("article").Length() > 0 {
		return models.TypeArticle
	}
	return models.TypeWebsite
}

// CoarseType maps a fine-grained tag to the coarse contentType used for
// rendering decisions.
func CoarseType(pageType string) string {
	switch pageType {
	case models.TypeArticle:
		return models.ContentTypeArticle
	case models.TypeYouTube, models.TypeYouTubeShort:
		return models.ContentTypeVideo
	case models.TypeYouTubeChannel:
		return models.ContentTypeChannel
	default:
		return models.ContentTypeWebsite
	}
}
