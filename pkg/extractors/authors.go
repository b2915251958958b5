package extractors

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const maxAuthors = 3

// contentSelectors scope searches to the main content of the page, ordered by
// how strongly a match signals "this is the article body". The selector
// strings encode real-world markup conventions and are shared with the
// excerpt extractor.
var contentSelectors = []string{
	"article",
	"main",
	"[role=main]",
	".post-content",
	".article-content",
	".entry-content",
	".article-body",
	".post-body",
	".story-body",
	".content",
}

// bylineSelectors find author names inside a content container.
var bylineSelectors = []string{
	"[rel=author]",
	"[itemprop=author]",
	".author-name",
	".byline__name",
	".byline",
	".post-author",
	".article-author",
	".author",
}

// jobSeparators cut job titles and descriptions out of byline text, e.g.
// "Jane Doe is a senior writer" keeps only "Jane Doe".
var jobSeparators = []string{" is ", " works ", " writes ", " - ", " , "}

// Authors extracts up to three author names. Phase 1 searches byline selectors
// inside the first existing content container; containers are tried in order
// until one yields names. Phase 2 falls back to author meta tags only when no
// container produced anything — a byline hit suppresses the meta scan entirely.
func Authors(doc *goquery.Document) []string {
	for _, containerSel := range contentSelectors {
		container := doc.Find(containerSel).First()
		if container.Length() == 0 {
			continue
		}
		var authors []string
		seen := make(map[string]struct{})
		for _, sel := range bylineSelectors {
			container.Find(sel).Each(func(_ int, s *goquery.Selection) {
				if len(authors) >= maxAuthors {
					return
				}
				name := CleanAuthor(s.Text())
				if name == "" {
					return
				}
				if _, dup := seen[name]; dup {
					return
				}
				seen[name] = struct{}{}
				authors = append(authors, name)
			})
		}
		if len(authors) > 0 {
			return authors
		}
	}
	return authorsFromMeta(doc)
}

// authorsFromMeta scans author meta tags, rejecting URLs and @handles misused
// as author fields.
func authorsFromMeta(doc *goquery.Document) []string {
	var authors []string
	seen := make(map[string]struct{})
	doc.Find(`meta[name="author"], meta[property="article:author"]`).Each(func(_ int, s *goquery.Selection) {
		if len(authors) >= maxAuthors {
			return
		}
		content, _ := s.Attr("content")
		content = strings.TrimSpace(content)
		if content == "" || strings.Contains(content, "http") || strings.HasPrefix(content, "@") {
			return
		}
		name := CleanAuthor(content)
		if name == "" {
			return
		}
		if _, dup := seen[name]; dup {
			return
		}
		seen[name] = struct{}{}
		authors = append(authors, name)
	})
	return authors
}

// CleanAuthor normalizes a raw byline into a bare name: strips a leading
// "By ", truncates at the first job-title separator, drops trailing
// punctuation, and rejects results outside (2, 50) characters.
func CleanAuthor(raw string) string {
	name := strings.Join(strings.Fields(raw), " ")
	if len(name) >= 3 && strings.EqualFold(name[:3], "by ") {
		name = name[3:]
	}
	for _, sep := range jobSeparators {
		if idx := strings.Index(name, sep); idx >= 0 {
			name = name[:idx]
		}
	}
	name = strings.TrimRight(name, ".,;:|/ ")
	name = strings.TrimSpace(name)
	if len(name) <= 2 || len(name) >= 50 {
		return ""
	}
	return name
}
