package extractors

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// MaxExcerptLen caps the extracted body text.
const MaxExcerptLen = 924

const (
	minParagraphLen = 20
	minBlockLen     = 50
	minUsableLen    = 100
)

// noiseSelectors are stripped from a copied container before text extraction:
// bylines, dates, and timestamps on one hand, captions and credit lines on the
// other. Left in place they leak metadata into the body text.
var noiseSelectors = []string{
	".byline",
	".author",
	".post-author",
	"[itemprop=author]",
	"time",
	".date",
	".post-date",
	".published",
	".timestamp",
	"figcaption",
	".caption",
	".image-caption",
	".img-caption",
	".wp-caption-text",
	".media-caption",
	".photo-caption",
	".credit",
	".photo-credit",
	".image-credit",
}

// chromeAncestors disqualify a container wholesale when it sits inside
// navigation, page chrome, or ad markup.
var chromeAncestors = "nav, footer, header, aside"

var chromeClassSignals = []string{
	"nav", "menu", "footer", "header", "sidebar", "comment", "promo", "advert", "banner",
}

var (
	// D.D.YYYY and D/D/YYYY date fragments, plus the "| D.D.YYYY" variant
	// that news sites append to headlines.
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\|\s*\d{1,2}\.\d{1,2}\.\d{4}`),
		regexp.MustCompile(`\b\d{1,2}\.\d{1,2}\.\d{4}\b`),
		regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{4}\b`),
	}
	horizontalWS = regexp.MustCompile(`[ \t]+`)
	blankRuns    = regexp.MustCompile(`\n{3,}`)
	// A bare "Firstname Lastname" line is almost always a caption or credit,
	// not body text.
	nameLine = regexp.MustCompile(`^[A-Z][a-z]+ [A-Z][a-z]+$`)
)

// Excerpt extracts the primary body text of the page. Every content selector
// match is considered as a candidate container; the longest assembled text
// wins and is then cleaned and truncated. When no selector matches anything,
// readability takes one last pass over the whole document.
func Excerpt(doc *goquery.Document, pageURL string) string {
	var best string
	sawContainer := false

	for _, sel := range contentSelectors {
		doc.Find(sel).Each(func(_ int, container *goquery.Selection) {
			if isChrome(container) {
				return
			}
			sawContainer = true
			text := containerText(container)
			if len(text) > len(best) {
				best = text
			}
		})
	}

	if !sawContainer {
		best = readabilityText(doc, pageURL)
	}
	return CleanExcerpt(best)
}

// isChrome reports whether the container or an ancestor looks like
// navigation, footer, header, or ad markup.
func isChrome(s *goquery.Selection) bool {
	if s.Closest(chromeAncestors).Length() > 0 {
		return true
	}
	for probe := s; probe.Length() > 0; probe = probe.Parent() {
		class, _ := probe.Attr("class")
		id, _ := probe.Attr("id")
		signal := strings.ToLower(class + " " + id)
		for _, marker := range chromeClassSignals {
			if strings.Contains(signal, marker) {
				return true
			}
		}
	}
	return false
}

// containerText assembles text from a defensive copy of the container with
// noise subtrees removed first. Paragraphs are preferred; generic blocks and
// finally the full text content serve as progressively weaker fallbacks.
func containerText(container *goquery.Selection) string {
	clone := container.Clone()
	clone.Find(strings.Join(noiseSelectors, ", ")).Remove()

	var sb strings.Builder
	clone.Find("p").Each(func(_ int, p *goquery.Selection) {
		text := strings.TrimSpace(p.Text())
		if len(text) > minParagraphLen {
			sb.WriteString(text)
			sb.WriteString("\n\n")
		}
	})
	if sb.Len() >= minUsableLen {
		return sb.String()
	}

	sb.Reset()
	clone.Find("div, section, article").Each(func(_ int, b *goquery.Selection) {
		text := strings.TrimSpace(b.Text())
		if len(text) > minBlockLen {
			sb.WriteString(text)
			sb.WriteString("\n\n")
		}
	})
	if sb.Len() >= minUsableLen {
		return sb.String()
	}

	return clone.Text()
}

// readabilityText distills the document when no content container exists.
func readabilityText(doc *goquery.Document, pageURL string) string {
	html, err := doc.Html()
	if err != nil {
		return ""
	}
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(html), parsed)
	if err != nil {
		return ""
	}
	return article.TextContent
}

// CleanExcerpt strips date fragments, normalizes whitespace, removes likely
// standalone caption lines, and truncates to MaxExcerptLen. The result never
// contains more than two consecutive line breaks.
func CleanExcerpt(text string) string {
	for _, p := range datePatterns {
		text = p.ReplaceAllString(text, "")
	}

	// Normalize whitespace: collapse horizontal runs, cap blank-line runs at
	// one blank line.
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(horizontalWS.ReplaceAllString(line, " "))
	}
	text = blankRuns.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")

	text = dropCaptionLines(text)

	if len(text) > MaxExcerptLen {
		cut := MaxExcerptLen
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	return strings.TrimSpace(text)
}

// dropCaptionLines removes lines that look like photo captions left behind by
// the container cleanup: bare "Firstname Lastname" lines, and very short
// lines immediately followed by a blank line.
func dropCaptionLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for i, line := range lines {
		if nameLine.MatchString(line) {
			continue
		}
		if line != "" && len(line) <= 30 && i+1 < len(lines) && lines[i+1] == "" {
			continue
		}
		kept = append(kept, line)
	}
	out := strings.Join(kept, "\n")
	return blankRuns.ReplaceAllString(out, "\n\n")
}
