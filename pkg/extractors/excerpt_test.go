package extractors

import (
	"strings"
	"testing"
)

func TestExcerptPrefersParagraphs(t *testing.T) {
	doc := parseDoc(t, `<article>
		<p>` + strings.Repeat("First paragraph text. ", 5) + `</p>
		<p>` + strings.Repeat("Second paragraph text. ", 5) + `</p>
		<p>short</p>
	</article>`)

	got := Excerpt(doc, "https://example.com/post")
	if !strings.Contains(got, "First paragraph text.") {
		t.Errorf("Excerpt() missing paragraph content: %q", got)
	}
	if strings.Contains(got, "short") {
		t.Errorf("Excerpt() kept paragraph under the length floor: %q", got)
	}
}

func TestExcerptStripsCaptionsAndBylines(t *testing.T) {
	doc := parseDoc(t, `<article>
		<div class="byline">By Jane Doe</div>
		<time>2024-01-01</time>
		<figure>
			<img src="a.jpg">
			<figcaption>A photo of something irrelevant</figcaption>
		</figure>
		<div class="photo-credit">Getty Images</div>
		<p>` + strings.Repeat("Real body text continues here. ", 10) + `</p>
	</article>`)

	got := Excerpt(doc, "https://example.com/post")
	for _, leaked := range []string{"Jane Doe", "irrelevant", "Getty"} {
		if strings.Contains(got, leaked) {
			t.Errorf("Excerpt() leaked %q into body text: %q", leaked, got)
		}
	}
	if !strings.Contains(got, "Real body text") {
		t.Errorf("Excerpt() lost real content: %q", got)
	}
}

func TestExcerptSkipsChromeContainers(t *testing.T) {
	doc := parseDoc(t, `<html><body>
		<nav><div class="content"><p>` + strings.Repeat("Navigation junk. ", 10) + `</p></div></nav>
		<main><p>` + strings.Repeat("The actual article body. ", 10) + `</p></main>
	</body></html>`)

	got := Excerpt(doc, "https://example.com/post")
	if strings.Contains(got, "Navigation junk") {
		t.Errorf("Excerpt() took content from inside <nav>: %q", got)
	}
	if !strings.Contains(got, "actual article body") {
		t.Errorf("Excerpt() missed the main container: %q", got)
	}
}

func TestExcerptLongestContainerWins(t *testing.T) {
	doc := parseDoc(t, `<html><body>
		<main><p>` + strings.Repeat("Short candidate. ", 3) + `</p></main>
		<article><p>` + strings.Repeat("Much longer candidate body. ", 15) + `</p></article>
	</body></html>`)

	got := Excerpt(doc, "https://example.com/post")
	if !strings.Contains(got, "Much longer candidate") {
		t.Errorf("Excerpt() did not pick the longest container: %q", got)
	}
}

func TestCleanExcerptCapsLength(t *testing.T) {
	long := strings.Repeat("word ", 400)
	got := CleanExcerpt(long)
	if len(got) > MaxExcerptLen {
		t.Errorf("CleanExcerpt() length = %d, want <= %d", len(got), MaxExcerptLen)
	}
}

func TestCleanExcerptCapsBlankRuns(t *testing.T) {
	text := "First paragraph of reasonable length here.\n\n\n\n\nSecond paragraph of reasonable length here."
	got := CleanExcerpt(text)
	if strings.Contains(got, "\n\n\n") {
		t.Errorf("CleanExcerpt() contains a run of 3+ line breaks: %q", got)
	}
	if !strings.Contains(got, "\n\n") {
		t.Errorf("CleanExcerpt() lost the paragraph break entirely: %q", got)
	}
}

func TestCleanExcerptStripsDates(t *testing.T) {
	tests := []string{
		"Published 12.31.2024 in the evening edition of the paper.",
		"Headline text | 1.2.2024",
		"Updated 12/31/2024 with corrections from the editor desk.",
	}
	for _, input := range tests {
		got := CleanExcerpt(input)
		if strings.Contains(got, "2024") {
			t.Errorf("CleanExcerpt(%q) kept date fragment: %q", input, got)
		}
	}
}

func TestCleanExcerptDropsNameLines(t *testing.T) {
	text := "A full paragraph of body text that should definitely survive the cleanup pass.\n\nJane Doe\n\nAnother full paragraph of body text that should also survive cleanup."
	got := CleanExcerpt(text)
	if strings.Contains(got, "Jane Doe") {
		t.Errorf("CleanExcerpt() kept standalone name line: %q", got)
	}
}

func TestCleanExcerptDropsShortLinesBeforeBlank(t *testing.T) {
	text := "A full paragraph of body text that should definitely survive the cleanup pass.\n\nphoto: agency handout\n\nAnother full paragraph of body text that should also survive cleanup."
	got := CleanExcerpt(text)
	if strings.Contains(got, "photo: agency handout") {
		t.Errorf("CleanExcerpt() kept short caption line: %q", got)
	}
}
