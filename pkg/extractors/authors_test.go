package extractors

import (
	"fmt"
	"net/url"
	"reflect"
	"testing"
)

func mustParseURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse url %q: %v", raw, err)
	}
	return u
}

func TestCleanAuthor(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"By Jane Doe is a senior writer", "Jane Doe"},
		{"by John Smith", "John Smith"},
		{"Jane Doe - Staff Writer", "Jane Doe"},
		{"Jane Doe works at Example Corp", "Jane Doe"},
		{"Jane Doe writes about tech", "Jane Doe"},
		{"  Jane   Doe.  ", "Jane Doe"},
		{"JD", ""}, // too short after cleaning
		{"", ""},
	}
	for _, tt := range tests {
		if got := CleanAuthor(tt.input); got != tt.want {
			t.Errorf("CleanAuthor(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCleanAuthorLengthBounds(t *testing.T) {
	long := "Abcdefghij Abcdefghij Abcdefghij Abcdefghij Abcdefghij"
	if got := CleanAuthor(long); got != "" {
		t.Errorf("CleanAuthor(long) = %q, want empty", got)
	}
}

func TestAuthorsFromByline(t *testing.T) {
	doc := parseDoc(t, `<article>
		<div class="byline">By Jane Doe</div>
		<p>Body text.</p>
	</article>`)
	want := []string{"Jane Doe"}
	if got := Authors(doc); !reflect.DeepEqual(got, want) {
		t.Errorf("Authors() = %v, want %v", got, want)
	}
}

func TestAuthorsBylineSuppressesMeta(t *testing.T) {
	doc := parseDoc(t, `<html><head>
		<meta name="author" content="Meta Person">
	</head><body><article>
		<span class="author">By Jane Doe</span>
	</article></body></html>`)
	want := []string{"Jane Doe"}
	if got := Authors(doc); !reflect.DeepEqual(got, want) {
		t.Errorf("Authors() = %v, want %v (meta fallback must be skipped)", got, want)
	}
}

func TestAuthorsMetaFallback(t *testing.T) {
	doc := parseDoc(t, `<html><head>
		<meta name="author" content="Jane Doe">
	</head><body><p>No byline markup.</p></body></html>`)
	want := []string{"Jane Doe"}
	if got := Authors(doc); !reflect.DeepEqual(got, want) {
		t.Errorf("Authors() = %v, want %v", got, want)
	}
}

func TestAuthorsMetaRejectsURLsAndHandles(t *testing.T) {
	doc := parseDoc(t, `<html><head>
		<meta name="author" content="https://example.com/jane">
		<meta property="article:author" content="@janedoe">
	</head><body></body></html>`)
	if got := Authors(doc); len(got) != 0 {
		t.Errorf("Authors() = %v, want empty", got)
	}
}

func TestAuthorsCapAndDedup(t *testing.T) {
	html := `<article>`
	for i := 0; i < 5; i++ {
		html += fmt.Sprintf(`<div class="author">Author Number%d</div>`, i)
	}
	html += `<div class="author">Author Number0</div></article>`
	doc := parseDoc(t, html)

	got := Authors(doc)
	if len(got) != 3 {
		t.Fatalf("Authors() returned %d entries, want 3", len(got))
	}
	want := []string{"Author Number0", "Author Number1", "Author Number2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Authors() = %v, want %v (insertion order, deduped)", got, want)
	}
	for _, a := range got {
		if len(a) <= 2 || len(a) >= 50 {
			t.Errorf("author %q outside length bounds", a)
		}
	}
}
