package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dtnitsch/link-preview-api/models"
	"github.com/dtnitsch/link-preview-api/pkg/fetcher"
)

func testAdapter(t *testing.T, oembed http.HandlerFunc) *Adapter {
	t.Helper()
	f := fetcher.New(fetcher.Limits{Timeout: time.Second})
	a := NewAdapter(f)
	if oembed != nil {
		ts := httptest.NewServer(oembed)
		t.Cleanup(ts.Close)
		a.OEmbedBase = ts.URL + "/oembed"
	}
	return a
}

func TestVideoID(t *testing.T) {
	tests := []struct {
		url  string
		want string
		ok   bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/watch?t=10&v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/v/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://youtu.be/abc123", "abc123", true},
		{"https://www.youtube.com/watch?v=short", "short", true},
		{"https://www.youtube.com/watch?v=ab", "", false},
		{"https://www.youtube.com/playlist?list=PLx", "", false},
	}
	for _, tt := range tests {
		got, ok := VideoID(tt.url)
		if ok != tt.ok || got != tt.want {
			t.Errorf("VideoID(%q) = %q, %v; want %q, %v", tt.url, got, ok, tt.want, tt.ok)
		}
	}
}

func TestResolveVideoFromOEmbed(t *testing.T) {
	a := testAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("url"); got == "" {
			t.Errorf("oEmbed request missing url parameter")
		}
		json.NewEncoder(w).Encode(map[string]string{
			"title":         "A Great Video",
			"author_name":   "Some Creator",
			"thumbnail_url": "https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg",
		})
	})

	rec, err := a.Resolve(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if rec.Title != "A Great Video" {
		t.Errorf("Title = %q, want %q", rec.Title, "A Great Video")
	}
	if rec.Domain != "youtube.com" {
		t.Errorf("Domain = %q, want youtube.com", rec.Domain)
	}
	if rec.ContentType != models.ContentTypeVideo {
		t.Errorf("ContentType = %q, want video", rec.ContentType)
	}
	if rec.Type != models.TypeYouTube {
		t.Errorf("Type = %q, want youtube", rec.Type)
	}
	if rec.ImageAspectRatio != models.AspectWide {
		t.Errorf("ImageAspectRatio = %v, want %v", rec.ImageAspectRatio, models.AspectWide)
	}
	if len(rec.Author) != 1 || rec.Author[0] != "Some Creator" {
		t.Errorf("Author = %v, want [Some Creator]", rec.Author)
	}
}

func TestResolveShortGetsTallAspect(t *testing.T) {
	a := testAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"title": "A Short"})
	})

	rec, err := a.Resolve(context.Background(), "https://www.youtube.com/shorts/dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if rec.Type != models.TypeYouTubeShort {
		t.Errorf("Type = %q, want youtube-short", rec.Type)
	}
	if rec.ImageAspectRatio != models.AspectTall {
		t.Errorf("ImageAspectRatio = %v, want %v", rec.ImageAspectRatio, models.AspectTall)
	}
}

func TestResolveVideoDegradesOnOEmbedFailure(t *testing.T) {
	a := testAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	})

	rec, err := a.Resolve(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Resolve() error = %v, want degraded record instead", err)
	}
	if rec.Title == "" {
		t.Error("degraded record has empty title")
	}
	if rec.Image != "https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg" {
		t.Errorf("Image = %q, want constructed thumbnail", rec.Image)
	}
}

func TestResolveNonStandardIDLength(t *testing.T) {
	a := testAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"title": "Odd ID"})
	})

	rec, err := a.Resolve(context.Background(), "https://youtu.be/abc123")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if rec.Domain != "youtube.com" {
		t.Errorf("Domain = %q, want youtube.com", rec.Domain)
	}
	if rec.ContentType != models.ContentTypeVideo {
		t.Errorf("ContentType = %q, want video", rec.ContentType)
	}
	if rec.Title != "Odd ID" {
		t.Errorf("Title = %q, want %q", rec.Title, "Odd ID")
	}
}

func TestResolveNoVideoID(t *testing.T) {
	a := testAdapter(t, nil)
	_, err := a.Resolve(context.Background(), "https://www.youtube.com/watch?list=only")
	if !errors.Is(err, ErrNoVideoID) {
		t.Errorf("Resolve() error = %v, want ErrNoVideoID", err)
	}
}

func TestResolveChannel(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><head>
			<meta property="og:title" content="Creator Channel - YouTube">
			<meta property="og:image" content="https://yt3.example.com/avatar.jpg">
		</head><body></body></html>`))
	}))
	defer page.Close()

	f := fetcher.New(fetcher.Limits{Timeout: time.Second})
	a := NewAdapter(f)

	// Channel detection keys off the URL shape; the fetch goes to the fake.
	rec, err := a.resolveChannel(context.Background(), page.URL+"/@creator")
	if err != nil {
		t.Fatalf("resolveChannel() error = %v", err)
	}
	if rec.Title != "Creator Channel" {
		t.Errorf("Title = %q, want %q", rec.Title, "Creator Channel")
	}
	if rec.Image != "https://yt3.example.com/avatar.jpg" {
		t.Errorf("Image = %q, want og:image avatar", rec.Image)
	}
	if rec.ContentType != models.ContentTypeChannel {
		t.Errorf("ContentType = %q, want channel", rec.ContentType)
	}
	if rec.ImageAspectRatio != models.AspectSquare {
		t.Errorf("ImageAspectRatio = %v, want 1 (avatars are square)", rec.ImageAspectRatio)
	}
}
