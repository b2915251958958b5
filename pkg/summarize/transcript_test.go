package summarize

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestFetchTranscript(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transcript" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req TranscriptRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if req.GroupingStrategy != "smart" {
			t.Errorf("GroupingStrategy = %q, want smart", req.GroupingStrategy)
		}
		if req.IncludeTimestamps {
			t.Error("IncludeTimestamps = true, want false")
		}
		json.NewEncoder(w).Encode(TranscriptResponse{
			Text:       "hello world transcript",
			VideoTitle: "A Video",
			VideoID:    "dQw4w9WgXcQ",
		})
	}))
	defer ts.Close()

	out, err := NewTranscriptClient(ts.URL).Fetch(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if out.Text != "hello world transcript" {
		t.Errorf("Text = %q", out.Text)
	}
	if out.VideoTitle != "A Video" {
		t.Errorf("VideoTitle = %q", out.VideoTitle)
	}
}

func TestFetchTranscriptErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"service error status", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "no captions", http.StatusUnprocessableEntity)
		}},
		{"empty transcript", func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(TranscriptResponse{Text: ""})
		}},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(tt.handler)
			defer ts.Close()
			_, err := NewTranscriptClient(ts.URL).Fetch(context.Background(), "https://youtu.be/x")
			if !errors.Is(err, ErrRelay) {
				t.Errorf("Fetch() error = %v, want ErrRelay", err)
			}
		})
	}
}

func TestFetchTranscriptUnconfigured(t *testing.T) {
	_, err := NewTranscriptClient("").Fetch(context.Background(), "https://youtu.be/x")
	if !errors.Is(err, ErrRelay) {
		t.Errorf("Fetch() error = %v, want ErrRelay", err)
	}
}

func TestHealthy(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		http.NotFound(w, r)
	}))
	defer ts.Close()

	if !NewTranscriptClient(ts.URL).Healthy(context.Background()) {
		t.Error("Healthy() = false for live service")
	}
	if NewTranscriptClient("").Healthy(context.Background()) {
		t.Error("Healthy() = true for unconfigured client")
	}
}

func TestStreamUnconfiguredFailsFast(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	s := NewSummarizer(NewTranscriptClient(""), "", "", "", log)

	err := s.Stream(context.Background(), "https://youtu.be/x", func(string) error {
		t.Fatal("emit called for unconfigured summarizer")
		return nil
	})
	if !errors.Is(err, ErrRelay) {
		t.Errorf("Stream() error = %v, want ErrRelay", err)
	}
	if s.Configured() {
		t.Error("Configured() = true with empty key")
	}
}
