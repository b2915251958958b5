// Package fetcher retrieves upstream documents under bounded time, size, and
// redirect limits. A hung or oversized upstream fails the fetch, never the
// process.
package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// ErrUpstream marks any transport-level failure against the target site:
// unreachable, non-2xx, oversized, or timed out.
var ErrUpstream = errors.New("upstream fetch failed")

// DefaultUserAgent is sent on every outbound request.
const DefaultUserAgent = "Mozilla/5.0 (compatible; link-preview-api/1.0)"

// Limits bound a single fetch.
type Limits struct {
	Timeout      time.Duration
	MaxBytes     int64
	MaxRedirects int
	UserAgent    string
}

// Fetcher is a bounded HTTP document client. Safe for concurrent use.
type Fetcher struct {
	client *http.Client
	limits Limits
}

func New(limits Limits) *Fetcher {
	if limits.Timeout <= 0 {
		limits.Timeout = 10 * time.Second
	}
	if limits.MaxBytes <= 0 {
		limits.MaxBytes = 3 << 20
	}
	if limits.MaxRedirects <= 0 {
		limits.MaxRedirects = 5
	}
	if limits.UserAgent == "" {
		limits.UserAgent = DefaultUserAgent
	}
	maxRedirects := limits.MaxRedirects
	return &Fetcher{
		limits: limits,
		client: &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
	}
}

// GetBytes fetches the URL body, capped at MaxBytes.
func (f *Fetcher) GetBytes(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, f.limits.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: new request: %v", ErrUpstream, err)
	}
	req.Header.Set("User-Agent", f.limits.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/json;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	// Read one byte past the cap to distinguish "exactly at the limit" from
	// "over it".
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.limits.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUpstream, err)
	}
	if int64(len(body)) > f.limits.MaxBytes {
		return nil, fmt.Errorf("%w: response exceeds %d bytes", ErrUpstream, f.limits.MaxBytes)
	}
	return body, nil
}

// GetDocument fetches the URL and parses the body as HTML.
func (f *Fetcher) GetDocument(ctx context.Context, url string) (*goquery.Document, error) {
	body, err := f.GetBytes(ctx, url)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

// GetJSON fetches the URL and decodes the body into out.
func (f *Fetcher) GetJSON(ctx context.Context, url string, out any) error {
	body, err := f.GetBytes(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}
