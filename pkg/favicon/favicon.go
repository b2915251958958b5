// Package favicon resolves a verified favicon URL for a page: a prioritized
// search over document-declared icons and well-known paths, where every
// candidate must pass a live existence-and-content-type check before it is
// returned.
package favicon

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/dtnitsch/link-preview-api/pkg/fetcher"
	"github.com/dtnitsch/link-preview-api/pkg/urlx"
)

// ErrNotFound means every candidate was probed and none validated. Callers
// cache this as a real result, not an error to retry.
var ErrNotFound = errors.New("no favicon found")

// linkSelectors is the document-declared icon priority list. Order matters:
// large touch icons first, generic and legacy icons last.
var linkSelectors = []string{
	`link[rel="apple-touch-icon"][sizes="180x180"]`,
	`link[rel="apple-touch-icon"][sizes="152x152"]`,
	`link[rel="apple-touch-icon"]`,
	`link[rel="icon"][type="image/png"][sizes="192x192"]`,
	`link[rel="icon"][type="image/png"][sizes="96x96"]`,
	`link[rel="icon"][type="image/png"][sizes="32x32"]`,
	`link[rel="icon"][type="image/png"]`,
	`link[rel="icon"][type="image/svg+xml"]`,
	`link[rel="icon"]`,
	`link[rel="shortcut icon"]`,
}

// wellKnownPaths are probed against the origin when the document declares
// nothing usable.
var wellKnownPaths = []string{
	"/apple-touch-icon.png",
	"/apple-touch-icon-precomposed.png",
	"/android-chrome-192x192.png",
	"/favicon-96x96.png",
	"/favicon-32x32.png",
	"/favicon.png",
	"/favicon.ico",
}

// Resolver probes favicon candidates with a short per-probe timeout.
type Resolver struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

func NewResolver(timeout time.Duration) *Resolver {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Resolver{
		client:    &http.Client{},
		timeout:   timeout,
		userAgent: fetcher.DefaultUserAgent,
	}
}

// Resolve returns the first candidate that validates, in priority order.
// doc may be nil when the page could not be fetched; resolution then goes
// straight to the well-known paths. Returns ErrNotFound when everything fails.
func (r *Resolver) Resolve(ctx context.Context, pageURL string, doc *goquery.Document) (string, error) {
	base, err := url.Parse(urlx.WithScheme(pageURL))
	if err != nil {
		return "", ErrNotFound
	}

	if doc != nil {
		for _, sel := range linkSelectors {
			href, ok := doc.Find(sel).First().Attr("href")
			if !ok || strings.TrimSpace(href) == "" {
				continue
			}
			ref, err := url.Parse(strings.TrimSpace(href))
			if err != nil {
				continue
			}
			candidate := base.ResolveReference(ref).String()
			if r.validate(ctx, candidate) {
				return candidate, nil
			}
		}
	}

	origin := urlx.Origin(pageURL)
	if origin == "" {
		return "", ErrNotFound
	}
	for _, p := range wellKnownPaths {
		candidate := origin + p
		if r.validate(ctx, candidate) {
			return candidate, nil
		}
	}
	return "", ErrNotFound
}

// validate is a lightweight existence check: HEAD with a short timeout,
// success iff the response is 2xx and declares an image content type. Network
// errors count as failure, not as errors to propagate.
func (r *Resolver) validate(ctx context.Context, candidate string) bool {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, candidate, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false
	}
	return strings.Contains(strings.ToLower(resp.Header.Get("Content-Type")), "image")
}
