// Package youtube is the video-platform adapter: a parallel pipeline that
// produces the same record shape as generic extraction, from oEmbed responses
// for videos and scraped markup for channels.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dtnitsch/link-preview-api/models"
	"github.com/dtnitsch/link-preview-api/pkg/fetcher"
	"github.com/dtnitsch/link-preview-api/pkg/urlx"
)

// ErrNoVideoID means a video-shaped URL yielded no extractable video ID.
var ErrNoVideoID = errors.New("could not extract video id")

const (
	defaultOEmbedBase  = "https://www.youtube.com/oembed"
	thumbnailURLFormat = "https://i.ytimg.com/vi/%s/hqdefault.jpg"
)

// videoIDPatterns cover the URL shapes YouTube serves videos under, tried in
// order. Standard IDs are 11 characters, but the format is not contractual,
// so the capture takes any plausible ID token rather than rejecting short or
// long ones.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`[?&]v=([A-Za-z0-9_-]{5,})`),
	regexp.MustCompile(`(?i)youtu\.be/([A-Za-z0-9_-]{5,})`),
	regexp.MustCompile(`(?i)/shorts/([A-Za-z0-9_-]{5,})`),
	regexp.MustCompile(`(?i)/embed/([A-Za-z0-9_-]{5,})`),
	regexp.MustCompile(`(?i)/v/([A-Za-z0-9_-]{5,})`),
}

// channelNameSelectors are YouTube-specific DOM fallbacks for the channel
// name when meta tags are missing.
var channelNameSelectors = []string{
	"#channel-name",
	".ytd-channel-name",
	"#text.ytd-channel-name",
}

type oembedResponse struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// Adapter resolves YouTube video and channel URLs into metadata records.
type Adapter struct {
	fetcher *fetcher.Fetcher
	// oEmbed endpoint, overridable in tests.
	OEmbedBase string
}

func NewAdapter(f *fetcher.Fetcher) *Adapter {
	return &Adapter{fetcher: f, OEmbedBase: defaultOEmbedBase}
}

// VideoID extracts the platform video ID from a URL.
func VideoID(rawURL string) (string, bool) {
	for _, p := range videoIDPatterns {
		if m := p.FindStringSubmatch(rawURL); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// Resolve routes to the channel or video branch and returns a complete
// record. Only a missing video ID or a channel fetch failure surface as
// errors; an oEmbed failure degrades to a synthetic record.
func (a *Adapter) Resolve(ctx context.Context, rawURL string) (*models.MetadataRecord, error) {
	if urlx.IsChannelURL(rawURL) {
		return a.resolveChannel(ctx, rawURL)
	}
	return a.resolveVideo(ctx, rawURL)
}

func (a *Adapter) resolveVideo(ctx context.Context, rawURL string) (*models.MetadataRecord, error) {
	id, ok := VideoID(rawURL)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoVideoID, rawURL)
	}

	isShort := strings.Contains(strings.ToLower(rawURL), "/shorts/")
	record := &models.MetadataRecord{
		Domain:           "youtube.com",
		Type:             models.TypeYouTube,
		ContentType:      models.ContentTypeVideo,
		ImageAspectRatio: models.AspectWide,
		Author:           []string{},
	}
	if isShort {
		record.Type = models.TypeYouTubeShort
		record.ImageAspectRatio = models.AspectTall
	}

	var resp oembedResponse
	endpoint := a.OEmbedBase + "?url=" + url.QueryEscape(rawURL) + "&format=json"
	if err := a.fetcher.GetJSON(ctx, endpoint, &resp); err != nil {
		// Degrade to a synthetic record built from the ID alone. oEmbed being
		// down must never fail the request past this point.
		record.Title = "YouTube Video"
		record.Image = fmt.Sprintf(thumbnailURLFormat, id)
		return record, nil
	}

	record.Title = resp.Title
	if record.Title == "" {
		record.Title = "YouTube Video"
	}
	record.Image = resp.ThumbnailURL
	if record.Image == "" {
		record.Image = fmt.Sprintf(thumbnailURLFormat, id)
	}
	if name := strings.TrimSpace(resp.AuthorName); name != "" {
		record.Author = []string{name}
	}
	return record, nil
}

func (a *Adapter) resolveChannel(ctx context.Context, rawURL string) (*models.MetadataRecord, error) {
	doc, err := a.fetcher.GetDocument(ctx, urlx.WithScheme(rawURL))
	if err != nil {
		return nil, err
	}

	name := channelName(doc)
	if name == "" {
		name = urlx.TitleFromURL(rawURL)
	}

	return &models.MetadataRecord{
		Title:            name,
		Domain:           "youtube.com",
		Image:            channelAvatar(doc),
		ImageAspectRatio: models.AspectSquare,
		Type:             models.TypeYouTubeChannel,
		ContentType:      models.ContentTypeChannel,
		Author:           []string{},
	}, nil
}

// channelName chains og:title, the title meta tag, and platform DOM
// selectors, trimming the " - YouTube" suffix the page title carries.
func channelName(doc *goquery.Document) string {
	if v, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok && strings.TrimSpace(v) != "" {
		return cleanChannelName(v)
	}
	if v, ok := doc.Find(`meta[name="title"]`).First().Attr("content"); ok && strings.TrimSpace(v) != "" {
		return cleanChannelName(v)
	}
	for _, sel := range channelNameSelectors {
		if v := strings.TrimSpace(doc.Find(sel).First().Text()); v != "" {
			return cleanChannelName(v)
		}
	}
	return ""
}

func cleanChannelName(name string) string {
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(name), "- YouTube"))
}

// channelAvatar chains og:image and the legacy image_src link.
func channelAvatar(doc *goquery.Document) string {
	if v, ok := doc.Find(`meta[property="og:image"]`).First().Attr("content"); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	if v, ok := doc.Find(`link[rel="image_src"]`).First().Attr("href"); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return ""
}
