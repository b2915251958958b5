// Package models defines the wire-level data structures shared across the service.
package models

// Coarse content classifications used for downstream rendering decisions.
const (
	ContentTypeWebsite = "website"
	ContentTypeArticle = "article"
	ContentTypeVideo   = "video"
	ContentTypeChannel = "channel"
)

// Fine-grained type tags.
const (
	TypeWebsite        = "website"
	TypeArticle        = "article"
	TypeDocs           = "docs"
	TypeGitHub         = "github"
	TypeYouTube        = "youtube"
	TypeYouTubeShort   = "youtube-short"
	TypeYouTubeChannel = "youtube-channel"
)

// Image aspect ratio hints. Shorts render tall, avatars square, everything
// else defaults to widescreen.
const (
	AspectWide   = 16.0 / 9.0
	AspectTall   = 9.0 / 16.0
	AspectSquare = 1.0
)

// MetadataRecord is the normalized link-preview payload built once per request.
// Records are never mutated after assembly; the caching layer sets Cached on a
// copy when serving a hit.
type MetadataRecord struct {
	Title            string   `json:"title"`
	Domain           string   `json:"domain"`
	Image            string   `json:"image,omitempty"`
	ImageAspectRatio float64  `json:"imageAspectRatio"`
	Description      string   `json:"description,omitempty"`
	Excerpt          string   `json:"excerpt,omitempty"`
	Author           []string `json:"author"`
	Type             string   `json:"type"`
	ContentType      string   `json:"contentType"`
	Favicon          string   `json:"favicon,omitempty"`
	Logo             string   `json:"logo,omitempty"`
	Language         string   `json:"language,omitempty"`
	Cached           bool     `json:"cached,omitempty"`
}

// Clone returns a shallow copy with its own author slice, so a cached record
// can be annotated without mutating the stored value.
func (r *MetadataRecord) Clone() *MetadataRecord {
	out := *r
	if r.Author != nil {
		out.Author = append([]string(nil), r.Author...)
	}
	return &out
}
