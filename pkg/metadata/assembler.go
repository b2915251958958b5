// Package metadata orchestrates the extraction pipeline and assembles the
// final record. Extraction is best-effort: missing data degrades a field to
// its zero value, and only transport-level failures surface as errors — with
// a fallback record always available for the caller.
package metadata

import (
	"context"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/dtnitsch/link-preview-api/models"
	"github.com/dtnitsch/link-preview-api/pkg/extractors"
	"github.com/dtnitsch/link-preview-api/pkg/favicon"
	"github.com/dtnitsch/link-preview-api/pkg/fetcher"
	"github.com/dtnitsch/link-preview-api/pkg/urlx"
	"github.com/dtnitsch/link-preview-api/pkg/youtube"
)

// articlePromotionThreshold is the excerpt length beyond which a page is
// reclassified as an article. The promotion is one-way.
const articlePromotionThreshold = 200

// Assembler runs the extraction pipeline for a URL.
type Assembler struct {
	fetcher  *fetcher.Fetcher
	favicons *favicon.Resolver
	youtube  *youtube.Adapter
	log      *logrus.Logger
}

func NewAssembler(f *fetcher.Fetcher, fav *favicon.Resolver, yt *youtube.Adapter, log *logrus.Logger) *Assembler {
	return &Assembler{fetcher: f, favicons: fav, youtube: yt, log: log}
}

// Extract classifies the URL, routes it through the video or generic
// pipeline, and returns the assembled record. On error the caller should
// serve Fallback instead.
func (a *Assembler) Extract(ctx context.Context, rawURL string) (*models.MetadataRecord, error) {
	if urlx.IsVideoURL(rawURL) {
		return a.youtube.Resolve(ctx, rawURL)
	}
	return a.extractGeneric(ctx, rawURL)
}

func (a *Assembler) extractGeneric(ctx context.Context, rawURL string) (*models.MetadataRecord, error) {
	pageURL := urlx.WithScheme(rawURL)
	doc, err := a.fetcher.GetDocument(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, err
	}

	// Extractors are independent; none share mutable state, so order among
	// them is irrelevant.
	pageType := extractors.PageType(doc, pageURL)
	excerpt := extractors.Excerpt(doc, pageURL)
	description := extractors.Description(doc)

	record := &models.MetadataRecord{
		Title:            extractors.Title(doc, pageURL),
		Domain:           urlx.Domain(pageURL),
		Image:            extractors.Image(doc, base),
		ImageAspectRatio: models.AspectWide,
		Description:      description,
		Excerpt:          excerpt,
		Author:           extractors.Authors(doc),
		Type:             pageType,
		ContentType:      extractors.CoarseType(pageType),
	}
	if record.Author == nil {
		record.Author = []string{}
	}

	// Cross-field policy: a long excerpt promotes the page to article.
	if record.ContentType != models.ContentTypeArticle && len(excerpt) > articlePromotionThreshold {
		record.ContentType = models.ContentTypeArticle
	}
	if record.ContentType == models.ContentTypeArticle {
		record.Logo = extractors.Logo(doc, base)
	}

	if sample := excerpt; sample != "" {
		record.Language = extractors.Language(sample)
	} else {
		record.Language = extractors.Language(description + " " + record.Title)
	}

	if fav, err := a.favicons.Resolve(ctx, pageURL, doc); err == nil {
		record.Favicon = fav
	} else {
		a.log.WithField("url", pageURL).Debug("no favicon validated")
	}

	return record, nil
}

// Fallback builds the degraded record served when extraction fails entirely.
// Its favicon is a guess at origin + /favicon.ico and is the one favicon the
// service returns without live validation.
func (a *Assembler) Fallback(rawURL string) *models.MetadataRecord {
	record := &models.MetadataRecord{
		Title:            urlx.TitleFromURL(rawURL),
		Domain:           urlx.Domain(rawURL),
		ImageAspectRatio: models.AspectSquare,
		Type:             models.TypeWebsite,
		ContentType:      models.ContentTypeWebsite,
		Author:           []string{},
	}
	if origin := urlx.Origin(rawURL); origin != "" {
		record.Favicon = origin + "/favicon.ico"
	}
	return record
}
