// Package urlx classifies and normalizes incoming URLs. Normalized hrefs are
// the cache keys for the rest of the service, so normalization is intentionally
// lossy: query ordering, trailing slashes, and fragments are left as the URL
// parser produces them.
package urlx

import (
	"net/url"
	"path"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var videoPathPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)youtube\.com/watch`),
	regexp.MustCompile(`(?i)youtu\.be/`),
	regexp.MustCompile(`(?i)youtube\.com/shorts/`),
	regexp.MustCompile(`(?i)youtube\.com/embed/`),
	regexp.MustCompile(`(?i)youtube\.com/v/`),
}

var channelPathPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)youtube\.com/channel/`),
	regexp.MustCompile(`(?i)youtube\.com/c/`),
	regexp.MustCompile(`(?i)youtube\.com/user/`),
	regexp.MustCompile(`(?i)youtube\.com/@`),
}

// WithScheme prepends https:// when the string has no scheme, so bare
// "example.com/page" inputs parse like browser address-bar entries.
func WithScheme(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return trimmed
	}
	return "https://" + trimmed
}

// IsValid reports whether the string parses as an http(s) URL after scheme
// inference. Fails closed on any parse error.
func IsValid(raw string) bool {
	u, err := url.Parse(WithScheme(raw))
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	host := u.Hostname()
	if host == "" {
		return false
	}
	// The dot requirement is what makes a bare word like "justaword" fail to
	// validate after scheme inference; localhost is the one dotless host that
	// is a real target.
	return strings.Contains(host, ".") || strings.EqualFold(host, "localhost")
}

// IsVideoURL matches known video-platform URL shapes, channels included.
func IsVideoURL(raw string) bool {
	if IsChannelURL(raw) {
		return true
	}
	for _, p := range videoPathPatterns {
		if p.MatchString(raw) {
			return true
		}
	}
	return false
}

// IsChannelURL matches only channel/user/handle path shapes.
func IsChannelURL(raw string) bool {
	for _, p := range channelPathPatterns {
		if p.MatchString(raw) {
			return true
		}
	}
	return false
}

// Normalize returns the lower-cased canonical href used as a cache key.
// Two URLs differing only by case or an omitted scheme collapse to one entry.
func Normalize(raw string) string {
	u, err := url.Parse(WithScheme(raw))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(raw))
	}
	return strings.ToLower(u.String())
}

// Domain returns the registrable host with a leading www. stripped. On parse
// failure it returns a truncated copy of the input as a display value.
func Domain(raw string) string {
	u, err := url.Parse(WithScheme(raw))
	if err != nil || u.Hostname() == "" {
		display := strings.TrimSpace(raw)
		if len(display) > 22 {
			return display[:22] + "..."
		}
		return display
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

// Origin returns scheme://host for the URL, or empty on parse failure.
func Origin(raw string) string {
	u, err := url.Parse(WithScheme(raw))
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

var titleCaser = cases.Title(language.English)

// TitleFromURL derives a display title from the URL alone: the last path
// segment, dehyphenated and title-cased, or the domain when the path is root.
func TitleFromURL(raw string) string {
	u, err := url.Parse(WithScheme(raw))
	if err != nil {
		return Domain(raw)
	}
	segment := path.Base(strings.Trim(u.Path, "/"))
	if segment == "" || segment == "." || segment == "/" {
		return Domain(raw)
	}
	if ext := path.Ext(segment); len(ext) > 1 && len(ext) <= 5 {
		segment = strings.TrimSuffix(segment, ext)
	}
	segment = strings.NewReplacer("-", " ", "_", " ").Replace(segment)
	segment = strings.Join(strings.Fields(segment), " ")
	if segment == "" {
		return Domain(raw)
	}
	return titleCaser.String(segment)
}
