package ingest

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	nonAlnumRegex     = regexp.MustCompile(`[^a-z0-9]+`)
	dashCollapseRegex = regexp.MustCompile(`-{2,}`)
)

// MaxSlugLength bounds slugs synthesized from article titles
const MaxSlugLength = 50

// Slugify lowercases a title and reduces it to [a-z0-9-], truncated
// to MaxSlugLength without a trailing dash
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = nonAlnumRegex.ReplaceAllString(slug, "-")
	slug = dashCollapseRegex.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > MaxSlugLength {
		slug = strings.TrimRight(slug[:MaxSlugLength], "-")
	}
	return slug
}

// SynthesizeExternalID builds a deterministic external id for payloads
// that arrive without one: {source}-{unix_ms}-{slugified title}.
// The source tag is shortened to its first domain label, so
// "string.com" articles synthesize ids like "string-1712345678901-foo".
func SynthesizeExternalID(source, title string, now time.Time) string {
	prefix := source
	if i := strings.IndexByte(source, '.'); i > 0 {
		prefix = source[:i]
	}
	return fmt.Sprintf("%s-%d-%s", prefix, now.UnixMilli(), Slugify(title))
}

// timestamp layouts accepted from external senders, tried in order
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime parses an external timestamp string, returning nil when
// the value is absent or unparseable rather than failing the article
func ParseTime(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	return nil
}
