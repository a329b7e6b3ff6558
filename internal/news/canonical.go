package news

import (
	"net/url"
	"strings"
)

// Publisher suffixes stripped from titles before comparison. Matched at the
// end of the string only, first hit wins.
var titleSuffixes = []string{
	" - The Verge",
	" | TechCrunch",
	" | Ars Technica",
	" | Wired",
	" | Engadget",
}

// CanonicalURL reduces a URL to scheme://host/path for duplicate detection.
// Query parameters and fragments carry tracking junk (utm_* and friends), so
// they are dropped. On parse failure the input is returned unchanged; a bad
// URL must never fail the pipeline.
func CanonicalURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return raw
	}
	return u.Scheme + "://" + u.Host + u.Path
}

// CanonicalTitle normalizes a title for duplicate detection: strip a known
// publisher suffix if present, lowercase, trim. The original title is left
// alone for display.
func CanonicalTitle(title string) string {
	for _, suffix := range titleSuffixes {
		if strings.HasSuffix(title, suffix) {
			title = title[:len(title)-len(suffix)]
			break
		}
	}
	return strings.TrimSpace(strings.ToLower(title))
}
