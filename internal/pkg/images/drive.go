// internal/pkg/images/drive.go
package images

import (
	"fmt"
	"regexp"
	"strings"
)

// Image cells hold comma/semicolon separated tokens: bare Drive file ids,
// assorted Drive URL shapes, or plain http(s) URLs. Everything resolvable is
// turned into a Drive thumbnail URL; plain URLs pass through untouched.

var (
	bareIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{20,}$`)

	driveURLPatterns = []*regexp.Regexp{
		regexp.MustCompile(`/d/([a-zA-Z0-9_-]{20,})`),
		regexp.MustCompile(`[?&]id=([a-zA-Z0-9_-]{20,})`),
		regexp.MustCompile(`/uc\?export=view&id=([a-zA-Z0-9_-]{20,})`),
		regexp.MustCompile(`/open\?id=([a-zA-Z0-9_-]{20,})`),
		regexp.MustCompile(`drive\.googleusercontent\.com/.*?/([a-zA-Z0-9_-]{20,})`),
	}

	looseIDPattern = regexp.MustCompile(`([a-zA-Z0-9_-]{20,})`)

	resolvedHostPattern = regexp.MustCompile(`(?i)drive\.google\.com/thumbnail\?|googleusercontent`)
	urlPattern          = regexp.MustCompile(`(?i)^https?://`)
)

// ExtractDriveID pulls a Drive file id out of a token, which may be a bare id
// or any of the common Drive URL shapes. Returns "" when nothing matches.
func ExtractDriveID(token string) string {
	s := strings.TrimSpace(token)
	if s == "" {
		return ""
	}
	if bareIDPattern.MatchString(s) {
		return s
	}
	for _, re := range driveURLPatterns {
		if m := re.FindStringSubmatch(s); m != nil {
			return m[1]
		}
	}
	if m := looseIDPattern.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return ""
}

// ThumbnailURL returns the Drive thumbnail endpoint for a file id
func ThumbnailURL(fileID string, width int) string {
	return fmt.Sprintf("https://drive.google.com/thumbnail?id=%s&sz=w%d", fileID, width)
}

// Resolve turns one image token into a servable URL. Already-resolved Drive
// thumbnail and googleusercontent URLs pass through as-is; other URLs are
// mined for a Drive id and fall back to the URL itself; bare tokens resolve
// via their Drive id or drop to "".
func Resolve(token string, width int) string {
	s := strings.TrimSpace(token)
	if s == "" {
		return ""
	}
	if urlPattern.MatchString(s) {
		if resolvedHostPattern.MatchString(s) {
			return s
		}
		if id := ExtractDriveID(s); id != "" {
			return ThumbnailURL(id, width)
		}
		return s
	}
	if id := ExtractDriveID(s); id != "" {
		return ThumbnailURL(id, width)
	}
	return ""
}

// ResolveAll resolves a list of image tokens, dropping the unresolvable ones
// and preserving order.
func ResolveAll(tokens []string, width int) []string {
	var out []string
	for _, t := range tokens {
		if src := Resolve(t, width); src != "" {
			out = append(out, src)
		}
	}
	return out
}
