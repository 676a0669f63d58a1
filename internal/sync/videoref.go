package sync

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	videoIDPattern  = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
	watchURLPattern = regexp.MustCompile(`(?:youtube\.com/watch\?(?:.*&)?v=|youtu\.be/|youtube\.com/embed/)([A-Za-z0-9_-]{11})`)
)

// NormalizeVideoRef reduces a pasted video reference to the bare
// 11-character identifier the playback sink wants. Accepts the bare
// id, watch URLs, short share URLs, and embed URLs. Input that
// matches nothing comes back unchanged; this sits on a user-input
// path and must never fail.
func NormalizeVideoRef(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return input
	}
	if videoIDPattern.MatchString(trimmed) {
		return trimmed
	}
	if match := watchURLPattern.FindStringSubmatch(trimmed); match != nil {
		return match[1]
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return input
	}
	if v := parsed.Query().Get("v"); v != "" {
		return v
	}
	if segments := strings.Split(strings.Trim(parsed.Path, "/"), "/"); len(segments) > 0 {
		if last := segments[len(segments)-1]; last != "" {
			return last
		}
	}
	return input
}
