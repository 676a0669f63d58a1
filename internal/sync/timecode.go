package sync

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	minutesPattern   = regexp.MustCompile(`(\d+)m`)
	secondsPattern   = regexp.MustCompile(`(\d+)s`)
	bareDigitPattern = regexp.MustCompile(`^\d+$`)
)

// ParseTimeCode turns a free-text time code into a second offset for
// video playback. Recognized: "1m30s", "2m", "45s", and a bare
// number of seconds ("45"). Anything else degrades to 0 rather than
// failing; a wrong-but-harmless zero offset beats an error on a
// display path.
//
// When a minutes marker exists, only seconds text after that marker
// counts, so malformed input never double-counts a seconds match
// that produced the minutes digits.
func ParseTimeCode(text string) int {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0
	}
	if bareDigitPattern.MatchString(trimmed) {
		seconds, err := strconv.Atoi(trimmed)
		if err != nil {
			return 0
		}
		return seconds
	}

	if loc := minutesPattern.FindStringSubmatchIndex(trimmed); loc != nil {
		minutes, err := strconv.Atoi(trimmed[loc[2]:loc[3]])
		if err != nil {
			return 0
		}
		total := minutes * 60
		rest := trimmed[loc[1]:]
		if match := secondsPattern.FindStringSubmatch(rest); match != nil {
			if seconds, err := strconv.Atoi(match[1]); err == nil {
				total += seconds
			}
		}
		return total
	}

	if match := secondsPattern.FindStringSubmatch(trimmed); match != nil {
		if seconds, err := strconv.Atoi(match[1]); err == nil {
			return seconds
		}
	}
	return 0
}
