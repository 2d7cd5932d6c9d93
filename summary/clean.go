package summary

import (
	"regexp"
	"strings"
	"unicode"
)

// DefaultFillerWords start lines that carry no content.
var DefaultFillerWords = []string{"um", "uh", "like"}

// speakerPrefix matches the labels alignment.Render puts at line start.
var speakerPrefix = regexp.MustCompile(`^\s*(?:Speaker \d+|Unknown):`)

// Clean removes speaker prefixes and filler lines. A leading "Speaker N:"
// or "Unknown:" label is stripped, other colons are left alone. Lines whose
// first word is a filler word are dropped and the survivors are joined with
// single spaces.
func Clean(text string, fillers []string) string {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(speakerPrefix.ReplaceAllString(line, ""))
		if line == "" || startsWithFiller(line, fillers) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, " ")
}

func startsWithFiller(line string, fillers []string) bool {
	first, _, _ := strings.Cut(line, " ")
	first = strings.TrimRightFunc(first, func(r rune) bool {
		return unicode.IsPunct(r)
	})
	for _, f := range fillers {
		if strings.EqualFold(first, f) {
			return true
		}
	}
	return false
}

var bulletMarkers = []string{"•", "-", "*"}

// ParseKeyPoints keeps the bulleted lines of a generator response, in
// order, with the marker and surrounding whitespace removed.
func ParseKeyPoints(response string) []string {
	points := []string{}
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		for _, m := range bulletMarkers {
			if rest, ok := strings.CutPrefix(line, m); ok {
				if item := strings.TrimSpace(rest); item != "" {
					points = append(points, item)
				}
				break
			}
		}
	}
	return points
}
