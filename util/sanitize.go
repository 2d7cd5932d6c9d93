package util

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

const fallbackFilename = "upload"

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SanitizeString trims whitespace and removes control characters from s.
func SanitizeString(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// SanitizeFilename reduces a client-supplied filename to a safe base name.
// Directory parts are dropped and anything outside [A-Za-z0-9._-] becomes
// an underscore. The result never starts with a dot.
func SanitizeFilename(name string) string {
	name = SanitizeString(name)
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	name = strings.TrimLeft(name, ".")
	if name == "" || name == "_" {
		return fallbackFilename
	}
	return name
}
