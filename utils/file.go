package utils

import (
	"regexp"
	"strings"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)

// SanitizeFilename lowercases a name and replaces every non-alphanumeric
// character with an underscore, so titles are safe as storage path segments.
func SanitizeFilename(name string) string {
	return strings.ToLower(nonAlphanumeric.ReplaceAllString(name, "_"))
}
