package extract

import (
	"crypto/md5"
	"fmt"
	"regexp"
	"strings"
)

var titleRE = regexp.MustCompile(`(?m)^#\s+(.+)$`)

// Title returns the first top-level heading in content, falling back to
// "<date> <slug>" when none exists.
func Title(content, date, slug string) string {
	if m := titleRE.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1])
	}
	return date + " " + slug
}

// WordCount counts whitespace-separated words.
func WordCount(content string) int {
	return len(strings.Fields(content))
}

// Fingerprint returns the md5 hex digest of content. Matching fingerprints
// across ingestion passes mean the file has not changed.
func Fingerprint(content string) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(content)))
}
