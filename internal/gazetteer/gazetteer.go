package gazetteer

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TypeCountry is the entity type of every current gazetteer entry.
const TypeCountry = "country"

// Place holds the display attributes of one canonical entry.
type Place struct {
	Type string
	Lat  float64
	Lng  float64
}

// Span is one surface-form match in a text. Start and End are byte offsets
// into the scanned text; Key is the canonical key the surface form
// resolves to.
type Span struct {
	Key   string
	Start int
	End   int
}

// surface maps every matchable pattern (canonical keys plus aliases) to
// its canonical key.
var surface = buildSurface()

// patternsByFirst groups patterns by their first byte, longest first, so
// the scanner tries "saudi arabia" before "saudi" at the same position.
var patternsByFirst = buildPatterns()

func buildSurface() map[string]string {
	m := make(map[string]string, len(places)+len(aliases))
	for key := range places {
		m[key] = key
	}
	for alias, key := range aliases {
		m[alias] = key
	}
	return m
}

func buildPatterns() map[byte][]string {
	byFirst := make(map[byte][]string)
	for pattern := range surface {
		byFirst[pattern[0]] = append(byFirst[pattern[0]], pattern)
	}
	for _, list := range byFirst {
		sort.Slice(list, func(i, j int) bool { return len(list[i]) > len(list[j]) })
	}
	return byFirst
}

// Lookup returns the entry for a canonical key.
func Lookup(key string) (Place, bool) {
	p, ok := places[key]
	return p, ok
}

// Keys returns all canonical keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(places))
	for key := range places {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// FindAll scans text for surface forms and returns the matches in document
// order. Matching is case-insensitive and whole-word: a candidate is only
// accepted when flanked by non-word runes, so "india" never matches inside
// "indiana". Overlapping candidates at the same position resolve to the
// longest pattern, and a match claims its span, so "saudi arabia" yields
// one span rather than a second hit on "saudi". Offsets are byte offsets
// into text.
func FindAll(text string) []Span {
	lower := lowerASCII(text)
	var spans []Span
	for i := 0; i < len(lower); {
		if !boundaryBefore(lower, i) {
			i++
			continue
		}
		candidates, ok := patternsByFirst[lower[i]]
		if !ok {
			i++
			continue
		}
		matched := false
		for _, pattern := range candidates {
			if strings.HasPrefix(lower[i:], pattern) && boundaryAfter(lower, i+len(pattern)) {
				spans = append(spans, Span{Key: surface[pattern], Start: i, End: i + len(pattern)})
				i += len(pattern)
				matched = true
				break
			}
		}
		if !matched {
			i++
		}
	}
	return spans
}

// Match returns the distinct canonical keys mentioned in text, ordered by
// first mention.
func Match(text string) []string {
	var keys []string
	seen := make(map[string]bool)
	for _, s := range FindAll(text) {
		if !seen[s.Key] {
			seen[s.Key] = true
			keys = append(keys, s.Key)
		}
	}
	return keys
}

// CountMentions counts the word-bounded occurrences of the canonical key
// itself, independent of aliases and of claiming by longer patterns.
func CountMentions(text, key string) int {
	lower := lowerASCII(text)
	count := 0
	for i := 0; i < len(lower); {
		j := strings.Index(lower[i:], key)
		if j < 0 {
			break
		}
		start := i + j
		end := start + len(key)
		if boundaryBefore(lower, start) && boundaryAfter(lower, end) {
			count++
			i = end
		} else {
			i = start + 1
		}
	}
	return count
}

// lowerASCII lowers only ASCII letters so byte offsets in the result stay
// valid in the input (full Unicode lowering can change byte length, and
// every pattern is plain ASCII anyway).
func lowerASCII(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, s)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !isWordRune(r)
}

func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !isWordRune(r)
}
