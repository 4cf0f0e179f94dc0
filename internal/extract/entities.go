package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/openclaw/newsroom/internal/gazetteer"
)

// contextRadius is the snippet window either side of the first mention.
const contextRadius = 80

// Entity is one linked gazetteer entity with its mention statistics.
type Entity struct {
	Key     string
	Type    string
	Lat     float64
	Lng     float64
	Count   int
	Context string
}

var controlChars = strings.NewReplacer("\n", " ", "\r", " ", "\t", " ")

// Entities links content against the gazetteer. Each matched canonical key
// yields one entry carrying the word-bounded mention count of the key
// itself (floor 1, so alias-only mentions still register) and a context
// snippet around the first occurrence of any surface form.
func Entities(content string) []Entity {
	spans := gazetteer.FindAll(content)
	if len(spans) == 0 {
		return nil
	}

	var keys []string
	first := make(map[string]gazetteer.Span)
	for _, s := range spans {
		if _, ok := first[s.Key]; !ok {
			first[s.Key] = s
			keys = append(keys, s.Key)
		}
	}

	entities := make([]Entity, 0, len(keys))
	for _, key := range keys {
		place, ok := gazetteer.Lookup(key)
		if !ok {
			continue
		}
		count := gazetteer.CountMentions(content, key)
		if count < 1 {
			count = 1
		}
		span := first[key]
		entities = append(entities, Entity{
			Key:     key,
			Type:    place.Type,
			Lat:     place.Lat,
			Lng:     place.Lng,
			Count:   count,
			Context: snippet(content, span.Start, span.End),
		})
	}
	return entities
}

// snippet cuts a window around [start,end), keeping the cut on rune
// boundaries, with control characters normalized to spaces.
func snippet(content string, start, end int) string {
	lo := start - contextRadius
	if lo < 0 {
		lo = 0
	}
	hi := end + contextRadius
	if hi > len(content) {
		hi = len(content)
	}
	for lo > 0 && !utf8.RuneStart(content[lo]) {
		lo--
	}
	for hi < len(content) && !utf8.RuneStart(content[hi]) {
		hi++
	}
	return strings.TrimSpace(controlChars.Replace(content[lo:hi]))
}
