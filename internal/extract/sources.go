package extract

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Trust ratings for cited sources.
const (
	TrustHigh  = "HIGH"
	TrustMed   = "MED"
	TrustState = "STATE"
)

// trustWindow is how far past a link the trust markers are looked for.
const trustWindow = 50

// Source is one citation extracted from report content.
type Source struct {
	URL   string
	Name  string
	Title string
	Trust string
}

var (
	markdownLinkRE = regexp.MustCompile(`\[([^\]]+)\]\((https?://[^)]+)\)`)
	bareURLRE      = regexp.MustCompile(`https?://\S+`)
)

// Sources extracts citations from content. Markdown links are captured
// first, with a trust rating read from the line they sit on; bare URLs
// follow with the default rating. A bare candidate directly preceded by
// "(" belongs to a markdown link already captured and is skipped.
func Sources(content string) []Source {
	var sources []Source

	for _, m := range markdownLinkRE.FindAllStringSubmatchIndex(content, -1) {
		title := content[m[2]:m[3]]
		rawURL := content[m[4]:m[5]]
		if src, ok := newSource(rawURL, title, trustAround(content, m[0], m[1])); ok {
			sources = append(sources, src)
		}
	}

	for _, m := range bareURLRE.FindAllStringIndex(content, -1) {
		if m[0] > 0 && content[m[0]-1] == '(' {
			continue
		}
		rawURL := content[m[0]:m[1]]
		if i := strings.IndexAny(rawURL, "),]"); i >= 0 {
			rawURL = rawURL[:i]
		}
		if src, ok := newSource(rawURL, "", TrustHigh); ok {
			sources = append(sources, src)
		}
	}

	return sources
}

func newSource(rawURL, title, trust string) (Source, bool) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return Source{}, false
	}
	return Source{
		URL:   rawURL,
		Name:  strings.TrimPrefix(u.Host, "www."),
		Title: title,
		Trust: trust,
	}, true
}

// trustAround classifies a link by scanning from the start of its line to
// a short window past its end for explicit markers.
func trustAround(content string, start, end int) string {
	lineStart := strings.LastIndex(content[:start], "\n") + 1
	stop := end + trustWindow
	if stop > len(content) {
		stop = len(content)
	}
	for stop < len(content) && !utf8.RuneStart(content[stop]) {
		stop++
	}
	window := content[lineStart:stop]
	switch {
	case strings.Contains(window, "🔴") || strings.Contains(window, "STATE"):
		return TrustState
	case strings.Contains(window, "🟡") || strings.Contains(window, "MED"):
		return TrustMed
	default:
		return TrustHigh
	}
}
