package render

import "strings"

// categoryMap assigns each known slug its display category and ordering
// rank on the daily page.
var categoryMap = map[string]struct {
	name  string
	order int
}{
	"world":         {"🌍 World Overview", 0},
	"europe":        {"📰 Regional", 1},
	"mideast":       {"📰 Regional", 1},
	"africa":        {"📰 Regional", 1},
	"asia":          {"📰 Regional", 1},
	"americas":      {"📰 Regional", 1},
	"state-media":   {"📰 Regional", 1},
	"tech":          {"💻 Tech", 2},
	"tech-ai":       {"💻 Tech", 2},
	"tech-security": {"💻 Tech", 2},
	"tech-crypto":   {"💻 Tech", 2},
}

var slugLabels = map[string]string{
	"world":         "World Overview",
	"europe":        "Europe",
	"mideast":       "Middle East",
	"africa":        "Africa",
	"asia":          "Asia-Pacific",
	"americas":      "Americas",
	"state-media":   "State Media Watch",
	"tech":          "Tech Overview",
	"tech-ai":       "AI & ML",
	"tech-security": "Cybersecurity",
	"tech-crypto":   "Crypto & Blockchain",
}

// Category returns the display category and ordering rank for a slug.
// Unknown slugs land in the regional group.
func Category(slug string) (string, int) {
	if c, ok := categoryMap[slug]; ok {
		return c.name, c.order
	}
	return "📰 Regional", 1
}

// Label returns the navigation label for a slug, deriving one from the
// slug itself when it is not a known section.
func Label(slug string) string {
	if label, ok := slugLabels[slug]; ok {
		return label
	}
	return titleCase(strings.ReplaceAll(slug, "-", " "))
}
