package render

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/openclaw/newsroom/internal/gazetteer"
)

// Marker places one report section's country mention on the map.
type Marker struct {
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Trust    string  `json:"trust"`
	Headline string  `json:"headline"`
	Label    string  `json:"label"`
	Country  string  `json:"country"`
}

// CountryHeadline is one headline listed under a country on the map.
type CountryHeadline struct {
	Title   string `json:"title"`
	Section string `json:"section"`
	Trust   string `json:"trust"`
}

// CountryMarkers aggregates every marker for one country.
type CountryMarkers struct {
	Lat       float64           `json:"lat"`
	Lng       float64           `json:"lng"`
	Country   string            `json:"country"`
	Trust     string            `json:"trust"`
	Headlines []CountryHeadline `json:"headlines"`
}

// Headline picks the report's display headline: the first H1 or H2, then
// the first line of prose, then "Report".
func Headline(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") || strings.HasPrefix(line, "## ") {
			return strings.TrimSpace(strings.TrimLeft(line, "# "))
		}
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "---") && !strings.HasPrefix(line, "*") {
			return clampRunes(line, 120)
		}
	}
	return "Report"
}

// DetectTrust returns the dominant trust rating of a text block. State
// markers win ties, then med, defaulting to high.
func DetectTrust(text string) string {
	high := len(badgeHighRE.FindAllString(text, -1))
	med := len(badgeMedRE.FindAllString(text, -1))
	state := len(badgeStateRE.FindAllString(text, -1))
	if state > 0 && state >= high && state >= med {
		return "state"
	}
	if med > 0 && med >= high {
		return "med"
	}
	return "high"
}

// GeoMarkers extracts one map marker per country the report mentions. The
// report is scanned section by section, so a marker carries the headline
// and trust rating of the section where its country first appears.
func GeoMarkers(text, label string) []Marker {
	headline := Headline(text)

	var markers []Marker
	seen := make(map[string]bool)

	for _, section := range splitSections(text) {
		sectionHeadline := headline
		firstLine := strings.TrimSpace(section)
		if i := strings.IndexByte(firstLine, '\n'); i >= 0 {
			firstLine = firstLine[:i]
		}
		firstLine = strings.TrimSpace(firstLine)
		if strings.HasPrefix(firstLine, "## ") {
			sectionHeadline = strings.TrimSpace(strings.TrimLeft(firstLine, "# "))
		}

		trust := DetectTrust(section)

		for _, key := range gazetteer.Match(section) {
			if seen[key] {
				continue
			}
			seen[key] = true
			place, ok := gazetteer.Lookup(key)
			if !ok {
				continue
			}
			markers = append(markers, Marker{
				Lat:      place.Lat,
				Lng:      place.Lng,
				Trust:    trust,
				Headline: clampRunes(sectionHeadline, 150),
				Label:    label,
				Country:  titleCase(key),
			})
		}
	}
	return markers
}

// AggregateCountries groups markers by country for the map view, keeping
// first-seen order. A country's trust is the worst across its markers:
// state over med over high.
func AggregateCountries(markers []Marker) []CountryMarkers {
	index := make(map[string]int)
	var out []CountryMarkers

	for _, m := range markers {
		i, ok := index[m.Country]
		if !ok {
			i = len(out)
			index[m.Country] = i
			out = append(out, CountryMarkers{
				Lat:     m.Lat,
				Lng:     m.Lng,
				Country: m.Country,
				Trust:   m.Trust,
			})
		} else {
			cur := out[i].Trust
			switch {
			case m.Trust == "state" || cur == "state":
				out[i].Trust = "state"
			case m.Trust == "med" || cur == "med":
				out[i].Trust = "med"
			}
		}
		out[i].Headlines = append(out[i].Headlines, CountryHeadline{
			Title:   m.Headline,
			Section: m.Label,
			Trust:   m.Trust,
		})
	}
	return out
}

// splitSections cuts the report before every H2 heading line.
func splitSections(text string) []string {
	var sections []string
	start := 0
	for i := 0; i+1 < len(text); i++ {
		if text[i] == '\n' && strings.HasPrefix(text[i+1:], "## ") {
			sections = append(sections, text[start:i])
			start = i + 1
		}
	}
	return append(sections, text[start:])
}

func clampRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func titleCase(s string) string {
	rs := []rune(s)
	prevLetter := false
	for i, r := range rs {
		if unicode.IsLetter(r) {
			if !prevLetter {
				rs[i] = unicode.ToUpper(r)
			}
			prevLetter = true
		} else {
			prevLetter = false
		}
	}
	return string(rs)
}
