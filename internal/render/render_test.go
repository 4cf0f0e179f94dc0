package render

import (
	"strings"
	"testing"
)

func TestMarkdownBadges(t *testing.T) {
	html, err := Markdown("Coverage rated 🟢 HIGH with a 🔴STATE outlet cited.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, `<span class="badge badge-high">🟢 HIGH</span>`) {
		t.Errorf("expected high badge in %q", html)
	}
	if !strings.Contains(html, `<span class="badge badge-state">🔴 STATE</span>`) {
		t.Errorf("expected state badge in %q", html)
	}
}

func TestMarkdownLinksOpenInNewTab(t *testing.T) {
	html, err := Markdown("See [Reuters](https://reuters.com/a) for details.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, `<a target="_blank" rel="noopener" href="https://reuters.com/a"`) {
		t.Errorf("expected rewritten link in %q", html)
	}
}

func TestMarkdownStructure(t *testing.T) {
	html, err := Markdown("# Morning Brief\n\nFirst paragraph.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, "<h1") || !strings.Contains(html, "<p>") {
		t.Errorf("expected heading and paragraph in %q", html)
	}
}

func TestHeadline(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"h1", "# Morning Brief\n\nBody", "Morning Brief"},
		{"h2 only", "intro\n## Section One\nBody", "Section One"},
		{"h1 beats later h2", "# Top\n## Sub", "Top"},
		{"prose fallback", "---\n*updated daily*\nTensions rise in the region.\n", "Tensions rise in the region."},
		{"empty", "\n\n", "Report"},
	}
	for _, tt := range tests {
		if got := Headline(tt.text); got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.name, tt.want, got)
		}
	}
}

func TestHeadlineProseClamp(t *testing.T) {
	long := strings.Repeat("x", 200)
	got := Headline(long)
	if len(got) != 120 {
		t.Errorf("expected 120-char clamp, got %d", len(got))
	}
}

func TestHeadlineH2BeforeH1Line(t *testing.T) {
	// The first heading of either level wins, in document order.
	got := Headline("## Early Section\n# Late Title\n")
	if got != "Early Section" {
		t.Errorf("expected first heading, got %q", got)
	}
}

func TestDetectTrust(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"no markers", "plain text", "high"},
		{"state wins tie", "🔴 STATE and 🟢 HIGH", "state"},
		{"high outnumbers med", "🟡 MED 🟢 HIGH 🟢 HIGH", "high"},
		{"med beats single high", "🟡 MED 🟡 MED 🟢 HIGH", "med"},
		{"state outnumbered", "🔴 STATE 🟡 MED 🟡 MED", "med"},
	}
	for _, tt := range tests {
		if got := DetectTrust(tt.text); got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.name, tt.want, got)
		}
	}
}

func TestGeoMarkers(t *testing.T) {
	text := "# Daily Brief\n\nIntro mentions France.\n\n## Mideast Watch\n\nIran talks stall. 🔴 STATE\n\n## Europe\n\nFrance again, Germany and Seoul too.\n"
	markers := GeoMarkers(text, "World Overview")
	if len(markers) != 4 {
		t.Fatalf("expected 4 markers, got %d: %+v", len(markers), markers)
	}

	if markers[0].Country != "France" || markers[0].Headline != "Daily Brief" || markers[0].Trust != "high" {
		t.Errorf("unexpected first marker: %+v", markers[0])
	}
	if markers[1].Country != "Iran" || markers[1].Headline != "Mideast Watch" || markers[1].Trust != "state" {
		t.Errorf("unexpected second marker: %+v", markers[1])
	}
	// France already claimed by the intro; the Europe section contributes
	// only the new countries.
	if markers[2].Country != "Germany" || markers[2].Headline != "Europe" {
		t.Errorf("unexpected third marker: %+v", markers[2])
	}
	if markers[3].Country != "South Korea" {
		t.Errorf("expected Seoul to resolve to South Korea, got %+v", markers[3])
	}
	for _, m := range markers {
		if m.Label != "World Overview" {
			t.Errorf("expected label on every marker, got %+v", m)
		}
	}
}

func TestGeoMarkersNoSections(t *testing.T) {
	markers := GeoMarkers("# Brief\n\nCalm day in Norway.\n", "Europe")
	if len(markers) != 1 {
		t.Fatalf("expected 1 marker, got %d", len(markers))
	}
	if markers[0].Country != "Norway" || markers[0].Headline != "Brief" {
		t.Errorf("unexpected marker: %+v", markers[0])
	}
}

func TestGeoMarkersEmpty(t *testing.T) {
	if markers := GeoMarkers("# Brief\n\nNothing located here.\n", "World"); len(markers) != 0 {
		t.Errorf("expected no markers, got %+v", markers)
	}
}

func TestAggregateCountries(t *testing.T) {
	markers := []Marker{
		{Lat: 48.9, Lng: 2.3, Trust: "high", Headline: "Morning", Label: "Europe", Country: "France"},
		{Lat: 35.7, Lng: 51.4, Trust: "med", Headline: "Watch", Label: "Middle East", Country: "Iran"},
		{Lat: 48.9, Lng: 2.3, Trust: "state", Headline: "Evening", Label: "World Overview", Country: "France"},
	}

	grouped := AggregateCountries(markers)
	if len(grouped) != 2 {
		t.Fatalf("expected 2 countries, got %d", len(grouped))
	}
	if grouped[0].Country != "France" || grouped[1].Country != "Iran" {
		t.Errorf("expected first-seen order, got %+v", grouped)
	}
	if grouped[0].Trust != "state" {
		t.Errorf("expected worst trust to win, got %q", grouped[0].Trust)
	}
	if len(grouped[0].Headlines) != 2 {
		t.Fatalf("expected 2 headlines for France, got %d", len(grouped[0].Headlines))
	}
	if grouped[0].Headlines[1].Section != "World Overview" || grouped[0].Headlines[1].Trust != "state" {
		t.Errorf("unexpected headline entry: %+v", grouped[0].Headlines[1])
	}
	if grouped[1].Trust != "med" {
		t.Errorf("expected med for Iran, got %q", grouped[1].Trust)
	}
}

func TestCategory(t *testing.T) {
	if cat, order := Category("world"); cat != "🌍 World Overview" || order != 0 {
		t.Errorf("unexpected world category: %q, %d", cat, order)
	}
	if cat, order := Category("tech-crypto"); cat != "💻 Tech" || order != 2 {
		t.Errorf("unexpected tech category: %q, %d", cat, order)
	}
	if cat, order := Category("special-report"); cat != "📰 Regional" || order != 1 {
		t.Errorf("unexpected fallback category: %q, %d", cat, order)
	}
}

func TestLabel(t *testing.T) {
	if got := Label("tech-ai"); got != "AI & ML" {
		t.Errorf("expected known label, got %q", got)
	}
	if got := Label("special-report"); got != "Special Report" {
		t.Errorf("expected derived label, got %q", got)
	}
}
