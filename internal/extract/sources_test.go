package extract

import "testing"

func TestSourcesMarkdownLinksWithTrust(t *testing.T) {
	content := "Roundup of coverage follows the usual pattern.\n" +
		"- 🔴 STATE [TASS](https://tass.ru/article) on the drills\n" +
		"- [Reuters](https://www.reuters.com/world/x) with independent confirmation of the overnight strikes\n" +
		"- 🟡 MED [Al-Monitor](https://al-monitor.com/y) sees a pattern\n" +
		"Background: https://example.org/briefing, plus earlier context"

	sources := Sources(content)
	if len(sources) != 4 {
		t.Fatalf("expected 4 sources, got %d: %v", len(sources), sources)
	}

	want := []Source{
		{URL: "https://tass.ru/article", Name: "tass.ru", Title: "TASS", Trust: TrustState},
		{URL: "https://www.reuters.com/world/x", Name: "reuters.com", Title: "Reuters", Trust: TrustHigh},
		{URL: "https://al-monitor.com/y", Name: "al-monitor.com", Title: "Al-Monitor", Trust: TrustMed},
		{URL: "https://example.org/briefing", Name: "example.org", Title: "", Trust: TrustHigh},
	}
	for i, w := range want {
		if sources[i] != w {
			t.Errorf("source %d = %+v, want %+v", i, sources[i], w)
		}
	}
}

func TestSourcesBareURLSkipsAndTrims(t *testing.T) {
	content := "Wrap (https://paren.example/x) and a list item https://list.example/y] at the end"

	sources := Sources(content)
	if len(sources) != 1 {
		t.Fatalf("expected 1 source, got %d: %v", len(sources), sources)
	}
	if sources[0].URL != "https://list.example/y" {
		t.Errorf("expected delimiter trimmed, got %q", sources[0].URL)
	}
	if sources[0].Name != "list.example" || sources[0].Trust != TrustHigh {
		t.Errorf("unexpected source %+v", sources[0])
	}
}

func TestSourcesMarkdownBeforeBare(t *testing.T) {
	content := "See [analysis](https://think.tank/report) and raw feed https://stream.example/live now"

	sources := Sources(content)
	if len(sources) != 2 {
		t.Fatalf("expected 2 sources, got %d: %v", len(sources), sources)
	}
	if sources[0].Name != "think.tank" || sources[0].Title != "analysis" {
		t.Errorf("expected the markdown link first, got %+v", sources[0])
	}
	if sources[1].Name != "stream.example" || sources[1].Title != "" {
		t.Errorf("expected the bare url second, got %+v", sources[1])
	}
}

func TestSourcesEmpty(t *testing.T) {
	if sources := Sources("No links in this body."); len(sources) != 0 {
		t.Errorf("expected no sources, got %v", sources)
	}
}
