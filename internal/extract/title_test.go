package extract

import "testing"

func TestTitleFromHeading(t *testing.T) {
	content := "# Morning Brief\n\nEverything else.\n## Section\n"
	if got := Title(content, "2024-01-01", "world"); got != "Morning Brief" {
		t.Errorf("expected heading title, got %q", got)
	}
}

func TestTitleIgnoresSubheadings(t *testing.T) {
	content := "## Not the title\n# Actual Title\nbody"
	if got := Title(content, "2024-01-01", "world"); got != "Actual Title" {
		t.Errorf("expected first h1, got %q", got)
	}
}

func TestTitleFallback(t *testing.T) {
	if got := Title("no heading at all", "2024-01-01", "mideast"); got != "2024-01-01 mideast" {
		t.Errorf("expected date+slug fallback, got %q", got)
	}
}

func TestWordCount(t *testing.T) {
	if got := WordCount("one two  three\nfour\t five"); got != 5 {
		t.Errorf("expected 5 words, got %d", got)
	}
	if got := WordCount(""); got != 0 {
		t.Errorf("expected 0 words, got %d", got)
	}
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint("Iran announced new sanctions.")
	b := Fingerprint("Iran announced new sanctions.")
	c := Fingerprint("Iran announced new sanctions!")
	if a != b {
		t.Error("expected identical content to fingerprint identically")
	}
	if a == c {
		t.Error("expected changed content to change the fingerprint")
	}
	if len(a) != 32 {
		t.Errorf("expected 32 hex chars, got %d", len(a))
	}
	if got := Fingerprint(""); got != "d41d8cd98f00b204e9800998ecf8427e" {
		t.Errorf("unexpected digest for empty content: %s", got)
	}
}
