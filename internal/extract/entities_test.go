package extract

import (
	"strings"
	"testing"
)

func TestEntitiesCountsAndContext(t *testing.T) {
	content := "# Mideast Brief\n\nIran announced new sanctions. Iran denied the reports.\nTehran officials briefed the press."

	entities := Entities(content)
	if len(entities) != 1 {
		t.Fatalf("expected 1 entity, got %d: %v", len(entities), entities)
	}

	e := entities[0]
	if e.Key != "iran" {
		t.Errorf("expected key iran, got %q", e.Key)
	}
	if e.Count != 2 {
		t.Errorf("expected 2 mentions, got %d", e.Count)
	}
	if e.Type != "country" {
		t.Errorf("expected type country, got %q", e.Type)
	}
	if !strings.Contains(e.Context, "Iran announced") {
		t.Errorf("expected context around first mention, got %q", e.Context)
	}
	if strings.ContainsAny(e.Context, "\n\r\t") {
		t.Errorf("expected control characters normalized, got %q", e.Context)
	}
}

func TestEntitiesAliasOnlyCountFloor(t *testing.T) {
	entities := Entities("Tehran remains quiet this morning.")
	if len(entities) != 1 {
		t.Fatalf("expected 1 entity, got %d", len(entities))
	}
	if entities[0].Key != "iran" {
		t.Errorf("expected alias to resolve to iran, got %q", entities[0].Key)
	}
	if entities[0].Count != 1 {
		t.Errorf("expected count floored to 1, got %d", entities[0].Count)
	}
	if !strings.Contains(entities[0].Context, "Tehran") {
		t.Errorf("expected context around the alias, got %q", entities[0].Context)
	}
}

func TestEntitiesFirstMentionOrder(t *testing.T) {
	entities := Entities("Russia and China signed the accord. Moscow confirmed today.")
	if len(entities) != 2 {
		t.Fatalf("expected 2 entities, got %d", len(entities))
	}
	if entities[0].Key != "russia" || entities[1].Key != "china" {
		t.Errorf("expected [russia china], got [%s %s]", entities[0].Key, entities[1].Key)
	}
	if entities[0].Count != 1 {
		t.Errorf("expected russia count 1, got %d", entities[0].Count)
	}
}

func TestEntitiesNone(t *testing.T) {
	if entities := Entities("Quarterly earnings were flat."); len(entities) != 0 {
		t.Errorf("expected no entities, got %v", entities)
	}
}
