package theme

import (
	"errors"
	"maps"
	"slices"
	"testing"
)

func TestLookupImmutability(t *testing.T) {
	t.Parallel()

	first, err := Lookup(Dark)
	if err != nil {
		t.Fatalf("Lookup() unexpected error: %v", err)
	}
	first.Vars["--app-bg"] = "#000000"

	second, err := Lookup(Dark)
	if err != nil {
		t.Fatalf("Lookup() unexpected error: %v", err)
	}
	if second.Vars["--app-bg"] != "#020617" {
		t.Fatalf("expected immutable palette, got %q", second.Vars["--app-bg"])
	}
}

func TestLookupUnknownTheme(t *testing.T) {
	t.Parallel()

	_, err := Lookup(Name("sepia"))
	if !errors.Is(err, ErrUnknownTheme) {
		t.Fatalf("expected ErrUnknownTheme, got %v", err)
	}
}

func TestApply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		start       Document
		theme       Name
		wantClasses []string
	}{
		{name: "empty document", theme: Light, wantClasses: []string{"bg-light"}},
		{
			name:        "swaps known class",
			start:       Document{BodyClasses: []string{"bg-light"}},
			theme:       Dark,
			wantClasses: []string{"bg-dark"},
		},
		{
			name:        "keeps unrelated classes",
			start:       Document{BodyClasses: []string{"rtl", "bg-dark", "compact"}},
			theme:       Light,
			wantClasses: []string{"rtl", "compact", "bg-light"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			doc := tt.start.Clone()
			th := MustLookup(tt.theme)
			Apply(&doc, th)

			if !slices.Equal(doc.BodyClasses, tt.wantClasses) {
				t.Fatalf("body classes = %v, want %v", doc.BodyClasses, tt.wantClasses)
			}
			if !maps.Equal(doc.RootVars, th.Vars) {
				t.Fatalf("root vars = %v, want %v", doc.RootVars, th.Vars)
			}
		})
	}
}

func TestApplyIdempotent(t *testing.T) {
	t.Parallel()

	var once, twice Document
	Apply(&once, MustLookup(Dark))
	Apply(&twice, MustLookup(Dark))
	Apply(&twice, MustLookup(Dark))

	if !slices.Equal(once.BodyClasses, twice.BodyClasses) || !maps.Equal(once.RootVars, twice.RootVars) {
		t.Fatalf("re-applying changed the document: once=%+v twice=%+v", once, twice)
	}
}

func TestSwitcherStartsLight(t *testing.T) {
	t.Parallel()

	s := NewSwitcher()
	if s.Current() != Light {
		t.Fatalf("Current() = %s, want light", s.Current())
	}
	if !s.Document().HasClass("bg-light") {
		t.Fatalf("expected bg-light on body, got %v", s.Document().BodyClasses)
	}
	if s.Label() != "מצב לילה" {
		t.Fatalf("Label() = %q", s.Label())
	}
}

func TestSwitcherToggle(t *testing.T) {
	t.Parallel()

	s := NewSwitcher()
	got := s.Toggle()
	if got.Name != Dark {
		t.Fatalf("Toggle() = %s, want dark", got.Name)
	}
	doc := s.Document()
	if !doc.HasClass("bg-dark") || doc.HasClass("bg-light") {
		t.Fatalf("unexpected body classes after toggle: %v", doc.BodyClasses)
	}
	if doc.RootVars["--app-card-bg"] != "#111827" {
		t.Fatalf("--app-card-bg = %q", doc.RootVars["--app-card-bg"])
	}
	if s.Label() != "מצב יום" {
		t.Fatalf("Label() = %q, want the day-mode action", s.Label())
	}
}

func TestSwitcherRoundTrip(t *testing.T) {
	t.Parallel()

	s := NewSwitcher()
	before := s.Document()

	s.Toggle()
	s.Toggle()

	after := s.Document()
	if !slices.Equal(before.BodyClasses, after.BodyClasses) {
		t.Fatalf("body classes %v, want %v", after.BodyClasses, before.BodyClasses)
	}
	if !maps.Equal(before.RootVars, after.RootVars) {
		t.Fatalf("root vars %v, want %v", after.RootVars, before.RootVars)
	}
	if s.Current() != Light {
		t.Fatalf("Current() = %s after round trip", s.Current())
	}
}

func TestDocumentTokensSorted(t *testing.T) {
	t.Parallel()

	var doc Document
	Apply(&doc, MustLookup(Light))
	tokens := doc.Tokens()
	names := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		names = append(names, tok.Name)
	}
	want := []string{"--app-bg", "--app-card-bg", "--app-muted", "--app-text"}
	if !slices.Equal(names, want) {
		t.Fatalf("token order = %v, want %v", names, want)
	}
}
