package theme

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"
)

// Name identifies one of the widget's palettes.
type Name string

const (
	Light Name = "light"
	Dark  Name = "dark"
)

// Theme bundles the style tokens and the body class for one palette.
type Theme struct {
	Name      Name
	Vars      map[string]string
	BodyClass string
}

// Token is a single style token and its value.
type Token struct {
	Name  string
	Value string
}

// ErrUnknownTheme is returned when a requested theme is not known.
var ErrUnknownTheme = errors.New("unknown theme")

var palettes = map[Name]Theme{
	Light: {
		Name: Light,
		Vars: map[string]string{
			"--app-bg":      "#f8f9fa",
			"--app-card-bg": "#ffffff",
			"--app-text":    "#212529",
			"--app-muted":   "#6c757d",
		},
		BodyClass: "bg-light",
	},
	Dark: {
		Name: Dark,
		Vars: map[string]string{
			"--app-bg":      "#020617",
			"--app-card-bg": "#111827",
			"--app-text":    "#f9fafb",
			"--app-muted":   "#9ca3af",
		},
		BodyClass: "bg-dark",
	},
}

// bodyClasses lists every class Apply may put on the body.
var bodyClasses = [...]string{"bg-light", "bg-dark"}

// Lookup returns a copy of the named theme.
func Lookup(name Name) (Theme, error) {
	t, ok := palettes[name]
	if !ok {
		return Theme{}, fmt.Errorf("%w: %s", ErrUnknownTheme, name)
	}
	return cloneTheme(t), nil
}

// MustLookup is Lookup for the built-in names.
func MustLookup(name Name) Theme {
	t, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return t
}

// Tokens returns the theme's style tokens ordered by name.
func (t Theme) Tokens() []Token {
	return sortedTokens(t.Vars)
}

// Document is the part of a page a theme writes to: style tokens on the
// root scope and the class list of the body.
type Document struct {
	RootVars    map[string]string
	BodyClasses []string
}

// Apply sets every style token of t on the document root and swaps the
// known body classes for t's class. Applying the same theme twice has no
// further effect.
func Apply(doc *Document, t Theme) {
	if doc.RootVars == nil {
		doc.RootVars = make(map[string]string, len(t.Vars))
	}
	for k, v := range t.Vars {
		doc.RootVars[k] = v
	}

	classes := doc.BodyClasses[:0]
	for _, c := range doc.BodyClasses {
		if !slices.Contains(bodyClasses[:], c) {
			classes = append(classes, c)
		}
	}
	doc.BodyClasses = append(classes, t.BodyClass)
}

// Tokens returns the document's root style tokens ordered by name.
func (d Document) Tokens() []Token {
	return sortedTokens(d.RootVars)
}

// HasClass reports whether the body carries class c.
func (d Document) HasClass(c string) bool {
	return slices.Contains(d.BodyClasses, c)
}

// Clone returns a deep copy of d.
func (d Document) Clone() Document {
	out := Document{
		RootVars:    make(map[string]string, len(d.RootVars)),
		BodyClasses: slices.Clone(d.BodyClasses),
	}
	for k, v := range d.RootVars {
		out.RootVars[k] = v
	}
	return out
}

// Switcher owns the current theme of one page. The zero value is not
// usable; create it with NewSwitcher.
type Switcher struct {
	mu      sync.Mutex
	current Name
	doc     Document
}

// NewSwitcher returns a switcher with the light theme applied.
func NewSwitcher() *Switcher {
	s := &Switcher{current: Light}
	Apply(&s.doc, palettes[Light])
	return s
}

// Toggle flips between light and dark, applies the result and returns it.
func (s *Switcher) Toggle() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := Dark
	if s.current == Dark {
		next = Light
	}
	s.current = next
	t := palettes[next]
	Apply(&s.doc, t)
	return cloneTheme(t)
}

// Current returns the applied theme's name.
func (s *Switcher) Current() Name {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Label describes the action the toggle control performs next.
func (s *Switcher) Label() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ToggleLabel(s.current)
}

// Document returns a copy of the themed document.
func (s *Switcher) Document() Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// ToggleLabel returns the toggle text shown while theme n is applied.
func ToggleLabel(n Name) string {
	if n == Dark {
		return "מצב יום"
	}
	return "מצב לילה"
}

func cloneTheme(in Theme) Theme {
	out := in
	out.Vars = make(map[string]string, len(in.Vars))
	for k, v := range in.Vars {
		out.Vars[k] = v
	}
	return out
}

func sortedTokens(vars map[string]string) []Token {
	out := make([]Token, 0, len(vars))
	for k, v := range vars {
		out = append(out, Token{Name: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
