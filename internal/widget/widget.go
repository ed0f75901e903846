package widget

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/i474232898/weather-widget/internal/logging"
	"github.com/i474232898/weather-widget/internal/metrics"
	"github.com/i474232898/weather-widget/internal/theme"
	"github.com/i474232898/weather-widget/internal/weather"
)

// ErrSuperseded is returned by Submit when a newer submission started before
// this one finished; its outcome was not rendered.
var ErrSuperseded = errors.New("submission superseded by a newer one")

// Lookuper resolves a city into a weather report.
type Lookuper interface {
	Lookup(ctx context.Context, city string) (weather.Report, error)
}

// Widget runs the lookup workflow and the theme toggle for one page.
type Widget struct {
	mu         sync.Mutex
	lookup     Lookuper
	presenter  Presenter
	themes     *theme.Switcher
	page       Page
	generation uint64
}

// New returns a widget in the idle state with the light theme applied.
func New(lookup Lookuper, presenter Presenter) *Widget {
	if presenter == nil {
		presenter = Discard
	}
	w := &Widget{
		lookup:    lookup,
		presenter: presenter,
		themes:    theme.NewSwitcher(),
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.syncTheme()
	w.presenter.Render(w.page.clone())
	return w
}

// Page returns a copy of the current page.
func (w *Widget) Page() Page {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.page.clone()
}

// Submit runs the lookup workflow for city. Every step is rendered unless a
// later Submit has started, in which case the remaining steps are dropped
// and ErrSuperseded is returned.
func (w *Widget) Submit(ctx context.Context, city string) error {
	city = strings.TrimSpace(city)
	gen := w.begin(city)

	if city == "" {
		w.update(gen, func(p *Page) {
			p.Message = Message{Text: MsgEnterCity, Level: LevelWarning}
		})
		return &weather.ValidationError{Field: "city", Reason: "must not be empty"}
	}

	if !w.update(gen, func(p *Page) {
		p.Message = Message{Text: MsgLoading, Level: LevelInfo}
	}) {
		return ErrSuperseded
	}

	report, err := w.lookup.Lookup(ctx, city)
	if err != nil {
		logLookupFailure(ctx, city, err)
		if !w.update(gen, func(p *Page) {
			p.Message = Message{Text: MsgFailed, Level: LevelDanger}
			p.ResultVisible = false
		}) {
			return ErrSuperseded
		}
		return err
	}

	display := weather.NewDisplay(report)
	if !w.update(gen, func(p *Page) {
		p.Location = display.Location
		p.Temperature = display.Temperature
		p.Description = display.Description
		p.Extra = display.Extra
		p.ResultVisible = true
		p.Message = Message{}
	}) {
		return ErrSuperseded
	}
	return nil
}

// ToggleTheme switches between light and dark and returns the new page.
func (w *Widget) ToggleTheme() Page {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.themes.Toggle()
	w.syncTheme()
	p := w.page.clone()
	w.presenter.Render(p)
	return p
}

// begin starts a new generation: clears the status, hides the result.
func (w *Widget) begin(city string) uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.generation++
	w.page.City = city
	w.page.Message = Message{}
	w.page.ResultVisible = false
	w.presenter.Render(w.page.clone())
	return w.generation
}

// update applies fn and renders, provided gen is still the latest
// generation. It reports whether the update was applied.
func (w *Widget) update(gen uint64, fn func(*Page)) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if gen != w.generation {
		metrics.StaleRendersDropped.Inc()
		return false
	}
	fn(&w.page)
	w.presenter.Render(w.page.clone())
	return true
}

func (w *Widget) syncTheme() {
	w.page.Theme = w.themes.Current()
	w.page.Document = w.themes.Document()
	w.page.ToggleLabel = w.themes.Label()
}

func logLookupFailure(ctx context.Context, city string, err error) {
	logger := logging.FromContext(ctx)

	var le *weather.LookupError
	if errors.As(err, &le) {
		logger.ErrorContext(ctx, "weather lookup failed",
			"city", city, "kind", le.Kind.String(), "stage", string(le.Stage), "error", le.Err)
		return
	}
	logger.ErrorContext(ctx, "weather lookup failed", "city", city, "error", err)
}
