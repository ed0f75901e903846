package widget

import (
	"log/slog"

	"github.com/i474232898/weather-widget/internal/theme"
)

// Level is the severity of a status message.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelDanger  Level = "danger"
)

// User-facing status texts.
const (
	MsgEnterCity = "נא להזין שם עיר"
	MsgLoading   = "טוען נתוני מזג אוויר..."
	MsgFailed    = "אירעה שגיאה בעת הבאת נתוני מזג האוויר. נסה שוב בעוד רגע."
)

// Message is the status line. An empty Text means no message is shown.
type Message struct {
	Text  string
	Level Level
}

// Visible reports whether the message is shown.
func (m Message) Visible() bool { return m.Text != "" }

// Page is everything the widget shows: the result slots, the status line
// and the themed document.
type Page struct {
	City string // last submitted input, trimmed

	Location    string
	Temperature string
	Description string
	Extra       string

	ResultVisible bool
	Message       Message

	Theme       theme.Name
	Document    theme.Document
	ToggleLabel string
}

func (p Page) clone() Page {
	out := p
	out.Document = p.Document.Clone()
	return out
}

// Presenter receives every state the widget moves through. Render is called
// with the widget's lock held and must not call back into the widget.
type Presenter interface {
	Render(Page)
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(Page)

func (f PresenterFunc) Render(p Page) { f(p) }

// Discard is a Presenter that ignores every render.
var Discard Presenter = PresenterFunc(func(Page) {})

// LogPresenter logs every render at debug level.
func LogPresenter(logger *slog.Logger) Presenter {
	return PresenterFunc(func(p Page) {
		logger.Debug("widget render",
			"theme", string(p.Theme),
			"result_visible", p.ResultVisible,
			"message_level", string(p.Message.Level),
			"location", p.Location,
		)
	})
}
