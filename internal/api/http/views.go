package httpapi

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gofiber/template/html/v2"

	"github.com/i474232898/weather-widget/internal/widget"
)

//go:embed views/*.html
var viewsFS embed.FS

// NewViews returns the template engine for the widget page.
func NewViews() *html.Engine {
	sub, err := fs.Sub(viewsFS, "views")
	if err != nil {
		panic(err)
	}
	return html.NewFileSystem(http.FS(sub), ".html")
}

// pageView is the data the index template renders.
type pageView struct {
	Page      widget.Page
	City      string
	RootStyle template.CSS
	BodyClass string
}

func newPageView(p widget.Page) pageView {
	var b strings.Builder
	for _, tok := range p.Document.Tokens() {
		b.WriteString(tok.Name)
		b.WriteString(": ")
		b.WriteString(tok.Value)
		b.WriteString("; ")
	}
	return pageView{
		Page: p,
		City: p.City,
		// Tokens come from the static palettes, never from user input.
		RootStyle: template.CSS(strings.TrimSpace(b.String())),
		BodyClass: strings.Join(p.Document.BodyClasses, " "),
	}
}
