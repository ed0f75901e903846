package httpapi

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/i474232898/weather-widget/internal/logging"
	"github.com/i474232898/weather-widget/internal/metrics"
	"github.com/i474232898/weather-widget/internal/store"
	"github.com/i474232898/weather-widget/internal/weather"
)

var validate = validator.New()

// SessionCookie names the cookie carrying the widget session id.
const SessionCookie = "widget_session"

// Lookuper is the lookup the JSON endpoint serves.
type Lookuper interface {
	Lookup(ctx context.Context, city string) (weather.Report, error)
}

// Dependencies bundles what the routes need.
type Dependencies struct {
	Lookup   Lookuper
	Sessions *store.MemoryStore
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps *Dependencies) {
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-widget",
		})
	})

	// Page routes.
	app.Get("/", func(c *fiber.Ctx) error {
		sess := session(c, deps.Sessions)
		return c.Render("index", newPageView(sess.Widget.Page()))
	})

	app.Post("/lookup", func(c *fiber.Ctx) error {
		sess := session(c, deps.Sessions)
		// The widget keeps the input past this request.
		city := utils.CopyString(c.FormValue("city"))
		// The outcome, including failures, is already on the page.
		_ = sess.Widget.Submit(c.UserContext(), city)
		return c.Redirect("/", fiber.StatusSeeOther)
	})

	app.Post("/theme/toggle", func(c *fiber.Ctx) error {
		sess := session(c, deps.Sessions)
		sess.Widget.ToggleTheme()
		return c.Redirect("/", fiber.StatusSeeOther)
	})

	// JSON API.
	v1 := app.Group("/api/v1")

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		q, err := parseCityQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "city query parameter is required")
		}

		report, err := deps.Lookup.Lookup(c.UserContext(), q.City)
		if err != nil {
			return lookupError(c, q.City, err)
		}

		return c.JSON(currentResponse{
			Report:  report,
			Display: weather.NewDisplay(report),
		})
	})
}

// cityQuery holds query parameters for the lookup endpoint.
type cityQuery struct {
	City string `validate:"required"`
}

func parseCityQuery(c *fiber.Ctx) (cityQuery, error) {
	var q cityQuery

	q.City = strings.TrimSpace(c.Query("city"))

	if err := validate.Struct(q); err != nil {
		return q, err
	}

	return q, nil
}

type currentResponse struct {
	weather.Report
	Display weather.Display `json:"display"`
}

func lookupError(c *fiber.Ctx, city string, err error) error {
	var verr *weather.ValidationError
	switch {
	case errors.As(err, &verr):
		return fiber.NewError(fiber.StatusBadRequest, verr.Error())
	case weather.IsNotFound(err):
		return fiber.NewError(fiber.StatusNotFound, "city not found")
	default:
		logging.FromContext(c.UserContext()).ErrorContext(c.UserContext(), "weather lookup failed",
			"city", city, "error", err)
		return fiber.NewError(fiber.StatusBadGateway, "failed to fetch weather data")
	}
}

// session returns the caller's widget session, starting one when the cookie
// is missing or stale.
func session(c *fiber.Ctx, sessions *store.MemoryStore) *store.Session {
	sess, created := sessions.GetOrCreate(c.Cookies(SessionCookie))
	if created {
		c.Cookie(&fiber.Cookie{
			Name:     SessionCookie,
			Value:    sess.ID,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
	return sess
}
