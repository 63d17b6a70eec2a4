package httpapi

import (
	"errors"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-lookup/internal/store"
	"github.com/i474232898/weather-lookup/internal/weather"
)

// SessionCookie carries the browser session id.
const SessionCookie = "wl_session"

var validate = validator.New()

// RegisterRoutes wires the widget pages and the JSON API into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service, sessions *store.MemoryStore) {
	app.Get("/", func(c *fiber.Ctx) error {
		sess := sessionFor(c, sessions)
		return renderPage(c, service, sess, &pageView{})
	})

	app.Get("/search", func(c *fiber.Ctx) error {
		sess := sessionFor(c, sessions)
		query := c.Query("city")

		view := &pageView{Query: query}
		_ = service.Search(sess, query, view)
		return renderPage(c, service, sess, view)
	})

	app.Get("/city/:key", func(c *fiber.Ctx) error {
		sess := sessionFor(c, sessions)
		key, err := url.PathUnescape(c.Params("key"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid city key")
		}

		// Selecting from the list clears the text input.
		view := &pageView{}
		_ = service.Select(sess, key, view)
		return renderPage(c, service, sess, view)
	})

	v1 := app.Group("/api/v1")

	v1.Get("/cities", func(c *fiber.Ctx) error {
		cities, err := service.Cities()
		if err != nil {
			return writeLookupError(c, err)
		}
		return c.JSON(cities)
	})

	v1.Get("/weather", func(c *fiber.Ctx) error {
		q := weatherQuery{City: c.Query("city")}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		p := &jsonPresenter{}
		if err := service.Search(nil, q.City, p); err != nil {
			return writeLookupError(c, err)
		}
		return c.JSON(p.payload)
	})

	v1.Get("/status", func(c *fiber.Ctx) error {
		resp := fiber.Map{
			"state":  service.State().String(),
			"source": service.SourceName(),
		}
		if ds := service.Dataset(); ds != nil {
			resp["cities"] = ds.Len()
		}
		if service.State() == weather.StateError {
			resp["message"] = weather.LoadFailureMessage
		}
		return c.JSON(resp)
	})
}

// weatherQuery holds query parameters for the weather endpoint.
// An empty city is left to the lookup, which reports it as an empty query.
type weatherQuery struct {
	City string `validate:"max=100"`
}

// jsonPresenter captures the payload of a successful API lookup.
type jsonPresenter struct {
	payload weather.DisplayPayload
}

func (p *jsonPresenter) ShowWeather(d weather.DisplayPayload) { p.payload = d }

// ShowError is a no-op; the handler turns the returned error into the response.
func (p *jsonPresenter) ShowError(weather.ErrorKind, string) {}

func writeLookupError(c *fiber.Ctx, err error) error {
	var le *weather.LookupError
	if !errors.As(err, &le) {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to look up weather data")
	}
	return c.Status(statusFor(le.Kind)).JSON(fiber.Map{
		"error":   true,
		"kind":    le.Kind,
		"message": le.Error(),
	})
}

func statusFor(kind weather.ErrorKind) int {
	switch kind {
	case weather.KindEmptyQuery:
		return fiber.StatusBadRequest
	case weather.KindNotFound:
		return fiber.StatusNotFound
	case weather.KindNotReady, weather.KindUnavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// sessionFor returns the caller's session, issuing a new cookie when the
// request carries no live one.
func sessionFor(c *fiber.Ctx, sessions *store.MemoryStore) *weather.Session {
	id, sess, created := sessions.GetOrCreate(c.Cookies(SessionCookie))
	if created {
		c.Cookie(&fiber.Cookie{
			Name:     SessionCookie,
			Value:    id,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
	return sess
}
