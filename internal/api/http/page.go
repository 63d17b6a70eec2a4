package httpapi

import (
	"bytes"
	"embed"
	"html/template"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-lookup/internal/weather"
)

//go:embed templates/index.html
var templateFS embed.FS

// City keys may contain "/", which the href context leaves as is.
var pageTemplate = template.Must(template.New("index.html").
	Funcs(template.FuncMap{"pathEscape": url.PathEscape}).
	ParseFS(templateFS, "templates/index.html"))

const loadingMessage = "Loading weather data..."

// pageView is the HTML presenter. It collects the outcome of one lookup and
// the surrounding widget state, then renders the page.
type pageView struct {
	Query         string
	Cities        []weather.CityEntry
	Payload       *weather.DisplayPayload
	ErrorKind     weather.ErrorKind
	ErrorMessage  string
	StatusMessage string
}

func (v *pageView) ShowWeather(p weather.DisplayPayload) {
	v.Payload = &p
}

func (v *pageView) ShowError(kind weather.ErrorKind, message string) {
	v.ErrorKind = kind
	v.ErrorMessage = message
}

// renderPage fills in what the lookup did not decide (city list, status
// banner, the session's current record) and writes the HTML response.
func renderPage(c *fiber.Ctx, service *weather.Service, sess *weather.Session, v *pageView) error {
	// One message per page: a lookup error already explains the state.
	if v.ErrorMessage == "" {
		switch service.State() {
		case weather.StateUninitialized, weather.StateLoading:
			v.StatusMessage = loadingMessage
		case weather.StateError:
			v.StatusMessage = weather.LoadFailureMessage
		}
	}

	if cities, err := service.Cities(); err == nil {
		v.Cities = cities
	}

	// A failed lookup leaves the previously shown record on screen.
	if v.Payload == nil {
		if rec, ok := sess.Current(); ok {
			p := service.Payload(rec)
			v.Payload = &p
		}
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, v); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render page")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}
