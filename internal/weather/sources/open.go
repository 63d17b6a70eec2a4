package sources

import (
	"net/http"
	"strings"

	"github.com/i474232898/weather-lookup/internal/common"
	"github.com/i474232898/weather-lookup/internal/weather"
)

// Open picks the source implementation for a DATA_SOURCE location:
// http(s) URLs, sqlite:// paths, or a plain file path.
func Open(location string, client *http.Client) weather.Source {
	switch {
	case common.HasAnyPrefix(location, "http://", "https://"):
		return NewHTTPSource(client, location)
	case strings.HasPrefix(location, SQLiteScheme):
		return NewSQLiteSource(strings.TrimPrefix(location, SQLiteScheme))
	default:
		return NewFileSource(location)
	}
}
