package sources

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-lookup/internal/weather"
)

// HTTPSource fetches the weather document with a GET request.
type HTTPSource struct {
	url     string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewHTTPSource creates a source for url. Each Load is a single attempt;
// repeated failures (e.g. from the drift watcher) open the breaker.
func NewHTTPSource(client *http.Client, url string) *HTTPSource {
	return &HTTPSource{
		url: url,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: BackoffConfig{MaxRetries: 0},
		},
		circuit: newBreaker("weather-document"),
	}
}

func (s *HTTPSource) Name() string {
	return s.url
}

func (s *HTTPSource) Load(ctx context.Context) (*weather.Dataset, error) {
	buildRequest := func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		return req, nil
	}

	resp, err := doRequestWithResilience(ctx, s.httpCfg, s.circuit, buildRequest)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", s.url, err)
	}
	defer resp.Body.Close()

	return weather.ParseDocument(resp.Body)
}
