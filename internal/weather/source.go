package weather

import "context"

// Source abstracts where the weather document lives (file, HTTP, SQLite).
type Source interface {
	Name() string
	Load(ctx context.Context) (*Dataset, error)
}

// Presenter receives the outcome of a lookup and owns all rendering.
// Exactly one of its methods is called per lookup.
type Presenter interface {
	ShowWeather(p DisplayPayload)
	ShowError(kind ErrorKind, message string)
}
