package weather

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
)

// State is the load state of a Service.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
	StateError
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Service loads the dataset once and answers lookups against it.
//
// The dataset is published once under mu and never changes afterwards, so
// readers share it without further locking. StateError is terminal.
type Service struct {
	source Source
	now    func() time.Time
	loc    *time.Location

	mu      sync.RWMutex
	state   State
	dataset *Dataset
	loadErr error
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the wall clock used for display timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLocation sets the time zone display timestamps are rendered in.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.loc = loc }
}

// NewService creates a Service reading from source.
func NewService(source Source, opts ...Option) *Service {
	s := &Service{
		source: source,
		now:    time.Now,
		loc:    time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load performs the single dataset load. Only the first call reaches the
// source; later calls return ErrLoadAttempted. A failure is returned as
// *DataLoadError and leaves the service in StateError for good.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateUninitialized {
		s.mu.Unlock()
		return ErrLoadAttempted
	}
	s.state = StateLoading
	s.mu.Unlock()

	log.Printf("INFO: loading weather data from %s", s.source.Name())

	ds, err := s.source.Load(ctx)
	if err == nil && ds == nil {
		err = errors.New("source returned no dataset")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.state = StateError
		s.loadErr = &DataLoadError{Source: s.source.Name(), Err: err}
		log.Printf("ERROR: %v", s.loadErr)
		return s.loadErr
	}

	s.dataset = ds
	s.state = StateReady
	log.Printf("INFO: loaded %d cities from %s", ds.Len(), s.source.Name())
	return nil
}

// State returns the current load state.
func (s *Service) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dataset returns the loaded dataset, or nil before StateReady.
func (s *Service) Dataset() *Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset
}

// LoadError returns the *DataLoadError of a failed load, if any.
func (s *Service) LoadError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

// SourceName names the configured source.
func (s *Service) SourceName() string {
	return s.source.Name()
}

func (s *Service) snapshot() (*Dataset, State) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset, s.state
}

// Lookup resolves raw against the loaded dataset. After a failed load it
// reports KindUnavailable where Lookup would report KindNotReady.
func (s *Service) Lookup(raw string) (Record, error) {
	ds, state := s.snapshot()
	rec, err := Lookup(raw, ds)
	if err != nil && state == StateError && errors.Is(err, ErrNotReady) {
		return Record{}, &LookupError{Kind: KindUnavailable}
	}
	return rec, err
}

// Cities lists the quick-selection entries in dataset order.
func (s *Service) Cities() ([]CityEntry, error) {
	ds, state := s.snapshot()
	if ds == nil {
		if state == StateError {
			return nil, &LookupError{Kind: KindUnavailable}
		}
		return nil, &LookupError{Kind: KindNotReady}
	}
	return ds.Cities(), nil
}

// Payload derives the display payload for rec at the current time.
func (s *Service) Payload(rec Record) DisplayPayload {
	return NewDisplayPayload(rec, s.now(), s.loc)
}

// Search handles a typed query submission.
func (s *Service) Search(sess *Session, raw string, p Presenter) error {
	rec, err := s.Lookup(raw)
	return s.present(sess, rec, err, p)
}

// Select handles a click on a quick-selection entry. Listed keys are tried
// verbatim first, so a key that is not lowercase still resolves.
func (s *Service) Select(sess *Session, key string, p Presenter) error {
	if ds := s.Dataset(); ds != nil {
		if rec, ok := ds.Get(key); ok {
			return s.present(sess, rec, nil, p)
		}
	}
	rec, err := s.Lookup(key)
	return s.present(sess, rec, err, p)
}

// present forwards the outcome to p. A failure leaves sess untouched so the
// previously shown record stays visible.
func (s *Service) present(sess *Session, rec Record, err error, p Presenter) error {
	if err != nil {
		var le *LookupError
		if errors.As(err, &le) {
			p.ShowError(le.Kind, le.Error())
		} else {
			p.ShowError(KindUnavailable, err.Error())
		}
		return err
	}

	if sess != nil {
		sess.set(rec)
	}
	p.ShowWeather(s.Payload(rec))
	return nil
}
