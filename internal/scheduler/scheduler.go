package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/weather-lookup/internal/weather"
)

// DriftStatus is the outcome of one source check.
type DriftStatus string

const (
	DriftUnchanged   DriftStatus = "unchanged"
	DriftChanged     DriftStatus = "changed"
	DriftUnreachable DriftStatus = "unreachable"
	DriftSkipped     DriftStatus = "skipped"
)

// Watcher periodically re-reads the data source and reports when it no
// longer matches the dataset being served. It never touches the service:
// the served dataset stays as loaded until the process restarts.
type Watcher struct {
	scheduler *gocron.Scheduler
	service   *weather.Service
	source    weather.Source
	interval  time.Duration
	timeout   time.Duration

	mu   sync.Mutex
	last DriftStatus
}

// New creates a new Watcher.
func New(service *weather.Service, source weather.Source, interval, timeout time.Duration) *Watcher {
	s := gocron.NewScheduler(time.UTC)
	return &Watcher{
		scheduler: s,
		service:   service,
		source:    source,
		interval:  interval,
		timeout:   timeout,
	}
}

// Start schedules the check and starts the underlying scheduler.
// The first check runs one interval after start.
func (w *Watcher) Start() error {
	if w.interval <= 0 {
		log.Println("watcher: interval not set; source drift checks disabled")
		return nil
	}

	_, err := w.scheduler.Every(w.interval).WaitForSchedule().Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
		defer cancel()
		w.Check(ctx)
	})
	if err != nil {
		return err
	}

	w.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future checks.
func (w *Watcher) Stop() {
	if w.scheduler != nil {
		w.scheduler.Stop()
	}
}

// Check compares the source content with the served dataset once.
func (w *Watcher) Check(ctx context.Context) DriftStatus {
	status := w.check(ctx)

	w.mu.Lock()
	w.last = status
	w.mu.Unlock()
	return status
}

// Last returns the status of the most recent check, or "" before the first.
func (w *Watcher) Last() DriftStatus {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.last
}

func (w *Watcher) check(ctx context.Context) DriftStatus {
	served := w.service.Dataset()
	if served == nil {
		return DriftSkipped
	}

	current, err := w.source.Load(ctx)
	if err != nil {
		log.Printf("WARN: watcher: source %s unreachable: %v", w.source.Name(), err)
		return DriftUnreachable
	}

	if current.Fingerprint() != served.Fingerprint() {
		log.Printf("WARN: watcher: source %s changed since startup (%d cities now, %d served); restart to apply",
			w.source.Name(), current.Len(), served.Len())
		return DriftChanged
	}
	return DriftUnchanged
}
