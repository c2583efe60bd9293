package recorder

import (
	"context"
	"fmt"
	"time"

	"github.com/lemap/hubwatch/internal/pkg/infrastructure/logging"
	"github.com/lemap/hubwatch/internal/pkg/infrastructure/metrics"
	"github.com/lemap/hubwatch/pkg/types"
)

const DefaultWindow = 600 * time.Second

//go:generate moq -rm -out recorder_mock.go . CounterStore EventLog

type CounterStore interface {
	Increment(ctx context.Context, eventType types.EventType, hub types.Hub, window time.Duration) (int64, error)
}

type EventLog interface {
	Add(ctx context.Context, event types.Event) (types.Event, error)
}

type Recorder interface {
	Record(ctx context.Context, eventType, hub, description string) (int64, error)
}

type recorder struct {
	catalog  types.Catalog
	counters CounterStore
	events   EventLog
	window   time.Duration
}

// New returns a Recorder that counts occurrences within window. events is
// optional, when set every occurrence is also appended to the event log.
func New(catalog types.Catalog, counters CounterStore, events EventLog, window time.Duration) Recorder {
	if window <= 0 {
		window = DefaultWindow
	}

	return &recorder{
		catalog:  catalog.WithDefaults(),
		counters: counters,
		events:   events,
		window:   window,
	}
}

func (r *recorder) Record(ctx context.Context, eventType, hub, description string) (int64, error) {
	et, err := r.catalog.ParseEventType(eventType)
	if err != nil {
		return 0, err
	}

	h, err := r.catalog.ParseHub(hub)
	if err != nil {
		return 0, err
	}

	if r.events != nil {
		_, err = r.events.Add(ctx, types.Event{
			EventType:   et,
			Hub:         h,
			Description: description,
		})
		if err != nil {
			return 0, fmt.Errorf("could not log event: %w", err)
		}
	}

	count, err := r.counters.Increment(ctx, et, h, r.window)
	if err != nil {
		return 0, err
	}

	metrics.IncOccurrence(string(et))

	logger := logging.GetLoggerFromContext(ctx)
	logger.Debug().Str("hub", string(h)).Str("event_type", string(et)).Int64("count", count).Msg("occurrence recorded")

	return count, nil
}
