package recorder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lemap/hubwatch/pkg/types"
	"github.com/matryer/is"
)

func TestRecordIncrementsWithWindow(t *testing.T) {
	is, ctx, counters, events := testSetup(t)

	r := New(types.DefaultCatalog(), counters, events, 0)

	n, err := r.Record(ctx, "ORDER_DELAYED", "Delhi", "order 42 is late")
	is.NoErr(err)
	is.Equal(n, int64(1))

	is.Equal(len(counters.IncrementCalls()), 1)
	is.Equal(counters.IncrementCalls()[0].Window, DefaultWindow)
	is.Equal(len(events.AddCalls()), 1)
	is.Equal(events.AddCalls()[0].Event.Description, "order 42 is late")
}

func TestThatMisspelledHubIsNeverCounted(t *testing.T) {
	is, ctx, counters, events := testSetup(t)

	r := New(types.DefaultCatalog(), counters, events, time.Minute)

	_, err := r.Record(ctx, "ORDER_DELAYED", "Banglore", "")
	is.True(errors.Is(err, types.ErrUnknownHub))
	is.Equal(len(counters.IncrementCalls()), 0)
	is.Equal(len(events.AddCalls()), 0)
}

func TestThatUnknownEventTypeIsRejected(t *testing.T) {
	is, ctx, counters, events := testSetup(t)

	r := New(types.DefaultCatalog(), counters, events, time.Minute)

	_, err := r.Record(ctx, "ALIEN_INVASION", "Delhi", "")
	is.True(errors.Is(err, types.ErrUnknownEventType))
	is.Equal(len(counters.IncrementCalls()), 0)
}

func TestRecordWithoutEventLog(t *testing.T) {
	is, ctx, counters, _ := testSetup(t)

	r := New(types.DefaultCatalog(), counters, nil, time.Minute)

	_, err := r.Record(ctx, "HUB_OVERLOAD", "Jaipur", "")
	is.NoErr(err)
	is.Equal(counters.IncrementCalls()[0].Window, time.Minute)
}

func testSetup(t *testing.T) (*is.I, context.Context, *CounterStoreMock, *EventLogMock) {
	var count int64

	counters := &CounterStoreMock{
		IncrementFunc: func(ctx context.Context, eventType types.EventType, hub types.Hub, window time.Duration) (int64, error) {
			count++
			return count, nil
		},
	}
	events := &EventLogMock{
		AddFunc: func(ctx context.Context, event types.Event) (types.Event, error) {
			return event, nil
		},
	}

	return is.New(t), context.Background(), counters, events
}
