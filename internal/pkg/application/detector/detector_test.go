package detector

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lemap/hubwatch/internal/pkg/infrastructure/messaging"
	"github.com/lemap/hubwatch/pkg/types"
	"github.com/matryer/is"
)

var testCatalog = types.Catalog{
	Hubs:       []types.Hub{"Delhi", "Mumbai"},
	EventTypes: []types.EventType{"ORDER_DELAYED", "ROUTE_BLOCKED"},
}

func TestThatAlertFailureLeavesCounterAndHealthAlone(t *testing.T) {
	is, ctx := testSetup(t)

	counters := countersWith(map[types.Pair]int64{{EventType: "ORDER_DELAYED", Hub: "Delhi"}: 5})
	health := okHealth()
	alerts := &AlertRepositoryMock{
		AddFunc: func(ctx context.Context, alert types.Alert) (types.Alert, error) {
			return types.Alert{}, errors.New("database is down")
		},
	}

	d := New(testCatalog, counters, health, alerts, nil, Config{Threshold: 3})
	report := d.RunDetectionCycle(ctx)

	is.Equal(report.Checked, 4)
	is.Equal(len(report.Triggered), 0)
	is.Equal(len(report.Failures), 1)
	is.Equal(report.Failures[0].Stage, StageAlert)
	is.Equal(len(health.SetUnhealthyCalls()), 0)
	is.Equal(len(counters.ConsumeCalls()), 0)
}

func TestThatHealthFailureKeepsCounterForRetry(t *testing.T) {
	is, ctx := testSetup(t)

	counters := countersWith(map[types.Pair]int64{{EventType: "ROUTE_BLOCKED", Hub: "Mumbai"}: 3})
	health := &HealthStoreMock{
		SetUnhealthyFunc: func(ctx context.Context, hub types.Hub, ttl time.Duration) error {
			return errors.New("redis is down")
		},
	}
	alerts := okAlerts()

	d := New(testCatalog, counters, health, alerts, nil, Config{Threshold: 3})
	report := d.RunDetectionCycle(ctx)

	is.Equal(len(alerts.AddCalls()), 1)
	is.Equal(len(report.Failures), 1)
	is.Equal(report.Failures[0].Stage, StageHealth)
	is.Equal(len(counters.ConsumeCalls()), 0)

	// the counter was left as is, so the next cycle alerts again
	d.RunDetectionCycle(ctx)
	is.Equal(len(alerts.AddCalls()), 2)
}

func TestThatResetFailureAlertsAgainOnNextCycle(t *testing.T) {
	is, ctx := testSetup(t)

	counters := countersWith(map[types.Pair]int64{{EventType: "ORDER_DELAYED", Hub: "Delhi"}: 4})
	counters.ConsumeFunc = func(ctx context.Context, eventType types.EventType, hub types.Hub, n int64) (int64, error) {
		return 0, errors.New("connection reset")
	}
	alerts := okAlerts()

	d := New(testCatalog, counters, okHealth(), alerts, nil, Config{Threshold: 3})

	report := d.RunDetectionCycle(ctx)
	is.Equal(len(report.Triggered), 1)
	is.Equal(len(report.Failures), 1)
	is.Equal(report.Failures[0].Stage, StageReset)

	d.RunDetectionCycle(ctx)
	is.Equal(len(alerts.AddCalls()), 2)
}

func TestThatOneFailingPairDoesNotAbortTheCycle(t *testing.T) {
	is, ctx := testSetup(t)

	counters := countersWith(map[types.Pair]int64{{EventType: "ROUTE_BLOCKED", Hub: "Mumbai"}: 3})
	countFunc := counters.CountFunc
	counters.CountFunc = func(ctx context.Context, eventType types.EventType, hub types.Hub) (int64, error) {
		if eventType == "ORDER_DELAYED" && hub == "Delhi" {
			return 0, errors.New("timeout")
		}
		return countFunc(ctx, eventType, hub)
	}
	alerts := okAlerts()

	d := New(testCatalog, counters, okHealth(), alerts, nil, Config{Threshold: 3})
	report := d.RunDetectionCycle(ctx)

	is.Equal(report.Checked, 4)
	is.Equal(len(report.Failures), 1)
	is.Equal(report.Failures[0].Stage, StageRead)
	is.Equal(len(report.Triggered), 1)
	is.Equal(report.Triggered[0].Pair, types.Pair{EventType: "ROUTE_BLOCKED", Hub: "Mumbai"})
}

func TestTriggerConsumesTheObservedCount(t *testing.T) {
	is, ctx := testSetup(t)

	counters := countersWith(map[types.Pair]int64{{EventType: "ORDER_DELAYED", Hub: "Delhi"}: 7})
	health := okHealth()
	alerts := okAlerts()

	d := New(testCatalog, counters, health, alerts, nil, Config{Threshold: 3, HealthTTL: time.Minute})
	report := d.RunDetectionCycle(ctx)

	is.Equal(len(report.Triggered), 1)
	is.Equal(report.Triggered[0].Count, int64(7))
	is.Equal(counters.ConsumeCalls()[0].N, int64(7))
	is.Equal(health.SetUnhealthyCalls()[0].Hub, types.Hub("Delhi"))
	is.Equal(health.SetUnhealthyCalls()[0].TTL, time.Minute)
	is.Equal(alerts.AddCalls()[0].Alert.Message, "Spike detected: ORDER_DELAYED events at Delhi")
}

func TestAlertCreatedIsPublished(t *testing.T) {
	is, ctx := testSetup(t)

	counters := countersWith(map[types.Pair]int64{{EventType: "ORDER_DELAYED", Hub: "Delhi"}: 3})
	messenger := &messaging.MsgContextMock{
		PublishOnTopicFunc: func(ctx context.Context, message messaging.TopicMessage) error {
			return errors.New("broker unavailable")
		},
	}

	d := New(testCatalog, counters, okHealth(), okAlerts(), messenger, Config{})
	report := d.RunDetectionCycle(ctx)

	is.Equal(len(report.Failures), 0) // publishing is best effort
	is.Equal(len(messenger.PublishOnTopicCalls()), 1)

	msg, ok := messenger.PublishOnTopicCalls()[0].Message.(*types.AlertCreated)
	is.True(ok)
	is.Equal(msg.Alert.Hub, types.Hub("Delhi"))
	is.Equal(msg.Count, int64(3))
}

func TestDefaultsAreApplied(t *testing.T) {
	is := is.New(t)

	cfg := Config{Threshold: -1}.withDefaults()

	is.Equal(cfg.Threshold, DefaultThreshold)
	is.Equal(cfg.Interval, DefaultInterval)
	is.Equal(cfg.HealthTTL, DefaultHealthTTL)
}

func TestStartRunsCyclesUntilStopped(t *testing.T) {
	is, ctx := testSetup(t)

	counters := countersWith(nil)

	d := New(testCatalog, counters, okHealth(), okAlerts(), nil, Config{Interval: 5 * time.Millisecond})
	d.Start(ctx)

	deadline := time.Now().Add(2 * time.Second)
	for len(counters.CountCalls()) < 3*len(testCatalog.Pairs()) && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	d.Stop()

	calls := len(counters.CountCalls())
	is.True(calls >= 3*len(testCatalog.Pairs()))

	time.Sleep(20 * time.Millisecond)
	is.Equal(len(counters.CountCalls()), calls) // no cycles after stop
}

func TestCancelledContextStopsTheCycle(t *testing.T) {
	is, ctx := testSetup(t)

	ctx, cancel := context.WithCancel(ctx)
	cancel()

	counters := countersWith(nil)
	d := New(testCatalog, counters, okHealth(), okAlerts(), nil, Config{})

	report := d.RunDetectionCycle(ctx)

	is.Equal(report.Checked, 0)
	is.Equal(len(counters.CountCalls()), 0)
}

func testSetup(t *testing.T) (*is.I, context.Context) {
	return is.New(t), context.Background()
}

func countersWith(values map[types.Pair]int64) *CounterStoreMock {
	return &CounterStoreMock{
		CountFunc: func(ctx context.Context, eventType types.EventType, hub types.Hub) (int64, error) {
			return values[types.Pair{EventType: eventType, Hub: hub}], nil
		},
		ConsumeFunc: func(ctx context.Context, eventType types.EventType, hub types.Hub, n int64) (int64, error) {
			return 0, nil
		},
	}
}

func okHealth() *HealthStoreMock {
	return &HealthStoreMock{
		SetUnhealthyFunc: func(ctx context.Context, hub types.Hub, ttl time.Duration) error {
			return nil
		},
	}
}

func okAlerts() *AlertRepositoryMock {
	var id uint
	return &AlertRepositoryMock{
		AddFunc: func(ctx context.Context, alert types.Alert) (types.Alert, error) {
			id++
			alert.ID = id
			alert.Timestamp = time.Now().UTC()
			return alert, nil
		},
	}
}
