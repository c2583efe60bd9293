package detector

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/lemap/hubwatch/internal/pkg/infrastructure/logging"
	"github.com/lemap/hubwatch/internal/pkg/infrastructure/messaging"
	"github.com/lemap/hubwatch/internal/pkg/infrastructure/metrics"
	"github.com/lemap/hubwatch/internal/pkg/infrastructure/tracing"
	"github.com/lemap/hubwatch/pkg/types"
)

//go:generate moq -rm -out detector_mock.go . CounterStore HealthStore AlertRepository

type CounterStore interface {
	Count(ctx context.Context, eventType types.EventType, hub types.Hub) (int64, error)
	Consume(ctx context.Context, eventType types.EventType, hub types.Hub, n int64) (int64, error)
}

type HealthStore interface {
	SetUnhealthy(ctx context.Context, hub types.Hub, ttl time.Duration) error
}

type AlertRepository interface {
	Add(ctx context.Context, alert types.Alert) (types.Alert, error)
}

// Detector turns occurrence counters that reached the threshold into
// alerts and unhealthy hubs.
type Detector interface {
	Start(ctx context.Context)
	Stop()
	RunDetectionCycle(ctx context.Context) Report
}

type Stage string

const (
	StageRead   Stage = "read"
	StageAlert  Stage = "alert"
	StageHealth Stage = "health"
	StageReset  Stage = "reset"
)

type Trigger struct {
	Pair      types.Pair
	Count     int64
	Remaining int64
	Alert     types.Alert
}

type PairFailure struct {
	Pair  types.Pair
	Stage Stage
	Err   error
}

func (f PairFailure) Error() string {
	return fmt.Sprintf("%s of %s at %s failed: %s", f.Stage, f.Pair.EventType, f.Pair.Hub, f.Err.Error())
}

func (f PairFailure) Unwrap() error {
	return f.Err
}

type Report struct {
	Checked   int
	Triggered []Trigger
	Failures  []PairFailure
}

var tracer = otel.Tracer("hubwatch/detector")

type detector struct {
	catalog   types.Catalog
	counters  CounterStore
	health    HealthStore
	alerts    AlertRepository
	messenger messaging.MsgContext
	cfg       Config

	cycle sync.Mutex

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func New(catalog types.Catalog, counters CounterStore, health HealthStore, alerts AlertRepository, messenger messaging.MsgContext, cfg Config) Detector {
	if messenger == nil {
		messenger = messaging.Fanout()
	}

	return &detector{
		catalog:   catalog.WithDefaults(),
		counters:  counters,
		health:    health,
		alerts:    alerts,
		messenger: messenger,
		cfg:       cfg.withDefaults(),
	}
}

// Start runs a detection cycle right away and then once per interval
// until Stop is called or ctx is cancelled.
func (d *detector) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cancel != nil {
		return
	}

	ctx, d.cancel = context.WithCancel(ctx)
	d.done = make(chan struct{})

	go d.run(ctx, d.done)
}

// Stop ends the loop and waits for a running cycle to finish.
func (d *detector) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cancel == nil {
		return
	}

	d.cancel()
	<-d.done

	d.cancel = nil
	d.done = nil
}

func (d *detector) run(ctx context.Context, done chan<- struct{}) {
	defer close(done)

	logger := logging.GetLoggerFromContext(ctx)
	logger.Info().
		Int("threshold", d.cfg.Threshold).
		Dur("interval", d.cfg.Interval).
		Msg("spike detector started")

	ticker := time.NewTicker(d.cfg.Interval)
	defer ticker.Stop()

	for {
		d.RunDetectionCycle(ctx)

		select {
		case <-ctx.Done():
			logger.Info().Msg("spike detector stopped")
			return
		case <-ticker.C:
		}
	}
}

// RunDetectionCycle evaluates every (event type, hub) pair of the catalog
// once. A failing pair is reported and skipped, it never aborts the cycle.
func (d *detector) RunDetectionCycle(ctx context.Context) Report {
	d.cycle.Lock()
	defer d.cycle.Unlock()

	var err error

	ctx, span := tracer.Start(ctx, "detection-cycle")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	logger := logging.GetLoggerFromContext(ctx)
	start := time.Now()

	report := Report{}

	for _, pair := range d.catalog.Pairs() {
		if ctx.Err() != nil {
			break
		}

		report.Checked++

		trigger, failure := d.evaluate(ctx, pair)
		if failure != nil {
			report.Failures = append(report.Failures, *failure)
			metrics.IncDetectionFailure(string(failure.Stage))
			logger.Error().Err(failure.Err).
				Str("hub", string(pair.Hub)).
				Str("event_type", string(pair.EventType)).
				Str("stage", string(failure.Stage)).
				Msg("spike evaluation failed")
		}
		if trigger != nil {
			report.Triggered = append(report.Triggered, *trigger)
		}
	}

	metrics.ObserveDetectionCycle(time.Since(start))

	if len(report.Failures) > 0 {
		err = fmt.Errorf("%d of %d pairs failed", len(report.Failures), report.Checked)
	}

	logger.Debug().
		Int("checked", report.Checked).
		Int("triggered", len(report.Triggered)).
		Int("failed", len(report.Failures)).
		Msg("detection cycle done")

	return report
}

// evaluate runs the alert, health and reset steps for one pair. A step is
// only attempted when every step before it succeeded, so a pair that
// fails after its alert was stored will alert again on the next cycle.
// Publishing the notification is best effort.
func (d *detector) evaluate(ctx context.Context, pair types.Pair) (*Trigger, *PairFailure) {
	count, err := d.counters.Count(ctx, pair.EventType, pair.Hub)
	if err != nil {
		return nil, &PairFailure{Pair: pair, Stage: StageRead, Err: err}
	}

	if count < int64(d.cfg.Threshold) {
		return nil, nil
	}

	alert, err := d.alerts.Add(ctx, types.Alert{
		Hub:       pair.Hub,
		EventType: pair.EventType,
		Message:   spikeMessage(pair),
	})
	if err != nil {
		return nil, &PairFailure{Pair: pair, Stage: StageAlert, Err: err}
	}

	logger := logging.GetLoggerFromContext(ctx).With().
		Str("hub", string(pair.Hub)).
		Str("event_type", string(pair.EventType)).
		Logger()

	logger.Info().Int64("count", count).Uint("alert_id", alert.ID).Msg("alert generated")
	metrics.IncAlert(string(pair.Hub), string(pair.EventType))

	trigger := &Trigger{Pair: pair, Count: count, Alert: alert}

	err = d.health.SetUnhealthy(ctx, pair.Hub, d.cfg.HealthTTL)
	if err != nil {
		return trigger, &PairFailure{Pair: pair, Stage: StageHealth, Err: err}
	}

	trigger.Remaining, err = d.counters.Consume(ctx, pair.EventType, pair.Hub, count)
	if err != nil {
		return trigger, &PairFailure{Pair: pair, Stage: StageReset, Err: err}
	}

	err = d.messenger.PublishOnTopic(ctx, &types.AlertCreated{
		Alert:     alert,
		Count:     count,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		logger.Warn().Err(err).Msg("could not publish alert notification")
	}

	return trigger, nil
}

func spikeMessage(pair types.Pair) string {
	return fmt.Sprintf("Spike detected: %s events at %s", pair.EventType, pair.Hub)
}
