package alerts

import (
	"context"
	"errors"
	"fmt"

	"github.com/lemap/hubwatch/internal/pkg/infrastructure/logging"
	"github.com/lemap/hubwatch/pkg/types"
)

var ErrInvalidHub = errors.New("invalid hub")

//go:generate moq -rm -out alertservice_mock.go . AlertReader EventReader HealthReader

type AlertReader interface {
	Query(ctx context.Context, hub *types.Hub) ([]types.Alert, error)
}

type EventReader interface {
	Query(ctx context.Context, hub *types.Hub) ([]types.Event, error)
}

type HealthReader interface {
	Health(ctx context.Context, hub types.Hub) (types.HubHealth, error)
}

// InvalidHubError carries the list of accepted hubs so that callers can
// report it back to the client.
type InvalidHubError struct {
	Hub   string
	Valid string
}

func (e *InvalidHubError) Error() string {
	return fmt.Sprintf("Invalid hub. Must be one of: %s", e.Valid)
}

func (e *InvalidHubError) Unwrap() error {
	return ErrInvalidHub
}

type AlertService interface {
	Alerts(ctx context.Context, hub string) ([]types.Alert, error)
	Events(ctx context.Context, hub string) ([]types.Event, error)
	HubStatus(ctx context.Context) (map[types.Hub]types.HubHealth, error)
}

type alertSvc struct {
	catalog types.Catalog
	alerts  AlertReader
	events  EventReader
	health  HealthReader
}

func New(catalog types.Catalog, alerts AlertReader, events EventReader, health HealthReader) AlertService {
	return &alertSvc{
		catalog: catalog.WithDefaults(),
		alerts:  alerts,
		events:  events,
		health:  health,
	}
}

func (s *alertSvc) hubFilter(hub string) (*types.Hub, error) {
	if hub == "" {
		return nil, nil
	}

	h, err := s.catalog.ParseHub(hub)
	if err != nil {
		return nil, &InvalidHubError{Hub: hub, Valid: s.catalog.HubNames()}
	}

	return &h, nil
}

func (s *alertSvc) Alerts(ctx context.Context, hub string) ([]types.Alert, error) {
	filter, err := s.hubFilter(hub)
	if err != nil {
		return nil, err
	}

	result, err := s.alerts.Query(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("could not query alerts: %w", err)
	}

	if result == nil {
		result = []types.Alert{}
	}

	return result, nil
}

func (s *alertSvc) Events(ctx context.Context, hub string) ([]types.Event, error) {
	filter, err := s.hubFilter(hub)
	if err != nil {
		return nil, err
	}

	if s.events == nil {
		return []types.Event{}, nil
	}

	result, err := s.events.Query(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("could not query events: %w", err)
	}

	if result == nil {
		result = []types.Event{}
	}

	return result, nil
}

// HubStatus reports the health of every catalog hub. A hub without a
// recorded status is green. The first store failure aborts the request
// since a partial map would report failing hubs as healthy.
func (s *alertSvc) HubStatus(ctx context.Context) (map[types.Hub]types.HubHealth, error) {
	logger := logging.GetLoggerFromContext(ctx)

	status := make(map[types.Hub]types.HubHealth, len(s.catalog.Hubs))

	for _, hub := range s.catalog.Hubs {
		h, err := s.health.Health(ctx, hub)
		if err != nil {
			logger.Error().Err(err).Str("hub", string(hub)).Msg("failed to read hub status")
			return nil, fmt.Errorf("could not read status of %s: %w", hub, err)
		}
		status[hub] = h
	}

	return status, nil
}
