package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/lemap/hubwatch/internal/pkg/infrastructure/logging"
	"github.com/lemap/hubwatch/internal/pkg/infrastructure/tracing"
	"github.com/lemap/hubwatch/pkg/types"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
)

var ErrInvalidHub = errors.New("invalid hub")

type HubwatchClient interface {
	GetAlerts(ctx context.Context, hub string) ([]types.Alert, error)
	GetEvents(ctx context.Context, hub string) ([]types.Event, error)
	GetHubStatus(ctx context.Context) (map[types.Hub]types.HubHealth, error)
}

type hubwatchClient struct {
	url        string
	token      string
	httpClient http.Client
}

var tracer = otel.Tracer("hubwatch-client")

// New returns a client for the hubwatch reader API at baseURL. token is
// sent as a bearer token when non empty.
func New(baseURL, token string) HubwatchClient {
	return &hubwatchClient{
		url:   strings.TrimSuffix(baseURL, "/"),
		token: token,
		httpClient: http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (c *hubwatchClient) GetAlerts(ctx context.Context, hub string) ([]types.Alert, error) {
	var err error
	ctx, span := tracer.Start(ctx, "get-alerts")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	result := []types.Alert{}
	err = c.get(ctx, "/api/v0/alerts", hub, &result)
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (c *hubwatchClient) GetEvents(ctx context.Context, hub string) ([]types.Event, error) {
	var err error
	ctx, span := tracer.Start(ctx, "get-events")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	result := []types.Event{}
	err = c.get(ctx, "/api/v0/events", hub, &result)
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (c *hubwatchClient) GetHubStatus(ctx context.Context) (map[types.Hub]types.HubHealth, error) {
	var err error
	ctx, span := tracer.Start(ctx, "get-hub-status")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	raw := map[types.Hub]string{}
	err = c.get(ctx, "/api/v0/hub-status", "", &raw)
	if err != nil {
		return nil, err
	}

	status := make(map[types.Hub]types.HubHealth, len(raw))
	for hub, h := range raw {
		status[hub] = types.ParseHubHealth(h)
	}

	return status, nil
}

func (c *hubwatchClient) get(ctx context.Context, path, hub string, result any) error {
	log := logging.GetLoggerFromContext(ctx)

	u := c.url + path
	if hub != "" {
		u = u + "?hub=" + url.QueryEscape(hub)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create http request: %w", err)
	}

	req.Header.Add("Accept", "application/json")
	if c.token != "" {
		req.Header.Add("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to retrieve %s: %w", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode == http.StatusBadRequest {
		detail := struct {
			Detail string `json:"detail"`
		}{}
		json.Unmarshal(respBody, &detail)
		return fmt.Errorf("%w: %s", ErrInvalidHub, detail.Detail)
	}

	if resp.StatusCode != http.StatusOK {
		log.Error().Msgf("request to %s failed with status code %d", path, resp.StatusCode)
		return fmt.Errorf("request failed with status code %d", resp.StatusCode)
	}

	err = json.Unmarshal(respBody, result)
	if err != nil {
		return fmt.Errorf("failed to unmarshal response body: %w", err)
	}

	return nil
}
