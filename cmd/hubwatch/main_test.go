package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/lemap/hubwatch/internal/pkg/application"
	"github.com/lemap/hubwatch/internal/pkg/application/alerts"
	"github.com/lemap/hubwatch/internal/pkg/application/detector"
	"github.com/lemap/hubwatch/internal/pkg/infrastructure/repositories/counters"
	alertsDb "github.com/lemap/hubwatch/internal/pkg/infrastructure/repositories/database/alerts"
	eventsDb "github.com/lemap/hubwatch/internal/pkg/infrastructure/repositories/database/events"
	"github.com/lemap/hubwatch/internal/pkg/infrastructure/router"
	"github.com/lemap/hubwatch/internal/pkg/presentation/api"
	"github.com/matryer/is"
	"github.com/redis/go-redis/v9"
)

func TestSetup(t *testing.T) {
	is, server, _ := setupTest(t)

	resp, _ := testRequest(is, server, http.MethodGet, "/health")
	is.Equal(resp.StatusCode, http.StatusNoContent)
}

func TestSpikeIsVisibleThroughTheAPI(t *testing.T) {
	is, server, d := setupTest(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := d.counters.Increment(ctx, "ORDER_DELAYED", "Delhi", 600*time.Second)
		is.NoErr(err)
	}

	report := d.detector.RunDetectionCycle(ctx)
	is.Equal(len(report.Triggered), 1)

	resp, body := testRequest(is, server, http.MethodGet, "/api/v0/hub-status")
	is.Equal(resp.StatusCode, http.StatusOK)
	is.Equal(body, `{"Bangalore":"green","Chennai":"green","Delhi":"red","Hyderabad":"green","Jaipur":"green","Mumbai":"green"}`)

	resp, _ = testRequest(is, server, http.MethodGet, "/alerts?hub=Delhi")
	is.Equal(resp.StatusCode, http.StatusOK)

	resp, _ = testRequest(is, server, http.MethodGet, "/alerts?hub=Banglore")
	is.Equal(resp.StatusCode, http.StatusBadRequest)
}

func TestMissingConfigurationFileGivesDefaults(t *testing.T) {
	is := is.New(t)

	cfg, err := loadConfiguration(filepath.Join(t.TempDir(), "nosuchfile.yaml"))
	is.NoErr(err)
	is.Equal(cfg.Detector.Threshold, detector.DefaultThreshold)
}

func TestConfigurationFileIsLoaded(t *testing.T) {
	is := is.New(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	is.NoErr(os.WriteFile(path, []byte("detector:\n  threshold: 7\n"), 0644))

	cfg, err := loadConfiguration(path)
	is.NoErr(err)
	is.Equal(cfg.Detector.Threshold, 7)
}

func TestNoPoliciesFile(t *testing.T) {
	is := is.New(t)

	policies, err := openPolicies("")
	is.NoErr(err)
	is.True(policies == nil)
}

func TestDatabaseHandleIsShared(t *testing.T) {
	is := is.New(t)

	connect, err := newConnector(context.Background(), defaultFlags())
	is.NoErr(err)

	first, _ := connect()
	second, _ := connect()
	is.True(first == second)
}

func TestMessengerWithoutBroker(t *testing.T) {
	is := is.New(t)

	m, closer, err := newMessenger(context.Background(), defaultFlags(), application.DefaultConfig())
	is.NoErr(err)
	defer closer()

	is.True(m != nil)
}

type testDeps struct {
	counters *counters.Store
	detector detector.Detector
}

func setupTest(t *testing.T) (*is.I, *httptest.Server, testDeps) {
	is := is.New(t)
	ctx := context.Background()

	mr := miniredis.RunT(t)
	store := counters.NewWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	connect, err := newConnector(ctx, defaultFlags())
	is.NoErr(err)

	alertRepo, err := alertsDb.NewAlertRepository(connect)
	is.NoErr(err)
	eventRepo, err := eventsDb.NewEventRepository(connect)
	is.NoErr(err)

	cfg := application.DefaultConfig()

	d := detector.New(cfg.Catalog, store, store, alertRepo, nil, cfg.Detector)
	svc := alerts.New(cfg.Catalog, alertRepo, eventRepo, store)

	r, err := api.RegisterHandlers(ctx, router.New("test"), nil, svc)
	is.NoErr(err)

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	return is, server, testDeps{counters: store, detector: d}
}

func testRequest(is *is.I, ts *httptest.Server, method, path string) (*http.Response, string) {
	req, _ := http.NewRequest(method, ts.URL+path, nil)
	resp, err := http.DefaultClient.Do(req)
	is.NoErr(err)
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	return resp, string(respBody)
}
