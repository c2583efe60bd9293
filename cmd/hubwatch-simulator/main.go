package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/lemap/hubwatch/internal/pkg/application"
	"github.com/lemap/hubwatch/internal/pkg/application/recorder"
	"github.com/lemap/hubwatch/internal/pkg/infrastructure/logging"
	"github.com/lemap/hubwatch/internal/pkg/infrastructure/repositories/counters"
	"github.com/lemap/hubwatch/internal/pkg/infrastructure/repositories/database"
	eventsDb "github.com/lemap/hubwatch/internal/pkg/infrastructure/repositories/database/events"
	"github.com/lemap/hubwatch/pkg/types"
	"github.com/rs/zerolog"
)

const serviceName string = "hubwatch-simulator"

var descriptions = map[types.EventType]string{
	"ORDER_DELAYED":     "Order delayed beyond promised delivery time",
	"DELIVERY_FAILED":   "Delivery attempt failed",
	"INVENTORY_LOW":     "Inventory below reorder level",
	"VEHICLE_BREAKDOWN": "Delivery vehicle broke down en route",
	"ROUTE_BLOCKED":     "Route blocked, rerouting required",
	"HUB_OVERLOAD":      "Hub processing capacity exceeded",
}

func main() {
	ctx, logger := logging.NewLogger(context.Background(), serviceName, "")

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfiguration(envOrDef("CONFIG_FILE", "/opt/hubwatch/config/config.yaml"))
	exitIf(err, logger, "could not load configuration file")

	interval, err := time.ParseDuration(envOrDef("SIMULATOR_INTERVAL", "10s"))
	exitIf(err, logger, "invalid simulator interval")

	counterCfg, err := counterConfig()
	exitIf(err, logger, "invalid redis database number")

	store, err := counters.Connect(ctx, counterCfg)
	exitIf(err, logger, "could not connect to counter store")
	defer store.Close()

	var eventLog recorder.EventLog

	if host := os.Getenv("POSTGRES_HOST"); host != "" {
		eventLog, err = eventsDb.NewEventRepository(database.NewPostgreSQLConnector(ctx, database.ConnectorConfig{
			Host:     host,
			Port:     envOrDef("POSTGRES_PORT", "5432"),
			Username: os.Getenv("POSTGRES_USER"),
			DbName:   envOrDef("POSTGRES_DBNAME", "hubwatch"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			SslMode:  envOrDef("POSTGRES_SSLMODE", "disable"),
		}))
		exitIf(err, logger, "could not create event repository")
	}

	rec := recorder.New(cfg.Catalog, store, eventLog, cfg.Recorder.Window)
	sim := newSimulator(cfg.Catalog, rec, rand.New(rand.NewSource(time.Now().UnixNano())))

	logger.Info().Str("interval", interval.String()).Msg("simulating events")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("shutting down ...")
			return
		case <-ticker.C:
			if err := sim.next(ctx); err != nil {
				logger.Error().Err(err).Msg("failed to record simulated event")
			}
		}
	}
}

type simulator struct {
	catalog  types.Catalog
	recorder recorder.Recorder
	rnd      *rand.Rand
}

func newSimulator(catalog types.Catalog, rec recorder.Recorder, rnd *rand.Rand) *simulator {
	return &simulator{catalog: catalog.WithDefaults(), recorder: rec, rnd: rnd}
}

func (s *simulator) next(ctx context.Context) error {
	eventType := s.catalog.EventTypes[s.rnd.Intn(len(s.catalog.EventTypes))]
	hub := s.catalog.Hubs[s.rnd.Intn(len(s.catalog.Hubs))]

	description, ok := descriptions[eventType]
	if !ok {
		description = fmt.Sprintf("%s reported", eventType)
	}

	count, err := s.recorder.Record(ctx, string(eventType), string(hub), description)
	if err != nil {
		return err
	}

	logger := logging.GetLoggerFromContext(ctx)
	logger.Info().Str("hub", string(hub)).Str("event_type", string(eventType)).Int64("count", count).Msg("event generated")

	return nil
}

// counterConfig reads the same REDIS_* variables as the hubwatch service so
// that both processes share one counter store.
func counterConfig() (counters.Config, error) {
	db, err := strconv.Atoi(envOrDef("REDIS_DB", "0"))
	if err != nil {
		return counters.Config{}, err
	}

	return counters.Config{
		Addr:     envOrDef("REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	}, nil
}

func loadConfiguration(path string) (*application.Config, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return application.DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return application.LoadConfiguration(f)
}

func envOrDef(key, def string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return def
}

func exitIf(err error, logger zerolog.Logger, msg string) {
	if err != nil {
		logger.Fatal().Err(err).Msg(msg)
	}
}
