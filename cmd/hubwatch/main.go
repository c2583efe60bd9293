package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"io"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"strconv"
	"syscall"
	"time"

	"github.com/lemap/hubwatch/internal/pkg/application"
	"github.com/lemap/hubwatch/internal/pkg/application/alerts"
	"github.com/lemap/hubwatch/internal/pkg/application/detector"
	"github.com/lemap/hubwatch/internal/pkg/application/notifications"
	"github.com/lemap/hubwatch/internal/pkg/infrastructure/logging"
	"github.com/lemap/hubwatch/internal/pkg/infrastructure/messaging"
	"github.com/lemap/hubwatch/internal/pkg/infrastructure/metrics"
	"github.com/lemap/hubwatch/internal/pkg/infrastructure/repositories/counters"
	"github.com/lemap/hubwatch/internal/pkg/infrastructure/repositories/database"
	alertsDb "github.com/lemap/hubwatch/internal/pkg/infrastructure/repositories/database/alerts"
	eventsDb "github.com/lemap/hubwatch/internal/pkg/infrastructure/repositories/database/events"
	"github.com/lemap/hubwatch/internal/pkg/infrastructure/router"
	"github.com/lemap/hubwatch/internal/pkg/infrastructure/tracing"
	"github.com/lemap/hubwatch/internal/pkg/presentation/api"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const serviceName string = "hubwatch"

type flagType int
type flagMap map[flagType]string

const (
	listenAddress flagType = iota
	servicePort
	enableTracing

	policiesFile
	configurationFile

	redisAddr
	redisPassword
	redisDB

	dbHost
	dbUser
	dbPassword
	dbPort
	dbName
	dbSSLMode

	rabbitURL
	rabbitExchange
)

func defaultFlags() flagMap {
	return flagMap{
		listenAddress: "0.0.0.0",
		servicePort:   "8080",
		enableTracing: "true",

		policiesFile:      "",
		configurationFile: "/opt/hubwatch/config/config.yaml",

		redisAddr:     "localhost:6379",
		redisPassword: "",
		redisDB:       "0",

		dbHost:     "",
		dbUser:     "",
		dbPassword: "",
		dbPort:     "5432",
		dbName:     "hubwatch",
		dbSSLMode:  "disable",

		rabbitURL:      "",
		rabbitExchange: "hubwatch",
	}
}

func main() {
	serviceVersion := version()

	ctx, logger := logging.NewLogger(context.Background(), serviceName, serviceVersion)
	logger.Info().Msg("starting up ...")

	ctx, flags := parseExternalConfig(ctx, defaultFlags())

	if flags[enableTracing] == "true" {
		cleanup, err := tracing.Init(ctx, logger, serviceName, serviceVersion)
		exitIf(err, logger, "failed to init tracing")
		defer cleanup()
	}

	cfg, err := loadConfiguration(flags[configurationFile])
	exitIf(err, logger, "could not load configuration file")

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics.Init()

	redisDatabase, err := strconv.Atoi(flags[redisDB])
	exitIf(err, logger, "invalid redis database number")

	counterStore, err := counters.Connect(ctx, counters.Config{
		Addr:     flags[redisAddr],
		Password: flags[redisPassword],
		DB:       redisDatabase,
	})
	exitIf(err, logger, "could not connect to counter store")
	defer counterStore.Close()

	connect, err := newConnector(ctx, flags)
	exitIf(err, logger, "could not connect to database")

	alertRepo, err := alertsDb.NewAlertRepository(connect)
	exitIf(err, logger, "could not create alert repository")

	eventRepo, err := eventsDb.NewEventRepository(connect)
	exitIf(err, logger, "could not create event repository")

	messenger, closeMessenger, err := newMessenger(ctx, flags, cfg)
	exitIf(err, logger, "failed to init messenger")
	defer closeMessenger()

	d := detector.New(cfg.Catalog, counterStore, counterStore, alertRepo, messenger, cfg.Detector)
	svc := alerts.New(cfg.Catalog, alertRepo, eventRepo, counterStore)

	policies, err := openPolicies(flags[policiesFile])
	exitIf(err, logger, "unable to open opa policy file")

	r, err := api.RegisterHandlers(ctx, router.New(serviceName), policies, svc)
	exitIf(err, logger, "failed to register api handlers")

	d.Start(ctx)
	defer d.Stop()

	server := &http.Server{
		Addr:              flags[listenAddress] + ":" + flags[servicePort],
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("starting to listen for connections")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("failed to start request router")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down ...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shut down http server")
	}
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

func openPolicies(path string) (io.Reader, error) {
	if path == "" {
		return nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(b), nil
}

// newConnector opens the database once and hands the same handle to every
// repository. Without a configured host an in memory sqlite database is used.
func newConnector(ctx context.Context, flags flagMap) (database.ConnectorFunc, error) {
	logger := logging.GetLoggerFromContext(ctx)

	var connect database.ConnectorFunc

	if flags[dbHost] == "" {
		logger.Warn().Msg("no database host configured, alerts will be kept in memory")
		connect = database.NewSQLiteConnector(ctx)
	} else {
		connect = database.NewPostgreSQLConnector(ctx, database.ConnectorConfig{
			Host:     flags[dbHost],
			Port:     flags[dbPort],
			Username: flags[dbUser],
			DbName:   flags[dbName],
			Password: flags[dbPassword],
			SslMode:  flags[dbSSLMode],
		})
	}

	db, err := connect()
	if err != nil {
		return nil, err
	}

	return func() (*gorm.DB, error) { return db, nil }, nil
}

func newMessenger(ctx context.Context, flags flagMap, cfg *application.Config) (messaging.MsgContext, func(), error) {
	logger := logging.GetLoggerFromContext(ctx)

	publishers := []messaging.MsgContext{}
	closer := func() {}

	if flags[rabbitURL] != "" {
		p, err := messaging.NewAMQPPublisher(messaging.Config{
			URL:      flags[rabbitURL],
			Exchange: flags[rabbitExchange],
		})
		if err != nil {
			return nil, closer, err
		}

		publishers = append(publishers, p)
		closer = func() {
			if err := p.Close(); err != nil {
				logger.Error().Err(err).Msg("failed to close amqp connection")
			}
		}
	} else {
		logger.Info().Msg("no amqp url configured, alerts will not be published on a broker")
	}

	if len(cfg.Notifications) > 0 {
		sender, err := notifications.New(&cfg.Config)
		if err != nil {
			return nil, closer, err
		}
		publishers = append(publishers, sender)
	}

	return messaging.Fanout(publishers...), closer, nil
}

func parseExternalConfig(ctx context.Context, flags flagMap) (context.Context, flagMap) {
	// Allow environment variables to override certain defaults
	envOrDef := func(key string, def string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		return def
	}

	flags[listenAddress] = envOrDef("LISTEN_ADDRESS", flags[listenAddress])
	flags[servicePort] = envOrDef("SERVICE_PORT", flags[servicePort])
	flags[enableTracing] = envOrDef("ENABLE_TRACING", flags[enableTracing])

	flags[policiesFile] = envOrDef("POLICIES_FILE", flags[policiesFile])
	flags[configurationFile] = envOrDef("CONFIG_FILE", flags[configurationFile])

	flags[redisAddr] = envOrDef("REDIS_ADDR", flags[redisAddr])
	flags[redisPassword] = envOrDef("REDIS_PASSWORD", flags[redisPassword])
	flags[redisDB] = envOrDef("REDIS_DB", flags[redisDB])

	flags[dbHost] = envOrDef("POSTGRES_HOST", flags[dbHost])
	flags[dbPort] = envOrDef("POSTGRES_PORT", flags[dbPort])
	flags[dbName] = envOrDef("POSTGRES_DBNAME", flags[dbName])
	flags[dbUser] = envOrDef("POSTGRES_USER", flags[dbUser])
	flags[dbPassword] = envOrDef("POSTGRES_PASSWORD", flags[dbPassword])
	flags[dbSSLMode] = envOrDef("POSTGRES_SSLMODE", flags[dbSSLMode])

	flags[rabbitURL] = envOrDef("RABBITMQ_URL", flags[rabbitURL])
	flags[rabbitExchange] = envOrDef("RABBITMQ_EXCHANGE", flags[rabbitExchange])

	apply := func(f flagType) func(string) error {
		return func(value string) error {
			flags[f] = value
			return nil
		}
	}

	// Allow command line arguments to override defaults and environment variables
	flag.Func("policies", "an authorization policy file", apply(policiesFile))
	flag.Func("config", "hubwatch configuration file", apply(configurationFile))
	flag.Parse()

	return ctx, flags
}

func version() string {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}

	infoMap := map[string]string{}
	for _, s := range buildInfo.Settings {
		infoMap[s.Key] = s.Value
	}

	sha := infoMap["vcs.revision"]
	if infoMap["vcs.modified"] == "true" {
		sha += "+"
	}

	return sha
}

func exitIf(err error, logger zerolog.Logger, msg string) {
	if err != nil {
		logger.Fatal().Err(err).Msg(msg)
	}
}
