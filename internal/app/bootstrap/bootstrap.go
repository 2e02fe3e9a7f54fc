package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	registryservice "wattline/contexts/device-fleet/registry-service"
	registrypostgres "wattline/contexts/device-fleet/registry-service/adapters/postgres"
	credentialservice "wattline/contexts/identity-access/credential-service"
	credentialclient "wattline/contexts/identity-access/credential-service/adapters/httpclient"
	credentialpostgres "wattline/contexts/identity-access/credential-service/adapters/postgres"
	profileservice "wattline/contexts/identity-access/profile-service"
	profileclient "wattline/contexts/identity-access/profile-service/adapters/httpclient"
	profilepostgres "wattline/contexts/identity-access/profile-service/adapters/postgres"
	devicesimulator "wattline/contexts/telemetry/device-simulator"
	simulatorclient "wattline/contexts/telemetry/device-simulator/adapters/httpclient"
	ingestionrouter "wattline/contexts/telemetry/ingestion-router"
	monitoringservice "wattline/contexts/telemetry/monitoring-service"
	monitoringclient "wattline/contexts/telemetry/monitoring-service/adapters/httpclient"
	monitoringpostgres "wattline/contexts/telemetry/monitoring-service/adapters/postgres"
	notificationservice "wattline/contexts/telemetry/notification-service"
	websocketadapter "wattline/contexts/telemetry/notification-service/adapters/websocket"
	"wattline/internal/platform/config"
	"wattline/internal/platform/db"
	"wattline/internal/platform/httpserver"
	"wattline/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type starter interface {
	Start() error
}

// App is one runnable process: its consumers, an optional HTTP front-end,
// and the resources to release on shutdown.
type App struct {
	server    starter
	consumers []func(ctx context.Context) error
	run       func(ctx context.Context) error
	postgres  *db.Postgres
	logger    *slog.Logger
}

// Run starts the consumers, then blocks on the HTTP server (or on ctx for
// worker-only processes).
func (a *App) Run(ctx context.Context) error {
	for _, start := range a.consumers {
		if err := start(ctx); err != nil {
			return err
		}
	}
	if a.run != nil {
		return a.run(ctx)
	}
	if a.server != nil {
		return a.server.Start()
	}
	<-ctx.Done()
	return ctx.Err()
}

func (a *App) Close() error {
	return a.postgres.Close()
}

func BuildCredential() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := slog.Default().With("service", "credential-service")

	pg, err := connectPostgres(cfg)
	if err != nil {
		return nil, err
	}

	repo := credentialpostgres.NewRepository(pg.DB, logger)
	if err := repo.Migrate(); err != nil {
		return nil, err
	}

	bus := messaging.NewAMQP(cfg.AMQPURL, "credential-service", cfg.ConnectRetryInterval, logger)
	module := credentialservice.NewModule(credentialservice.Dependencies{
		Credentials: repo,
		Profiles:    credentialclient.NewProfileClient(cfg.ProfileServiceURL),
		Publisher:   bus,
		Subscriber:  bus,
		Logger:      logger,
	})

	return &App{
		server:    httpserver.NewCredential(module, logger, normalizeAddr(cfg.HTTPPort)),
		consumers: []func(ctx context.Context) error{module.Consumer.Start},
		postgres:  pg,
		logger:    logger,
	}, nil
}

func BuildProfile() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := slog.Default().With("service", "profile-service")

	pg, err := connectPostgres(cfg)
	if err != nil {
		return nil, err
	}

	repo := profilepostgres.NewRepository(pg.DB, logger)
	if err := repo.Migrate(); err != nil {
		return nil, err
	}

	bus := messaging.NewAMQP(cfg.AMQPURL, "profile-service", cfg.ConnectRetryInterval, logger)
	module := profileservice.NewModule(profileservice.Dependencies{
		Profiles:    repo,
		Credentials: profileclient.NewCredentialClient(cfg.CredentialServiceURL),
		Publisher:   bus,
		Logger:      logger,
	})

	return &App{
		server:   httpserver.NewProfile(module, logger, normalizeAddr(cfg.HTTPPort)),
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildRegistry() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := slog.Default().With("service", "registry-service")

	pg, err := connectPostgres(cfg)
	if err != nil {
		return nil, err
	}

	repo := registrypostgres.NewRepository(pg.DB, logger)
	if err := repo.Migrate(); err != nil {
		return nil, err
	}
	owners := registrypostgres.NewOwnerRepository(pg.DB)

	bus := messaging.NewAMQP(cfg.AMQPURL, "registry-service", cfg.ConnectRetryInterval, logger)
	module := registryservice.NewModule(registryservice.Dependencies{
		Devices:    repo,
		Owners:     owners,
		Publisher:  bus,
		Subscriber: bus,
		Logger:     logger,
	})

	return &App{
		server: httpserver.NewRegistry(module, logger, normalizeAddr(cfg.HTTPPort)),
		consumers: []func(ctx context.Context) error{
			module.IdentityConsumer.Start,
			module.ProfileConsumer.Start,
		},
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildRouter() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := slog.Default().With("service", "ingestion-router")

	bus := messaging.NewAMQP(cfg.AMQPURL, "ingestion-router", cfg.ConnectRetryInterval, logger)
	router := &ingestionrouter.Router{
		Bus:          bus,
		ReplicaCount: cfg.ReplicaCount,
		Logger:       logger,
	}

	return &App{
		consumers: []func(ctx context.Context) error{router.Start},
		logger:    logger,
	}, nil
}

func BuildMonitoring() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := slog.Default().With("service", "monitoring-service", "replica", cfg.ReplicaID)

	pg, err := connectPostgres(cfg)
	if err != nil {
		return nil, err
	}

	mappings := monitoringpostgres.NewMappingRepository(pg.DB)
	if err := mappings.Migrate(); err != nil {
		return nil, err
	}
	readings := monitoringpostgres.NewReadingRepository(pg.DB)

	bus := messaging.NewAMQP(cfg.AMQPURL, "monitoring-service", cfg.ConnectRetryInterval, logger)
	module := monitoringservice.NewModule(monitoringservice.Dependencies{
		Mappings:   mappings,
		Readings:   readings,
		Limits:     monitoringclient.NewRegistryClient(cfg.RegistryServiceURL),
		Publisher:  bus,
		Subscriber: bus,
		ReplicaID:  cfg.ReplicaID,
		Logger:     logger,
	})

	return &App{
		server: httpserver.NewMonitoring(module, logger, normalizeAddr(cfg.HTTPPort)),
		consumers: []func(ctx context.Context) error{
			module.DeviceConsumer.Start,
			module.ReadingConsumer.Start,
		},
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildNotification() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := slog.Default().With("service", "notification-service")

	hub := websocketadapter.NewHub(logger)
	bus := messaging.NewAMQP(cfg.AMQPURL, "notification-service", cfg.ConnectRetryInterval, logger)
	module := notificationservice.NewModule(notificationservice.Dependencies{
		Hub:        hub,
		Subscriber: bus,
		Logger:     logger,
	})

	return &App{
		server:    httpserver.NewNotification(hub, logger, normalizeAddr(cfg.HTTPPort)),
		consumers: []func(ctx context.Context) error{module.Consumer.Start},
		logger:    logger,
	}, nil
}

func BuildSimulator() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := slog.Default().With("service", "device-simulator")

	bus := messaging.NewAMQP(cfg.AMQPURL, "device-simulator", cfg.ConnectRetryInterval, logger)
	simulator := &devicesimulator.Simulator{
		Catalog:   simulatorclient.NewRegistryClient(cfg.RegistryServiceURL),
		Publisher: bus,
		Interval:  cfg.SimulationInterval,
		Logger:    logger,
	}

	return &App{
		run:    simulator.Run,
		logger: logger,
	}, nil
}

func connectPostgres(cfg config.Config) (*db.Postgres, error) {
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}
	return db.Connect(cfg.PostgresDSN)
}

func normalizeAddr(port string) string {
	if port == "" {
		return ":8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}
