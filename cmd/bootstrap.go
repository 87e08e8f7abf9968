package cmd

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/config"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/auth"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/cache"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/database"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/i18n"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/messaging"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/metrics"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/models"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/repositories"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/search"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/services"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/tracing"
)

// application is the wired process shared by the api and worker commands
type application struct {
	db         *gorm.DB
	cache      *cache.RedisCache
	index      *search.ElasticClient
	bus        *messaging.ServiceBus
	tracer     *tracing.Tracer
	metrics    *metrics.Metrics
	translator *i18n.Catalog
	services   *services.Services
}

// bootstrap connects every backing service. Optional integrations that fail
// to start are logged and left disabled.
func bootstrap(cfg config.Config) (*application, error) {
	app := &application{
		metrics:    metrics.NewMetrics(),
		translator: i18n.New(cfg.I18n.DefaultLanguage),
	}

	db, err := database.Connect(cfg.DB, app.metrics)
	if err != nil {
		return nil, err
	}
	app.db = db
	if err := models.SetupModels(db); err != nil {
		return nil, err
	}
	app.metrics.SetHealth("database", true)

	app.cache, err = cache.NewRedisCache(cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize Redis cache, continuing without caching")
		app.metrics.SetHealth("redis", false)
	} else if app.cache.Enabled() {
		app.metrics.SetHealth("redis", true)
	}

	app.tracer, err = tracing.NewTracer(cfg.Tracing)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize tracer, continuing without tracing")
	}

	app.index, err = search.NewElasticClient(cfg.Elastic)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize Elasticsearch client, continuing without search functionality")
		app.metrics.SetHealth("elasticsearch", false)
	} else if app.index.Enabled() {
		app.metrics.SetHealth("elasticsearch", true)
	}

	app.bus, err = messaging.NewServiceBus(cfg.Azure)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize Azure Service Bus, continuing without events")
	}

	app.services = services.New(&services.Dependencies{
		Store:      repositories.NewStore(db),
		Cache:      app.cache,
		Index:      app.index,
		Publisher:  app.bus,
		Metrics:    app.metrics,
		Translator: app.translator,
		Tokens:     auth.NewTokenManager(cfg.Auth),
		Settings:   services.SettingsFromConfig(cfg),
	})

	return app, nil
}

// Close releases every connection opened by bootstrap
func (a *application) Close() {
	if err := a.bus.Close(); err != nil {
		log.Error().Err(err).Msg("Error closing Service Bus")
	}
	if err := a.cache.Close(); err != nil {
		log.Error().Err(err).Msg("Error closing Redis cache")
	}
	a.tracer.Close()

	if sqlDB, err := a.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing database")
		}
	}
}
