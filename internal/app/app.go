package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/niksmo/storefront/config"
	"github.com/niksmo/storefront/internal/adapter/httphandler"
	"github.com/niksmo/storefront/internal/adapter/kafka"
	"github.com/niksmo/storefront/internal/adapter/storage"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/niksmo/storefront/pkg/retry"
	"github.com/niksmo/storefront/pkg/schema"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/twmb/franz-go/pkg/sr"
)

type App struct {
	ctx        context.Context
	cfg        config.Config
	eventSerde schema.Serde
	producer   port.ClientEventsProducer
	service    service.Service
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()

	catalog := app.loadCatalog()

	if cfg.EventsEnabled() {
		app.initEventSerde()
		app.initEventsProducer()
	}

	app.service = service.New(catalog, app.producer)
	app.initHTTPServer()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) loadCatalog() domain.Catalog {
	const op = "App.loadCatalog"

	fileStorage := storage.NewFileStorage(
		app.cfg.Catalog.ProductsFile, app.cfg.Catalog.CategoriesFile,
	)
	catalog, err := fileStorage.LoadCatalog(app.ctx)
	if err != nil {
		app.fallDown(op, err)
	}
	return catalog
}

func (app *App) initEventSerde() {
	const op = "App.initEventSerde"
	urls := app.cfg.Broker.SchemaRegistryURLs

	srClient, err := sr.NewClient(sr.URLs(urls...))
	if err != nil {
		app.fallDown(op, err)
	}

	schemaCreater := schema.NewSchemaCreater(srClient)
	subject := app.cfg.Broker.Topics.ClientEvents + "-value"

	// the registry may still be warming up alongside the service
	retryCfg := retry.RetryConfig{
		MaxAttempts: 5,
		Backoff:     retry.ExponentialBackoff(200 * time.Millisecond),
	}
	eventSerde, err := retry.DoWithResult(
		app.ctx, retryCfg,
		func() (schema.Serde, error) {
			return schema.NewSerdeClientEventV1(
				app.ctx,
				schema.SubjectOpt(subject),
				schema.SchemaIdentifierOpt(schemaCreater),
			)
		},
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.eventSerde = eventSerde
}

func (app *App) initEventsProducer() {
	const op = "App.initEventsProducer"

	producer, err := kafka.NewClientEventsProducer(
		kafka.ProducerClientOpt(
			app.ctx,
			app.cfg.Broker.SeedBrokers,
			app.cfg.Broker.Topics.ClientEvents,
		),
		kafka.ProducerEncoderOpt(app.eventSerde),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.producer = producer
}

func (app *App) initHTTPServer() {
	mux := http.NewServeMux()
	httphandler.RegisterProducts(mux, app.service)
	httphandler.RegisterCategories(mux, app.service, app.service)
	httphandler.RegisterSearch(mux, app.service)
	httphandler.RegisterStats(mux, app.service)
	httphandler.RegisterHealth(mux)
	mux.Handle("GET /metrics", promhttp.Handler())

	handler := httphandler.WithMetrics(mux)
	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	if app.producer != nil {
		app.producer.Close()
	}

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
