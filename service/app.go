package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"storenews/app/cache"
	"storenews/app/config"
	"storenews/app/controllers"
	"storenews/app/events"
	"storenews/app/factories"
	"storenews/app/logger"
	"storenews/app/middleware"
	"storenews/app/repositories"
	"storenews/app/routes"
	"storenews/app/services"
	"storenews/app/views"
)

// Application holds the wired storefront news components.
type Application struct {
	Config     *config.Config
	Repository *repositories.Repository
	Cache      *cache.RistrettoManager
	Bus        *events.Bus
	News       *services.NewsService
	Factory    *factories.NewsModelFactory
	Router     *mux.Router

	forwarder *events.AMQPForwarder
}

// NewApplication opens the configured storage and wires the application on it.
func NewApplication(cfg *config.Config) (*Application, error) {
	var (
		repo *repositories.Repository
		err  error
	)
	if cfg.Storage.InMemory {
		repo, err = repositories.NewInMemoryRepository()
	} else {
		repo, err = repositories.NewRepository(cfg.Storage.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	app, err := NewApplicationWithRepository(cfg, repo)
	if err != nil {
		repo.Close()
		return nil, err
	}
	return app, nil
}

// NewApplicationWithRepository wires the application on an open repository.
// The application takes ownership of repo.
func NewApplicationWithRepository(cfg *config.Config, repo *repositories.Repository) (*Application, error) {
	cacheManager, err := cache.NewRistrettoManager(cache.Options{
		NumCounters: cfg.Cache.NumCounters,
		MaxCost:     cfg.Cache.MaxCost,
		BufferItems: cfg.Cache.BufferItems,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}

	renderer, err := views.New()
	if err != nil {
		cacheManager.Close()
		return nil, err
	}

	bus := events.NewBus()
	cacheConsumer := factories.NewModelCacheEventConsumer(cacheManager)
	cacheConsumer.Subscribe(bus)

	app := &Application{
		Config:     cfg,
		Repository: repo,
		Cache:      cacheManager,
		Bus:        bus,
	}

	if cfg.Events.AMQPURL != "" {
		forwarder, err := events.NewAMQPForwarder(cfg.Events.AMQPURL, cfg.Events.Exchange)
		if err == nil {
			err = forwarder.Consume(cacheConsumer.HandleEvent)
			if err != nil {
				forwarder.Close()
			}
		}
		if err != nil {
			logger.Log.Warnf("event forwarding disabled: %v", err)
		} else {
			bus.Subscribe(forwarder.Handle)
			app.forwarder = forwarder
		}
	}

	app.News = services.NewNewsService(repo.News, repo.Comments, repo.Customers, bus)
	settings := factories.SettingsFromConfig(cfg)
	app.Factory = factories.NewNewsModelFactory(
		app.News,
		services.NewDateTimeHelper(cfg.DateTime),
		services.NewPictureService(repo.Pictures, cfg.HTTP.ImagesURL),
		services.NewURLRecordService(repo.URLRecords, repo.Languages),
		cacheManager,
		settings,
	)

	app.Router = routes.SetupRoutes(routes.Dependencies{
		News:        controllers.NewNewsController(app.News, app.Factory, renderer, cfg.News),
		WorkContext: middleware.NewWorkContextResolver(repo.Languages, repo.Stores, repo.Customers),
	})
	return app, nil
}

// Close releases the broker connection, the cache and the database.
func (a *Application) Close() error {
	if a.forwarder != nil {
		a.forwarder.Close()
	}
	a.Cache.Close()
	return a.Repository.Close()
}

// RunAppServer starts the storefront news service and blocks until SIGINT or SIGTERM.
func RunAppServer(args []string) int {
	configPath := ""
	for i := 0; i < len(args); i++ {
		if args[i] == "--config" && i+1 < len(args) {
			configPath = args[i+1]
			break
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		return 1
	}
	if err := logger.Init(cfg.Log.Level); err != nil {
		logger.Log.Warnf("unknown log level %q, using info", cfg.Log.Level)
	}

	app, err := NewApplication(cfg)
	if err != nil {
		logger.Log.Errorf("Failed to start: %v", err)
		return 1
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := Serve(ctx, app, cfg.HTTP.Addr()); err != nil {
		logger.Log.Errorf("Server error: %v", err)
		return 1
	}
	return 0
}

// Serve runs the HTTP server on addr until ctx is done, then shuts it down gracefully.
func Serve(ctx context.Context, app *Application, addr string) error {
	server := &http.Server{
		Addr:         addr,
		Handler:      app.Router,
		ReadTimeout:  app.Config.HTTP.ReadTimeout,
		WriteTimeout: app.Config.HTTP.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Log.Infof("Starting storefront news service on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	logger.Log.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}
	return nil
}
