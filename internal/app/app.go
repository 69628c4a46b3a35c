package app

import (
	"context"
	"fmt"
	"net/http"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/rs/zerolog/log"

	"github.com/MikhailRaia/link-shortener/internal/config"
	"github.com/MikhailRaia/link-shortener/internal/handler"
	"github.com/MikhailRaia/link-shortener/internal/service"
	"github.com/MikhailRaia/link-shortener/internal/storage"
	"github.com/MikhailRaia/link-shortener/internal/storage/file"
	"github.com/MikhailRaia/link-shortener/internal/storage/memory"
	"github.com/MikhailRaia/link-shortener/internal/storage/postgres"
	"github.com/MikhailRaia/link-shortener/internal/storage/s3store"
)

type App struct {
	config   *config.Config
	store    storage.Store
	resolver *service.Resolver
	handler  http.Handler
	closeFn  func()
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	store, closeFn, err := NewStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	resolver := service.NewResolver(store)

	var pinger storage.Pinger
	if p, ok := store.(storage.Pinger); ok {
		pinger = p
	}

	httpHandler := handler.NewHandler(resolver, pinger)

	return &App{
		config:   cfg,
		store:    store,
		resolver: resolver,
		handler:  httpHandler.RegisterRoutes(),
		closeFn:  closeFn,
	}, nil
}

// NewStore opens the backend selected by cfg. The returned function
// releases its resources.
func NewStore(ctx context.Context, cfg *config.Config) (storage.Store, func(), error) {
	noop := func() {}

	switch cfg.StoreType {
	case config.StoreS3:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("loading aws default config: %w", err)
		}

		opts := s3store.ClientOptions(s3store.Options{
			Region:          cfg.BucketRegion,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
		})

		log.Info().
			Str("bucket", cfg.BucketName).
			Str("region", cfg.BucketRegion).
			Str("prefix", cfg.KeyPrefix).
			Msg("Using S3 link store")

		return s3store.NewStorage(awsCfg, cfg.BucketName, cfg.KeyPrefix, opts...), noop, nil

	case config.StoreFile:
		s, err := file.NewStorage(cfg.FileStoragePath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening file store: %w", err)
		}
		log.Info().Str("path", cfg.FileStoragePath).Msg("Using file link store")
		return s, noop, nil

	case config.StorePostgres:
		s, err := postgres.NewStorage(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("opening postgres store: %w", err)
		}
		log.Info().Msg("Using postgres link store")
		return s, s.Close, nil

	case config.StoreMemory:
		log.Warn().Msg("Using in-memory link store, links are lost on exit")
		return memory.NewStorage(), noop, nil

	default:
		return nil, nil, fmt.Errorf("unknown store type %q", cfg.StoreType)
	}
}

// Handler returns the HTTP router.
func (a *App) Handler() http.Handler {
	return a.handler
}

// EdgeHandler returns the Lambda@Edge event handler sharing the app's
// resolver.
func (a *App) EdgeHandler() *handler.EdgeHandler {
	return handler.NewEdgeHandler(a.resolver)
}

// Store returns the backend, for seeding links.
func (a *App) Store() storage.Store {
	return a.store
}

func (a *App) Run() error {
	log.Info().
		Str("address", a.config.ServerAddress).
		Str("store", a.config.StoreType).
		Msg("Starting server")
	return http.ListenAndServe(a.config.ServerAddress, a.handler)
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
