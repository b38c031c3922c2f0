package app

import (
	"go.uber.org/zap"

	"github.com/auraflux/auraflux/internal/cache"
	"github.com/auraflux/auraflux/internal/classifier"
	"github.com/auraflux/auraflux/internal/config"
	"github.com/auraflux/auraflux/internal/cookies"
	"github.com/auraflux/auraflux/internal/dedup"
	apperrors "github.com/auraflux/auraflux/internal/errors"
	"github.com/auraflux/auraflux/internal/handlers"
	"github.com/auraflux/auraflux/internal/pool"
	"github.com/auraflux/auraflux/internal/proxy"
	"github.com/auraflux/auraflux/internal/resolver"
	"github.com/auraflux/auraflux/internal/shortlink"
)

// Container holds all application dependencies
type Container struct {
	Config          *config.Config
	Logger          *zap.Logger
	Store           *shortlink.Store
	Resolver        resolver.Resolver
	ResolutionCache *cache.ResolutionCache
	Classifier      *classifier.Classifier
	Cookies         *cookies.Resolver
	Flight          *dedup.Singleflight
	HTTPPool        *pool.HTTPClientPool
	Proxy           *proxy.Proxy

	MediaHandler    *handlers.MediaHandler
	DownloadHandler *handlers.DownloadHandler
	MetaHandler     *handlers.MetaHandler
	HealthHandler   *handlers.HealthHandler
}

// NewContainer creates and initializes a new application container
func NewContainer(logger *zap.Logger) (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, apperrors.ErrConfigInvalid.WithCause(err)
	}

	logger.Info("Configuration loaded successfully",
		zap.Int("api_port", cfg.API.Port),
		zap.String("public_base_url", cfg.API.PublicBaseURL),
		zap.Int("shortlink_capacity", cfg.ShortLinks.Capacity),
		zap.Duration("shortlink_ttl", cfg.ShortLinks.TTL),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
	)

	// Short-link store with background expiry sweep
	store := shortlink.New(cfg.ShortLinks.Capacity, cfg.ShortLinks.TTL, logger)
	store.StartJanitor(cfg.ShortLinks.SweepInterval)

	// Optional redis-backed resolution cache; a connection failure
	// degrades to uncached operation rather than refusing to start.
	var resCache *cache.ResolutionCache
	if cfg.Cache.Enabled {
		resCache, err = cache.NewResolutionCache(cfg.Cache.Address, cfg.Cache.TTL, logger)
		if err != nil {
			logger.Warn("Failed to initialize resolution cache, continuing without it",
				zap.Error(err),
			)
			resCache = nil
		} else {
			logger.Info("Resolution cache initialized",
				zap.String("redis_addr", cfg.Cache.Address),
			)
		}
	}

	ytdlp := resolver.NewYtDlp(
		cfg.Resolver.BinaryPath,
		cfg.Resolver.Timeout,
		logger,
		resCache,
	)

	cookieResolver := cookies.NewResolver(cfg.Cookies.Dir, logger)
	flight := dedup.NewSingleflight()
	cls := classifier.New(store, cfg.API.PublicBaseURL, logger)

	httpPool := pool.NewHTTPClientPool(cfg.Proxy.FetchTimeout)
	redirectProxy := proxy.New(httpPool, logger)

	return &Container{
		Config:          cfg,
		Logger:          logger,
		Store:           store,
		Resolver:        ytdlp,
		ResolutionCache: resCache,
		Classifier:      cls,
		Cookies:         cookieResolver,
		Flight:          flight,
		HTTPPool:        httpPool,
		Proxy:           redirectProxy,

		MediaHandler:    handlers.NewMediaHandler(ytdlp, cls, cookieResolver, flight, logger),
		DownloadHandler: handlers.NewDownloadHandler(store, redirectProxy, logger),
		MetaHandler:     handlers.NewMetaHandler(cfg.API.StatusMessage),
		HealthHandler:   handlers.NewHealthHandler(store, logger),
	}, nil
}

// Close closes all resources
func (c *Container) Close() error {
	c.Logger.Info("Closing application container")

	c.Store.Close()
	c.HTTPPool.Close()

	if c.ResolutionCache != nil {
		if err := c.ResolutionCache.Close(); err != nil {
			return err
		}
	}

	return nil
}
