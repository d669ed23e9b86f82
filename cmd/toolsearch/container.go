package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/jakeolschewski/toolforge-ai-sub002/internal/cache"
	"github.com/jakeolschewski/toolforge-ai-sub002/internal/config"
	"github.com/jakeolschewski/toolforge-ai-sub002/internal/db"
	dbRedis "github.com/jakeolschewski/toolforge-ai-sub002/internal/db/redis"
	domtool "github.com/jakeolschewski/toolforge-ai-sub002/internal/domain/tool"
	"github.com/jakeolschewski/toolforge-ai-sub002/internal/metrics"
	"github.com/jakeolschewski/toolforge-ai-sub002/internal/repository/catalog"
	"github.com/jakeolschewski/toolforge-ai-sub002/internal/repository/resultcache"
	supabaserepo "github.com/jakeolschewski/toolforge-ai-sub002/internal/repository/supabase"
	toolrepo "github.com/jakeolschewski/toolforge-ai-sub002/internal/repository/tool"
	chiTransport "github.com/jakeolschewski/toolforge-ai-sub002/internal/transport/chi"
	healthuc "github.com/jakeolschewski/toolforge-ai-sub002/internal/usecase/health"
	searchuc "github.com/jakeolschewski/toolforge-ai-sub002/internal/usecase/search"
)

// storeCloser releases the Redis connection on shutdown.
type storeCloser interface {
	Close()
}

// redisParams carries the Redis store when the config needs one.
type redisParams struct {
	dig.In

	Store db.Store `optional:"true"`
}

// buildContainer wires the application graph. Redis is provided only when
// the source driver or the shared cache asks for it.
func buildContainer(cfg config.Config, logger *zap.Logger) *dig.Container {
	c := dig.New()

	provide := func(name string, constructor any) {
		if err := c.Provide(constructor); err != nil {
			logger.Fatal("Failed to provide "+name, zap.Error(err))
		}
	}

	provide("config", func() config.Config { return cfg })
	provide("logger", func() *zap.Logger { return logger })

	if cfg.UsesRedis() {
		provide("redis store", newStore)
		provide("store closer", func(s db.Store) storeCloser { return s })
	}

	provide("source", newSource)
	provide("local cache", newLocalCache)
	provide("search service", newSearchService)
	provide("health service", newHealthService)
	provide("server", newServer)
	provide("router", newRouter)

	return c
}

func newStore(cfg config.Config, logger *zap.Logger) (db.Store, error) {
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("create redis store: %w", err)
	}

	// Wait for database to be ready
	timeout := time.Duration(cfg.Database.ReadinessTimeout) * time.Second
	if err := store.WaitForReady(context.Background(), timeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("database not ready: %w", err)
	}
	logger.Info("Connected to database", zap.Strings("db_addrs", cfg.Database.Addrs))
	return store, nil
}

func newSource(cfg config.Config, rp redisParams, logger *zap.Logger) (searchuc.Source, error) {
	switch cfg.Source.Driver {
	case config.SourceFile:
		cat, err := catalog.Load(cfg.Source.CatalogPath)
		if err != nil {
			return nil, err
		}
		logger.Info("Loaded tool catalog",
			zap.String("path", cfg.Source.CatalogPath),
			zap.Int("tools", cat.Len()),
		)
		return cat, nil
	case config.SourceRedis:
		if rp.Store == nil {
			return nil, errors.New("redis source requires a database")
		}
		return toolrepo.New(rp.Store), nil
	case config.SourceSupabase:
		repo, err := supabaserepo.New(supabaserepo.Config{
			URL:    cfg.Source.Supabase.URL,
			APIKey: cfg.Source.Supabase.APIKey,
			Table:  cfg.Source.Supabase.Table,
		})
		if err != nil {
			return nil, err
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unknown source driver %q", cfg.Source.Driver)
	}
}

func newLocalCache(cfg config.Config) *cache.ResultCache[domtool.Tool] {
	return cache.NewResultCache[domtool.Tool](
		time.Duration(cfg.Cache.MaxAgeSec)*time.Second,
		cfg.Cache.Capacity,
	)
}

func newSearchService(
	cfg config.Config,
	source searchuc.Source,
	local *cache.ResultCache[domtool.Tool],
	rp redisParams,
	logger *zap.Logger,
) *searchuc.Service {
	// Pass a nil interface (not a typed nil pointer) when the shared tier is off.
	var shared searchuc.SharedCache
	if cfg.Cache.Shared && rp.Store != nil {
		shared = resultcache.New(rp.Store, time.Duration(cfg.Cache.SharedTTLSec)*time.Second, logger)
	}
	return searchuc.New(source, local, shared, searchuc.Options{
		MinScore:        cfg.Search.MinScore,
		SuggestionLimit: cfg.Search.SuggestionLimit,
	}, logger)
}

func newHealthService(source searchuc.Source, rp redisParams) *healthuc.Service {
	var dbPinger healthuc.DBPinger
	if rp.Store != nil {
		dbPinger = rp.Store
	}
	// Only remote sources expose Ping; the file catalog has nothing to check.
	var sourceChecker healthuc.SourceChecker
	if sc, ok := source.(healthuc.SourceChecker); ok {
		sourceChecker = sc
	}
	return healthuc.New(dbPinger, sourceChecker)
}

func newServer(
	cfg config.Config, search *searchuc.Service, health *healthuc.Service, logger *zap.Logger,
) *chiTransport.Server {
	return chiTransport.NewServer(search, health, chiTransport.Options{
		DefaultPageSize:    cfg.Search.DefaultPageSize,
		MaxPageSize:        cfg.Search.MaxPageSize,
		CacheControlMaxAge: cfg.HTTP.CacheControlMaxAge,
	}, logger)
}

func newRouter(cfg config.Config, server *chiTransport.Server, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.CORSMiddleware(chiTransport.CORSOptions{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}))
	r.Use(metrics.Middleware())
	server.Routes(r, cfg.Auth.AdminAPIKeys)
	return r
}
