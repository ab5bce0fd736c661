package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"catalog-api/internal/cache"
	"catalog-api/internal/config"
	"catalog-api/internal/handler"
	"catalog-api/internal/repository"
	"catalog-api/internal/router"
	"catalog-api/internal/service"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting Catalog API...")

	// Load configuration
	cfg := config.MustLoad()
	log.Printf("Environment: %s", cfg.App.Environment)

	// Initialize catalog repository based on config
	var catalogRepo repository.CatalogRepository
	switch cfg.CatalogDB.Type {
	case "postgres", "postgresql":
		pgRepo, err := repository.NewPostgresCatalogRepository(cfg.CatalogDB.PostgresDSN())
		if err != nil {
			log.Fatalf("Failed to initialize PostgreSQL: %v", err)
		}
		catalogRepo = pgRepo
		log.Println("PostgreSQL catalog repository initialized")
	case "mysql":
		myRepo, err := repository.NewMySQLCatalogRepository(cfg.CatalogDB.MySQLDSN())
		if err != nil {
			log.Fatalf("Failed to initialize MySQL: %v", err)
		}
		catalogRepo = myRepo
		log.Println("MySQL catalog repository initialized")
	default: // sqlite
		sqliteRepo, err := repository.NewSQLiteCatalogRepository(cfg.CatalogDB.Path)
		if err != nil {
			log.Fatalf("Failed to initialize SQLite: %v", err)
		}
		catalogRepo = sqliteRepo
		log.Println("SQLite catalog repository initialized")
	}
	defer catalogRepo.Close()

	// Initialize cache backend. Redis is preferred in production; any
	// failure falls back to the in-memory cache so the API stays up.
	cacheType := cfg.Cache.Type
	var catalogCache cache.Cache
	if cacheType == "redis" {
		redisCache, err := cache.NewRedisCache(cache.RedisConfig{
			Addr:     cfg.Cache.RedisAddress(),
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		if err != nil {
			log.Printf("Warning: Redis connection failed, falling back to memory cache: %v", err)
			cacheType = "memory"
		} else {
			catalogCache = redisCache
			defer redisCache.Close()
		}
	}
	if catalogCache == nil {
		memCache := cache.NewMemoryCache()
		catalogCache = memCache
		defer memCache.Close()
		log.Println("Memory cache initialized")
	}

	// Initialize services: plain catalog service wrapped by the
	// cache-aside decorator.
	catalogService := service.NewCatalogService(catalogRepo)
	cachedCatalog := service.NewCachedCatalog(catalogService, catalogCache, service.CacheOptions{
		TTL:       cfg.Cache.TTL,
		KeyPrefix: cfg.Cache.KeyPrefix,
	})

	// Initialize handlers
	healthHandler := handler.New(cfg.App.Version)
	catalogHandler := handler.NewCatalogHandler(cachedCatalog, catalogRepo)
	adminHandler := handler.NewAdminHandler(catalogRepo, cfg.CatalogDB.Type, cacheType)

	// Create router
	r := router.New(router.Config{
		Handler:        healthHandler,
		CatalogHandler: catalogHandler,
		AdminHandler:   adminHandler,
		AdminKey:       cfg.App.AdminKey,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server listening on %s", cfg.Server.Address())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
