package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"abod-card-app/internal/cache"
	"abod-card-app/internal/config"
	"abod-card-app/internal/gateway"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting Abod Card gateway...")

	// Load configuration
	cfg := config.MustLoad()
	log.Printf("Environment: %s", cfg.App.Environment)

	// Initialize catalog response cache based on config
	var catalogCache cache.Cache
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := cache.NewRedisCache(cache.RedisConfig{
			Addr:     cfg.Cache.RedisAddress(),
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		if err != nil {
			log.Printf("Warning: Redis connection failed, falling back to memory cache: %v", err)
			catalogCache = cache.NewMemoryCache()
		} else {
			defer redisCache.Close()
			catalogCache = redisCache
			log.Println("Redis catalog cache initialized")
		}
	default: // memory
		memCache := cache.NewMemoryCache()
		defer memCache.Close()
		catalogCache = memCache
		log.Println("Memory catalog cache initialized")
	}

	// Initialize upstream proxy
	proxy, err := gateway.NewProxy(cfg.Gateway.UpstreamURL, catalogCache, cfg.Cache.TTL)
	if err != nil {
		log.Fatalf("Failed to initialize proxy: %v", err)
	}
	log.Printf("Proxying upstream %s", cfg.Gateway.UpstreamURL)

	// Create router
	r := gateway.New(gateway.Config{Proxy: proxy})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Gateway.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Gateway.ReadTimeout,
		WriteTimeout: cfg.Gateway.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Gateway listening on %s", cfg.Gateway.Address())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down gateway...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Gateway.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Gateway stopped")
}
