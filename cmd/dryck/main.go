package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dryck/internal/catalog"
	"dryck/internal/climate"
	"dryck/internal/config"
	"dryck/internal/telemetry"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	var addr string
	var refresh bool
	var help bool

	flag.StringVar(&addr, "addr", "", "Address to bind (overrides ADDR)")
	flag.BoolVar(&refresh, "refresh", false, "Fetch the catalog once, write the snapshot and exit")
	flag.BoolVar(&help, "help", false, "Show help message")
	flag.BoolVar(&help, "h", false, "Show help message")
	flag.Parse()

	if help {
		showHelp()
		return
	}

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	ctx := context.Background()
	shutdownTelemetry, err := telemetry.Init(ctx, "dryck")
	if err != nil {
		log.Fatalf("failed to initialize telemetry: %v", err)
	}
	defer func() {
		_ = shutdownTelemetry(context.Background())
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	cache := newCache(cfg)

	if refresh {
		if err := runRefresh(ctx, cache); err != nil {
			log.Fatalf("refresh error: %v", err)
		}
		return
	}

	if err := runServer(cfg, cache); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func newCache(cfg *config.Config) *catalog.Cache {
	feed := catalog.NewFeedClient(cfg.Feed.URL, cfg.Feed.Timeout)
	return catalog.NewCache(feed, cfg.Cache.Dir, cfg.Cache.TTL)
}

func runRefresh(ctx context.Context, cache *catalog.Cache) error {
	products, err := cache.Products(ctx)
	if err != nil {
		return err
	}
	cache.Wait()
	fmt.Printf("catalog refreshed: %d products\n", len(products))
	return nil
}

func runServer(cfg *config.Config, cache *catalog.Cache) error {
	mux := http.NewServeMux()

	catalogServer := catalog.NewServer(cache)
	catalogServer.Register(mux)

	climate.NewServer().Register(mux)

	ro := &readyOnce{}
	ro.Add(catalogServer)
	mux.Handle("GET /ready", ro)

	mux.Handle("GET /metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           WithMiddleware(mux, cfg),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("Serving dryck", "address", cfg.Server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case sig := <-shutdown:
		slog.Info("Shutdown signal received", "signal", sig.String())
		return gracefulShutdown(server, cache.Wait)
	}
}

func gracefulShutdown(svr *http.Server, snapshotWait func()) error {
	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()

	if err := svr.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown error", "error", err)
		if closeErr := svr.Close(); closeErr != nil {
			slog.Error("Server close error", "error", closeErr)
		}
		return err
	}

	done := make(chan struct{})
	go func() {
		snapshotWait()
		close(done)
	}()

	select {
	case <-done:
		slog.Info("All snapshot writes completed")
	case <-ctx.Done():
		slog.Warn("Timeout waiting for snapshot writes")
		return ctx.Err()
	}
	return nil
}

func showHelp() {
	fmt.Println("dryck - climate score API for the national beverage catalog")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  dryck [-addr :8080]")
	fmt.Println("  dryck -refresh")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -addr       Address to bind (default from ADDR, :8080)")
	fmt.Println("  -refresh    Fetch the catalog once, write the snapshot and exit")
	fmt.Println("  -help, -h   Show this help message")
}
