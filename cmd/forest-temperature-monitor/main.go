package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/i474232898/forest-temperature-monitor/internal/api/http"
	"github.com/i474232898/forest-temperature-monitor/internal/config"
	"github.com/i474232898/forest-temperature-monitor/internal/scheduler"
	"github.com/i474232898/forest-temperature-monitor/internal/session"
	"github.com/i474232898/forest-temperature-monitor/internal/weather"
	"github.com/i474232898/forest-temperature-monitor/internal/weather/providers"
)

func main() {
	// Load configuration (also reads .env when present).
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	registry, err := weather.NewRegistry(cfg.Locations)
	if err != nil {
		log.Fatalf("failed to build location registry: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	opts := providers.Options{
		Client:    &http.Client{Timeout: cfg.HTTPTimeout},
		RateLimit: cfg.LiveRateLimit,
		Burst:     1,
	}

	// Live providers are optional; without any, readings are simulated.
	var provs []weather.Provider
	if cfg.OpenWeatherAPIKey != "" {
		provs = append(provs, providers.NewOpenWeatherProvider(opts, cfg.OpenWeatherAPIKey))
	}
	if cfg.WeatherAPIKey != "" {
		provs = append(provs, providers.NewWeatherAPIProvider(opts, cfg.WeatherAPIKey))
	}
	if cfg.OpenMeteoEnabled {
		provs = append(provs, providers.NewOpenMeteoProvider(opts))
	}
	if len(provs) == 0 {
		log.Println("INFO: no live weather providers configured; using simulated readings")
	}

	service := weather.NewService(provs)

	sessions, err := session.NewManager(registry, cfg.Defaults, time.Now)
	if err != nil {
		log.Fatalf("failed to create default session: %v", err)
	}
	log.Printf("INFO: default session %s monitoring %s", sessions.Default().ID, cfg.Defaults.Location)

	// Scheduler that periodically refreshes every session that is due.
	sched := scheduler.New(sessions, cfg.SchedulerTick, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := httpapi.NewApp(sessions, service, true)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
