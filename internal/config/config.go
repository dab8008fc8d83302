package config

import (
	_ "embed"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/i474232898/forest-temperature-monitor/internal/session"
	"github.com/i474232898/forest-temperature-monitor/internal/weather"
)

//go:embed locations.yaml
var embeddedLocations []byte

var validate = validator.New()

type AppConfig struct {
	OpenWeatherAPIKey string
	WeatherAPIKey     string
	OpenMeteoEnabled  bool

	// LiveRateLimit caps outbound requests per second for each live provider.
	LiveRateLimit float64       `validate:"gte=0"`
	HTTPTimeout   time.Duration `validate:"gt=0"`

	// SchedulerTick controls how often sessions are checked for a due refresh.
	SchedulerTick time.Duration `validate:"gte=1s"`

	// Locations to monitor, in display order.
	Locations []weather.Location `validate:"required,min=1"`

	// Defaults applied to every new session; checked by Settings.Validate.
	Defaults session.Settings `validate:"-"`

	Port string `validate:"required,numeric"`
}

type locationsFile struct {
	Locations []weather.Location `yaml:"locations"`
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.WeatherAPIKey = os.Getenv("WEATHERAPI_API_KEY")
	cfg.OpenMeteoEnabled = getenvBool("OPENMETEO_ENABLED", false)
	cfg.LiveRateLimit = getenvFloat("LIVE_RATE_LIMIT_RPS", 1)

	timeout, err := time.ParseDuration(getenvDefault("HTTP_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	tick, err := time.ParseDuration(getenvDefault("SCHEDULER_TICK", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULER_TICK: %w", err)
	}
	cfg.SchedulerTick = tick

	cfg.Port = getenvDefault("PORT", "8080")

	locs, err := loadLocations(os.Getenv("LOCATIONS_FILE"))
	if err != nil {
		return nil, err
	}
	cfg.Locations = locs

	defaultLoc := getenvDefault("DEFAULT_LOCATION", locs[0].Name)
	cfg.Defaults = session.Settings{
		Location:               defaultLoc,
		RefreshIntervalMinutes: getenvInt("REFRESH_INTERVAL_MINUTES", 15),
		Thresholds: weather.Thresholds{
			Warning: getenvFloat("WARNING_THRESHOLD", weather.DefaultThresholds.Warning),
			Danger:  getenvFloat("DANGER_THRESHOLD", weather.DefaultThresholds.Danger),
		},
		Style: getenvDefault("RENDER_STYLE", session.StyleMarker),
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.Defaults.Validate(); err != nil {
		return nil, fmt.Errorf("invalid session defaults: %w", err)
	}

	return cfg, nil
}

// loadLocations reads the registry from path, or the embedded list when path is empty.
func loadLocations(path string) ([]weather.Location, error) {
	data := embeddedLocations
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read locations file %s: %w", path, err)
		}
		data = b
	}
	return parseLocations(data)
}

func parseLocations(data []byte) ([]weather.Location, error) {
	var f locationsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse locations: %w", err)
	}
	if len(f.Locations) == 0 {
		return nil, fmt.Errorf("parse locations: no locations defined")
	}
	return f.Locations, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}
