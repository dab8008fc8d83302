package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/forest-temperature-monitor/internal/weather"
)

var blackForest = weather.Location{Name: "Black Forest, Germany", Lat: 48.2647, Lon: 8.2735}

func testOptions() Options {
	return Options{Client: &http.Client{Timeout: 2 * time.Second}}
}

func TestOpenWeatherFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "48.2647", r.URL.Query().Get("lat"))
		assert.Equal(t, "8.2735", r.URL.Query().Get("lon"))
		assert.Equal(t, "secret", r.URL.Query().Get("appid"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		w.Write([]byte(`{"main":{"temp":21.5,"humidity":64},"wind":{"speed":5}}`))
	}))
	defer srv.Close()

	p := NewOpenWeatherProvider(testOptions(), "secret")
	p.baseURL = srv.URL

	r, err := p.Fetch(context.Background(), blackForest)
	require.NoError(t, err)
	assert.Equal(t, 21.5, r.Temperature)
	assert.Equal(t, 64.0, r.Humidity)
	assert.Equal(t, 18.0, r.WindSpeed)
	assert.Equal(t, "openweathermap", r.Source)
}

func TestOpenWeatherRequiresKey(t *testing.T) {
	p := NewOpenWeatherProvider(testOptions(), "")
	_, err := p.Fetch(context.Background(), blackForest)
	assert.Error(t, err)
}

func TestOpenWeatherUnauthorizedIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	p := NewOpenWeatherProvider(testOptions(), "bad")
	p.baseURL = srv.URL

	_, err := p.Fetch(context.Background(), blackForest)
	assert.ErrorIs(t, err, errUnexpected)
	assert.Equal(t, int32(1), calls.Load())
}

func TestWeatherAPIFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "48.2647,8.2735", r.URL.Query().Get("q"))
		w.Write([]byte(`{"current":{"temp_c":19.1,"humidity":70,"wind_kph":11.2}}`))
	}))
	defer srv.Close()

	p := NewWeatherAPIProvider(testOptions(), "key")
	p.baseURL = srv.URL

	r, err := p.Fetch(context.Background(), blackForest)
	require.NoError(t, err)
	assert.Equal(t, weather.Reading{Temperature: 19.1, Humidity: 70, WindSpeed: 11.2, Source: "weatherapi"}, r)
}

func TestOpenMeteoFetchRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		assert.Contains(t, r.URL.Query().Get("current"), "relative_humidity_2m")
		w.Write([]byte(`{"current":{"temperature_2m":12.3,"relative_humidity_2m":81,"wind_speed_10m":7.4}}`))
	}))
	defer srv.Close()

	p := NewOpenMeteoProvider(testOptions())
	p.baseURL = srv.URL
	p.httpCfg.Backoff.InitialInterval = time.Millisecond

	r, err := p.Fetch(context.Background(), blackForest)
	require.NoError(t, err)
	assert.Equal(t, 12.3, r.Temperature)
	assert.Equal(t, 81.0, r.Humidity)
	assert.Equal(t, 7.4, r.WindSpeed)
	assert.Equal(t, int32(2), calls.Load())
}

func TestOpenMeteoMissingBlock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	p := NewOpenMeteoProvider(testOptions())
	p.baseURL = srv.URL

	_, err := p.Fetch(context.Background(), blackForest)
	assert.Error(t, err)
}

func TestFailingProviderFallsBackToSimulation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	p := NewOpenWeatherProvider(testOptions(), "dead-key")
	p.baseURL = srv.URL

	now := time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC)
	svc := weather.NewService([]weather.Provider{p})

	got := svc.Current(context.Background(), blackForest, now, nil)
	assert.Equal(t, weather.GenerateReading(blackForest.Lat, blackForest.Lon, now), got)
}

func TestRateLimiterIsConfigured(t *testing.T) {
	cfg := newHTTPConfig(Options{Client: http.DefaultClient, RateLimit: 2})
	require.NotNil(t, cfg.Limiter)
	assert.Equal(t, 1, cfg.Limiter.Burst())

	assert.Nil(t, newHTTPConfig(Options{Client: http.DefaultClient}).Limiter)
}

func TestNoClientConfigured(t *testing.T) {
	p := NewOpenMeteoProvider(Options{})
	_, err := p.Fetch(context.Background(), blackForest)
	assert.ErrorIs(t, err, errNoHTTPClient)
}
