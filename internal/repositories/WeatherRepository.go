package repositories

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"weather-lookup/config"
	"weather-lookup/internal/models"
	"weather-lookup/pkg/logger"
)

var (
	ErrMissingAPIKey        = errors.New("API key cannot be empty")
	ErrLocationNotFound     = errors.New("location not found")
	ErrPredictorUnavailable = errors.New("rain predictor unavailable")
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// WeatherRepository fetches raw samples from the weather upstream.
type WeatherRepository interface {
	Name() string
	FetchForecast(ctx context.Context, loc models.Location) (models.ForecastList, error)
	FetchCurrent(ctx context.Context, loc models.Location) (models.Sample, error)
}

// RainRepository asks the remote rain model for a prediction.
type RainRepository interface {
	Predict(ctx context.Context, req models.RainPredictionRequest) (models.RainPrediction, error)
}

// InitRepositories builds the upstream clients described by cfg. The weather
// repository falls back to Open-Meteo when a fallback URL is configured. The
// rain repository is nil when no predictor URL is configured.
func InitRepositories(cfg *config.Config, l *logger.Logger) (WeatherRepository, RainRepository, error) {
	weatherClient := &http.Client{Timeout: time.Duration(cfg.Weather.Timeout) * time.Second}
	weatherRepo, err := NewOpenWeatherRepository(
		cfg.Weather.BaseURL,
		cfg.Weather.APIKey,
		l,
		weatherClient,
		RetryPolicy{
			MaxRetries: cfg.Weather.MaxRetries,
			Backoff:    time.Duration(cfg.Weather.Backoff) * time.Millisecond,
		},
	)
	if err != nil {
		return nil, nil, fmt.Errorf("weather repository: %w", err)
	}

	var weather WeatherRepository = weatherRepo
	if cfg.FallbackEnabled() {
		openMeteo := NewOpenMeteoRepository(
			cfg.Weather.FallbackURL,
			l,
			weatherClient,
			RetryPolicy{
				MaxRetries: cfg.Weather.MaxRetries,
				Backoff:    time.Duration(cfg.Weather.Backoff) * time.Millisecond,
			},
		)
		weather = NewFallbackRepository(l, weatherRepo, openMeteo)
		l.Info("weather fallback enabled", map[string]any{"repos": weather.Name()})
	}

	if !cfg.RainEnabled() {
		l.Info("rain prediction disabled, no predictor url configured")
		return weather, nil, nil
	}

	rainClient := &http.Client{Timeout: time.Duration(cfg.Rain.Timeout) * time.Second}
	rainRepo, err := NewRainPredictionRepository(
		cfg.Rain.URL,
		l,
		rainClient,
		RetryPolicy{MaxRetries: cfg.Rain.MaxRetries},
	)
	if err != nil {
		return nil, nil, fmt.Errorf("rain repository: %w", err)
	}

	return weather, rainRepo, nil
}
