package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"weather-lookup/internal/models"
	"weather-lookup/pkg/logger"
)

const (
	OpenWeatherBaseURL = "https://api.openweathermap.org/data/2.5"

	forecastPath = "/forecast"
	currentPath  = "/weather"

	// samples are always requested in °F and mph; conversion happens on display
	baseUnits = "imperial"
)

type OpenWeatherRepository struct {
	BaseURL string
	APIKey  string
	http    *resilientClient
	l       *logger.Logger
}

func NewOpenWeatherRepository(baseURL, apiKey string, l *logger.Logger, httpClient HTTPClient, policy RetryPolicy) (*OpenWeatherRepository, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if baseURL == "" {
		baseURL = OpenWeatherBaseURL
	}

	return &OpenWeatherRepository{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		http:    newResilientClient("openweathermap", httpClient, policy),
		l:       l,
	}, nil
}

func (w *OpenWeatherRepository) Name() string {
	return "openweathermap"
}

// FetchForecast returns the 5 day / 3 hour sample list for loc.
func (w *OpenWeatherRepository) FetchForecast(ctx context.Context, loc models.Location) (models.ForecastList, error) {
	var forecast models.ForecastList
	if err := w.get(ctx, forecastPath, loc, &forecast); err != nil {
		return forecast, err
	}

	w.l.Info("parsed API response", map[string]any{
		"repo":  w.Name(),
		"items": len(forecast.List),
	})

	if len(forecast.List) == 0 {
		return forecast, errors.New("no forecast data available")
	}

	return forecast, nil
}

// FetchCurrent returns the live conditions for loc.
func (w *OpenWeatherRepository) FetchCurrent(ctx context.Context, loc models.Location) (models.Sample, error) {
	var current models.Sample
	if err := w.get(ctx, currentPath, loc, &current); err != nil {
		return current, err
	}
	return current, nil
}

func (w *OpenWeatherRepository) get(ctx context.Context, path string, loc models.Location, out any) error {
	if strings.TrimSpace(w.APIKey) == "" {
		return ErrMissingAPIKey
	}

	query, err := locationQuery(loc)
	if err != nil {
		return err
	}
	query.Set("units", baseUnits)
	query.Set("appid", w.APIKey)

	endpoint := w.BaseURL + path + "?" + query.Encode()

	w.l.Info("making openweathermap API request", map[string]any{
		"path":   path,
		"params": loc.RequestParams(),
	})

	resp, err := w.http.do(ctx, func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	})
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound {
			return fmt.Errorf("%w: %s", ErrLocationNotFound, loc.RequestParams())
		}
		return fmt.Errorf("failed to do request: %w", err)
	}
	defer resp.Body.Close()

	w.l.Info("received openweathermap API response", map[string]any{
		"status":     resp.StatusCode,
		"statusText": resp.Status,
	})

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse JSON response: %w", err)
	}

	return nil
}

func locationQuery(loc models.Location) (url.Values, error) {
	values := url.Values{}

	switch {
	case strings.TrimSpace(loc.City) != "":
		values.Set("q", strings.TrimSpace(loc.City))
	case loc.Lat != nil && loc.Lon != nil:
		values.Set("lat", strconv.FormatFloat(*loc.Lat, 'f', -1, 64))
		values.Set("lon", strconv.FormatFloat(*loc.Lon, 'f', -1, 64))
	default:
		return nil, errors.New("location needs a city or a lat/lon pair")
	}

	return values, nil
}
