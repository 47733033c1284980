package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-lookup/config"
	"weather-lookup/internal/models"
)

type stubRepository struct {
	name     string
	forecast models.ForecastList
	current  models.Sample
	err      error
	calls    int
}

func (s *stubRepository) Name() string { return s.name }

func (s *stubRepository) FetchForecast(ctx context.Context, loc models.Location) (models.ForecastList, error) {
	s.calls++
	return s.forecast, s.err
}

func (s *stubRepository) FetchCurrent(ctx context.Context, loc models.Location) (models.Sample, error) {
	s.calls++
	return s.current, s.err
}

func TestFallbackRepository_Name(t *testing.T) {
	repo := NewFallbackRepository(testLogger(), &stubRepository{name: "a"}, &stubRepository{name: "b"})
	assert.Equal(t, "a,b", repo.Name())
}

func TestFallbackRepository_PrimaryAnswers(t *testing.T) {
	primary := &stubRepository{name: "primary", current: models.Sample{Dt: 1}}
	secondary := &stubRepository{name: "secondary", current: models.Sample{Dt: 2}}

	repo := NewFallbackRepository(testLogger(), primary, secondary)

	current, err := repo.FetchCurrent(context.Background(), coords(1, 1))
	require.NoError(t, err)
	assert.Equal(t, int64(1), current.Dt)
	assert.Equal(t, 0, secondary.calls)
}

func TestFallbackRepository_FallsBack(t *testing.T) {
	primary := &stubRepository{name: "primary", err: &StatusError{Code: 503, Status: "503 Service Unavailable"}}
	secondary := &stubRepository{name: "secondary", forecast: models.ForecastList{List: []models.Sample{{Dt: 2}}}}

	repo := NewFallbackRepository(testLogger(), primary, secondary)

	forecast, err := repo.FetchForecast(context.Background(), coords(1, 1))
	require.NoError(t, err)
	assert.Len(t, forecast.List, 1)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, secondary.calls)
}

func TestFallbackRepository_NotFoundIsFinal(t *testing.T) {
	primary := &stubRepository{name: "primary", err: ErrLocationNotFound}
	secondary := &stubRepository{name: "secondary"}

	repo := NewFallbackRepository(testLogger(), primary, secondary)

	_, err := repo.FetchForecast(context.Background(), city("Atlantis"))
	assert.ErrorIs(t, err, ErrLocationNotFound)
	assert.Equal(t, 0, secondary.calls)
}

func TestFallbackRepository_AllFail(t *testing.T) {
	primaryErr := errors.New("timeout")
	primary := &stubRepository{name: "primary", err: primaryErr}
	secondary := &stubRepository{name: "secondary", err: ErrCoordinatesRequired}

	repo := NewFallbackRepository(testLogger(), primary, secondary)

	_, err := repo.FetchCurrent(context.Background(), city("London"))
	require.Error(t, err)
	assert.ErrorIs(t, err, primaryErr)
	assert.ErrorIs(t, err, ErrCoordinatesRequired)
}

func TestFallbackRepository_Empty(t *testing.T) {
	repo := NewFallbackRepository(testLogger())

	_, err := repo.FetchForecast(context.Background(), city("London"))
	assert.EqualError(t, err, "no weather repositories configured")
}

func TestInitRepositories(t *testing.T) {
	t.Run("missing api key", func(t *testing.T) {
		cfg := config.Default()

		_, _, err := InitRepositories(cfg, testLogger())
		assert.ErrorIs(t, err, ErrMissingAPIKey)
	})

	t.Run("openweathermap only", func(t *testing.T) {
		cfg := config.Default()
		cfg.Weather.APIKey = "key"

		weather, rain, err := InitRepositories(cfg, testLogger())
		require.NoError(t, err)
		assert.Equal(t, "openweathermap", weather.Name())
		assert.Nil(t, rain)
	})

	t.Run("fallback and rain", func(t *testing.T) {
		cfg := config.Default()
		cfg.Weather.APIKey = "key"
		cfg.Weather.FallbackURL = OpenMeteoBaseURL
		cfg.Rain.URL = "http://127.0.0.1:5000/predict-rain-ml"

		weather, rain, err := InitRepositories(cfg, testLogger())
		require.NoError(t, err)
		assert.Equal(t, "openweathermap,open-meteo", weather.Name())
		assert.NotNil(t, rain)
	})
}
