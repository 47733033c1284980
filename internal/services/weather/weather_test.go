package weather_test

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-lookup/internal/display"
	"weather-lookup/internal/models"
	"weather-lookup/internal/repositories"
	"weather-lookup/internal/services/weather"
	"weather-lookup/pkg/logger"
)

// MockRepository implements WeatherRepository for testing
type MockRepository struct {
	forecast     models.ForecastList
	current      models.Sample
	forecastErr  error
	currentErr   error
	shouldDelay  bool
	forecastHits atomic.Int32
	currentHits  atomic.Int32
}

func (m *MockRepository) Name() string {
	return "mock"
}

func (m *MockRepository) FetchForecast(ctx context.Context, loc models.Location) (models.ForecastList, error) {
	m.forecastHits.Add(1)
	if err := m.wait(ctx); err != nil {
		return models.ForecastList{}, err
	}
	return m.forecast, m.forecastErr
}

func (m *MockRepository) FetchCurrent(ctx context.Context, loc models.Location) (models.Sample, error) {
	m.currentHits.Add(1)
	if err := m.wait(ctx); err != nil {
		return models.Sample{}, err
	}
	return m.current, m.currentErr
}

func (m *MockRepository) wait(ctx context.Context) error {
	if !m.shouldDelay {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

// MockRainRepository implements RainRepository for testing
type MockRainRepository struct {
	prediction models.RainPrediction
	err        error
	last       models.RainPredictionRequest
}

func (m *MockRainRepository) Predict(ctx context.Context, req models.RainPredictionRequest) (models.RainPrediction, error) {
	m.last = req
	return m.prediction, m.err
}

func testLogger() *logger.Logger {
	return logger.NewZapLogger("test-app", io.Discard)
}

func sample(dtTxt string, temp float64, main string) models.Sample {
	return models.Sample{
		DtTxt: dtTxt,
		Main:  models.SampleMain{Temp: temp, FeelsLike: temp, Humidity: 55, Pressure: 1012},
		Wind:  models.SampleWind{Speed: 2.23694},
		Items: []models.Condition{{Main: main, Description: "some " + main, Icon: "01d"}},
	}
}

func forecastList() models.ForecastList {
	list := models.ForecastList{List: []models.Sample{
		sample("2025-08-08 00:00:00", 32, "Clear"),
		sample("2025-08-08 03:00:00", 50, "Clouds"),
		sample("bad-timestamp", 99, "Rain"),
		sample("2025-08-09 00:00:00", 212, "Rain"),
		sample("2025-08-10 00:00:00", 68, "Tornado"),
	}}
	list.City.Name = "London"
	list.City.Country = "GB"
	return list
}

func londonMetric() weather.LookupRequest {
	return weather.LookupRequest{Location: models.Location{City: "London"}, Unit: display.Metric}
}

func TestNewWeatherService(t *testing.T) {
	service := weather.NewWeatherService(&MockRepository{}, nil, testLogger())
	assert.NotNil(t, service)
}

func TestWeatherService_Lookup(t *testing.T) {
	current := sample("", 212, "Clouds")
	current.Dt = 1754611200

	repo := &MockRepository{forecast: forecastList(), current: current}
	service := weather.NewWeatherService(repo, nil, testLogger())

	report, err := service.Lookup(context.Background(), londonMetric())
	require.NoError(t, err)

	assert.Equal(t, int32(1), repo.forecastHits.Load())
	assert.Equal(t, int32(1), repo.currentHits.Load())

	assert.Equal(t, "London", report.Location)
	assert.Equal(t, "GB", report.Country)
	assert.Equal(t, display.Metric, report.Unit)
	assert.Equal(t, "°C", report.TemperatureSymbol)
	assert.Equal(t, "m/s", report.WindSymbol)
	assert.Nil(t, report.Rain)

	assert.Equal(t, 100.0, report.Current.Temperature)
	assert.Equal(t, "100.0°C", report.Current.TemperatureText)
	assert.Equal(t, 1.0, report.Current.WindSpeed)
	assert.Equal(t, "1.0 m/s", report.Current.WindText)
	assert.Equal(t, "cloudy", report.Current.Phrase)
	assert.Equal(t, "Some Clouds", report.Current.Description)
	assert.Equal(t, "clouds", report.Current.AssetKey)
	assert.Equal(t, "2025-08-08", report.Current.Date)

	// first sample of each day wins, the malformed one is skipped
	require.Len(t, report.Daily, 3)
	assert.Equal(t, "2025-08-08", report.Daily[0].Date)
	assert.Equal(t, "Friday", report.Daily[0].Weekday)
	assert.Equal(t, 0.0, report.Daily[0].Temperature)
	assert.Equal(t, "sunny", report.Daily[0].Phrase)
	assert.Equal(t, 100.0, report.Daily[1].Temperature)
	assert.Equal(t, "rainy", report.Daily[1].Phrase)
	assert.Equal(t, "Weather: Tornado", report.Daily[2].Phrase)
	assert.Equal(t, "default", report.Daily[2].AssetKey)
}

func TestWeatherService_Lookup_Imperial(t *testing.T) {
	repo := &MockRepository{forecast: forecastList(), current: sample("", 72.54, "Clear")}
	service := weather.NewWeatherService(repo, nil, testLogger())

	report, err := service.Lookup(context.Background(), weather.LookupRequest{
		Location: models.Location{City: "London"},
		Unit:     display.Imperial,
	})
	require.NoError(t, err)

	assert.Equal(t, 72.5, report.Current.Temperature)
	assert.Equal(t, "72.5°F", report.Current.TemperatureText)
	assert.Equal(t, "2.2 MPH", report.Current.WindText)
	assert.Equal(t, "°F", report.TemperatureSymbol)
}

func TestWeatherService_Lookup_AttachesRainOutlook(t *testing.T) {
	current := sample("", 62.33, "Rain")
	current.Dt = 1433160000 // 2015-06-01T12:00:00Z

	rain := &MockRainRepository{prediction: models.RainPrediction{WillRain: true, Source: "ml"}}
	service := weather.NewWeatherService(&MockRepository{forecast: forecastList(), current: current}, rain, testLogger())

	report, err := service.Lookup(context.Background(), londonMetric())
	require.NoError(t, err)
	require.NotNil(t, report.Rain)
	assert.True(t, report.Rain.WillRain)

	// the model expects Kelvin and m/s
	assert.InDelta(t, 290.0, rain.last.Temp, 0.01)
	assert.InDelta(t, 1.0, rain.last.WindSpeed, 1e-9)
	assert.Equal(t, 55.0, rain.last.Humidity)
	assert.Equal(t, 1012.0, rain.last.Pressure)
	assert.Equal(t, "2015-06-01T12:00:00Z", rain.last.TimestampISO)
}

func TestWeatherService_Lookup_RainFailureIsTolerated(t *testing.T) {
	rain := &MockRainRepository{err: repositories.ErrPredictorUnavailable}
	service := weather.NewWeatherService(&MockRepository{forecast: forecastList(), current: sample("", 50, "Clear")}, rain, testLogger())

	report, err := service.Lookup(context.Background(), londonMetric())
	require.NoError(t, err)
	assert.Nil(t, report.Rain)
	assert.Len(t, report.Daily, 3)
}

func TestWeatherService_Lookup_LocationNotFound(t *testing.T) {
	repo := &MockRepository{
		currentErr:  repositories.ErrLocationNotFound,
		forecastErr: repositories.ErrLocationNotFound,
	}
	service := weather.NewWeatherService(repo, nil, testLogger())

	_, err := service.Lookup(context.Background(), londonMetric())
	assert.ErrorIs(t, err, repositories.ErrLocationNotFound)
}

func TestWeatherService_Lookup_UpstreamFailure(t *testing.T) {
	repo := &MockRepository{forecast: forecastList(), currentErr: errors.New("mock repository error")}
	service := weather.NewWeatherService(repo, nil, testLogger())

	_, err := service.Lookup(context.Background(), londonMetric())
	require.Error(t, err)
	assert.NotErrorIs(t, err, repositories.ErrLocationNotFound)
	assert.ErrorContains(t, err, "mock repository error")
}

func TestWeatherService_Lookup_ContextCancelled(t *testing.T) {
	repo := &MockRepository{forecast: forecastList(), shouldDelay: true}
	service := weather.NewWeatherService(repo, nil, testLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := service.Lookup(ctx, londonMetric())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWeatherService_Lookup_InvalidRequest(t *testing.T) {
	service := weather.NewWeatherService(&MockRepository{}, nil, testLogger())
	lat, lon, badLat := 10.0, 20.0, 120.0

	tests := []struct {
		name string
		req  weather.LookupRequest
		want error
	}{
		{"no location", weather.LookupRequest{Unit: display.Metric}, weather.ErrInvalidRequest},
		{"lat only", weather.LookupRequest{Location: models.Location{Lat: &lat}, Unit: display.Metric}, weather.ErrInvalidRequest},
		{"lat out of range", weather.LookupRequest{Location: models.Location{Lat: &badLat, Lon: &lon}, Unit: display.Metric}, weather.ErrInvalidRequest},
		{"bad unit", weather.LookupRequest{Location: models.Location{City: "London"}, Unit: "kelvin"}, display.ErrInvalidUnit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Lookup(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestWeatherService_DailyForecast(t *testing.T) {
	repo := &MockRepository{forecast: forecastList()}
	service := weather.NewWeatherService(repo, nil, testLogger())

	days, err := service.DailyForecast(context.Background(), londonMetric())
	require.NoError(t, err)
	require.Len(t, days, 3)
	assert.Equal(t, int32(0), repo.currentHits.Load())
	assert.Equal(t, "2025-08-10", days[2].Date)
	assert.Equal(t, 20.0, days[2].Temperature)
}

func TestWeatherService_DailyForecast_EmptyList(t *testing.T) {
	service := weather.NewWeatherService(&MockRepository{}, nil, testLogger())

	days, err := service.DailyForecast(context.Background(), londonMetric())
	require.NoError(t, err)
	assert.NotNil(t, days)
	assert.Empty(t, days)
}

func TestWeatherService_PredictRain(t *testing.T) {
	prob := 0.73
	rain := &MockRainRepository{prediction: models.RainPrediction{WillRain: true, Probability: &prob, Source: "ml"}}
	service := weather.NewWeatherService(&MockRepository{}, rain, testLogger())

	got, err := service.PredictRain(context.Background(), models.RainPredictionRequest{
		Temp: 290, Humidity: 70, Pressure: 1014, WindSpeed: 3.2,
	})
	require.NoError(t, err)
	assert.True(t, got.WillRain)
	assert.NotEmpty(t, rain.last.TimestampISO, "a missing timestamp defaults to now")
}

func TestWeatherService_PredictRain_TimestampShapes(t *testing.T) {
	rain := &MockRainRepository{prediction: models.RainPrediction{Source: "ml"}}
	service := weather.NewWeatherService(&MockRepository{}, rain, testLogger())

	for _, ts := range []string{
		"2015-06-01T12:00:00Z",
		"2015-06-01T12:00:00.000Z",
		"2015-06-01T12:00:00+02:00",
		"2015-06-01T12:00:00",
		"2015-06-01T12:00:00.123456",
		"2015-06-01 12:00:00",
		"2015-06-01T12:00",
		"2015-06-01",
	} {
		t.Run(ts, func(t *testing.T) {
			_, err := service.PredictRain(context.Background(), models.RainPredictionRequest{
				Temp: 290, Humidity: 70, Pressure: 1014, WindSpeed: 3.2, TimestampISO: ts,
			})
			require.NoError(t, err)
			assert.Equal(t, ts, rain.last.TimestampISO, "the timestamp is forwarded as sent")
		})
	}

	for _, ts := range []string{"yesterday", "2015-13-01", "01/06/2015", "2015-06-01T25:00:00"} {
		t.Run(ts, func(t *testing.T) {
			_, err := service.PredictRain(context.Background(), models.RainPredictionRequest{
				Temp: 290, Humidity: 70, TimestampISO: ts,
			})
			assert.ErrorIs(t, err, weather.ErrInvalidRequest)
		})
	}
}

func TestWeatherService_PredictRain_Errors(t *testing.T) {
	_, err := weather.NewWeatherService(&MockRepository{}, nil, testLogger()).
		PredictRain(context.Background(), models.RainPredictionRequest{Temp: 290})
	assert.ErrorIs(t, err, weather.ErrRainDisabled)

	service := weather.NewWeatherService(&MockRepository{}, &MockRainRepository{}, testLogger())

	_, err = service.PredictRain(context.Background(), models.RainPredictionRequest{Temp: 290, Humidity: 140})
	assert.ErrorIs(t, err, weather.ErrInvalidRequest)

	_, err = service.PredictRain(context.Background(), models.RainPredictionRequest{Temp: 290, TimestampISO: "yesterday"})
	assert.ErrorIs(t, err, weather.ErrInvalidRequest)

	service = weather.NewWeatherService(&MockRepository{}, &MockRainRepository{err: repositories.ErrPredictorUnavailable}, testLogger())
	_, err = service.PredictRain(context.Background(), models.RainPredictionRequest{Temp: 290})
	assert.ErrorIs(t, err, repositories.ErrPredictorUnavailable)
}

func TestNewReading_InvalidUnit(t *testing.T) {
	for _, u := range []display.Unit{"", "kelvin", "Metric"} {
		r, err := weather.NewReading(sample("2025-08-08 00:00:00", 50, "Clear"), u)
		assert.ErrorIs(t, err, display.ErrInvalidUnit, "unit %q", u)
		assert.Empty(t, r.TemperatureText, "unit %q", u)
		assert.Empty(t, r.WindText, "unit %q", u)
	}
}

func TestNewReading_Texts(t *testing.T) {
	r, err := weather.NewReading(sample("2025-08-08 00:00:00", 50, "Clear"), display.Metric)
	require.NoError(t, err)
	assert.Equal(t, "10.0°C", r.TemperatureText)
	assert.Equal(t, "10.0°C", r.FeelsLikeText)
	assert.Equal(t, "1.0 m/s", r.WindText)
	assert.Equal(t, "2025-08-08", r.Date)
	assert.Equal(t, "Friday", r.Weekday)
}
