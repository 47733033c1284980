package weather

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"weather-lookup/internal/display"
	"weather-lookup/internal/forecast"
	"weather-lookup/internal/models"
	"weather-lookup/internal/repositories"
	"weather-lookup/pkg/logger"
)

const kelvinOffset = 273.15

var (
	ErrRainDisabled   = errors.New("rain prediction is not configured")
	ErrInvalidRequest = errors.New("invalid request")
)

// WeatherService reduces and formats upstream weather data for presentation.
type WeatherService struct {
	weather  repositories.WeatherRepository
	rain     repositories.RainRepository
	validate *validator.Validate
	l        *logger.Logger
	now      func() time.Time
}

// NewWeatherService builds the service. rain may be nil, which disables rain
// outlooks and PredictRain.
func NewWeatherService(weather repositories.WeatherRepository, rain repositories.RainRepository, l *logger.Logger) *WeatherService {
	return &WeatherService{
		weather:  weather,
		rain:     rain,
		validate: newValidator(),
		l:        l,
		now:      time.Now,
	}
}

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("isotimestamp", func(fl validator.FieldLevel) bool {
		_, err := models.ParseISOTimestamp(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(err)
	}
	return v
}

type LookupRequest struct {
	Location models.Location
	Unit     display.Unit
}

func (s *WeatherService) checkLookup(req LookupRequest) error {
	if req.Location.IsZero() {
		return fmt.Errorf("%w: a city or both lat and lon are required", ErrInvalidRequest)
	}
	if err := s.validate.Struct(req.Location); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if !req.Unit.Valid() {
		return fmt.Errorf("%w: %q", display.ErrInvalidUnit, string(req.Unit))
	}
	return nil
}

// Lookup fetches the live conditions and the forecast for a location and
// returns them formatted in the requested unit.
func (s *WeatherService) Lookup(ctx context.Context, req LookupRequest) (Report, error) {
	if err := s.checkLookup(req); err != nil {
		return Report{}, err
	}

	s.l.Info("starting weather lookup", map[string]any{
		"params": req.Location.RequestParams(),
		"unit":   req.Unit,
	})

	var (
		wg          sync.WaitGroup
		current     models.Sample
		list        models.ForecastList
		currentErr  error
		forecastErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		current, currentErr = s.weather.FetchCurrent(ctx, req.Location)
	}()
	go func() {
		defer wg.Done()
		list, forecastErr = s.weather.FetchForecast(ctx, req.Location)
	}()
	wg.Wait()

	if err := errors.Join(currentErr, forecastErr); err != nil {
		return Report{}, s.fetchFailed(err, req)
	}

	live, err := NewReading(current, req.Unit)
	if err != nil {
		return Report{}, err
	}

	daily, err := newReadings(s.reduce(list), req.Unit)
	if err != nil {
		return Report{}, err
	}

	tempSymbol, err := display.TemperatureSymbol(req.Unit)
	if err != nil {
		return Report{}, err
	}
	windSymbol, err := display.WindSymbol(req.Unit)
	if err != nil {
		return Report{}, err
	}

	report := Report{
		Location:          list.City.Name,
		Country:           list.City.Country,
		Unit:              req.Unit,
		TemperatureSymbol: tempSymbol,
		WindSymbol:        windSymbol,
		Current:           live,
		Daily:             daily,
	}

	if s.rain != nil {
		report.Rain = s.rainOutlook(ctx, current)
	}

	s.l.Info("completed weather lookup", map[string]any{
		"location": report.Location,
		"days":     len(report.Daily),
		"rain":     report.Rain != nil,
	})

	return report, nil
}

// DailyForecast returns only the formatted daily summaries for a location.
func (s *WeatherService) DailyForecast(ctx context.Context, req LookupRequest) ([]Reading, error) {
	if err := s.checkLookup(req); err != nil {
		return nil, err
	}

	list, err := s.weather.FetchForecast(ctx, req.Location)
	if err != nil {
		return nil, s.fetchFailed(err, req)
	}

	return newReadings(s.reduce(list), req.Unit)
}

// PredictRain forwards a caller supplied feature row to the rain model.
func (s *WeatherService) PredictRain(ctx context.Context, req models.RainPredictionRequest) (models.RainPrediction, error) {
	if s.rain == nil {
		return models.RainPrediction{}, ErrRainDisabled
	}
	if err := s.validate.Struct(req); err != nil {
		return models.RainPrediction{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if req.TimestampISO == "" {
		req.TimestampISO = s.now().UTC().Format(time.RFC3339)
	}

	prediction, err := s.rain.Predict(ctx, req)
	if err != nil {
		return models.RainPrediction{}, fmt.Errorf("rain prediction: %w", err)
	}

	return prediction, nil
}

// reduce collapses the forecast into daily summaries. Malformed samples are
// logged and skipped.
func (s *WeatherService) reduce(list models.ForecastList) []models.DailySummary {
	days, err := forecast.ReduceToDaily(list.List)
	if err != nil {
		s.l.Warning("skipped forecast samples", map[string]any{
			"location": list.City.Name,
			"err":      err.Error(),
		})
	}
	return days
}

func (s *WeatherService) fetchFailed(err error, req LookupRequest) error {
	if errors.Is(err, repositories.ErrLocationNotFound) {
		s.l.Info("location not found", map[string]any{"params": req.Location.RequestParams()})
		return repositories.ErrLocationNotFound
	}

	s.l.Error(err, map[string]any{
		"params": req.Location.RequestParams(),
		"repo":   s.weather.Name(),
	})
	return fmt.Errorf("fetch weather: %w", err)
}

// rainOutlook asks the rain model about the live sample. The model is fed the
// units it was trained on: Kelvin, hPa and m/s.
func (s *WeatherService) rainOutlook(ctx context.Context, current models.Sample) *models.RainPrediction {
	celsius, err := display.ConvertTemperature(current.Main.Temp, display.Metric)
	if err != nil {
		s.l.Warning("rain prediction skipped", map[string]any{"err": err.Error()})
		return nil
	}
	wind, err := display.ConvertWind(current.Wind.Speed, display.Metric)
	if err != nil {
		s.l.Warning("rain prediction skipped", map[string]any{"err": err.Error()})
		return nil
	}

	observed := s.now()
	if current.Dt != 0 {
		observed = time.Unix(current.Dt, 0)
	}

	prediction, err := s.rain.Predict(ctx, models.RainPredictionRequest{
		Temp:         celsius + kelvinOffset,
		Humidity:     float64(current.Main.Humidity),
		Pressure:     current.Main.Pressure,
		WindSpeed:    wind,
		TimestampISO: observed.UTC().Format(time.RFC3339),
	})
	if err != nil {
		s.l.Warning("rain prediction failed", map[string]any{"err": err.Error()})
		return nil
	}

	return &prediction
}
