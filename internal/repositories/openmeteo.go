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
	"time"

	"weather-lookup/internal/models"
	"weather-lookup/pkg/logger"
)

const (
	OpenMeteoBaseURL = "https://api.open-meteo.com/v1/forecast"

	openMeteoTimeLayout = "2006-01-02T15:04"
	dtTxtLayout         = "2006-01-02 15:04:05"

	// hourly data is thinned to the 3 hour step of the primary provider
	openMeteoStep = 3
	openMeteoDays = 5

	openMeteoVariables = "temperature_2m,apparent_temperature,relative_humidity_2m,pressure_msl,wind_speed_10m,weather_code,is_day"
)

var ErrCoordinatesRequired = errors.New("open-meteo needs lat and lon")

// OpenMeteoRepository reads forecasts from the keyless Open-Meteo API and
// reshapes them into OpenWeatherMap style samples in °F and mph.
type OpenMeteoRepository struct {
	BaseURL string
	http    *resilientClient
	l       *logger.Logger
}

func NewOpenMeteoRepository(baseURL string, l *logger.Logger, httpClient HTTPClient, policy RetryPolicy) *OpenMeteoRepository {
	if baseURL == "" {
		baseURL = OpenMeteoBaseURL
	}
	return &OpenMeteoRepository{
		BaseURL: strings.TrimRight(baseURL, "/"),
		http:    newResilientClient("open-meteo", httpClient, policy),
		l:       l,
	}
}

func (o *OpenMeteoRepository) Name() string {
	return "open-meteo"
}

type OpenMeteoHourly struct {
	Time                []string  `json:"time"`
	Temperature2m       []float64 `json:"temperature_2m"`
	ApparentTemperature []float64 `json:"apparent_temperature"`
	RelativeHumidity2m  []int     `json:"relative_humidity_2m"`
	PressureMsl         []float64 `json:"pressure_msl"`
	WindSpeed10m        []float64 `json:"wind_speed_10m"`
	WeatherCode         []int     `json:"weather_code"`
	IsDay               []int     `json:"is_day"`
}

type OpenMeteoCurrent struct {
	Time                string  `json:"time"`
	Temperature2m       float64 `json:"temperature_2m"`
	ApparentTemperature float64 `json:"apparent_temperature"`
	RelativeHumidity2m  int     `json:"relative_humidity_2m"`
	PressureMsl         float64 `json:"pressure_msl"`
	WindSpeed10m        float64 `json:"wind_speed_10m"`
	WeatherCode         int     `json:"weather_code"`
	IsDay               int     `json:"is_day"`
}

type OpenMeteoResponse struct {
	Hourly  *OpenMeteoHourly  `json:"hourly"`
	Current *OpenMeteoCurrent `json:"current"`
}

// FetchForecast returns 3 hourly samples for the next five days. Only
// coordinate lookups are supported.
func (o *OpenMeteoRepository) FetchForecast(ctx context.Context, loc models.Location) (models.ForecastList, error) {
	var forecast models.ForecastList

	var response OpenMeteoResponse
	if err := o.get(ctx, loc, "hourly", &response); err != nil {
		return forecast, err
	}
	if response.Hourly == nil || len(response.Hourly.Time) == 0 {
		return forecast, errors.New("no forecast data available")
	}

	forecast.List = hourlySamples(*response.Hourly)
	forecast.City.Name = loc.RequestParams()

	o.l.Info("parsed API response", map[string]any{
		"repo":  o.Name(),
		"items": len(forecast.List),
	})

	return forecast, nil
}

// FetchCurrent returns the live conditions at loc.
func (o *OpenMeteoRepository) FetchCurrent(ctx context.Context, loc models.Location) (models.Sample, error) {
	var response OpenMeteoResponse
	if err := o.get(ctx, loc, "current", &response); err != nil {
		return models.Sample{}, err
	}
	if response.Current == nil {
		return models.Sample{}, errors.New("no current data available")
	}

	c := response.Current
	s := models.Sample{
		Main: models.SampleMain{
			Temp:      c.Temperature2m,
			FeelsLike: c.ApparentTemperature,
			Humidity:  c.RelativeHumidity2m,
			Pressure:  c.PressureMsl,
		},
		Wind:  models.SampleWind{Speed: c.WindSpeed10m},
		Items: []models.Condition{wmoCondition(c.WeatherCode, c.IsDay == 1)},
	}
	if t, err := time.Parse(openMeteoTimeLayout, c.Time); err == nil {
		s.Dt = t.Unix()
	}

	return s, nil
}

func (o *OpenMeteoRepository) get(ctx context.Context, loc models.Location, block string, out any) error {
	if loc.Lat == nil || loc.Lon == nil {
		return fmt.Errorf("%w: %s", ErrCoordinatesRequired, loc.RequestParams())
	}

	query := url.Values{}
	query.Set("latitude", strconv.FormatFloat(*loc.Lat, 'f', -1, 64))
	query.Set("longitude", strconv.FormatFloat(*loc.Lon, 'f', -1, 64))
	query.Set(block, openMeteoVariables)
	query.Set("temperature_unit", "fahrenheit")
	query.Set("wind_speed_unit", "mph")
	query.Set("timezone", "UTC")
	if block == "hourly" {
		query.Set("forecast_days", strconv.Itoa(openMeteoDays))
	}

	endpoint := o.BaseURL + "?" + query.Encode()

	o.l.Info("making openmeteo API request", map[string]any{
		"block":  block,
		"params": loc.RequestParams(),
	})

	resp, err := o.http.do(ctx, func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	})
	if err != nil {
		return fmt.Errorf("failed to do request: %w", err)
	}
	defer resp.Body.Close()

	o.l.Info("received openmeteo API response", map[string]any{
		"status":     resp.StatusCode,
		"statusText": resp.Status,
	})

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if err = json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse JSON response: %w", err)
	}

	return nil
}

// hourlySamples keeps every third hour. Rows with a time that does not parse
// are passed on with the raw string so the reducer can report them.
func hourlySamples(h OpenMeteoHourly) []models.Sample {
	n := min(
		len(h.Time),
		len(h.Temperature2m),
		len(h.ApparentTemperature),
		len(h.RelativeHumidity2m),
		len(h.PressureMsl),
		len(h.WindSpeed10m),
		len(h.WeatherCode),
	)

	samples := make([]models.Sample, 0, n/openMeteoStep+1)
	for i := 0; i < n; i += openMeteoStep {
		day := true
		if i < len(h.IsDay) {
			day = h.IsDay[i] == 1
		}

		s := models.Sample{
			DtTxt: h.Time[i],
			Main: models.SampleMain{
				Temp:      h.Temperature2m[i],
				FeelsLike: h.ApparentTemperature[i],
				Humidity:  h.RelativeHumidity2m[i],
				Pressure:  h.PressureMsl[i],
			},
			Wind:  models.SampleWind{Speed: h.WindSpeed10m[i]},
			Items: []models.Condition{wmoCondition(h.WeatherCode[i], day)},
		}
		if t, err := time.Parse(openMeteoTimeLayout, h.Time[i]); err == nil {
			s.Dt = t.Unix()
			s.DtTxt = t.Format(dtTxtLayout)
		}

		samples = append(samples, s)
	}

	return samples
}

// wmoCondition maps a WMO weather interpretation code onto the condition
// groups and icon codes OpenWeatherMap uses.
func wmoCondition(code int, day bool) models.Condition {
	var c models.Condition
	icon := ""

	switch code {
	case 0:
		c, icon = models.Condition{Main: "Clear", Description: "clear sky"}, "01"
	case 1:
		c, icon = models.Condition{Main: "Clouds", Description: "mainly clear"}, "02"
	case 2:
		c, icon = models.Condition{Main: "Clouds", Description: "partly cloudy"}, "03"
	case 3:
		c, icon = models.Condition{Main: "Clouds", Description: "overcast clouds"}, "04"
	case 45, 48:
		c, icon = models.Condition{Main: "Fog", Description: "fog"}, "50"
	case 51, 53, 55, 56, 57:
		c, icon = models.Condition{Main: "Drizzle", Description: "drizzle"}, "09"
	case 61, 63, 65, 66, 67:
		c, icon = models.Condition{Main: "Rain", Description: "rain"}, "10"
	case 80, 81, 82:
		c, icon = models.Condition{Main: "Rain", Description: "rain showers"}, "09"
	case 71, 73, 75, 77, 85, 86:
		c, icon = models.Condition{Main: "Snow", Description: "snow"}, "13"
	case 95, 96, 99:
		c, icon = models.Condition{Main: "Thunderstorm", Description: "thunderstorm"}, "11"
	default:
		return models.Condition{Main: "Unknown", Description: fmt.Sprintf("weather code %d", code)}
	}

	if day {
		c.Icon = icon + "d"
	} else {
		c.Icon = icon + "n"
	}
	return c
}
