package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"weather-lookup/internal/display"
	"weather-lookup/internal/models"
	"weather-lookup/internal/repositories"
	"weather-lookup/internal/services/weather"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error" example:"location not found"`
}

// DailyForecastResponse represents the daily forecast response
type DailyForecastResponse struct {
	Unit display.Unit      `json:"unit" example:"imperial"`
	Days []weather.Reading `json:"days"`
}

// GetWeather godoc
// @Summary Get current weather and daily forecast
// @Description Looks up live conditions and up to five daily summaries for a city or coordinate pair
// @Tags Weather
// @Produce json
// @Param city query string false "City name, e.g. London or London,GB"
// @Param lat query number false "Latitude (-90 to 90), used with lon when city is empty"
// @Param lon query number false "Longitude (-180 to 180), used with lat when city is empty"
// @Param units query string false "Display unit" Enums(imperial, metric) default(imperial)
// @Success 200 {object} weather.Report
// @Failure 400 {object} ErrorResponse "Bad request - invalid parameters"
// @Failure 404 {object} ErrorResponse "Location not found"
// @Failure 502 {object} ErrorResponse "Upstream weather provider failed"
// @Router /v1/weather [get]
//
//	curl -X GET "http://localhost:8080/v1/weather?city=London&units=metric"
func (r *routes) handleWeatherCall(c *fiber.Ctx) error {
	req, err := parseLookup(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	report, err := r.service.Lookup(c.UserContext(), req)
	if err != nil {
		return r.respondError(c, err)
	}

	return c.JSON(report)
}

// GetDailyForecast godoc
// @Summary Get the daily forecast
// @Description Returns one summary per calendar day, the first forecast sample of each day, at most five days
// @Tags Weather
// @Produce json
// @Param city query string false "City name"
// @Param lat query number false "Latitude (-90 to 90)"
// @Param lon query number false "Longitude (-180 to 180)"
// @Param units query string false "Display unit" Enums(imperial, metric) default(imperial)
// @Success 200 {object} DailyForecastResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /v1/forecast/daily [get]
func (r *routes) handleDailyForecastCall(c *fiber.Ctx) error {
	req, err := parseLookup(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	days, err := r.service.DailyForecast(c.UserContext(), req)
	if err != nil {
		return r.respondError(c, err)
	}

	return c.JSON(DailyForecastResponse{
		Unit: req.Unit,
		Days: days,
	})
}

// PredictRain godoc
// @Summary Predict rain
// @Description Forwards a feature row to the rain prediction model
// @Tags Rain
// @Accept json
// @Produce json
// @Param request body models.RainPredictionRequest true "Feature row (temp in Kelvin, wind in m/s)"
// @Success 200 {object} models.RainPrediction
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse "Rain prediction not available"
// @Router /v1/rain/predict [post]
func (r *routes) handleRainPredictionCall(c *fiber.Ctx) error {
	var req models.RainPredictionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	prediction, err := r.service.PredictRain(c.UserContext(), req)
	if err != nil {
		return r.respondError(c, err)
	}

	return c.JSON(prediction)
}

func parseLookup(c *fiber.Ctx) (weather.LookupRequest, error) {
	var req weather.LookupRequest

	unit, err := display.ParseUnit(c.Query("units"))
	if err != nil {
		return req, errors.New("units must be imperial or metric")
	}
	req.Unit = unit

	req.Location.City = c.Query("city")
	if req.Location.City != "" {
		return req, nil
	}

	lat := c.Query("lat")
	lon := c.Query("lon")
	if lat == "" || lon == "" {
		return req, errors.New("Missing required parameter: city or lat and lon")
	}

	latFloat, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return req, errors.New("Invalid latitude format")
	}
	if latFloat < -90 || latFloat > 90 {
		return req, errors.New("Latitude must be between -90 and 90")
	}

	lonFloat, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return req, errors.New("Invalid longitude format")
	}
	if lonFloat < -180 || lonFloat > 180 {
		return req, errors.New("Longitude must be between -180 and 180")
	}

	req.Location.Lat = &latFloat
	req.Location.Lon = &lonFloat

	return req, nil
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: msg})
}

func (r *routes) respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, weather.ErrInvalidRequest), errors.Is(err, display.ErrInvalidUnit):
		return badRequest(c, err.Error())
	case errors.Is(err, repositories.ErrLocationNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "location not found"})
	case errors.Is(err, weather.ErrRainDisabled), errors.Is(err, repositories.ErrPredictorUnavailable), errors.Is(err, repositories.ErrCircuitOpen):
		r.l.Warning("upstream unavailable", map[string]any{
			"path": c.Path(),
			"err":  err.Error(),
		})
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{Error: "Service temporarily unavailable"})
	}

	r.l.Error(err, map[string]any{
		"path":       c.Path(),
		"request_id": c.GetRespHeader(fiber.HeaderXRequestID),
	})

	return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{Error: "Failed to fetch weather data"})
}
