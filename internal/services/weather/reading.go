package weather

import (
	"math"
	"time"

	"weather-lookup/internal/display"
	"weather-lookup/internal/models"
)

const dtTxtLayout = "2006-01-02 15:04:05"

// Reading is one sample converted and labelled for display.
type Reading struct {
	Date            string  `json:"date,omitempty" example:"2025-08-08"`
	Weekday         string  `json:"weekday,omitempty" example:"Friday"`
	Temperature     float64 `json:"temperature" example:"21.4"`
	FeelsLike       float64 `json:"feels_like" example:"21.1"`
	TemperatureText string  `json:"temperature_text" example:"21.4°C"`
	FeelsLikeText   string  `json:"feels_like_text" example:"21.1°C"`
	Humidity        int     `json:"humidity" example:"64"`
	WindSpeed       float64 `json:"wind_speed" example:"2.1"`
	WindText        string  `json:"wind_text" example:"2.1 m/s"`
	Condition       string  `json:"condition" example:"Clouds"`
	Phrase          string  `json:"phrase" example:"cloudy"`
	Description     string  `json:"description" example:"Scattered Clouds"`
	AssetKey        string  `json:"asset_key" example:"clouds"`
	IconURL         string  `json:"icon_url,omitempty" example:"https://openweathermap.org/img/wn/03d@2x.png"`
}

// Report is the answer to a weather lookup.
type Report struct {
	Location          string                 `json:"location" example:"London"`
	Country           string                 `json:"country,omitempty" example:"GB"`
	Unit              display.Unit           `json:"unit" example:"metric"`
	TemperatureSymbol string                 `json:"temperature_symbol" example:"°C"`
	WindSymbol        string                 `json:"wind_symbol" example:"m/s"`
	Current           Reading                `json:"current"`
	Daily             []Reading              `json:"daily"`
	Rain              *models.RainPrediction `json:"rain,omitempty"`
}

// NewReading formats s in unit u. Numbers are rounded to one decimal.
func NewReading(s models.Sample, u display.Unit) (Reading, error) {
	temp, err := display.ConvertTemperature(s.Main.Temp, u)
	if err != nil {
		return Reading{}, err
	}
	feels, err := display.ConvertTemperature(s.Main.FeelsLike, u)
	if err != nil {
		return Reading{}, err
	}
	wind, err := display.ConvertWind(s.Wind.Speed, u)
	if err != nil {
		return Reading{}, err
	}

	r := Reading{
		Temperature: round1(temp),
		FeelsLike:   round1(feels),
		Humidity:    s.Main.Humidity,
		WindSpeed:   round1(wind),
	}

	if r.TemperatureText, err = display.FormatTemperature(s.Main.Temp, u); err != nil {
		return Reading{}, err
	}
	if r.FeelsLikeText, err = display.FormatTemperature(s.Main.FeelsLike, u); err != nil {
		return Reading{}, err
	}
	if r.WindText, err = display.FormatWind(s.Wind.Speed, u); err != nil {
		return Reading{}, err
	}

	cond := s.Condition()
	r.Condition = cond.Main
	r.Phrase = display.DescribeCondition(cond.Main)
	r.Description = display.Title(cond.Description)
	r.AssetKey = display.AssetKey(cond.Main)
	r.IconURL = display.IconURL(cond.Icon)

	if t, ok := sampleTime(s); ok {
		r.Date = t.Format(time.DateOnly)
		r.Weekday = t.Weekday().String()
	}

	return r, nil
}

func newReadings(days []models.DailySummary, u display.Unit) ([]Reading, error) {
	out := make([]Reading, 0, len(days))
	for _, d := range days {
		r, err := NewReading(d, u)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// sampleTime prefers the forecast's dt_txt and falls back to the unix dt of
// current-conditions payloads.
func sampleTime(s models.Sample) (time.Time, bool) {
	if s.DtTxt != "" {
		if t, err := time.Parse(dtTxtLayout, s.DtTxt); err == nil {
			return t, true
		}
	}
	if s.Dt != 0 {
		return time.Unix(s.Dt, 0).UTC(), true
	}
	return time.Time{}, false
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
