package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// isoTimestampLayouts are the ISO 8601 shapes the rain model reads: with or
// without a zone, with a space or T separator, or a bare date. Fractional
// seconds are accepted by every layout with a seconds field.
var isoTimestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	time.DateOnly,
}

// RainPredictionRequest is the feature row the rain model expects.
type RainPredictionRequest struct {
	Temp         float64 `json:"temp" validate:"gte=-200,lte=400" example:"290"`
	Humidity     float64 `json:"humidity" validate:"gte=0,lte=100" example:"70"`
	Pressure     float64 `json:"pressure" validate:"gte=0" example:"1014"`
	WindSpeed    float64 `json:"wind_speed" validate:"gte=0" example:"3.2"`
	TimestampISO string  `json:"timestampISO,omitempty" validate:"omitempty,isotimestamp" example:"2015-06-01T12:00:00Z"`
}

// RainPrediction is the decoded answer of the rain model.
type RainPrediction struct {
	WillRain    bool     `json:"will_rain" example:"true"`
	Probability *float64 `json:"probability,omitempty" example:"0.27"`
	Source      string   `json:"source,omitempty" example:"ml"`
}

// UnmarshalJSON accepts both {"prediction":"Rain"} and
// {"pred":1,"prob":0.73,"source":"ml"} payloads.
func (p *RainPrediction) UnmarshalJSON(data []byte) error {
	var raw struct {
		Prediction *string  `json:"prediction"`
		Pred       *int     `json:"pred"`
		Prob       *float64 `json:"prob"`
		Source     string   `json:"source"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = RainPrediction{
		Probability: raw.Prob,
		Source:      raw.Source,
	}
	switch {
	case raw.Prediction != nil:
		p.WillRain = *raw.Prediction == "Rain"
	case raw.Pred != nil:
		p.WillRain = *raw.Pred == 1
	}

	return nil
}

// ParseISOTimestamp reads a timestamp in any of the accepted ISO 8601 shapes.
// Values without a zone are taken as UTC.
func ParseISOTimestamp(s string) (time.Time, error) {
	for _, layout := range isoTimestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised ISO 8601 timestamp %q", s)
}
