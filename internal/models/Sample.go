package models

// Sample is one entry of the OpenWeatherMap forecast "list" array, or the
// body of a current-conditions response. Values are in imperial base units
// (°F, mph) as requested from the upstream.
type Sample struct {
	Dt    int64       `json:"dt" example:"1754611200"`
	DtTxt string      `json:"dt_txt,omitempty" example:"2025-08-08 00:00:00"`
	Main  SampleMain  `json:"main"`
	Wind  SampleWind  `json:"wind"`
	Items []Condition `json:"weather"`
}

type SampleMain struct {
	Temp      float64 `json:"temp" example:"72.5"`
	FeelsLike float64 `json:"feels_like" example:"71.9"`
	Humidity  int     `json:"humidity" example:"64"`
	Pressure  float64 `json:"pressure" example:"1014"`
}

type SampleWind struct {
	Speed float64 `json:"speed" example:"4.61"`
}

type Condition struct {
	Main        string `json:"main" example:"Clouds"`
	Description string `json:"description" example:"scattered clouds"`
	Icon        string `json:"icon" example:"03d"`
}

// DailySummary is the sample chosen to represent one calendar day.
type DailySummary = Sample

// Condition returns the primary weather condition, or the zero value when
// the upstream sent none.
func (s Sample) Condition() Condition {
	if len(s.Items) == 0 {
		return Condition{}
	}
	return s.Items[0]
}
