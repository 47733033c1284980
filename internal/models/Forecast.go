package models

import "fmt"

// ForecastList is the subset of the OpenWeatherMap 5 day / 3 hour forecast
// response the service reads.
type ForecastList struct {
	List []Sample `json:"list"`
	City struct {
		Name     string `json:"name" example:"London"`
		Country  string `json:"country" example:"GB"`
		Timezone int    `json:"timezone" example:"3600"`
	} `json:"city"`
}

// Location identifies a lookup target, either by city name or coordinates.
type Location struct {
	City string   `json:"city,omitempty" validate:"max=128"`
	Lat  *float64 `json:"lat,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Lon  *float64 `json:"lon,omitempty" validate:"omitempty,gte=-180,lte=180"`
}

// IsZero reports whether neither a city nor a full coordinate pair is set.
func (l Location) IsZero() bool {
	return l.City == "" && (l.Lat == nil || l.Lon == nil)
}

func (l Location) RequestParams() string {
	if l.City != "" {
		return fmt.Sprintf("city: %s", l.City)
	}
	if l.Lat != nil && l.Lon != nil {
		return fmt.Sprintf("lat: %.4f lon: %.4f", *l.Lat, *l.Lon)
	}
	return "location: none"
}
