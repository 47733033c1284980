package display

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const iconURLFormat = "https://openweathermap.org/img/wn/%s@2x.png"

var conditionPhrases = map[string]string{
	"Clear":        "sunny",
	"Clouds":       "cloudy",
	"Rain":         "rainy",
	"Thunderstorm": "thunderstorms",
	"Snow":         "snowing",
	"Drizzle":      "drizzling",
	"Mist":         "misty",
}

var assetKeys = map[string]string{
	"Clear":        "clear",
	"Clouds":       "clouds",
	"Rain":         "rain",
	"Drizzle":      "rain",
	"Thunderstorm": "thunderstorm",
	"Snow":         "snow",
	"Mist":         "mist",
	"Fog":          "mist",
	"Haze":         "mist",
	"Smoke":        "mist",
}

const defaultAssetKey = "default"

// DescribeCondition maps an OpenWeatherMap condition group to a short phrase.
// Matching is case-sensitive; unknown groups fall back to "Weather: <main>".
func DescribeCondition(main string) string {
	if phrase, ok := conditionPhrases[main]; ok {
		return phrase
	}
	return fmt.Sprintf("Weather: %s", main)
}

// AssetKey selects the background asset for a condition group.
func AssetKey(main string) string {
	if key, ok := assetKeys[main]; ok {
		return key
	}
	return defaultAssetKey
}

// Title capitalises every word of a free-text description.
func Title(description string) string {
	// cases.Caser is stateful, so one is built per call.
	return cases.Title(language.English).String(description)
}

func IconURL(code string) string {
	if code == "" {
		return ""
	}
	return fmt.Sprintf(iconURLFormat, code)
}
