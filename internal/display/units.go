// Package display turns raw imperial readings into values and strings ready
// for presentation. Every function is pure.
package display

import (
	"errors"
	"fmt"
	"strings"
)

type Unit string

const (
	Imperial Unit = "imperial"
	Metric   Unit = "metric"
)

// mph per m/s
const mphPerMetrePerSecond = 2.23694

var ErrInvalidUnit = errors.New("invalid display unit")

// ParseUnit reads a user supplied unit. An empty value selects Imperial,
// the upstream base unit.
func ParseUnit(s string) (Unit, error) {
	switch u := Unit(strings.ToLower(strings.TrimSpace(s))); u {
	case "":
		return Imperial, nil
	case Imperial, Metric:
		return u, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidUnit, s)
	}
}

func (u Unit) Valid() bool {
	return u == Imperial || u == Metric
}

// ConvertTemperature converts a °F value into the given unit at full precision.
func ConvertTemperature(v float64, u Unit) (float64, error) {
	switch u {
	case Imperial:
		return v, nil
	case Metric:
		return (v - 32) * 5 / 9, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidUnit, string(u))
	}
}

// ConvertWind converts a mph value into the given unit (m/s for Metric).
func ConvertWind(v float64, u Unit) (float64, error) {
	switch u {
	case Imperial:
		return v, nil
	case Metric:
		return v / mphPerMetrePerSecond, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidUnit, string(u))
	}
}

func TemperatureSymbol(u Unit) (string, error) {
	switch u {
	case Imperial:
		return "°F", nil
	case Metric:
		return "°C", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidUnit, string(u))
	}
}

func WindSymbol(u Unit) (string, error) {
	switch u {
	case Imperial:
		return "MPH", nil
	case Metric:
		return "m/s", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidUnit, string(u))
	}
}

// FormatTemperature converts v and renders it with one decimal and the unit
// symbol, e.g. "22.5°C".
func FormatTemperature(v float64, u Unit) (string, error) {
	converted, err := ConvertTemperature(v, u)
	if err != nil {
		return "", err
	}
	symbol, err := TemperatureSymbol(u)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%.1f%s", converted, symbol), nil
}

// FormatWind converts v and renders it with one decimal and the unit
// symbol, e.g. "4.0 MPH".
func FormatWind(v float64, u Unit) (string, error) {
	converted, err := ConvertWind(v, u)
	if err != nil {
		return "", err
	}
	symbol, err := WindSymbol(u)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%.1f %s", converted, symbol), nil
}
