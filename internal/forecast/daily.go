// Package forecast collapses 3-hour forecast samples into one entry per day.
package forecast

import (
	"errors"
	"fmt"
	"strings"

	"weather-lookup/internal/models"
)

// MaxDays caps the number of daily summaries returned by ReduceToDaily.
const MaxDays = 5

var ErrMalformedTimestamp = errors.New("malformed timestamp")

// ReduceToDaily keeps the first sample of every calendar day, in order of
// first appearance, and returns at most MaxDays of them. Input order is
// trusted as delivered by the upstream.
//
// Samples whose dt_txt cannot be split into date and time are skipped. The
// returned error joins one ErrMalformedTimestamp per skipped sample and is
// nil when every sample was usable; the summaries are valid either way.
func ReduceToDaily(samples []models.Sample) ([]models.DailySummary, error) {
	days := make([]models.DailySummary, 0, MaxDays)
	seen := make(map[string]struct{}, MaxDays)

	var errs []error
	for i, s := range samples {
		date, err := dateKey(s.DtTxt)
		if err != nil {
			errs = append(errs, fmt.Errorf("sample %d: %w", i, err))
			continue
		}

		if _, ok := seen[date]; ok {
			continue
		}
		seen[date] = struct{}{}

		if len(days) < MaxDays {
			days = append(days, s)
		}
	}

	return days, errors.Join(errs...)
}

// dateKey extracts the "YYYY-MM-DD" part of a "YYYY-MM-DD HH:MM:SS" value.
func dateKey(dtTxt string) (string, error) {
	date, clock, ok := strings.Cut(dtTxt, " ")
	if !ok || date == "" || clock == "" {
		return "", fmt.Errorf("%w: %q", ErrMalformedTimestamp, dtTxt)
	}
	return date, nil
}
