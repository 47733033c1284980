package repositories

import (
	"context"
	"errors"
	"strings"

	"weather-lookup/internal/models"
	"weather-lookup/pkg/logger"
)

// FallbackRepository asks its repositories in order and returns the first
// answer. A location the first repository reports as not found is final.
type FallbackRepository struct {
	repos []WeatherRepository
	l     *logger.Logger
}

func NewFallbackRepository(l *logger.Logger, repos ...WeatherRepository) *FallbackRepository {
	return &FallbackRepository{
		repos: repos,
		l:     l,
	}
}

func (f *FallbackRepository) Name() string {
	names := make([]string, 0, len(f.repos))
	for _, repo := range f.repos {
		names = append(names, repo.Name())
	}
	return strings.Join(names, ",")
}

func (f *FallbackRepository) FetchForecast(ctx context.Context, loc models.Location) (models.ForecastList, error) {
	return fallback(ctx, f, loc, WeatherRepository.FetchForecast)
}

func (f *FallbackRepository) FetchCurrent(ctx context.Context, loc models.Location) (models.Sample, error) {
	return fallback(ctx, f, loc, WeatherRepository.FetchCurrent)
}

func fallback[T any](
	ctx context.Context,
	f *FallbackRepository,
	loc models.Location,
	fetch func(WeatherRepository, context.Context, models.Location) (T, error),
) (T, error) {
	var (
		zero T
		errs []error
	)

	for i, repo := range f.repos {
		res, err := fetch(repo, ctx, loc)
		if err == nil {
			if i > 0 {
				f.l.Info("served by fallback repository", map[string]any{"repo": repo.Name()})
			}
			return res, nil
		}

		if i == 0 && errors.Is(err, ErrLocationNotFound) {
			return zero, err
		}

		f.l.Warning("failed to fetch weather", map[string]any{"repo": repo.Name(), "err": err.Error()})
		errs = append(errs, err)

		if ctx.Err() != nil {
			break
		}
	}

	if len(errs) == 0 {
		return zero, errors.New("no weather repositories configured")
	}

	return zero, errors.Join(errs...)
}
