package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"weather-lookup/internal/models"
	"weather-lookup/pkg/logger"
)

// RainPredictionRepository talks to the remote rain model over HTTP.
type RainPredictionRepository struct {
	URL  string
	http *resilientClient
	l    *logger.Logger
}

func NewRainPredictionRepository(predictURL string, l *logger.Logger, httpClient HTTPClient, policy RetryPolicy) (*RainPredictionRepository, error) {
	if strings.TrimSpace(predictURL) == "" {
		return nil, errors.New("rain predictor URL cannot be empty")
	}

	return &RainPredictionRepository{
		URL:  predictURL,
		http: newResilientClient("rain-predictor", httpClient, policy),
		l:    l,
	}, nil
}

func (r *RainPredictionRepository) Predict(ctx context.Context, req models.RainPredictionRequest) (models.RainPrediction, error) {
	var prediction models.RainPrediction

	payload, err := json.Marshal(req)
	if err != nil {
		return prediction, fmt.Errorf("failed to encode request: %w", err)
	}

	r.l.Debug("making rain prediction request", map[string]any{
		"temp":      req.Temp,
		"humidity":  req.Humidity,
		"timestamp": req.TimestampISO,
	})

	resp, err := r.http.do(ctx, func(ctx context.Context) (*http.Request, error) {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.URL, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		httpReq.Header.Set("Content-Type", "application/json")
		return httpReq, nil
	})
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.Code == http.StatusServiceUnavailable {
			return prediction, fmt.Errorf("%w: %v", ErrPredictorUnavailable, err)
		}
		return prediction, fmt.Errorf("failed to do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return prediction, fmt.Errorf("failed to read response body: %w", err)
	}

	if err := json.Unmarshal(body, &prediction); err != nil {
		return prediction, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	return prediction, nil
}
