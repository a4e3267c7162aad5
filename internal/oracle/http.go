package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/football-edge/internal/models"
)

// HTTPConfig configures the remote model service client
type HTTPConfig struct {
	BaseURL      string
	Timeout      time.Duration
	MaxRetries   int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
}

type predictRequest struct {
	Features []float64 `json:"features"`
}

type predictResponse struct {
	Probabilities []float64 `json:"probabilities"`
}

// HTTPOracle asks a remote model service for predictions
type HTTPOracle struct {
	client  *retryablehttp.Client
	baseURL string
	logger  *logrus.Logger
}

// NewHTTPOracle creates a client for the model service at cfg.BaseURL
func NewHTTPOracle(cfg HTTPConfig, logger *logrus.Logger) (*HTTPOracle, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if logger == nil {
		logger = logrus.New()
	}

	client := retryablehttp.NewClient()
	if cfg.Timeout > 0 {
		client.HTTPClient.Timeout = cfg.Timeout
	}
	client.RetryMax = cfg.MaxRetries
	if cfg.RetryWaitMin > 0 {
		client.RetryWaitMin = cfg.RetryWaitMin
	}
	if cfg.RetryWaitMax > 0 {
		client.RetryWaitMax = cfg.RetryWaitMax
	}
	client.CheckRetry = retryPolicy
	client.Logger = nil

	return &HTTPOracle{
		client:  client,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		logger:  logger,
	}, nil
}

// Predict posts the features and decodes the returned distribution
func (o *HTTPOracle) Predict(ctx context.Context, features []float64) (models.Probabilities, error) {
	body, err := json.Marshal(predictRequest{Features: features})
	if err != nil {
		return models.Probabilities{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/v1/predict", bytes.NewReader(body))
	if err != nil {
		return models.Probabilities{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return models.Probabilities{}, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return models.Probabilities{}, fmt.Errorf("prediction request failed with status %d: %s", resp.StatusCode, string(msg))
	}

	var decoded predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return models.Probabilities{}, fmt.Errorf("%w: %v", ErrInvalidPrediction, err)
	}

	probs, err := Normalize(decoded.Probabilities)
	if err != nil {
		o.logger.WithField("probabilities", decoded.Probabilities).Warn("Model service returned an invalid distribution")
		return models.Probabilities{}, err
	}
	return probs, nil
}

// retryPolicy retries network errors, 429 and 5xx responses
func retryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		return true, nil
	}
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return true, nil
	}
	return false, nil
}
