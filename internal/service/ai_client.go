package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tempestas-api/internal/domain"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Record one measurement as the prediction model expects it.
type Record struct {
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
	AirQuality  float64   `json:"air_quality"`
	Timestamp   time.Time `json:"timestamp"`
}

// DeviceData request body for POST /predict.
type DeviceData struct {
	DeviceID string   `json:"device_id"`
	Records  []Record `json:"records"`
}

// PredictionResponse forecast returned by the prediction model. Returned to
// API clients as-is; never persisted.
type PredictionResponse struct {
	ID           string    `json:"id"`
	DeviceID     string    `json:"device_id"`
	Temperature  float64   `json:"temperature"`
	Humidity     float64   `json:"humidity"`
	AirQuality   float64   `json:"air_quality"`
	PredictedFor time.Time `json:"predicted_for"`
	GeneratedAt  time.Time `json:"generated_at"`
	Confidence   float64   `json:"confidence"`
}

// AIClient client for the external prediction service. One instance is
// shared across requests so connections are reused.
type AIClient struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

func NewAIClient(baseURL string, logger *zap.Logger) *AIClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &AIClient{
		httpClient: client,
		logger:     logger,
	}
}

// Predict posts the measurement batch and parses the forecast. Transport
// failures and non-2xx statuses classify as ErrUpstreamUnavailable; a 2xx
// with an unparseable body classifies as ErrUpstreamInvalidResponse.
func (c *AIClient) Predict(ctx context.Context, data DeviceData) (*PredictionResponse, error) {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(data).
		Post("/predict")
	if err != nil {
		c.logger.Error("Prediction service call failed",
			zap.String("device_id", data.DeviceID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	if resp.IsError() {
		c.logger.Error("Prediction service returned error status",
			zap.String("device_id", data.DeviceID),
			zap.Int("status_code", resp.StatusCode()),
		)
		return nil, fmt.Errorf("%w: status %d", domain.ErrUpstreamUnavailable, resp.StatusCode())
	}

	var out PredictionResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		c.logger.Error("Failed to unmarshal prediction service response",
			zap.String("device_id", data.DeviceID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamInvalidResponse, err)
	}
	return &out, nil
}
