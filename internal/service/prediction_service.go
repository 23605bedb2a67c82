package service

import (
	"context"
	"fmt"

	"tempestas-api/internal/domain"
	"tempestas-api/internal/repository"

	"go.uber.org/zap"
)

// predictionWindow how many recent measurements are forwarded to the model.
const predictionWindow = 50

// PredictionService proxies recent device history to the external model.
type PredictionService interface {
	ForDevice(ctx context.Context, deviceID string) (*PredictionResponse, error)
}

type predictionService struct {
	measurementsRepo repository.MeasurementsRepository
	aiClient         *AIClient
	logger           *zap.Logger
}

func NewPredictionService(
	measurementsRepo repository.MeasurementsRepository,
	aiClient *AIClient,
	logger *zap.Logger,
) PredictionService {
	return &predictionService{
		measurementsRepo: measurementsRepo,
		aiClient:         aiClient,
		logger:           logger,
	}
}

// ForDevice fetches up to predictionWindow recent measurements and forwards
// them upstream. A device with no history is ErrNotFound and the upstream
// call is skipped entirely. The forecast is returned, never persisted.
func (s *predictionService) ForDevice(ctx context.Context, deviceID string) (*PredictionResponse, error) {
	id, err := parseDeviceID(deviceID)
	if err != nil {
		return nil, err
	}

	measurements, err := s.measurementsRepo.RecentForDevice(ctx, id, predictionWindow)
	if err != nil {
		s.logger.Error("Load measurement history failed",
			zap.String("device_id", deviceID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: load measurement history", domain.ErrPersistence)
	}
	if len(measurements) == 0 {
		return nil, domain.ErrNotFound
	}

	records := make([]Record, 0, len(measurements))
	for _, m := range measurements {
		records = append(records, Record{
			Temperature: m.Temperature,
			Humidity:    m.Humidity,
			AirQuality:  m.AirQuality,
			Timestamp:   m.MeasuredAt,
		})
	}

	return s.aiClient.Predict(ctx, DeviceData{
		DeviceID: id.String(),
		Records:  records,
	})
}
