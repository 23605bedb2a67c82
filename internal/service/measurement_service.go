package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tempestas-api/internal/domain"
	"tempestas-api/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MeasurementService measurement ingestion and device-scoped latest lookup.
type MeasurementService interface {
	Add(ctx context.Context, req AddMeasurementRequest) (*domain.Measurement, error)
	Latest(ctx context.Context, deviceID string) (*domain.Measurement, error)
}

type measurementService struct {
	devicesRepo      repository.DevicesRepository
	measurementsRepo repository.MeasurementsRepository
	logger           *zap.Logger
}

func NewMeasurementService(
	devicesRepo repository.DevicesRepository,
	measurementsRepo repository.MeasurementsRepository,
	logger *zap.Logger,
) MeasurementService {
	return &measurementService{
		devicesRepo:      devicesRepo,
		measurementsRepo: measurementsRepo,
		logger:           logger,
	}
}

// AddMeasurementRequest ingestion input (transport DTO shape).
type AddMeasurementRequest struct {
	ID          string
	DeviceID    string
	Temperature float64
	Humidity    float64
	AirQuality  float64
	MeasuredAt  time.Time
}

// Add resolves the device before persisting, so an unknown device id is
// rejected up front rather than surfacing as a foreign-key violation.
func (s *measurementService) Add(ctx context.Context, req AddMeasurementRequest) (*domain.Measurement, error) {
	deviceID, err := parseDeviceID(req.DeviceID)
	if err != nil {
		return nil, err
	}

	if _, err := s.devicesRepo.GetDevice(ctx, deviceID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown device", domain.ErrNotFound)
		}
		s.logger.Error("Resolve device failed",
			zap.String("device_id", req.DeviceID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: resolve device", domain.ErrPersistence)
	}

	id := uuid.New()
	if req.ID != "" {
		parsed, err := uuid.Parse(req.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid measurement id", domain.ErrInvalidArgument)
		}
		id = parsed
	}

	measuredAt := req.MeasuredAt
	if measuredAt.IsZero() {
		measuredAt = time.Now().UTC()
	}

	measurement := &domain.Measurement{
		ID:          id,
		DeviceID:    deviceID,
		Temperature: req.Temperature,
		Humidity:    req.Humidity,
		AirQuality:  req.AirQuality,
		MeasuredAt:  measuredAt,
	}
	if err := s.measurementsRepo.CreateMeasurement(ctx, measurement); err != nil {
		s.logger.Error("Add measurement failed",
			zap.String("device_id", req.DeviceID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: create measurement", domain.ErrPersistence)
	}
	return measurement, nil
}

// Latest returns the measurement with the greatest measured_at for the
// device. Arrival order is irrelevant; ties on measured_at are undefined.
func (s *measurementService) Latest(ctx context.Context, deviceID string) (*domain.Measurement, error) {
	id, err := parseDeviceID(deviceID)
	if err != nil {
		return nil, err
	}

	measurement, err := s.measurementsRepo.LatestForDevice(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		s.logger.Error("Latest measurement failed",
			zap.String("device_id", deviceID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: latest measurement", domain.ErrPersistence)
	}
	return measurement, nil
}
