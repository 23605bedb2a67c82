package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tempestas-api/internal/domain"
	"tempestas-api/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DeviceService device registry: registration and lookup.
type DeviceService interface {
	Register(ctx context.Context, req RegisterDeviceRequest) (*domain.Device, error)
	Get(ctx context.Context, deviceID string) (*domain.Device, error)
}

type deviceService struct {
	devicesRepo repository.DevicesRepository
	logger      *zap.Logger
}

func NewDeviceService(devicesRepo repository.DevicesRepository, logger *zap.Logger) DeviceService {
	return &deviceService{
		devicesRepo: devicesRepo,
		logger:      logger,
	}
}

// RegisterDeviceRequest registration input. ID and CreatedAt are optional;
// the server generates them when absent.
type RegisterDeviceRequest struct {
	ID        string
	Location  string
	CreatedAt *time.Time
}

func (s *deviceService) Register(ctx context.Context, req RegisterDeviceRequest) (*domain.Device, error) {
	location := strings.TrimSpace(req.Location)
	if location == "" {
		return nil, fmt.Errorf("%w: location is required", domain.ErrInvalidArgument)
	}

	id := uuid.New()
	if req.ID != "" {
		parsed, err := uuid.Parse(req.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid device id", domain.ErrInvalidArgument)
		}
		id = parsed
	}

	createdAt := time.Now().UTC()
	if req.CreatedAt != nil {
		createdAt = *req.CreatedAt
	}

	device := &domain.Device{
		ID:        id,
		Location:  location,
		CreatedAt: createdAt,
	}
	if err := s.devicesRepo.CreateDevice(ctx, device); err != nil {
		s.logger.Error("Register device failed",
			zap.String("device_id", device.ID.String()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: create device", domain.ErrPersistence)
	}
	return device, nil
}

func (s *deviceService) Get(ctx context.Context, deviceID string) (*domain.Device, error) {
	id, err := parseDeviceID(deviceID)
	if err != nil {
		return nil, err
	}

	device, err := s.devicesRepo.GetDevice(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		s.logger.Error("Get device failed",
			zap.String("device_id", deviceID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: get device", domain.ErrPersistence)
	}
	return device, nil
}

// parseDeviceID validates the identifier locally; bad input never reaches
// the store.
func parseDeviceID(deviceID string) (uuid.UUID, error) {
	if strings.TrimSpace(deviceID) == "" {
		return uuid.Nil, fmt.Errorf("%w: device id cannot be empty", domain.ErrInvalidArgument)
	}
	id, err := uuid.Parse(deviceID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid device id format", domain.ErrInvalidArgument)
	}
	return id, nil
}
