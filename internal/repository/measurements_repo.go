package repository

import (
	"context"

	"tempestas-api/internal/domain"

	"github.com/google/uuid"
)

// MeasurementsRepository persistence for sensor readings.
// "Latest" and "recent" are ordered by measured_at, never by insert order;
// the order of rows with equal measured_at is undefined.
type MeasurementsRepository interface {
	CreateMeasurement(ctx context.Context, m *domain.Measurement) error
	LatestForDevice(ctx context.Context, deviceID uuid.UUID) (*domain.Measurement, error)
	RecentForDevice(ctx context.Context, deviceID uuid.UUID, limit int) ([]domain.Measurement, error)
}
