package repository

import (
	"context"

	"tempestas-api/internal/domain"

	"github.com/google/uuid"
)

// DevicesRepository persistence for registered sensor devices.
// Implementations return domain.ErrNotFound when no row matches; any other
// error is a raw store fault the service layer classifies.
type DevicesRepository interface {
	CreateDevice(ctx context.Context, d *domain.Device) error
	GetDevice(ctx context.Context, id uuid.UUID) (*domain.Device, error)
}
