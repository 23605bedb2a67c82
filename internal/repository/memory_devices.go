package repository

import (
	"context"
	"sync"

	"tempestas-api/internal/domain"

	"github.com/google/uuid"
)

// MemoryDevicesRepo keeps the device registry working when the DB is
// disabled (local dev) and backs the handler/service unit tests.
type MemoryDevicesRepo struct {
	mu      sync.RWMutex
	devices map[uuid.UUID]domain.Device
}

func NewMemoryDevicesRepo() *MemoryDevicesRepo {
	return &MemoryDevicesRepo{
		devices: map[uuid.UUID]domain.Device{},
	}
}

func (r *MemoryDevicesRepo) CreateDevice(_ context.Context, d *domain.Device) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.devices[d.ID] = *d
	return nil
}

func (r *MemoryDevicesRepo) GetDevice(_ context.Context, id uuid.UUID) (*domain.Device, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.devices[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &d, nil
}
