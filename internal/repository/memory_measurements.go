package repository

import (
	"context"
	"sort"
	"sync"

	"tempestas-api/internal/domain"

	"github.com/google/uuid"
)

// MemoryMeasurementsRepo in-memory measurement store for the DB-less
// fallback and tests. The foreign-key check lives in the service layer,
// which resolves the device before inserting.
type MemoryMeasurementsRepo struct {
	mu       sync.RWMutex
	byDevice map[uuid.UUID][]domain.Measurement
}

func NewMemoryMeasurementsRepo() *MemoryMeasurementsRepo {
	return &MemoryMeasurementsRepo{
		byDevice: map[uuid.UUID][]domain.Measurement{},
	}
}

func (r *MemoryMeasurementsRepo) CreateMeasurement(_ context.Context, m *domain.Measurement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byDevice[m.DeviceID] = append(r.byDevice[m.DeviceID], *m)
	return nil
}

func (r *MemoryMeasurementsRepo) LatestForDevice(_ context.Context, deviceID uuid.UUID) (*domain.Measurement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rows := r.byDevice[deviceID]
	if len(rows) == 0 {
		return nil, domain.ErrNotFound
	}
	latest := rows[0]
	for _, m := range rows[1:] {
		if m.MeasuredAt.After(latest.MeasuredAt) {
			latest = m
		}
	}
	return &latest, nil
}

func (r *MemoryMeasurementsRepo) RecentForDevice(_ context.Context, deviceID uuid.UUID, limit int) ([]domain.Measurement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rows := r.byDevice[deviceID]

	out := make([]domain.Measurement, len(rows))
	copy(out, rows)
	sort.Slice(out, func(i, j int) bool {
		return out[i].MeasuredAt.After(out[j].MeasuredAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
