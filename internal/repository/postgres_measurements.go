package repository

import (
	"context"
	"database/sql"
	"errors"

	"tempestas-api/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PostgresMeasurementsRepo struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewPostgresMeasurementsRepo(db *sql.DB, logger *zap.Logger) *PostgresMeasurementsRepo {
	return &PostgresMeasurementsRepo{db: db, logger: logger}
}

func (r *PostgresMeasurementsRepo) CreateMeasurement(ctx context.Context, m *domain.Measurement) error {
	return withRetry(ctx, func(ctx context.Context) error {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO measurements (id, device_id, temperature, humidity, air_quality, measured_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			m.ID, m.DeviceID, m.Temperature, m.Humidity, m.AirQuality, m.MeasuredAt,
		)
		if err != nil {
			r.logger.Error("CreateMeasurement failed",
				zap.String("device_id", m.DeviceID.String()),
				zap.Error(err),
			)
		}
		return err
	})
}

// LatestForDevice returns the row with the greatest measured_at for the
// device, independent of arrival order.
func (r *PostgresMeasurementsRepo) LatestForDevice(ctx context.Context, deviceID uuid.UUID) (*domain.Measurement, error) {
	var m domain.Measurement
	err := withRetry(ctx, func(ctx context.Context) error {
		return r.db.QueryRowContext(ctx,
			`SELECT id, device_id, temperature, humidity, air_quality, measured_at
			 FROM measurements
			 WHERE device_id = $1
			 ORDER BY measured_at DESC
			 LIMIT 1`,
			deviceID,
		).Scan(&m.ID, &m.DeviceID, &m.Temperature, &m.Humidity, &m.AirQuality, &m.MeasuredAt)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("LatestForDevice failed",
			zap.String("device_id", deviceID.String()),
			zap.Error(err),
		)
		return nil, err
	}
	return &m, nil
}

// RecentForDevice returns up to limit rows ordered by measured_at descending.
// An empty slice (not an error) means the device has no history.
func (r *PostgresMeasurementsRepo) RecentForDevice(ctx context.Context, deviceID uuid.UUID, limit int) ([]domain.Measurement, error) {
	out := []domain.Measurement{}
	err := withRetry(ctx, func(ctx context.Context) error {
		rows, err := r.db.QueryContext(ctx,
			`SELECT id, device_id, temperature, humidity, air_quality, measured_at
			 FROM measurements
			 WHERE device_id = $1
			 ORDER BY measured_at DESC
			 LIMIT $2`,
			deviceID, limit,
		)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = out[:0]
		for rows.Next() {
			var m domain.Measurement
			if err := rows.Scan(&m.ID, &m.DeviceID, &m.Temperature, &m.Humidity, &m.AirQuality, &m.MeasuredAt); err != nil {
				return err
			}
			out = append(out, m)
		}
		return rows.Err()
	})
	if err != nil {
		r.logger.Error("RecentForDevice failed",
			zap.String("device_id", deviceID.String()),
			zap.Error(err),
		)
		return nil, err
	}
	return out, nil
}
