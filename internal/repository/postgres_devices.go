package repository

import (
	"context"
	"database/sql"
	"errors"

	"tempestas-api/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PostgresDevicesRepo struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewPostgresDevicesRepo(db *sql.DB, logger *zap.Logger) *PostgresDevicesRepo {
	return &PostgresDevicesRepo{db: db, logger: logger}
}

func (r *PostgresDevicesRepo) CreateDevice(ctx context.Context, d *domain.Device) error {
	return withRetry(ctx, func(ctx context.Context) error {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO devices (id, location, created_at)
			 VALUES ($1, $2, $3)`,
			d.ID, d.Location, d.CreatedAt,
		)
		if err != nil {
			r.logger.Error("CreateDevice failed",
				zap.String("device_id", d.ID.String()),
				zap.Error(err),
			)
		}
		return err
	})
}

func (r *PostgresDevicesRepo) GetDevice(ctx context.Context, id uuid.UUID) (*domain.Device, error) {
	var d domain.Device
	err := withRetry(ctx, func(ctx context.Context) error {
		return r.db.QueryRowContext(ctx,
			`SELECT id, location, created_at
			 FROM devices
			 WHERE id = $1`,
			id,
		).Scan(&d.ID, &d.Location, &d.CreatedAt)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("GetDevice failed",
			zap.String("device_id", id.String()),
			zap.Error(err),
		)
		return nil, err
	}
	return &d, nil
}
