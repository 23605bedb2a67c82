package domain

import (
	"time"

	"github.com/google/uuid"
)

// Measurement one timestamped sensor reading (measurements table).
// MeasuredAt is the time of physical observation, not arrival time:
// rows may arrive out of measured_at order, and "latest" always means
// latest by measured_at.
type Measurement struct {
	ID          uuid.UUID `json:"id" db:"id"`
	DeviceID    uuid.UUID `json:"deviceId" db:"device_id"`
	Temperature float64   `json:"temperature" db:"temperature"`
	Humidity    float64   `json:"humidity" db:"humidity"`
	AirQuality  float64   `json:"airQuality" db:"air_quality"`
	MeasuredAt  time.Time `json:"measuredAt" db:"measured_at"`
}
