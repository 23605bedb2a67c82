package domain

import (
	"time"

	"github.com/google/uuid"
)

// Device sensor unit domain model (devices table).
// ID is immutable once assigned; Location is required.
type Device struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Location  string    `json:"location" db:"location"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
