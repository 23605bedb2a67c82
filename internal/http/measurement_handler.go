package httpapi

import (
	"errors"
	"net/http"
	"time"

	"tempestas-api/internal/domain"
	"tempestas-api/internal/service"

	"go.uber.org/zap"
)

type MeasurementHandler struct {
	measurements service.MeasurementService
	logger       *zap.Logger
}

func NewMeasurementHandler(measurements service.MeasurementService, logger *zap.Logger) *MeasurementHandler {
	return &MeasurementHandler{measurements: measurements, logger: logger}
}

// measurementDTO transport DTO; translated to the entity only after the
// device id resolves against the registry.
type measurementDTO struct {
	ID          string    `json:"id"`
	DeviceID    string    `json:"deviceId" validate:"required"`
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
	AirQuality  float64   `json:"airQuality"`
	MeasuredAt  time.Time `json:"measuredAt"`
}

// Add POST /measurements
func (h *MeasurementHandler) Add(w http.ResponseWriter, req *http.Request) {
	var body measurementDTO
	if err := readBodyJSON(req, maxBodyBytes, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Measurement cannot be null")
		return
	}
	if err := validate.Struct(body); err != nil {
		writeError(w, http.StatusBadRequest, "Measurement cannot be null")
		return
	}

	measurement, err := h.measurements.Add(req.Context(), service.AddMeasurementRequest{
		ID:          body.ID,
		DeviceID:    body.DeviceID,
		Temperature: body.Temperature,
		Humidity:    body.Humidity,
		AirQuality:  body.AirQuality,
		MeasuredAt:  body.MeasuredAt,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusBadRequest, "The device id references unknown device")
		case errors.Is(err, domain.ErrInvalidArgument):
			writeError(w, http.StatusBadRequest, "Invalid device id format")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to add measurement")
		}
		return
	}
	writeJSON(w, http.StatusCreated, measurement)
}

// Latest GET /measurements/{id}
// The path parameter is a device identifier: the endpoint returns the most
// recent measurement (by measuredAt) for that device.
func (h *MeasurementHandler) Latest(w http.ResponseWriter, req *http.Request, deviceID string) {
	measurement, err := h.measurements.Latest(req.Context(), deviceID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidArgument):
			writeError(w, http.StatusBadRequest, "Invalid measurement ID format")
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "Measurement not found")
		default:
			writeError(w, http.StatusInternalServerError, "An error occurred while retrieving the measurement")
		}
		return
	}
	writeJSON(w, http.StatusOK, measurement)
}
