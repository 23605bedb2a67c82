package httpapi

import (
	"errors"
	"net/http"
	"time"

	"tempestas-api/internal/domain"
	"tempestas-api/internal/service"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var validate = validator.New()

type DeviceHandler struct {
	devices service.DeviceService
	logger  *zap.Logger
}

func NewDeviceHandler(devices service.DeviceService, logger *zap.Logger) *DeviceHandler {
	return &DeviceHandler{devices: devices, logger: logger}
}

// registerDeviceRequest transport DTO. ID and CreatedAt are optional.
type registerDeviceRequest struct {
	ID        string     `json:"id"`
	Location  string     `json:"location" validate:"required"`
	CreatedAt *time.Time `json:"createdAt"`
}

// Register POST /devices
func (h *DeviceHandler) Register(w http.ResponseWriter, req *http.Request) {
	var body registerDeviceRequest
	if err := readBodyJSON(req, maxBodyBytes, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid device data")
		return
	}
	if err := validate.Struct(body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid device data")
		return
	}

	device, err := h.devices.Register(req.Context(), service.RegisterDeviceRequest{
		ID:        body.ID,
		Location:  body.Location,
		CreatedAt: body.CreatedAt,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			writeError(w, http.StatusBadRequest, "Invalid device data")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to add device")
		return
	}
	writeJSON(w, http.StatusCreated, device)
}

// Get GET /devices/{id}
func (h *DeviceHandler) Get(w http.ResponseWriter, req *http.Request, deviceID string) {
	device, err := h.devices.Get(req.Context(), deviceID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidArgument):
			writeError(w, http.StatusBadRequest, "DeviceId cannot be null or empty")
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "Device not found")
		default:
			writeError(w, http.StatusInternalServerError, "An error occurred while retrieving the device")
		}
		return
	}
	writeJSON(w, http.StatusOK, device)
}
