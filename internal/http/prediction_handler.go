package httpapi

import (
	"errors"
	"net/http"

	"tempestas-api/internal/domain"
	"tempestas-api/internal/service"

	"go.uber.org/zap"
)

type PredictionHandler struct {
	predictions service.PredictionService
	logger      *zap.Logger
}

func NewPredictionHandler(predictions service.PredictionService, logger *zap.Logger) *PredictionHandler {
	return &PredictionHandler{predictions: predictions, logger: logger}
}

// ForDevice GET /predictions/{deviceId}
func (h *PredictionHandler) ForDevice(w http.ResponseWriter, req *http.Request, deviceID string) {
	prediction, err := h.predictions.ForDevice(req.Context(), deviceID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidArgument):
			writeError(w, http.StatusBadRequest, "Invalid DeviceId format")
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "Prediction not found")
		case errors.Is(err, domain.ErrUpstreamUnavailable):
			writeError(w, http.StatusServiceUnavailable, "External prediction service is unavailable")
		default:
			// covers ErrUpstreamInvalidResponse and store faults
			writeError(w, http.StatusInternalServerError, "An error occurred while retrieving the prediction")
		}
		return
	}
	writeJSON(w, http.StatusOK, prediction)
}
