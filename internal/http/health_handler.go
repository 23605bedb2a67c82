package httpapi

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type HealthHandler struct {
	db     *sql.DB // nil when running on in-memory repositories
	logger *zap.Logger
}

func NewHealthHandler(db *sql.DB, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: logger}
}

// Check GET /healthz
func (h *HealthHandler) Check(w http.ResponseWriter, req *http.Request) {
	resp := map[string]string{"status": "ok", "database": "disabled"}
	if h.db != nil {
		ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			h.logger.Warn("Health check database ping failed", zap.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "database": "down"})
			return
		}
		resp["database"] = "up"
	}
	writeJSON(w, http.StatusOK, resp)
}
