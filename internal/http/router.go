package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Router wraps the standard http.ServeMux (no third-party routing dependency).
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// pathParam extracts the trailing segment after prefix; empty string when the
// remainder is missing or nested.
func pathParam(path, prefix string) (string, bool) {
	id := strings.TrimPrefix(path, prefix)
	if id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return id, true
}

func (r *Router) RegisterDeviceRoutes(h *DeviceHandler) {
	r.Handle("/devices", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Register(w, req)
	})

	r.Handle("/devices/", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		id, ok := pathParam(req.URL.Path, "/devices/")
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h.Get(w, req, id)
	})
}

func (r *Router) RegisterMeasurementRoutes(h *MeasurementHandler) {
	r.Handle("/measurements", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Add(w, req)
	})

	// {id} is a device identifier; see MeasurementHandler.Latest.
	r.Handle("/measurements/", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		id, ok := pathParam(req.URL.Path, "/measurements/")
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h.Latest(w, req, id)
	})
}

func (r *Router) RegisterPredictionRoutes(h *PredictionHandler) {
	r.Handle("/predictions/", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		id, ok := pathParam(req.URL.Path, "/predictions/")
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h.ForDevice(w, req, id)
	})
}

func (r *Router) RegisterHealthRoutes(h *HealthHandler) {
	r.Handle("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Check(w, req)
	})
}
