package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"tempestas-api/internal/domain"
	"tempestas-api/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type predictionFixture struct {
	measurementsRepo *repository.MemoryMeasurementsRepo
	predictions      PredictionService
}

func newPredictionFixture(upstreamURL string) *predictionFixture {
	logger := zap.NewNop()
	measurementsRepo := repository.NewMemoryMeasurementsRepo()
	return &predictionFixture{
		measurementsRepo: measurementsRepo,
		predictions:      NewPredictionService(measurementsRepo, NewAIClient(upstreamURL, logger), logger),
	}
}

func (f *predictionFixture) seedMeasurements(t *testing.T, deviceID uuid.UUID, n int) {
	t.Helper()
	base := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		err := f.measurementsRepo.CreateMeasurement(context.Background(), &domain.Measurement{
			ID:          uuid.New(),
			DeviceID:    deviceID,
			Temperature: 20,
			Humidity:    50,
			AirQuality:  10,
			MeasuredAt:  base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}
}

func TestForDeviceSkipsUpstreamWithoutHistory(t *testing.T) {
	var hits atomic.Int64
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer upstream.Close()

	f := newPredictionFixture(upstream.URL)
	_, err := f.predictions.ForDevice(context.Background(), uuid.NewString())
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.Equal(t, int64(0), hits.Load())
}

func TestForDeviceMalformedID(t *testing.T) {
	f := newPredictionFixture("")
	_, err := f.predictions.ForDevice(context.Background(), "not-a-guid")
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
}

// The upstream receives snake_case fields and at most 50 records, newest
// first.
func TestForDeviceRequestShapeAndWindow(t *testing.T) {
	var captured struct {
		DeviceID string           `json:"device_id"`
		Records  []map[string]any `json:"records"`
	}
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"` + uuid.NewString() + `","device_id":"` + captured.DeviceID + `",
			"temperature":21,"humidity":44,"air_quality":11,
			"predicted_for":"2026-03-15T00:00:00Z","generated_at":"2026-03-14T00:00:00Z","confidence":0.9}`))
	}))
	defer upstream.Close()

	f := newPredictionFixture(upstream.URL)
	deviceID := uuid.New()
	f.seedMeasurements(t, deviceID, 60)

	forecast, err := f.predictions.ForDevice(context.Background(), deviceID.String())
	require.NoError(t, err)
	require.InDelta(t, 0.9, forecast.Confidence, 1e-9)

	require.Equal(t, deviceID.String(), captured.DeviceID)
	require.Len(t, captured.Records, 50)

	first := captured.Records[0]
	for _, key := range []string{"temperature", "humidity", "air_quality", "timestamp"} {
		require.Contains(t, first, key)
	}

	// newest first: the 60th seeded minute leads the batch
	ts, err := time.Parse(time.RFC3339, first["timestamp"].(string))
	require.NoError(t, err)
	require.True(t, ts.Equal(time.Date(2026, 3, 14, 0, 59, 0, 0, time.UTC)))
}

func TestForDeviceUpstreamStatusClassification(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	f := newPredictionFixture(upstream.URL)
	deviceID := uuid.New()
	f.seedMeasurements(t, deviceID, 1)

	_, err := f.predictions.ForDevice(context.Background(), deviceID.String())
	require.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	require.NotErrorIs(t, err, domain.ErrPersistence)
}

func TestForDeviceUnreachableUpstream(t *testing.T) {
	// closed server: transport-level failure
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close()

	f := newPredictionFixture(upstream.URL)
	deviceID := uuid.New()
	f.seedMeasurements(t, deviceID, 1)

	_, err := f.predictions.ForDevice(context.Background(), deviceID.String())
	require.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestForDeviceUnparseableBody(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>definitely not json</html>"))
	}))
	defer upstream.Close()

	f := newPredictionFixture(upstream.URL)
	deviceID := uuid.New()
	f.seedMeasurements(t, deviceID, 1)

	_, err := f.predictions.ForDevice(context.Background(), deviceID.String())
	require.ErrorIs(t, err, domain.ErrUpstreamInvalidResponse)
}
