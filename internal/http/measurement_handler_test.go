package httpapi

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func postMeasurement(t *testing.T, env *testEnv, deviceID string, measuredAt time.Time) *measurementResult {
	t.Helper()
	rec := env.do(t, http.MethodPost, "/measurements", map[string]any{
		"deviceId":    deviceID,
		"temperature": 21.5,
		"humidity":    40.0,
		"airQuality":  12.0,
		"measuredAt":  measuredAt.Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created measurementResult
	decodeBody(t, rec, &created)
	return &created
}

type measurementResult struct {
	ID         string    `json:"id"`
	DeviceID   string    `json:"deviceId"`
	MeasuredAt time.Time `json:"measuredAt"`
}

func TestAddMeasurementUnknownDevice(t *testing.T) {
	env := newTestEnv(t, "")

	rec := env.do(t, http.MethodPost, "/measurements", map[string]any{
		"deviceId":    uuid.NewString(),
		"temperature": 20.0,
		"humidity":    50.0,
		"airQuality":  10.0,
		"measuredAt":  time.Now().UTC().Format(time.RFC3339),
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var envlp struct {
		Error string `json:"error"`
	}
	decodeBody(t, rec, &envlp)
	require.Equal(t, "The device id references unknown device", envlp.Error)
}

func TestAddMeasurementInvalidBody(t *testing.T) {
	env := newTestEnv(t, "")

	rec := env.do(t, http.MethodPost, "/measurements", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/measurements", map[string]any{
		"deviceId": "not-a-guid",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

// Latest is defined by measuredAt, not by arrival order.
func TestLatestMeasurementIgnoresArrivalOrder(t *testing.T) {
	env := newTestEnv(t, "")
	deviceID := env.registerDevice(t, "Sofia")

	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	postMeasurement(t, env, deviceID, day.Add(9*time.Hour))
	expected := postMeasurement(t, env, deviceID, day.Add(11*time.Hour))
	postMeasurement(t, env, deviceID, day.Add(10*time.Hour))

	rec := env.do(t, http.MethodGet, "/measurements/"+deviceID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var latest measurementResult
	decodeBody(t, rec, &latest)
	require.Equal(t, expected.ID, latest.ID)
	require.True(t, latest.MeasuredAt.Equal(day.Add(11*time.Hour)))
}

func TestLatestMeasurementMalformedID(t *testing.T) {
	env := newTestEnv(t, "")

	rec := env.do(t, http.MethodGet, "/measurements/not-a-guid", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLatestMeasurementNoData(t *testing.T) {
	env := newTestEnv(t, "")
	deviceID := env.registerDevice(t, "Varna")

	rec := env.do(t, http.MethodGet, "/measurements/"+deviceID, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
