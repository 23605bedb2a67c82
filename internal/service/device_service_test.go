package service

import (
	"context"
	"testing"
	"time"

	"tempestas-api/internal/domain"
	"tempestas-api/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newDeviceServiceForTest() (DeviceService, *repository.MemoryDevicesRepo) {
	repo := repository.NewMemoryDevicesRepo()
	return NewDeviceService(repo, zap.NewNop()), repo
}

func TestRegisterRequiresLocation(t *testing.T) {
	svc, _ := newDeviceServiceForTest()

	_, err := svc.Register(context.Background(), RegisterDeviceRequest{Location: "   "})
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestRegisterGeneratesIDAndCreatedAt(t *testing.T) {
	svc, _ := newDeviceServiceForTest()

	device, err := svc.Register(context.Background(), RegisterDeviceRequest{Location: "Sofia"})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, device.ID)
	require.False(t, device.CreatedAt.IsZero())

	got, err := svc.Get(context.Background(), device.ID.String())
	require.NoError(t, err)
	require.Equal(t, "Sofia", got.Location)
}

func TestRegisterKeepsSuppliedFields(t *testing.T) {
	svc, _ := newDeviceServiceForTest()

	id := uuid.New()
	createdAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	device, err := svc.Register(context.Background(), RegisterDeviceRequest{
		ID:        id.String(),
		Location:  "Plovdiv",
		CreatedAt: &createdAt,
	})
	require.NoError(t, err)
	require.Equal(t, id, device.ID)
	require.True(t, device.CreatedAt.Equal(createdAt))
}

func TestGetDeviceValidation(t *testing.T) {
	svc, _ := newDeviceServiceForTest()

	_, err := svc.Get(context.Background(), "")
	require.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = svc.Get(context.Background(), "not-a-guid")
	require.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = svc.Get(context.Background(), uuid.NewString())
	require.ErrorIs(t, err, domain.ErrNotFound)
}
