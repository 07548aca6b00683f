package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mwangaza-power/vend-server/internal/storage"
	"github.com/mwangaza-power/vend-server/internal/storage/sqlconfig"
)

func newTestUserService(t *testing.T) (*UserService, *mockUsersTable) {
	t.Helper()
	users := &mockUsersTable{}
	svc := NewUserService(&storage.Storage{Users: users})
	return svc, users
}

func TestFindOrCreate_EmptyClientID(t *testing.T) {
	svc, users := newTestUserService(t)

	user, err := svc.FindOrCreate(context.Background(), "")
	assert.ErrorIs(t, err, ErrClientIDRequired)
	assert.Nil(t, user)
	users.AssertNotCalled(t, "FindOrCreate", mock.Anything, mock.Anything)
}

func TestFindOrCreate_MapsStorageRow(t *testing.T) {
	svc, users := newTestUserService(t)

	id := uuid.Must(uuid.NewV4())
	tanesco := "0401223344556"
	lastVend := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	users.On("FindOrCreate", mock.Anything, "client-1").Return(&sqlconfig.User{
		ID:            id,
		ClientID:      "client-1",
		TanescoNumber: &tanesco,
		LastVendDate:  &lastVend,
	}, nil)

	user, err := svc.FindOrCreate(context.Background(), "client-1")
	assert.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, "client-1", user.ClientID)
	assert.Equal(t, &tanesco, user.TanescoNumber)
	assert.Equal(t, &lastVend, user.LastVendDate)
}

func TestFindOrCreate_StorageError(t *testing.T) {
	svc, users := newTestUserService(t)

	users.On("FindOrCreate", mock.Anything, "client-1").
		Return(nil, errors.New("connection refused"))

	user, err := svc.FindOrCreate(context.Background(), "client-1")
	assert.EqualError(t, err, "connection refused")
	assert.Nil(t, user)
}

func TestStatus_NewUserHasEmptyStatus(t *testing.T) {
	svc, users := newTestUserService(t)

	users.On("FindOrCreate", mock.Anything, "client-1").Return(&sqlconfig.User{
		ID:       uuid.Must(uuid.NewV4()),
		ClientID: "client-1",
	}, nil)

	status, err := svc.Status(context.Background(), "client-1")
	assert.NoError(t, err)
	assert.Nil(t, status.TanescoNumber)
	assert.Nil(t, status.LastVendDate)
}

func TestStatus_ReturnsUserFields(t *testing.T) {
	svc, users := newTestUserService(t)

	tanesco := "0401223344556"
	lastVend := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	users.On("FindOrCreate", mock.Anything, "client-1").Return(&sqlconfig.User{
		ID:            uuid.Must(uuid.NewV4()),
		ClientID:      "client-1",
		TanescoNumber: &tanesco,
		LastVendDate:  &lastVend,
	}, nil)

	status, err := svc.Status(context.Background(), "client-1")
	assert.NoError(t, err)
	assert.Equal(t, &tanesco, status.TanescoNumber)
	assert.Equal(t, &lastVend, status.LastVendDate)
}
