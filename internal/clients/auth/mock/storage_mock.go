package mock

import (
	"context"

	"github.com/stretchr/testify/mock"
	"max.ks1230/finances-ai/internal/entity/user"
)

type IdentityStorageMock struct {
	mock.Mock
}

func (m *IdentityStorageMock) GetUserByID(ctx context.Context, id string) (user.Profile, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(user.Profile), args.Error(1)
}

func (m *IdentityStorageMock) UserIDBySession(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

func (m *IdentityStorageMock) UserIDByTelegramID(ctx context.Context, telegramID int64) (string, error) {
	args := m.Called(ctx, telegramID)
	return args.String(0), args.Error(1)
}

func (m *IdentityStorageMock) LinkTelegram(ctx context.Context, userID string, telegramID int64) error {
	return m.Called(ctx, userID, telegramID).Error(0)
}
