package mock

import (
	"context"

	"github.com/stretchr/testify/mock"
	"max.ks1230/finances-ai/internal/entity/user"
)

type IdentityProviderMock struct {
	mock.Mock
}

func (m *IdentityProviderMock) CallerIdentity(ctx context.Context) (string, bool, error) {
	args := m.Called(ctx)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *IdentityProviderMock) Profile(ctx context.Context, userID string) (user.Profile, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(user.Profile), args.Error(1)
}

// Signed sets up a caller with the given plan.
func Signed(userID string, plan user.Plan) *IdentityProviderMock {
	m := &IdentityProviderMock{}
	m.On("CallerIdentity", mock.Anything).Return(userID, true, nil)
	m.On("Profile", mock.Anything, userID).Return(user.Profile{ID: userID, Plan: plan}, nil)
	return m
}

func Anonymous() *IdentityProviderMock {
	m := &IdentityProviderMock{}
	m.On("CallerIdentity", mock.Anything).Return("", false, nil)
	return m
}
