package mock

import (
	"context"

	"github.com/stretchr/testify/mock"
	"max.ks1230/finances-ai/internal/entity/transaction"
	"max.ks1230/finances-ai/internal/model/reports"
	"max.ks1230/finances-ai/internal/model/transactions"
)

type MessageSenderMock struct {
	mock.Mock
}

func (m *MessageSenderMock) SendMessage(text string, userID int64) error {
	return m.Called(text, userID).Error(0)
}

type AuthenticatorMock struct {
	mock.Mock
}

func (m *AuthenticatorMock) Authenticate(ctx context.Context, token string) (string, bool, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *AuthenticatorMock) AuthenticateTelegram(ctx context.Context, telegramID int64) (string, bool, error) {
	args := m.Called(ctx, telegramID)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *AuthenticatorMock) LinkTelegram(ctx context.Context, userID string, telegramID int64) error {
	return m.Called(ctx, userID, telegramID).Error(0)
}

type TransactionsServiceMock struct {
	mock.Mock
}

func (m *TransactionsServiceMock) Page(ctx context.Context, limit int) (transactions.Page, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).(transactions.Page), args.Error(1)
}

func (m *TransactionsServiceMock) Add(ctx context.Context, in transactions.Input) (transaction.Transaction, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(transaction.Transaction), args.Error(1)
}

type ReportRequesterMock struct {
	mock.Mock
}

func (m *ReportRequesterMock) RequestReport(ctx context.Context, job reports.Job) error {
	return m.Called(ctx, job).Error(0)
}
