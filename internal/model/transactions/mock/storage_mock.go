package mock

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"max.ks1230/finances-ai/internal/entity/transaction"
)

type TransactionsStorageMock struct {
	mock.Mock
}

func (m *TransactionsStorageMock) ListTransactions(ctx context.Context, userID string, limit int) ([]transaction.Transaction, error) {
	args := m.Called(ctx, userID, limit)
	txs, _ := args.Get(0).([]transaction.Transaction)
	return txs, args.Error(1)
}

func (m *TransactionsStorageMock) CountCreatedTransactions(ctx context.Context, userID string, from, to time.Time) (int, error) {
	args := m.Called(ctx, userID, from, to)
	return args.Int(0), args.Error(1)
}

func (m *TransactionsStorageMock) SaveTransaction(ctx context.Context, rec transaction.Transaction, monthLimit int) error {
	return m.Called(ctx, rec, monthLimit).Error(0)
}
