package mock

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"max.ks1230/finances-ai/internal/entity/chat"
	"max.ks1230/finances-ai/internal/entity/transaction"
)

type TransactionsStorageMock struct {
	mock.Mock
}

func (m *TransactionsStorageMock) FindTransactions(ctx context.Context, userID string, from, to time.Time) ([]transaction.Transaction, error) {
	args := m.Called(ctx, userID, from, to)
	txs, _ := args.Get(0).([]transaction.Transaction)
	return txs, args.Error(1)
}

type CompleterMock struct {
	mock.Mock
}

func (m *CompleterMock) Complete(ctx context.Context, model string, messages []chat.Message) ([]string, error) {
	args := m.Called(ctx, model, messages)
	choices, _ := args.Get(0).([]string)
	return choices, args.Error(1)
}

type Config struct {
	Credential bool
	Model      string
	Delay      time.Duration
}

func (c Config) HasCredential() bool {
	return c.Credential
}

func (c Config) ReportModel() string {
	return c.Model
}

func (c Config) PlaceholderDelay() time.Duration {
	return c.Delay
}
