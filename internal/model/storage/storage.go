package storage

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"max.ks1230/finances-ai/internal/entity/transaction"
	"max.ks1230/finances-ai/internal/entity/user"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Storage is what the binaries need from a backend, both drivers provide it.
type Storage interface {
	GetUserByID(ctx context.Context, id string) (user.Profile, error)
	UserIDBySession(ctx context.Context, token string) (string, error)
	UserIDByTelegramID(ctx context.Context, telegramID int64) (string, error)
	LinkTelegram(ctx context.Context, userID string, telegramID int64) error
	FindTransactions(ctx context.Context, userID string, from, to time.Time) ([]transaction.Transaction, error)
	ListTransactions(ctx context.Context, userID string, limit int) ([]transaction.Transaction, error)
	CountCreatedTransactions(ctx context.Context, userID string, from, to time.Time) (int, error)
	SaveTransaction(ctx context.Context, rec transaction.Transaction, monthLimit int) error
	Close() error
}

// Open returns the backend named by driver.
func Open(driver string, pgConfig config) (Storage, error) {
	switch driver {
	case DriverPostgres:
		db, err := NewPostgresStorage(pgConfig)
		if err != nil {
			return nil, err
		}
		return db, nil
	case DriverMemory:
		return NewInMemStorage(), nil
	}
	return nil, errors.Errorf("unknown storage driver %q", driver)
}
