// Package bootstrap assembles the collaborators shared by the binaries.
package bootstrap

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/finances-ai/internal/clients/auth"
	"max.ks1230/finances-ai/internal/clients/cache"
	"max.ks1230/finances-ai/internal/clients/openai"
	"max.ks1230/finances-ai/internal/config"
	"max.ks1230/finances-ai/internal/entity/user"
	"max.ks1230/finances-ai/internal/logger"
	"max.ks1230/finances-ai/internal/model/entitlement"
	"max.ks1230/finances-ai/internal/model/reports"
	"max.ks1230/finances-ai/internal/model/storage"
	"max.ks1230/finances-ai/internal/model/transactions"
)

type identityStorage interface {
	GetUserByID(ctx context.Context, id string) (user.Profile, error)
	UserIDBySession(ctx context.Context, token string) (string, error)
	UserIDByTelegramID(ctx context.Context, telegramID int64) (string, error)
	LinkTelegram(ctx context.Context, userID string, telegramID int64) error
}

type Components struct {
	Storage      storage.Storage
	Auth         *auth.Provider
	Gate         *entitlement.Gate
	Transactions *transactions.Service
	Reports      *reports.Generator
}

// New opens storage and wires the domain services on top of it.
func New(conf *config.Service) (*Components, error) {
	logger.Info("Components init - start", zap.String("storage", conf.App().Storage()))

	db, err := storage.Open(conf.App().Storage(), conf.Postgres())
	if err != nil {
		return nil, errors.Wrap(err, "open storage")
	}

	provider := auth.NewProvider(identity(conf, db))
	gate := entitlement.NewGate(provider)

	if !conf.OpenAI().HasCredential() {
		logger.Warn("no language model credential, placeholder reports will be served")
	}

	c := &Components{
		Storage:      db,
		Auth:         provider,
		Gate:         gate,
		Transactions: transactions.NewService(conf.App(), gate, db),
		Reports:      reports.NewGenerator(conf.OpenAI(), conf.App(), gate, db, openai.New(conf.OpenAI())),
	}

	logger.Info("Components init - end")
	return c, nil
}

func (c *Components) Close() {
	if err := c.Storage.Close(); err != nil {
		logger.Error("failed to close storage", zap.Error(err))
	}
}

// identity puts memcached in front of profile lookups when it is configured
// and reachable.
func identity(conf *config.Service, db identityStorage) identityStorage {
	if !conf.Memcached().Enabled() {
		return db
	}

	mc, err := cache.NewMemcache(conf.Memcached())
	if err != nil {
		logger.Warn("memcached is unavailable, profiles are not cached", zap.Error(err))
		return db
	}
	return cache.NewProfileCache(db, mc)
}
