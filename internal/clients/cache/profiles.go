package cache

import (
	"context"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/finances-ai/internal/entity/user"
	"max.ks1230/finances-ai/internal/logger"
)

type profileCacher interface {
	GetProfile(userID string) (user.Profile, error)
	CacheProfile(profile user.Profile) error
	InvalidateProfile(userID string) error
}

type identityStorage interface {
	GetUserByID(ctx context.Context, id string) (user.Profile, error)
	UserIDBySession(ctx context.Context, token string) (string, error)
	UserIDByTelegramID(ctx context.Context, telegramID int64) (string, error)
	LinkTelegram(ctx context.Context, userID string, telegramID int64) error
}

// ProfileCache serves profiles from memcached and falls back to storage.
// Cache failures are logged and never fail a lookup.
type ProfileCache struct {
	identityStorage
	cache profileCacher
}

func NewProfileCache(storage identityStorage, cache profileCacher) *ProfileCache {
	return &ProfileCache{identityStorage: storage, cache: cache}
}

func (c *ProfileCache) GetUserByID(ctx context.Context, id string) (user.Profile, error) {
	profile, err := c.cache.GetProfile(id)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, memcache.ErrCacheMiss) {
		logger.Warn("profile cache read failed", zap.String("userID", id), zap.Error(err))
	}

	profile, err = c.identityStorage.GetUserByID(ctx, id)
	if err != nil {
		return user.Profile{}, err
	}
	if err = c.cache.CacheProfile(profile); err != nil {
		logger.Warn("profile cache write failed", zap.String("userID", id), zap.Error(err))
	}
	return profile, nil
}

// LinkTelegram changes the stored profile, so the cached copy is dropped.
func (c *ProfileCache) LinkTelegram(ctx context.Context, userID string, telegramID int64) error {
	if err := c.identityStorage.LinkTelegram(ctx, userID, telegramID); err != nil {
		return err
	}
	if err := c.cache.InvalidateProfile(userID); err != nil {
		logger.Warn("profile cache invalidation failed", zap.String("userID", userID), zap.Error(err))
	}
	return nil
}
