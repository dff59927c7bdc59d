package cache

import (
	"encoding/json"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/finances-ai/internal/entity/user"
	"max.ks1230/finances-ai/internal/logger"
)

const profileKeyPrefix = "profile:"

type MemcacheClient struct {
	client *memcache.Client
	ttl    time.Duration
}

type config interface {
	Hosts() []string
	ProfileTTL() time.Duration
}

func NewMemcache(config config) (*MemcacheClient, error) {
	logger.Info("memcached hosts", zap.Strings("hosts", config.Hosts()))
	mc := memcache.New(config.Hosts()...)
	return &MemcacheClient{client: mc, ttl: config.ProfileTTL()}, mc.Ping()
}

func formatKey(userID string) string {
	return profileKeyPrefix + userID
}

func (mc *MemcacheClient) CacheProfile(profile user.Profile) error {
	logger.Info("cache profile", zap.String("userID", profile.ID))
	raw, err := json.Marshal(profile)
	if err != nil {
		return errors.Wrap(err, "marshal profile")
	}
	return mc.client.Set(&memcache.Item{
		Key:        formatKey(profile.ID),
		Value:      raw,
		Expiration: int32(mc.ttl / time.Second),
	})
}

func (mc *MemcacheClient) GetProfile(userID string) (user.Profile, error) {
	item, err := mc.client.Get(formatKey(userID))
	if err != nil {
		return user.Profile{}, err
	}
	var profile user.Profile
	if err = json.Unmarshal(item.Value, &profile); err != nil {
		return user.Profile{}, errors.Wrap(err, "unmarshal profile")
	}
	return profile, nil
}

func (mc *MemcacheClient) InvalidateProfile(userID string) error {
	logger.Info("invalidate profile", zap.String("userID", userID))

	err := mc.client.Delete(formatKey(userID))
	if err != nil && !errors.Is(err, memcache.ErrCacheMiss) {
		return err
	}
	return nil
}
