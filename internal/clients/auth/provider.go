package auth

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/finances-ai/internal/entity/user"
	"max.ks1230/finances-ai/internal/logger"
	"max.ks1230/finances-ai/internal/model/customerr"
)

const dependencyName = "identity"

type identityStorage interface {
	GetUserByID(ctx context.Context, id string) (user.Profile, error)
	UserIDBySession(ctx context.Context, token string) (string, error)
	UserIDByTelegramID(ctx context.Context, telegramID int64) (string, error)
	LinkTelegram(ctx context.Context, userID string, telegramID int64) error
}

// Provider resolves callers from sessions or linked Telegram accounts
// and serves their profiles.
type Provider struct {
	storage identityStorage
}

func NewProvider(storage identityStorage) *Provider {
	return &Provider{storage: storage}
}

func (p *Provider) CallerIdentity(ctx context.Context) (string, bool, error) {
	id, ok := CallerFromContext(ctx)
	return id, ok, nil
}

func (p *Provider) Profile(ctx context.Context, userID string) (user.Profile, error) {
	profile, err := p.storage.GetUserByID(ctx, userID)
	if errors.Is(err, customerr.ErrNotFound) {
		logger.Warn("caller has no profile", zap.String("userID", userID))
		return user.Profile{}, errors.Wrap(customerr.ErrUnauthenticated, "get profile")
	}
	if err != nil {
		return user.Profile{}, customerr.Dependency(dependencyName, errors.Wrap(err, "get profile"))
	}
	return profile, nil
}

// Authenticate resolves a session token. ok is false for unknown or expired sessions.
func (p *Provider) Authenticate(ctx context.Context, token string) (userID string, ok bool, err error) {
	if token == "" {
		return "", false, nil
	}
	userID, err = p.storage.UserIDBySession(ctx, token)
	return p.resolved(userID, err, "authenticate session")
}

// AuthenticateTelegram resolves a linked Telegram account.
func (p *Provider) AuthenticateTelegram(ctx context.Context, telegramID int64) (userID string, ok bool, err error) {
	userID, err = p.storage.UserIDByTelegramID(ctx, telegramID)
	return p.resolved(userID, err, "authenticate telegram")
}

func (p *Provider) resolved(userID string, err error, op string) (string, bool, error) {
	if errors.Is(err, customerr.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, customerr.Dependency(dependencyName, errors.Wrap(err, op))
	}
	return userID, true, nil
}

// LinkTelegram binds a Telegram account to the user so later bot messages
// resolve to them.
func (p *Provider) LinkTelegram(ctx context.Context, userID string, telegramID int64) error {
	if err := p.storage.LinkTelegram(ctx, userID, telegramID); err != nil {
		return customerr.Dependency(dependencyName, errors.Wrap(err, "link telegram"))
	}
	return nil
}
