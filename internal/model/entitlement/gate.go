package entitlement

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/finances-ai/internal/entity/user"
	"max.ks1230/finances-ai/internal/logger"
	"max.ks1230/finances-ai/internal/model/customerr"
)

const dependencyName = "identity"

type identityProvider interface {
	CallerIdentity(ctx context.Context) (userID string, ok bool, err error)
	Profile(ctx context.Context, userID string) (user.Profile, error)
}

// Gate decides whether the current caller may proceed.
type Gate struct {
	identity identityProvider
}

func NewGate(identity identityProvider) *Gate {
	return &Gate{identity: identity}
}

// Caller returns the authenticated caller's profile.
func (g *Gate) Caller(ctx context.Context) (user.Profile, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "gate")
	defer span.Finish()

	profile, err := g.caller(ctx)
	if err != nil {
		ext.Error.Set(span, true)
	}
	return profile, err
}

func (g *Gate) caller(ctx context.Context) (user.Profile, error) {
	userID, ok, err := g.identity.CallerIdentity(ctx)
	if err != nil {
		return user.Profile{}, customerr.Dependency(dependencyName, errors.Wrap(err, "caller identity"))
	}
	if !ok {
		return user.Profile{}, customerr.ErrUnauthenticated
	}

	profile, err := g.identity.Profile(ctx, userID)
	if err != nil {
		return user.Profile{}, customerr.Dependency(dependencyName, errors.Wrap(err, "caller profile"))
	}
	return profile, nil
}

// RequirePlan fails with ErrPlanRequired unless the caller holds plan.
func (g *Gate) RequirePlan(ctx context.Context, plan user.Plan) (user.Profile, error) {
	profile, err := g.Caller(ctx)
	if err != nil {
		return user.Profile{}, err
	}
	if profile.Plan != plan {
		logger.Info("plan required", zap.String("userID", profile.ID), zap.String("plan", string(profile.Plan)))
		return user.Profile{}, customerr.ErrPlanRequired
	}
	return profile, nil
}
