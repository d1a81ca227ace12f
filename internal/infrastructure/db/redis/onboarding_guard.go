package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/buildhub/property-api/internal/core/domain"
)

const (
	defaultLockTTL   = 2 * time.Minute
	defaultReplayTTL = 24 * time.Hour
)

// OnboardingGuard provides idempotent onboarding backed by Redis.
// Key format:
//
//	onboard:lock:<idempotency_key>  held while an attempt runs
//	onboard:done:<idempotency_key>  tenant id of the completed attempt
type OnboardingGuard struct {
	client    *redis.Client
	lockTTL   time.Duration
	replayTTL time.Duration
}

// NewOnboardingGuard creates a guard. A zero replayTTL uses the default.
func NewOnboardingGuard(client *redis.Client, replayTTL time.Duration) *OnboardingGuard {
	if replayTTL <= 0 {
		replayTTL = defaultReplayTTL
	}
	return &OnboardingGuard{client: client, lockTTL: defaultLockTTL, replayTTL: replayTTL}
}

// Begin returns the tenant id of a completed attempt, claims the key for a new
// attempt, or reports domain.ErrOnboardingInFlight.
func (g *OnboardingGuard) Begin(ctx context.Context, key string) (int64, error) {
	if id, ok, err := g.completed(ctx, key); err != nil || ok {
		return id, err
	}

	claimed, err := g.client.SetNX(ctx, lockKey(key), "1", g.lockTTL).Result()
	if err != nil {
		return 0, fmt.Errorf("onboarding guard claim: %w", err)
	}
	if claimed {
		return 0, nil
	}

	// The holder may have completed between both reads.
	if id, ok, err := g.completed(ctx, key); err != nil || ok {
		return id, err
	}
	return 0, domain.ErrOnboardingInFlight
}

// Complete records the tenant created for key and releases the claim.
func (g *OnboardingGuard) Complete(ctx context.Context, key string, tenantID int64) error {
	_, err := g.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, doneKey(key), tenantID, g.replayTTL)
		pipe.Del(ctx, lockKey(key))
		return nil
	})
	if err != nil {
		return fmt.Errorf("onboarding guard complete: %w", err)
	}
	return nil
}

// Abort releases the claim so the key can be retried.
func (g *OnboardingGuard) Abort(ctx context.Context, key string) error {
	if err := g.client.Del(ctx, lockKey(key)).Err(); err != nil {
		return fmt.Errorf("onboarding guard abort: %w", err)
	}
	return nil
}

func (g *OnboardingGuard) completed(ctx context.Context, key string) (int64, bool, error) {
	id, err := g.client.Get(ctx, doneKey(key)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("onboarding guard lookup: %w", err)
	}
	return id, true, nil
}

func lockKey(key string) string { return "onboard:lock:" + key }

func doneKey(key string) string { return "onboard:done:" + key }
