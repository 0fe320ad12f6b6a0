package services

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/livrocaixa/backend/internal/logger"
)

const (
	idempotencyPrefix = "ledger:posting:"
	pendingMarker     = "pending"
	// A claim whose posting never reported back frees itself after this long.
	pendingClaimTTL = 2 * time.Minute
)

// IdempotencyGuard deduplicates posting submissions that carry the same
// client-generated key. A nil guard, or one without redis, lets every
// submission through.
type IdempotencyGuard struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewIdempotencyGuard(rdb *redis.Client, ttl time.Duration) *IdempotencyGuard {
	return &IdempotencyGuard{redis: rdb, ttl: ttl}
}

func (g *IdempotencyGuard) enabled(key string) bool {
	return g != nil && g.redis != nil && key != ""
}

// Keys are namespaced by user so one user's key never answers for another's.
func redisKey(userID, key string) string {
	return idempotencyPrefix + userID + ":" + key
}

// Claim reserves the user's key for a new posting. When the key already completed, the
// stored transaction id is returned and nothing should be written. A key that
// is still in flight fails with KindDuplicateSubmission.
func (g *IdempotencyGuard) Claim(ctx context.Context, userID, key string) (existingID string, claimed bool, err error) {
	if !g.enabled(key) {
		return "", false, nil
	}
	log := logger.FromContext(ctx)
	k := redisKey(userID, key)

	ok, err := g.redis.SetNX(ctx, k, pendingMarker, pendingClaimTTL).Result()
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("idempotency claim failed, posting without guard")
		return "", false, nil
	}
	if ok {
		return "", true, nil
	}

	val, err := g.redis.Get(ctx, k).Result()
	switch {
	case err == redis.Nil:
		// Expired between SETNX and GET.
		return "", false, nil
	case err != nil:
		log.Warn().Err(err).Str("key", key).Msg("idempotency lookup failed, posting without guard")
		return "", false, nil
	case val == pendingMarker:
		return "", false, newLedgerError(KindDuplicateSubmission, nil)
	}
	return val, false, nil
}

// Complete binds key to the posted transaction id for the configured TTL.
func (g *IdempotencyGuard) Complete(ctx context.Context, userID, key, transactionID string) {
	if !g.enabled(key) {
		return
	}
	if err := g.redis.Set(ctx, redisKey(userID, key), transactionID, g.ttl).Err(); err != nil {
		log := logger.FromContext(ctx)
		log.Warn().Err(err).Str("key", key).Str("txId", transactionID).Msg("failed to record idempotency result")
	}
}

// Release drops a claim so the same submission can be retried.
func (g *IdempotencyGuard) Release(ctx context.Context, userID, key string) {
	if !g.enabled(key) {
		return
	}
	if err := g.redis.Del(ctx, redisKey(userID, key)).Err(); err != nil {
		log := logger.FromContext(ctx)
		log.Warn().Err(err).Str("key", key).Msg("failed to release idempotency claim")
	}
}
