package distributed

import (
	"context"
	"log/slog"
	"sync"
	"threadgems/internal/config"
	"threadgems/internal/metrics"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const leaderKey = "threadgems:leader"

// renewScript extends the lease only while this instance still holds it.
const renewScript = `
if redis.call("get", KEYS[1]) == ARGV[1] then
    return redis.call("pexpire", KEYS[1], ARGV[2])
end
return 0
`

const resignScript = `
if redis.call("get", KEYS[1]) == ARGV[1] then
    return redis.call("del", KEYS[1])
end
return 0
`

// LeaseClient is the subset of *redis.Client the election relies on.
type LeaseClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// Election holds a redis lease so that only one instance runs leader jobs.
type Election struct {
	Redis      LeaseClient
	InstanceID string // Unique identifier
	TTL        time.Duration
	logger     *slog.Logger
	isLeader   bool
	mu         sync.RWMutex
}

func NewElection(client LeaseClient, ttl time.Duration, logger *slog.Logger) *Election {
	if ttl <= 0 {
		ttl = config.DefaultDistributedConfig.TTL
	}

	return &Election{
		Redis:      client,
		InstanceID: uuid.NewString(),
		TTL:        ttl,
		logger:     logger,
	}
}

func (e *Election) IsLeader() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.isLeader
}

func (e *Election) campaign(ctx context.Context) {
	leader := e.acquire(ctx)

	e.mu.Lock()
	wasLeader := e.isLeader
	e.isLeader = leader
	e.mu.Unlock()

	if leader && !wasLeader {
		e.logger.Info("became leader", "instance", e.InstanceID)
		metrics.IsLeader.Set(1)
		metrics.LeadershipChanges.Inc()
	} else if !leader && wasLeader {
		e.logger.Info("lost leadership", "instance", e.InstanceID)
		metrics.IsLeader.Set(0)
		metrics.LeadershipChanges.Inc()
	}
}

// acquire takes a free lease or renews our own. An unreachable redis counts
// as not leading.
func (e *Election) acquire(ctx context.Context) bool {
	ok, err := e.Redis.SetNX(ctx, leaderKey, e.InstanceID, e.TTL).Result()
	if err != nil {
		e.logger.Error("failed to campaign for leadership", "error", err, "instance", e.InstanceID)
		return false
	}
	if ok {
		return true
	}

	renewed, err := e.Redis.Eval(ctx, renewScript, []string{leaderKey}, e.InstanceID, e.TTL.Milliseconds()).Int64()
	if err != nil {
		e.logger.Error("failed to renew leadership", "error", err, "instance", e.InstanceID)
		return false
	}
	return renewed == 1
}

// Start campaigns every TTL/3 until ctx is cancelled, then resigns.
func (e *Election) Start(ctx context.Context) {
	interval := e.TTL / 3
	if interval <= 0 {
		interval = config.DefaultDistributedConfig.TTL / 3
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	e.campaign(ctx)

	for {
		select {
		case <-ctx.Done():
			// the parent context is gone, so resign on a fresh one
			resignCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			e.resign(resignCtx)
			cancel()
			return
		case <-ticker.C:
			e.campaign(ctx)
		}
	}
}

func (e *Election) resign(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.isLeader {
		return
	}

	_, err := e.Redis.Eval(ctx, resignScript, []string{leaderKey}, e.InstanceID).Result()
	if err != nil {
		e.logger.Error("failed to resign leadership", "error", err, "instance", e.InstanceID)
	} else {
		e.logger.Info("resigned leadership", "instance", e.InstanceID)
	}

	metrics.IsLeader.Set(0)
	e.isLeader = false
}
