package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/GoSim-25-26J-441/ece-project-architect/internal/project_architect/domain"
	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "architect:session:" // Workspace state: architect:session:{session_id}
	sessionIndexKey  = "architect:sessions" // Set of session IDs seen since the last sweep
	DefaultTTL       = 30 * time.Minute
)

// RedisStore keeps workspace snapshots in Redis with a sliding TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a new RedisStore
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

// Load returns the stored state or domain.ErrSessionNotFound.
func (r *RedisStore) Load(ctx context.Context, id string) (domain.WorkspaceState, error) {
	data, err := r.client.Get(ctx, r.sessionKey(id)).Bytes()
	if err == redis.Nil {
		return domain.WorkspaceState{}, domain.ErrSessionNotFound
	}
	if err != nil {
		return domain.WorkspaceState{}, fmt.Errorf("failed to get session: %w", err)
	}

	var st domain.WorkspaceState
	if err := json.Unmarshal(data, &st); err != nil {
		return domain.WorkspaceState{}, fmt.Errorf("failed to unmarshal session data: %w", err)
	}
	return st, nil
}

// Save writes the state and refreshes its TTL.
func (r *RedisStore) Save(ctx context.Context, id string, st domain.WorkspaceState) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.sessionKey(id), data, r.ttl)
	pipe.SAdd(ctx, sessionIndexKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Delete removes the state. Deleting an unknown session is not an error.
func (r *RedisStore) Delete(ctx context.Context, id string) error {
	pipe := r.client.Pipeline()
	pipe.Del(ctx, r.sessionKey(id))
	pipe.SRem(ctx, sessionIndexKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Sweep drops index entries whose state has already expired and returns how many.
func (r *RedisStore) Sweep(ctx context.Context) (int, error) {
	ids, err := r.client.SMembers(ctx, sessionIndexKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to list sessions: %w", err)
	}

	removed := 0
	for _, id := range ids {
		n, err := r.client.Exists(ctx, r.sessionKey(id)).Result()
		if err != nil {
			return removed, fmt.Errorf("failed to check session: %w", err)
		}
		if n == 0 {
			if err := r.client.SRem(ctx, sessionIndexKey, id).Err(); err != nil {
				return removed, fmt.Errorf("failed to prune session index: %w", err)
			}
			removed++
		}
	}
	return removed, nil
}

// Count returns the number of indexed sessions.
func (r *RedisStore) Count(ctx context.Context) (int, error) {
	n, err := r.client.SCard(ctx, sessionIndexKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return int(n), nil
}

// Ping checks the connection.
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisStore) Name() string { return "redis" }

func (r *RedisStore) sessionKey(id string) string {
	return sessionKeyPrefix + id
}
