package bootstrap

import (
	"context"
	"fmt"
	"time"

	httpapi "github.com/GoSim-25-26J-441/ece-project-architect/internal/api/http"
	"github.com/GoSim-25-26J-441/ece-project-architect/internal/project_architect/repository"
	"github.com/GoSim-25-26J-441/ece-project-architect/internal/project_architect/workspace"
)

// SessionStore is what the server needs from a workspace store.
type SessionStore interface {
	workspace.Store
	httpapi.StoreStatus
	Sweep(ctx context.Context) (int, error)
}

type StoreOptions struct {
	Kind  string // memory | redis
	TTL   time.Duration
	Redis RedisOptions
}

// OpenStore returns the configured store and a function releasing it.
func OpenStore(ctx context.Context, opt StoreOptions) (SessionStore, func() error, error) {
	switch opt.Kind {
	case "", "memory":
		return repository.NewMemoryStore(opt.TTL), func() error { return nil }, nil
	case "redis":
		client, err := OpenRedis(ctx, opt.Redis)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewRedisStore(client, opt.TTL), client.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown session store %q", opt.Kind)
}
