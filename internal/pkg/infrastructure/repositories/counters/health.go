package counters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lemap/hubwatch/pkg/types"
	"github.com/redis/go-redis/v9"
)

// SetUnhealthy marks the hub as unhealthy for ttl. Setting it again
// replaces the expiry.
func (s *Store) SetUnhealthy(ctx context.Context, hub types.Hub, ttl time.Duration) error {
	key := HubStatusKey(hub)

	err := s.client.Set(ctx, key, string(types.HubUnhealthy), ttl).Err()
	if err != nil {
		return fmt.Errorf("could not set %s: %w", key, err)
	}

	return nil
}

func (s *Store) Health(ctx context.Context, hub types.Hub) (types.HubHealth, error) {
	key := HubStatusKey(hub)

	v, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return types.HubHealthy, nil
	}
	if err != nil {
		return types.HubHealthy, fmt.Errorf("could not read %s: %w", key, err)
	}

	return types.ParseHubHealth(v), nil
}
