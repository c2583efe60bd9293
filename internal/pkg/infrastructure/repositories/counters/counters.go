package counters

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/lemap/hubwatch/pkg/types"
	"github.com/redis/go-redis/v9"
)

type Config struct {
	Addr     string
	Password string
	DB       int
}

// Store keeps the per (event type, hub) occurrence counters and the
// per hub health records. Both kinds of keys expire on their own.
type Store struct {
	client redis.UniversalClient
}

func NewWithClient(client redis.UniversalClient) *Store {
	return &Store{client: client}
}

func Connect(ctx context.Context, cfg Config) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("could not connect to redis at %s: %w", cfg.Addr, err)
	}

	return &Store{client: client}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func CounterKey(eventType types.EventType, hub types.Hub) string {
	return fmt.Sprintf("event_count:%s:%s", eventType, hub)
}

func HubStatusKey(hub types.Hub) string {
	return fmt.Sprintf("hub_status:%s", hub)
}

// Increment adds one occurrence and (re)sets the expiry of the counter
// to window.
func (s *Store) Increment(ctx context.Context, eventType types.EventType, hub types.Hub, window time.Duration) (int64, error) {
	key := CounterKey(eventType, hub)

	var incr *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, window)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("could not increment %s: %w", key, err)
	}

	return incr.Val(), nil
}

// Count returns the current counter value. A missing or non numeric value
// counts as zero.
func (s *Store) Count(ctx context.Context, eventType types.EventType, hub types.Hub) (int64, error) {
	key := CounterKey(eventType, hub)

	v, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("could not read %s: %w", key, err)
	}

	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return 0, nil
	}

	return n, nil
}

// consumeScript removes ARGV[1] occurrences from the counter. The key is
// deleted when nothing is left, otherwise the remainder keeps its TTL.
// A counter below ARGV[1] expired after it was read and has been started
// again, so it is left untouched.
var consumeScript = redis.NewScript(`
local current = tonumber(redis.call('GET', KEYS[1]) or '0') or 0
local consumed = tonumber(ARGV[1])
if current < consumed then
	return current
end
if current == consumed then
	redis.call('DEL', KEYS[1])
	return 0
end
return redis.call('DECRBY', KEYS[1], consumed)
`)

// Consume atomically resets the counter by the n occurrences that were
// already acted upon. Occurrences recorded after they were read are kept
// and count towards the next spike. The remaining count is returned.
func (s *Store) Consume(ctx context.Context, eventType types.EventType, hub types.Hub, n int64) (int64, error) {
	key := CounterKey(eventType, hub)

	remaining, err := consumeScript.Run(ctx, s.client, []string{key}, n).Int64()
	if err != nil {
		return 0, fmt.Errorf("could not reset %s: %w", key, err)
	}

	return remaining, nil
}
