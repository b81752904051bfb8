package layoutstore

import (
	"context"
	stderrors "errors"
	"fmt"
	"slices"

	"github.com/redis/go-redis/v9"

	"github.com/elvisburrniku/OrderTable-sub008/pkg/layout"
)

// redisKeyPrefix namespaces layout keys so the store can share a Redis
// database with other OrderTable services.
const redisKeyPrefix = "floorplan:layout:"

// RedisConfig configures a Redis-backed layout store.
type RedisConfig struct {
	Addr     string // host:port, e.g. "localhost:6379"
	Password string // optional
	DB       int    // database number
}

// RedisStore stores layouts as JSON values under per-room keys.
// Suitable for multi-instance deployments of the layout service.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis and verifies the connection with a ping.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return &RedisStore{client: client}, nil
}

// Get retrieves the layout for a room.
func (s *RedisStore) Get(ctx context.Context, room string) (*layout.RoomLayout, error) {
	data, err := s.client.Get(ctx, redisKeyPrefix+room).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", room, err)
	}
	return decode(data)
}

// Put stores a layout, replacing any previous value for the room.
// Layouts do not expire.
func (s *RedisStore) Put(ctx context.Context, l *layout.RoomLayout) error {
	data, err := layout.Marshal(l)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, redisKeyPrefix+l.Room, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", l.Room, err)
	}
	return nil
}

// Delete removes the layout for a room.
func (s *RedisStore) Delete(ctx context.Context, room string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+room).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", room, err)
	}
	return nil
}

// List scans for layout keys and returns the room identifiers, sorted.
func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	var rooms []string
	iter := s.client.Scan(ctx, 0, redisKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		rooms = append(rooms, iter.Val()[len(redisKeyPrefix):])
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan: %w", err)
	}
	slices.Sort(rooms)
	return rooms, nil
}

// Close closes the underlying Redis client.
func (s *RedisStore) Close() error { return s.client.Close() }

// Ensure RedisStore implements Store.
var _ Store = (*RedisStore)(nil)
