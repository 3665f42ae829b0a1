package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redis "github.com/go-redis/redis/v8"
	domain "github.com/inference-gateway/gridpick/internal/domain"
)

// RedisStorage journals dispatches in a Redis sorted set scored by creation
// time, with each record stored under its own key
type RedisStorage struct {
	client     *redis.Client
	ttl        time.Duration
	maxEntries int
}

var _ DispatchJournal = (*RedisStorage)(nil)

// NewRedisStorage creates a new Redis storage instance
func NewRedisStorage(config RedisConfig) (*RedisStorage, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Host, config.Port),
		DB:       config.Database,
		Password: config.Password,
		Username: config.Username,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return newRedisStorage(client, config), nil
}

func newRedisStorage(client *redis.Client, config RedisConfig) *RedisStorage {
	var ttl time.Duration
	if config.TTL > 0 {
		ttl = time.Duration(config.TTL) * time.Second
	}
	return &RedisStorage{
		client:     client,
		ttl:        ttl,
		maxEntries: config.MaxEntries,
	}
}

func (s *RedisStorage) dispatchKey(id string) string {
	return fmt.Sprintf("gridpick:dispatch:%s", id)
}

func (s *RedisStorage) indexKey() string {
	return "gridpick:dispatches:index"
}

// Record stores the record and indexes it by creation time
func (s *RedisStorage) Record(ctx context.Context, record domain.DispatchRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal dispatch record: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.dispatchKey(record.ID), data, s.ttl)
	pipe.ZAdd(ctx, s.indexKey(), &redis.Z{
		Score:  float64(record.CreatedAt.UnixNano()),
		Member: record.ID,
	})
	if s.maxEntries > 0 {
		pipe.ZRemRangeByRank(ctx, s.indexKey(), 0, int64(-s.maxEntries-1))
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record dispatch: %w", err)
	}
	return nil
}

// List returns records newest first. Index members whose record expired are
// skipped and pruned from the index.
func (s *RedisStorage) List(ctx context.Context, limit, offset int) ([]domain.DispatchRecord, error) {
	if offset < 0 {
		offset = 0
	}
	stop := int64(-1)
	if limit > 0 {
		stop = int64(offset + limit - 1)
	}

	ids, err := s.client.ZRevRange(ctx, s.indexKey(), int64(offset), stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read dispatch index: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.dispatchKey(id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load dispatches: %w", err)
	}

	records := make([]domain.DispatchRecord, 0, len(values))
	var stale []any
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			stale = append(stale, ids[i])
			continue
		}
		var r domain.DispatchRecord
		if err := json.Unmarshal([]byte(raw), &r); err != nil {
			continue
		}
		records = append(records, r)
	}

	if len(stale) > 0 {
		_ = s.client.ZRem(ctx, s.indexKey(), stale...).Err()
	}
	return records, nil
}

// Close closes the Redis connection
func (s *RedisStorage) Close() error {
	return s.client.Close()
}

// Health pings Redis
func (s *RedisStorage) Health(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
