package redisstore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rzbill/usher/internal/storage"
)

// Options configures the Redis store adapter.
type Options struct {
	Addr     string
	Password string
	DB       int
	// PoolSize caps the shared connection pool; each command acquires a
	// connection from the pool and releases it when the command returns.
	PoolSize     int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Store implements storage.RowStore on a Redis string bitmap per row.
type Store struct {
	client *redis.Client
}

var _ storage.RowStore = (*Store)(nil)

// Open creates a Redis-backed row store. It does not dial eagerly; use Ping
// to verify connectivity.
func Open(opts Options) *Store {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		PoolSize:     opts.PoolSize,
		DialTimeout:  opts.DialTimeout,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
	})
	return &Store{client: client}
}

// NewWithClient wraps an existing client. Used by tests.
func NewWithClient(client *redis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) EnsureRow(ctx context.Context, key string, size int) error {
	if err := ensureRowScript.Run(ctx, s.client, []string{key}, size).Err(); err != nil {
		return wrap("ensure row", key, err)
	}
	return nil
}

func (s *Store) ReserveFirstFree(ctx context.Context, key string, size, count int) (int, error) {
	start, err := reserveFirstFreeScript.Run(ctx, s.client, []string{key}, size, count).Int()
	if err != nil {
		return storage.NoSlot, wrap("reserve first free", key, err)
	}
	return start, nil
}

func (s *Store) ReserveRange(ctx context.Context, key string, size, start, count int) (int, error) {
	got, err := reserveRangeScript.Run(ctx, s.client, []string{key}, start, count).Int()
	if err != nil {
		return storage.NoSlot, wrap("reserve range", key, err)
	}
	return got, nil
}

func (s *Store) CountRow(ctx context.Context, key string) (int, error) {
	n, err := s.client.BitCount(ctx, key, nil).Result()
	if err != nil {
		return 0, wrap("count row", key, err)
	}
	return int(n), nil
}

func (s *Store) CountRows(ctx context.Context, keys []string) ([]int, error) {
	pipe := s.client.Pipeline()
	cmds := make([]*redis.IntCmd, len(keys))
	for i, key := range keys {
		cmds[i] = pipe.BitCount(ctx, key, nil)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, wrap("count rows", "", err)
	}
	counts := make([]int, len(keys))
	for i, cmd := range cmds {
		counts[i] = int(cmd.Val())
	}
	return counts, nil
}

// delChunk bounds the number of keys deleted per DEL command.
const delChunk = 512

func (s *Store) DeleteRows(ctx context.Context, keys []string) error {
	for len(keys) > 0 {
		n := min(len(keys), delChunk)
		if err := s.client.Del(ctx, keys[:n]...).Err(); err != nil {
			return wrap("delete rows", "", err)
		}
		keys = keys[n:]
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return wrap("ping", "", err)
	}
	return nil
}

// Stats surfaces connection pool counters for the stats endpoint.
func (s *Store) Stats() map[string]any {
	ps := s.client.PoolStats()
	return map[string]any{
		"backend":     "redis",
		"hits":        ps.Hits,
		"misses":      ps.Misses,
		"timeouts":    ps.Timeouts,
		"total_conns": ps.TotalConns,
		"idle_conns":  ps.IdleConns,
		"stale_conns": ps.StaleConns,
	}
}

func (s *Store) Close() error {
	return s.client.Close()
}

func wrap(op, key string, err error) error {
	if key != "" {
		return fmt.Errorf("%w: redis %s %s: %v", storage.ErrUnavailable, op, key, err)
	}
	return fmt.Errorf("%w: redis %s: %v", storage.ErrUnavailable, op, err)
}
