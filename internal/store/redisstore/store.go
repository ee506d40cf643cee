package redisstore

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// Store keeps message counters maintained by the stats worker.
type Store struct {
	rdb *redis.Client
}

func New(addr, password string, db int) *Store {
	return &Store{rdb: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.rdb.Close()
}

func threadKey(threadID uint64) string {
	return "stats:thread:" + strconv.FormatUint(threadID, 10) + ":messages"
}

func userKey(userID uint64) string {
	return "stats:user:" + strconv.FormatUint(userID, 10) + ":messages"
}

// IncrMessageCounts bumps the per-thread and per-user counters by n.
func (s *Store) IncrMessageCounts(ctx context.Context, threadID, userID uint64, n int64) error {
	pipe := s.rdb.Pipeline()
	pipe.IncrBy(ctx, threadKey(threadID), n)
	pipe.IncrBy(ctx, userKey(userID), n)
	_, err := pipe.Exec(ctx)
	return err
}

// ThreadMessageCount returns the counter for a thread; missing keys count as zero.
func (s *Store) ThreadMessageCount(ctx context.Context, threadID uint64) (int64, error) {
	n, err := s.rdb.Get(ctx, threadKey(threadID)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return n, err
}

// UserMessageCount returns the counter for a user; missing keys count as zero.
func (s *Store) UserMessageCount(ctx context.Context, userID uint64) (int64, error) {
	n, err := s.rdb.Get(ctx, userKey(userID)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return n, err
}
