package queue

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisQueue is a single list-backed subject. Each worker subject
// (processing, thumbnail, upload) gets its own instance and loop.
type RedisQueue struct {
	rdb     *redis.Client
	subject string
}

func NewRedisQueue(rdb *redis.Client, subject string) *RedisQueue {
	return &RedisQueue{rdb: rdb, subject: subject}
}

func (q *RedisQueue) Subject() string { return q.subject }

// Pop blocks until a payload exists (BRPOP).
func (q *RedisQueue) Pop(ctx context.Context) (string, error) {
	res, err := q.rdb.BRPop(ctx, 0, q.subject).Result()
	if err != nil {
		return "", err
	}
	if len(res) < 2 {
		return "", nil
	}
	return res[1], nil
}

// Push enqueues a raw payload (LPUSH). The API uses this to hand work to
// the worker; delivery is at-most-once with no redelivery.
func (q *RedisQueue) Push(ctx context.Context, payload string) error {
	return q.rdb.LPush(ctx, q.subject, payload).Err()
}
