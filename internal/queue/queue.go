package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gradesphere/gradesphere/internal/jobs"
)

// NotificationList is the redis list carrying pending email jobs.
const NotificationList = "gradesphere:notifications"

// ErrQueueEmpty is returned by Dequeue when no job arrived before the
// blocking timeout elapsed.
var ErrQueueEmpty = errors.New("queue is empty")

// Queue is the redis-backed job queue shared by the API producer and the
// worker consumer. Jobs are pushed with LPUSH and popped with BRPOP so the
// list behaves as FIFO.
type Queue struct {
	redisdb *redis.Client
}

func New(redisdb *redis.Client) *Queue {
	return &Queue{redisdb: redisdb}
}

func (q *Queue) Enqueue(ctx context.Context, j jobs.Job) error {
	b, err := json.Marshal(j)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}

	if err := q.redisdb.LPush(ctx, NotificationList, b).Err(); err != nil {
		return fmt.Errorf("push job: %w", err)
	}

	return nil
}

func (q *Queue) Dequeue(ctx context.Context, timeout time.Duration) (jobs.Job, error) {
	res, err := q.redisdb.BRPop(ctx, timeout, NotificationList).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return jobs.Job{}, ErrQueueEmpty
		}
		return jobs.Job{}, fmt.Errorf("pop job: %w", err)
	}

	// BRPop returns [key, value].
	if len(res) < 2 {
		return jobs.Job{}, ErrQueueEmpty
	}

	var j jobs.Job
	if err := json.Unmarshal([]byte(res[1]), &j); err != nil {
		return jobs.Job{}, fmt.Errorf("unmarshal job: %w", err)
	}

	return j, nil
}
