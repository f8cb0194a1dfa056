package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type mockRedisEvaler struct {
	lastScript string
	lastKeys   []string
	lastArgs   []interface{}
	result     []interface{}
	err        error
}

func (m *mockRedisEvaler) Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd {
	m.lastScript = script
	m.lastKeys = keys
	m.lastArgs = args
	cmd := redis.NewCmd(ctx)
	if m.err != nil {
		cmd.SetErr(m.err)
		return cmd
	}
	cmd.SetVal(m.result)
	return cmd
}

func evalResult(count, ttl int64) []interface{} {
	return []interface{}{count, ttl}
}

func TestRedisAssessmentRateLimiterReserve(t *testing.T) {
	ctx := context.Background()

	t.Run("nil receiver fail-open", func(t *testing.T) {
		var l *redisAssessmentRateLimiter
		q := l.Reserve(ctx, "subject-1")
		if !q.Allowed || q.Remaining != -1 {
			t.Fatalf("expected fail-open for nil limiter, got %+v", q)
		}
	})

	t.Run("nil client returns nil limiter", func(t *testing.T) {
		if l := NewRedisAssessmentRateLimiter(nil, time.Minute, 3); l != nil {
			t.Fatalf("expected nil limiter without client")
		}
	})

	t.Run("empty subject rejected", func(t *testing.T) {
		l := &redisAssessmentRateLimiter{
			client: &mockRedisEvaler{result: evalResult(1, 60)},
			window: time.Minute,
			max:    3,
			prefix: "assess:rl:",
		}
		if q := l.Reserve(ctx, "   "); q.Allowed {
			t.Fatalf("expected empty subject to be rejected")
		}
	})

	t.Run("allow when count within max", func(t *testing.T) {
		mock := &mockRedisEvaler{result: evalResult(2, 120)}
		l := &redisAssessmentRateLimiter{
			client: mock,
			window: 2 * time.Minute,
			max:    3,
			prefix: "assess:rl:",
		}
		q := l.Reserve(ctx, " subject-1 ")
		if !q.Allowed || q.Remaining != 1 || q.RetryAfter != 0 {
			t.Fatalf("unexpected quota: %+v", q)
		}
		if len(mock.lastKeys) != 1 || mock.lastKeys[0] != "assess:rl:subject-1" {
			t.Fatalf("unexpected key, got %+v", mock.lastKeys)
		}
		if len(mock.lastArgs) != 1 || mock.lastArgs[0] != 120 {
			t.Fatalf("expected TTL seconds=120, got %+v", mock.lastArgs)
		}
		if mock.lastScript != redisAssessReserveScript {
			t.Fatalf("expected script to match")
		}
	})

	t.Run("deny reports retry after from ttl", func(t *testing.T) {
		l := &redisAssessmentRateLimiter{
			client: &mockRedisEvaler{result: evalResult(4, 42)},
			window: time.Minute,
			max:    3,
			prefix: "assess:rl:",
		}
		q := l.Reserve(ctx, "subject-1")
		if q.Allowed || q.Remaining != 0 || q.RetryAfter != 42*time.Second {
			t.Fatalf("unexpected quota: %+v", q)
		}
	})

	t.Run("deny without ttl falls back to window", func(t *testing.T) {
		l := &redisAssessmentRateLimiter{
			client: &mockRedisEvaler{result: evalResult(4, -1)},
			window: time.Minute,
			max:    3,
			prefix: "assess:rl:",
		}
		if q := l.Reserve(ctx, "subject-1"); q.RetryAfter != time.Minute {
			t.Fatalf("expected window as retry after, got %+v", q)
		}
	})

	t.Run("redis error fail-open", func(t *testing.T) {
		l := &redisAssessmentRateLimiter{
			client: &mockRedisEvaler{err: errors.New("redis down")},
			window: time.Minute,
			max:    3,
			prefix: "assess:rl:",
		}
		q := l.Reserve(ctx, "subject-1")
		if !q.Allowed || q.Remaining != -1 {
			t.Fatalf("expected fail-open on redis errors, got %+v", q)
		}
	})
}

func TestRedisAssessmentRateLimiterWithMiniredis(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	l := NewRedisAssessmentRateLimiter(client, time.Minute, 2)
	if q := l.Reserve(ctx, "subject-1"); !q.Allowed || q.Remaining != 1 {
		t.Fatalf("unexpected first quota: %+v", q)
	}
	if q := l.Reserve(ctx, "subject-1"); !q.Allowed || q.Remaining != 0 {
		t.Fatalf("unexpected second quota: %+v", q)
	}
	q := l.Reserve(ctx, "subject-1")
	if q.Allowed {
		t.Fatalf("expected third attempt to be denied")
	}
	if q.RetryAfter <= 0 || q.RetryAfter > time.Minute {
		t.Fatalf("expected retry after within the window, got %v", q.RetryAfter)
	}
	if q := l.Reserve(ctx, "subject-2"); !q.Allowed {
		t.Fatalf("expected other subject to be allowed")
	}
	if ttl := mr.TTL("assess:rl:subject-1"); ttl != time.Minute {
		t.Fatalf("expected ttl of 1m, got %v", ttl)
	}

	mr.FastForward(time.Minute + time.Second)
	if q := l.Reserve(ctx, "subject-1"); !q.Allowed {
		t.Fatalf("expected window reset after expiry")
	}
}
