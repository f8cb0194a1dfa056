package service

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// AssessmentQuota es el resultado de reservar una evaluacion.
// Remaining es -1 cuando no se conoce (Redis caido).
type AssessmentQuota struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// AssessmentRateLimiter limita cuantas re-evaluaciones acepta un sujeto por ventana.
type AssessmentRateLimiter interface {
	Reserve(ctx context.Context, subjectID string) AssessmentQuota
}

// Devuelve {contador, ttl restante en segundos}.
const redisAssessReserveScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return {current, redis.call("TTL", KEYS[1])}
`

const assessLimiterTimeout = 500 * time.Millisecond

type redisAssessmentRateLimiter struct {
	client redisEvaler
	window time.Duration
	max    int
	prefix string
}

type redisEvaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// NewRedisAssessmentRateLimiter devuelve nil si no hay cliente: el servicio no limita.
func NewRedisAssessmentRateLimiter(client *redis.Client, window time.Duration, max int) AssessmentRateLimiter {
	if client == nil {
		return nil
	}
	if window <= 0 {
		window = time.Hour
	}
	if max <= 0 {
		max = 1
	}
	return &redisAssessmentRateLimiter{
		client: client,
		window: window,
		max:    max,
		prefix: "assess:rl:",
	}
}

// Reserve consume una evaluacion de la ventana del sujeto. Falla abierto si Redis no responde.
func (l *redisAssessmentRateLimiter) Reserve(ctx context.Context, subjectID string) AssessmentQuota {
	if l == nil || l.client == nil {
		return AssessmentQuota{Allowed: true, Remaining: -1}
	}
	subjectID = strings.TrimSpace(subjectID)
	if subjectID == "" {
		return AssessmentQuota{}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, assessLimiterTimeout)
	defer cancel()

	seconds := int(l.window.Seconds())
	if seconds <= 0 {
		seconds = 60
	}
	res, err := l.client.Eval(ctx, redisAssessReserveScript, []string{l.prefix + subjectID}, seconds).Int64Slice()
	if err != nil || len(res) != 2 {
		return AssessmentQuota{Allowed: true, Remaining: -1}
	}

	count, ttl := int(res[0]), time.Duration(res[1])*time.Second
	if count <= l.max {
		return AssessmentQuota{Allowed: true, Remaining: l.max - count}
	}
	// TTL -1/-2: clave sin expiracion o desaparecida entre llamadas.
	if ttl <= 0 {
		ttl = l.window
	}
	return AssessmentQuota{Allowed: false, Remaining: 0, RetryAfter: ttl}
}
