package ratelimit

import (
	"context"
	"time"

	redis "github.com/redis/go-redis/v9"
)

const signupKeyPrefix = "goagent:ratelimit:signup:"

// SignupLimiter limita intentos de registro por cliente (IP).
type SignupLimiter struct {
	bucket *TokenBucket
	rate   float64
	burst  int
}

// NewSignupLimiter perMinute intentos sostenidos por minuto con ráfaga burst.
func NewSignupLimiter(client redis.Scripter, perMinute, burst int) *SignupLimiter {
	if perMinute <= 0 {
		perMinute = 10
	}
	if burst <= 0 {
		burst = 5
	}
	return &SignupLimiter{
		bucket: NewTokenBucket(client),
		rate:   float64(perMinute) / 60,
		burst:  burst,
	}
}

// Allow consume un intento de clientKey.
func (l *SignupLimiter) Allow(ctx context.Context, clientKey string) (bool, time.Duration, error) {
	res, err := l.bucket.Allow(ctx, signupKeyPrefix+clientKey, l.rate, l.burst)
	if err != nil {
		return false, 0, err
	}
	return res.Allowed, res.RetryAfter, nil
}
