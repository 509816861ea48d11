// AngelaMos | 2026
// ratelimit.go

package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	redis_rate "github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/carterperez-dev/teamcomm/internal/config"
	"github.com/carterperez-dev/teamcomm/internal/core"
)

type RateLimitConfig struct {
	// Name separates buckets of limiters that share a key function.
	Name    string
	Limit   redis_rate.Limit
	KeyFunc func(*http.Request) string
}

// RateLimiter enforces a GCRA limit in Redis. When Redis is unreachable it
// keeps limiting with an in-process token bucket per key instead of failing
// open or closed.
type RateLimiter struct {
	name     string
	limit    redis_rate.Limit
	keyFunc  func(*http.Request) string
	redis    *redis_rate.Limiter
	fallback *localLimiter
}

func NewRateLimiter(rdb *redis.Client, cfg RateLimitConfig) *RateLimiter {
	keyFunc := cfg.KeyFunc
	if keyFunc == nil {
		keyFunc = KeyByIP
	}

	return &RateLimiter{
		name:     cfg.Name,
		limit:    cfg.Limit,
		keyFunc:  keyFunc,
		redis:    redis_rate.NewLimiter(rdb),
		fallback: &localLimiter{},
	}
}

func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := rl.keyFunc(r)
		if rl.name != "" {
			key += ":" + rl.name
		}

		res, err := rl.redis.Allow(r.Context(), key, rl.limit)
		if err != nil {
			slog.WarnContext(r.Context(), "rate limiter using local fallback",
				"limiter", rl.name,
				"error", err,
			)
			res = rl.fallback.allow(key, rl.limit, time.Now())
		}

		setRateLimitHeaders(w, res, rl.limit)

		if res.Allowed == 0 {
			writeRateLimitExceeded(w, res)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// LimitFromConfig turns the rate_limit config section into a limit.
func LimitFromConfig(cfg config.RateLimitConfig) redis_rate.Limit {
	period := cfg.Window
	if period <= 0 {
		period = time.Minute
	}
	return redis_rate.Limit{Rate: cfg.Requests, Burst: cfg.Burst, Period: period}
}

func PerMinute(rate, burst int) redis_rate.Limit {
	return redis_rate.Limit{Rate: rate, Burst: burst, Period: time.Minute}
}

func KeyByIP(r *http.Request) string {
	return core.RedisKey("ratelimit", "ip", ClientIP(r))
}

// KeyByCaller keys requests that carry a bearer token by its digest, so users
// behind one NAT get separate buckets and the raw token never reaches Redis.
// Anonymous requests fall back to the client IP.
func KeyByCaller(r *http.Request) string {
	if token := ExtractToken(r); token != "" {
		return core.RedisKey("ratelimit", "session", core.HashToken(token))
	}
	return KeyByIP(r)
}

func setRateLimitHeaders(w http.ResponseWriter, res *redis_rate.Result, limit redis_rate.Limit) {
	h := w.Header()
	h.Set("RateLimit-Policy", fmt.Sprintf("%d;w=%d", limit.Rate, int(limit.Period.Seconds())))
	h.Set("RateLimit", fmt.Sprintf("%d;t=%d", res.Remaining, int(res.ResetAfter.Seconds())))
	h.Set("X-RateLimit-Limit", strconv.Itoa(limit.Rate))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
}

func writeRateLimitExceeded(w http.ResponseWriter, res *redis_rate.Result) {
	retryAfter := max(int(res.RetryAfter.Seconds()), 1)

	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	core.JSONError(w, &core.AppError{
		Status:  http.StatusTooManyRequests,
		Code:    "RATE_LIMITED",
		Message: fmt.Sprintf("rate limit exceeded, retry after %d seconds", retryAfter),
	})
}

const localEntryTTL = 10 * time.Minute

type localEntry struct {
	bucket   *rate.Limiter
	lastSeen time.Time
}

// localLimiter is the zero-value-ready fallback. Idle entries are pruned on
// access, so no background goroutine is needed.
type localLimiter struct {
	mu        sync.Mutex
	entries   map[string]*localEntry
	lastPrune time.Time
}

func (l *localLimiter) allow(key string, limit redis_rate.Limit, now time.Time) *redis_rate.Result {
	perSecond := float64(limit.Rate) / limit.Period.Seconds()

	l.mu.Lock()
	if l.entries == nil {
		l.entries = make(map[string]*localEntry)
	}
	if now.Sub(l.lastPrune) > localEntryTTL {
		for k, e := range l.entries {
			if now.Sub(e.lastSeen) > localEntryTTL {
				delete(l.entries, k)
			}
		}
		l.lastPrune = now
	}
	e, ok := l.entries[key]
	if !ok {
		e = &localEntry{bucket: rate.NewLimiter(rate.Limit(perSecond), limit.Burst)}
		l.entries[key] = e
	}
	e.lastSeen = now
	allowed := e.bucket.AllowN(now, 1)
	remaining := max(int(e.bucket.TokensAt(now)), 0)
	l.mu.Unlock()

	interval := time.Duration(float64(time.Second) / perSecond)
	res := &redis_rate.Result{
		Limit:      limit,
		Remaining:  remaining,
		RetryAfter: -1,
		ResetAfter: interval,
	}
	if allowed {
		res.Allowed = 1
	} else {
		res.RetryAfter = interval
	}
	return res
}
