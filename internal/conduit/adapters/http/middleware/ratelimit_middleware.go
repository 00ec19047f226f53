package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"conduit/pkg/apperr"
	"conduit/pkg/logger"
)

// Константы для логирования.
const (
	LogRateLimited = "rate limit exceeded"

	ErrorTooManyRequests = "too many requests, please try again later"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter ограничивает частоту запросов с одного IP: limit запросов за window.
// Неактивные клиенты удаляются при очередном обращении, отдельной горутины нет.
type RateLimiter struct {
	window time.Duration
	limit  int
	now    func() time.Time

	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time
}

// NewRateLimiter создает ограничитель частоты запросов.
func NewRateLimiter(window time.Duration, limit int) *RateLimiter {
	return newRateLimiter(window, limit, time.Now)
}

func newRateLimiter(window time.Duration, limit int, now func() time.Time) *RateLimiter {
	if limit < 1 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{
		window:    window,
		limit:     limit,
		now:       now,
		visitors:  make(map[string]*visitor),
		lastSweep: now(),
	}
}

// Allow сообщает, можно ли обслужить очередной запрос клиента key.
func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.window {
		for k, v := range l.visitors {
			if now.Sub(v.lastSeen) >= l.window {
				delete(l.visitors, k)
			}
		}
		l.lastSweep = now
	}

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rate.Every(l.window/time.Duration(l.limit)), l.limit)}
		l.visitors[key] = v
	}
	v.lastSeen = now

	return v.limiter.AllowN(now, 1)
}

// Handler возвращает промежуточное ПО fiber.
func (l *RateLimiter) Handler() fiber.Handler {
	retryAfter := strconv.Itoa(int(l.window.Seconds()))

	return func(ctx fiber.Ctx) error {
		if l.Allow(ctx.IP()) {
			return ctx.Next()
		}

		requestCtx := ctx.Context()
		logger.Log(requestCtx).Warn(requestCtx, LogRateLimited, zap.String("ip", ctx.IP()))
		ctx.Set(fiber.HeaderRetryAfter, retryAfter)
		return apperr.TooManyRequests(ErrorTooManyRequests)
	}
}
