package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

const limiterPrefix = "complaintbox:limiter"

// NewLimiterStore returns a redis-backed store shared by every instance, or
// an in-memory one when rdb is nil or the redis store cannot be created.
func NewLimiterStore(rdb *redis.Client, log *logrus.Logger) limiter.Store {
	memoryStore := func() limiter.Store {
		return memory.NewStoreWithOptions(limiter.StoreOptions{
			Prefix:          limiterPrefix,
			CleanUpInterval: limiter.DefaultCleanUpInterval,
		})
	}
	if rdb == nil {
		return memoryStore()
	}

	store, err := sredis.NewStoreWithOptions(rdb, limiter.StoreOptions{
		Prefix:   limiterPrefix,
		MaxRetry: 3,
	})
	if err != nil {
		log.WithError(err).Warn("Failed to create Redis store for rate limiting, falling back to memory")
		return memoryStore()
	}
	return store
}

// rateLimit limits requests per client IP. name keeps the counters of
// different routes apart in the shared store.
func (h *Handler) rateLimit(name string, rate limiter.Rate) gin.HandlerFunc {
	if rate.Limit <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	lim := limiter.New(h.Options.LimiterStore, rate)
	return mgin.NewMiddleware(lim,
		mgin.WithKeyGetter(func(c *gin.Context) string {
			return name + ":" + c.ClientIP()
		}),
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			// A broken limiter store must not lock citizens out.
			h.Log.WithError(err).WithFields(requestFields(c)).Warn("rate limiter unavailable")
			c.Next()
		}),
	)
}
