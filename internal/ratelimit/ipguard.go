package ratelimit

import (
	"fmt"
	"strconv"

	apperrors "codeberg.org/codeweaver/server/internal/errors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

const ipGuardPrefix = "codeweaver:ipguard"

// per-client-IP request ceiling in front of the whole API.
// rate uses the limiter format, e.g. "120-M"; a nil client keeps counters in memory
func NewIPGuard(rate string, client *redis.Client) (gin.HandlerFunc, error) {
	r, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, fmt.Errorf("invalid IP rate %q: %w", rate, err)
	}

	var store limiter.Store

	if client != nil {
		store, err = sredis.NewStoreWithOptions(client, limiter.StoreOptions{
			Prefix:   ipGuardPrefix,
			MaxRetry: 3,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create redis limiter store: %w", err)
		}
	} else {
		store = memory.NewStoreWithOptions(limiter.StoreOptions{
			Prefix:          ipGuardPrefix,
			CleanUpInterval: limiter.DefaultCleanUpInterval,
		})
	}

	instance := limiter.New(store, r)

	return mgin.NewMiddleware(instance,
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			c.Header("Retry-After", strconv.Itoa(int(r.Period.Seconds())))
			apperrors.TooManyRequests(c, "Too many requests from this address. Please slow down.")
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			// the per-user limiter still applies, so a broken store lets traffic through
			c.Next()
		}),
	), nil
}
