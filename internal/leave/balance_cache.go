package leave

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultBalanceTTL = 10 * time.Minute

// BalanceCache keeps computed balance sheets in Redis keyed by employee
// and year. A nil *BalanceCache is a no-op so the service works without
// Redis in tests.
type BalanceCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewBalanceCache(rdb *redis.Client, ttl time.Duration, logger ...*zap.Logger) *BalanceCache {
	l := zap.L().Named("leave.balance_cache")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.balance_cache")
	}
	if ttl <= 0 {
		ttl = defaultBalanceTTL
	}
	return &BalanceCache{rdb: rdb, ttl: ttl, logger: l}
}

func balanceKey(employeeID string, year int) string {
	return fmt.Sprintf("leave:balance:%s:%d", employeeID, year)
}

func (c *BalanceCache) Get(ctx context.Context, employeeID string, year int) ([]BalanceResponse, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, balanceKey(employeeID, year)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("balance cache read failed",
				zap.String("employee_id", employeeID),
				zap.Error(err),
			)
		}
		return nil, false
	}

	var balances []BalanceResponse
	if err := json.Unmarshal(raw, &balances); err != nil {
		c.logger.Warn("balance cache decode failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return nil, false
	}
	return balances, true
}

func (c *BalanceCache) Set(ctx context.Context, employeeID string, year int, balances []BalanceResponse) {
	if c == nil || c.rdb == nil {
		return
	}

	raw, err := json.Marshal(balances)
	if err != nil {
		c.logger.Warn("balance cache encode failed", zap.Error(err))
		return
	}
	if err := c.rdb.Set(ctx, balanceKey(employeeID, year), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("balance cache write failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
	}
}

// Invalidate drops the cached sheets for the given years. Carry-over
// makes later years depend on earlier ones, so callers pass every year
// from the first affected one onward that they care about; entries
// beyond that age out via TTL.
func (c *BalanceCache) Invalidate(ctx context.Context, employeeID string, years ...int) {
	if c == nil || c.rdb == nil || len(years) == 0 {
		return
	}

	keys := make([]string, len(years))
	for i, year := range years {
		keys[i] = balanceKey(employeeID, year)
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("balance cache invalidate failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
	}
}
