// Package refgen issues human-readable booking references from a Redis counter.
package refgen

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tourbook/internal/pkg/clock"
	"tourbook/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Counters outlive their month so late retries never restart a sequence.
const counterTTL = 62 * 24 * time.Hour

var errSequenceUnavailable = errs.New("booking reference sequence unavailable")

// RedisGenerator formats references as PREFIX-YYMM-NNNNN with one counter per
// organization and month. The bookings table's unique constraint backs it up.
type RedisGenerator struct {
	rdb   *redis.Client
	clock clock.Clock
	loc   *time.Location
}

func NewRedisGenerator(rdb *redis.Client, clk clock.Clock, loc *time.Location) *RedisGenerator {
	if loc == nil {
		loc = time.UTC
	}
	return &RedisGenerator{rdb: rdb, clock: clk, loc: loc}
}

func CounterKey(orgID uuid.UUID, yymm string) string {
	return "booking_ref:" + orgID.String() + ":" + yymm
}

func (g *RedisGenerator) Generate(ctx context.Context, orgID uuid.UUID, prefix string) (string, error) {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	if prefix == "" {
		prefix = "BK"
	}
	yymm := g.clock.Now().In(g.loc).Format("0601")
	key := CounterKey(orgID, yymm)

	n, err := g.rdb.Incr(ctx, key).Result()
	if err != nil {
		return "", errs.Mark(errs.Wrap(err, "increment reference counter"), errSequenceUnavailable)
	}
	if n == 1 {
		if err := g.rdb.Expire(ctx, key, counterTTL).Err(); err != nil {
			return "", errs.Mark(errs.Wrap(err, "expire reference counter"), errSequenceUnavailable)
		}
	}
	return fmt.Sprintf("%s-%s-%05d", prefix, yymm, n), nil
}
