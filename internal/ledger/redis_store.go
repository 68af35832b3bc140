package ledger

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"codeberg.org/codeweaver/server/codeweaver/receipts"
	"github.com/redis/go-redis/v9"
)

const (
	keyReceipts = "codeweaver:receipts:%s"

	// entries older than this are trimmed on write
	defaultRetention = time.Hour
)

// implements ReceiptLog as one sorted set per user scored by unix millis
type RedisReceiptLog struct {
	client    *redis.Client
	retention time.Duration
}

// creates a new Redis-backed receipt log; retention must cover the rate limit window
func NewRedisReceiptLog(client *redis.Client, retention time.Duration) *RedisReceiptLog {
	if retention <= 0 {
		retention = defaultRetention
	}

	return &RedisReceiptLog{client: client, retention: retention}
}

func (l *RedisReceiptLog) RecordReceipt(ctx context.Context, receipt receipts.Receipt) error {
	key := fmt.Sprintf(keyReceipts, receipt.UserID)
	cutoff := receipt.CreatedAt.Add(-l.retention).UnixMilli()

	pipe := l.client.TxPipeline()
	pipe.ZAdd(ctx, key, redis.Z{
		Score:  float64(receipt.CreatedAt.UnixMilli()),
		Member: receipt.ID,
	})
	pipe.ZRemRangeByScore(ctx, key, "-inf", "("+strconv.FormatInt(cutoff, 10))
	pipe.Expire(ctx, key, l.retention)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record receipt: %w", err)
	}

	return nil
}

func (l *RedisReceiptLog) CountRecentReceipts(ctx context.Context, userID string, since time.Time) (int, error) {
	key := fmt.Sprintf(keyReceipts, userID)

	count, err := l.client.ZCount(ctx, key, strconv.FormatInt(since.UnixMilli(), 10), "+inf").Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count receipts: %w", err)
	}

	return int(count), nil
}
