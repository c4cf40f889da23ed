package infra

import (
	"context"
	"encoding/json"

	"billtrack/internal/reconcile"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// StockAlertChannel is the pub/sub channel live-update listeners subscribe to.
const StockAlertChannel = "stock:alerts"

// RedisBroadcaster publishes stock events to a Redis pub/sub channel. It
// satisfies reconcile.StockNotifier; publish failures are logged and
// swallowed because a missing listener must never fail an analysis call.
type RedisBroadcaster struct {
	rdb *redis.Client
}

func NewRedisBroadcaster(rdb *redis.Client) *RedisBroadcaster {
	return &RedisBroadcaster{rdb: rdb}
}

func (b *RedisBroadcaster) NotifyStock(ctx context.Context, e reconcile.StockEvent) {
	data, err := json.Marshal(e)
	if err != nil {
		log.Error().Err(err).Msg("broadcast: failed to marshal stock event")
		return
	}
	if err := b.rdb.Publish(ctx, StockAlertChannel, data).Err(); err != nil {
		log.Warn().Err(err).Str("item_code", e.ItemCode).Msg("broadcast: publish failed")
	}
}

var _ reconcile.StockNotifier = (*RedisBroadcaster)(nil)
