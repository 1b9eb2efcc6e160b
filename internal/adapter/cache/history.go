package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"brl-rate-service/internal/domain/model"
	"brl-rate-service/internal/domain/ports"
	"brl-rate-service/pkg/logger"
	"brl-rate-service/pkg/utils"
)

// HistoryKey is the store key holding the serialized rate history.
const HistoryKey = "exchangeRateHistory"

// HistoryCache keeps every fetched rate record in one serialized
// symbol -> date -> record blob. Records for the current day are never
// stored because their quotes are still changing.
type HistoryCache struct {
	store ports.KeyValueStore
	now   func() time.Time
	mutex sync.Mutex
	log   *logger.Logger
}

func NewHistoryCache(store ports.KeyValueStore, log *logger.Logger) *HistoryCache {
	return NewHistoryCacheWithClock(store, time.Now, log)
}

func NewHistoryCacheWithClock(store ports.KeyValueStore, now func() time.Time, log *logger.Logger) *HistoryCache {
	return &HistoryCache{
		store: store,
		now:   now,
		log:   log,
	}
}

func (c *HistoryCache) Get(ctx context.Context, symbol, date string) (*model.RateRecord, bool) {
	history := c.load(ctx)

	record, found := history[symbol][date]
	if !found || record == nil {
		c.log.Debug("Cache miss", "currency", symbol, "date", date)
		return nil, false
	}

	c.log.Debug("Cache hit", "currency", symbol, "date", date)
	return record, true
}

func (c *HistoryCache) Put(ctx context.Context, symbol, date string, record *model.RateRecord) error {
	if utils.IsToday(date, c.now()) {
		c.log.Debug("Skipping cache for current day", "currency", symbol, "date", date)
		return nil
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	history := c.load(ctx)
	if history[symbol] == nil {
		history[symbol] = make(map[string]*model.RateRecord)
	}
	history[symbol][date] = record

	blob, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("encode rate history: %w", err)
	}

	if err := c.store.Set(ctx, HistoryKey, string(blob)); err != nil {
		return fmt.Errorf("write rate history: %w", err)
	}

	c.log.Debug("Cache set", "currency", symbol, "date", date)
	return nil
}

// load returns the persisted history, or an empty one when it is absent,
// unreadable or corrupt.
func (c *HistoryCache) load(ctx context.Context) model.RateHistory {
	history := model.RateHistory{}

	blob, found, err := c.store.Get(ctx, HistoryKey)
	if err != nil {
		c.log.Warn("Failed to read rate history", "error", err)
		return history
	}
	if !found || blob == "" {
		return history
	}

	if err := json.Unmarshal([]byte(blob), &history); err != nil {
		c.log.Warn("Discarding corrupt rate history", "error", err)
		return model.RateHistory{}
	}
	if history == nil {
		history = model.RateHistory{}
	}

	return history
}
