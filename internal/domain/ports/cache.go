package ports

import (
	"context"

	"brl-rate-service/internal/domain/model"
)

// RateCache stores rate records per (currency, date). Misses and read
// failures are both reported as not found.
type RateCache interface {
	Get(ctx context.Context, symbol, date string) (*model.RateRecord, bool)
	Put(ctx context.Context, symbol, date string, record *model.RateRecord) error
}
