package ports

import (
	"context"

	"brl-rate-service/internal/domain/model"
)

// RateRepository talks to the upstream currency and exchange rate API.
type RateRepository interface {
	FetchCurrencies(ctx context.Context) ([]model.Currency, error)
	FetchFlags(ctx context.Context) ([]model.Flag, error)
	FetchRate(ctx context.Context, symbol, date string) (*model.RateRecord, error)
}
