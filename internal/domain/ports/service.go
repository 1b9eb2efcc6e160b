package ports

import (
	"context"

	"brl-rate-service/internal/domain/model"
)

type DirectoryService interface {
	ListCurrencies(ctx context.Context) ([]model.Currency, error)
	GetOrFetch(ctx context.Context) ([]model.Currency, error)
}

type ExchangeService interface {
	GetRate(ctx context.Context, symbol, date string) (*model.RateRecord, error)
	Convert(ctx context.Context, request model.ConversionRequest) (*model.ConversionResult, error)
}
