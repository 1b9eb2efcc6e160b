package service

import (
	"context"

	"brl-rate-service/internal/domain/model"
)

type MockRateCache struct {
	GetFunc func(ctx context.Context, symbol, date string) (*model.RateRecord, bool)
	PutFunc func(ctx context.Context, symbol, date string, record *model.RateRecord) error
}

func (m *MockRateCache) Get(ctx context.Context, symbol, date string) (*model.RateRecord, bool) {
	return m.GetFunc(ctx, symbol, date)
}

func (m *MockRateCache) Put(ctx context.Context, symbol, date string, record *model.RateRecord) error {
	return m.PutFunc(ctx, symbol, date, record)
}

type MockRateRepository struct {
	FetchCurrenciesFunc func(ctx context.Context) ([]model.Currency, error)
	FetchFlagsFunc      func(ctx context.Context) ([]model.Flag, error)
	FetchRateFunc       func(ctx context.Context, symbol, date string) (*model.RateRecord, error)
}

func (m *MockRateRepository) FetchCurrencies(ctx context.Context) ([]model.Currency, error) {
	return m.FetchCurrenciesFunc(ctx)
}

func (m *MockRateRepository) FetchFlags(ctx context.Context) ([]model.Flag, error) {
	return m.FetchFlagsFunc(ctx)
}

func (m *MockRateRepository) FetchRate(ctx context.Context, symbol, date string) (*model.RateRecord, error) {
	return m.FetchRateFunc(ctx, symbol, date)
}

type MockStore struct {
	GetFunc func(ctx context.Context, key string) (string, bool, error)
	SetFunc func(ctx context.Context, key, value string) error
}

func (m *MockStore) Get(ctx context.Context, key string) (string, bool, error) {
	return m.GetFunc(ctx, key)
}

func (m *MockStore) Set(ctx context.Context, key, value string) error {
	return m.SetFunc(ctx, key, value)
}
