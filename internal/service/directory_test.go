package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"brl-rate-service/internal/adapter/store"
	"brl-rate-service/internal/domain/model"
	"brl-rate-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func upstreamCurrencies(currencies ...model.Currency) func(ctx context.Context) ([]model.Currency, error) {
	return func(ctx context.Context) ([]model.Currency, error) {
		return currencies, nil
	}
}

func noFlags(ctx context.Context) ([]model.Flag, error) {
	return nil, nil
}

func TestDirectoryService_ListCurrencies(t *testing.T) {
	usd := model.Currency{Name: "Dólar dos Estados Unidos", Symbol: "USD"}
	eur := model.Currency{Name: "Euro", Symbol: "EUR"}
	brl := model.Currency{Name: "Real", Symbol: "BRL"}

	testCases := []struct {
		name           string
		mockRepository MockRateRepository
		expected       []model.Currency
	}{
		{
			name: "home currency appended with flags",
			mockRepository: MockRateRepository{
				FetchCurrenciesFunc: upstreamCurrencies(usd, eur),
				FetchFlagsFunc: func(ctx context.Context) ([]model.Flag, error) {
					return []model.Flag{
						{Code: "USD", FlagURL: "https://flags.example/us.svg"},
						{Code: "BRL", FlagURL: "https://flags.example/br.svg"},
					}, nil
				},
			},
			expected: []model.Currency{
				{Name: usd.Name, Symbol: "USD", FlagURL: "https://flags.example/us.svg"},
				{Name: eur.Name, Symbol: "EUR", FlagURL: model.DefaultFlagURL},
				{Name: model.HomeName, Symbol: "BRL", FlagURL: "https://flags.example/br.svg"},
			},
		},
		{
			name: "flag failure falls back to default flag",
			mockRepository: MockRateRepository{
				FetchCurrenciesFunc: upstreamCurrencies(usd),
				FetchFlagsFunc: func(ctx context.Context) ([]model.Flag, error) {
					return nil, fmt.Errorf("%w: flags down", model.ErrNetwork)
				},
			},
			expected: []model.Currency{
				{Name: usd.Name, Symbol: "USD", FlagURL: model.DefaultFlagURL},
				{Name: model.HomeName, Symbol: "BRL", FlagURL: model.DefaultFlagURL},
			},
		},
		{
			name: "upstream home currency is kept once",
			mockRepository: MockRateRepository{
				FetchCurrenciesFunc: upstreamCurrencies(brl, usd, brl),
				FetchFlagsFunc:      noFlags,
			},
			expected: []model.Currency{
				{Name: brl.Name, Symbol: "BRL", FlagURL: model.DefaultFlagURL},
				{Name: usd.Name, Symbol: "USD", FlagURL: model.DefaultFlagURL},
			},
		},
		{
			name: "empty upstream list still has the home currency",
			mockRepository: MockRateRepository{
				FetchCurrenciesFunc: upstreamCurrencies(),
				FetchFlagsFunc:      noFlags,
			},
			expected: []model.Currency{
				{Name: model.HomeName, Symbol: "BRL", FlagURL: model.DefaultFlagURL},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := tc.mockRepository
			s := NewDirectoryService(&repo, store.NewMemoryStore(), "", logger.NewNopLogger())

			currencies, err := s.ListCurrencies(context.Background())

			require.NoError(t, err)
			assert.Equal(t, tc.expected, currencies)
		})
	}
}

func TestDirectoryService_ListCurrencies_HomeName(t *testing.T) {
	repo := &MockRateRepository{
		FetchCurrenciesFunc: upstreamCurrencies(model.Currency{Name: "Euro", Symbol: "EUR"}),
		FetchFlagsFunc:      noFlags,
	}
	s := NewDirectoryService(repo, store.NewMemoryStore(), "Brazilian Real", logger.NewNopLogger())

	currencies, err := s.ListCurrencies(context.Background())

	require.NoError(t, err)
	require.Len(t, currencies, 2)
	assert.Equal(t, model.Currency{Name: "Brazilian Real", Symbol: "BRL", FlagURL: model.DefaultFlagURL}, currencies[1])
}

func TestDirectoryService_ListCurrencies_Failure(t *testing.T) {
	repo := &MockRateRepository{
		FetchCurrenciesFunc: func(ctx context.Context) ([]model.Currency, error) {
			return nil, fmt.Errorf("%w: status 503", model.ErrNetwork)
		},
		FetchFlagsFunc: noFlags,
	}
	s := NewDirectoryService(repo, store.NewMemoryStore(), "", logger.NewNopLogger())

	currencies, err := s.ListCurrencies(context.Background())

	assert.ErrorIs(t, err, model.ErrNetwork)
	assert.Nil(t, currencies)
}

func TestDirectoryService_GetOrFetch(t *testing.T) {
	ctx := context.Background()

	t.Run("stored list is returned verbatim", func(t *testing.T) {
		kv := store.NewMemoryStore()
		stored := []model.Currency{{Name: "Iene", Symbol: "JPY", FlagURL: "x"}}
		blob, err := json.Marshal(stored)
		require.NoError(t, err)
		require.NoError(t, kv.Set(ctx, CurrenciesKey, string(blob)))

		repo := &MockRateRepository{
			FetchCurrenciesFunc: func(ctx context.Context) ([]model.Currency, error) {
				t.Error("repository must not be called")
				return nil, nil
			},
			FetchFlagsFunc: noFlags,
		}
		s := NewDirectoryService(repo, kv, "", logger.NewNopLogger())

		currencies, err := s.GetOrFetch(ctx)
		require.NoError(t, err)
		assert.Equal(t, stored, currencies)
	})

	t.Run("miss fetches and persists", func(t *testing.T) {
		kv := store.NewMemoryStore()
		calls := 0
		repo := &MockRateRepository{
			FetchCurrenciesFunc: func(ctx context.Context) ([]model.Currency, error) {
				calls++
				return []model.Currency{{Name: "Euro", Symbol: "EUR"}}, nil
			},
			FetchFlagsFunc: noFlags,
		}
		s := NewDirectoryService(repo, kv, "", logger.NewNopLogger())

		first, err := s.GetOrFetch(ctx)
		require.NoError(t, err)
		second, err := s.GetOrFetch(ctx)
		require.NoError(t, err)

		assert.Equal(t, 1, calls)
		assert.Equal(t, first, second)
		assert.Len(t, first, 2)

		blob, found, err := kv.Get(ctx, CurrenciesKey)
		require.NoError(t, err)
		require.True(t, found)
		assert.Contains(t, blob, `"symbol":"EUR"`)
	})

	t.Run("unreadable stored list is refetched", func(t *testing.T) {
		kv := store.NewMemoryStore()
		require.NoError(t, kv.Set(ctx, CurrenciesKey, "[{broken"))

		repo := &MockRateRepository{
			FetchCurrenciesFunc: upstreamCurrencies(model.Currency{Name: "Euro", Symbol: "EUR"}),
			FetchFlagsFunc:      noFlags,
		}
		s := NewDirectoryService(repo, kv, "", logger.NewNopLogger())

		currencies, err := s.GetOrFetch(ctx)
		require.NoError(t, err)
		assert.Len(t, currencies, 2)
	})

	t.Run("store failures do not fail the lookup", func(t *testing.T) {
		kv := &MockStore{
			GetFunc: func(ctx context.Context, key string) (string, bool, error) {
				return "", false, errors.New("connection refused")
			},
			SetFunc: func(ctx context.Context, key, value string) error {
				return errors.New("connection refused")
			},
		}
		repo := &MockRateRepository{
			FetchCurrenciesFunc: upstreamCurrencies(),
			FetchFlagsFunc:      noFlags,
		}
		s := NewDirectoryService(repo, kv, "", logger.NewNopLogger())

		currencies, err := s.GetOrFetch(ctx)
		require.NoError(t, err)
		assert.Equal(t, []model.Currency{{Name: model.HomeName, Symbol: "BRL", FlagURL: model.DefaultFlagURL}}, currencies)
	})

	t.Run("fetch failure is returned and nothing is stored", func(t *testing.T) {
		kv := store.NewMemoryStore()
		repo := &MockRateRepository{
			FetchCurrenciesFunc: func(ctx context.Context) ([]model.Currency, error) {
				return nil, model.ErrNetwork
			},
			FetchFlagsFunc: noFlags,
		}
		s := NewDirectoryService(repo, kv, "", logger.NewNopLogger())

		_, err := s.GetOrFetch(ctx)
		assert.ErrorIs(t, err, model.ErrNetwork)

		_, found, err := kv.Get(ctx, CurrenciesKey)
		require.NoError(t, err)
		assert.False(t, found)
	})
}
