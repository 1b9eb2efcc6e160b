package service

import (
	"context"
	"encoding/json"
	"fmt"

	"brl-rate-service/internal/domain/model"
	"brl-rate-service/internal/domain/ports"
	"brl-rate-service/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// CurrenciesKey is the store key holding the serialized currency list.
const CurrenciesKey = "currencies"

type DirectoryService struct {
	repository ports.RateRepository
	store      ports.KeyValueStore
	homeName   string
	log        *logger.Logger
}

// NewDirectoryService lists BRL under homeName, or model.HomeName when it
// is empty.
func NewDirectoryService(repository ports.RateRepository, store ports.KeyValueStore, homeName string, log *logger.Logger) *DirectoryService {
	if homeName == "" {
		homeName = model.HomeName
	}
	return &DirectoryService{
		repository: repository,
		store:      store,
		homeName:   homeName,
		log:        log,
	}
}

// ListCurrencies fetches the currency list and the flag table concurrently.
// Only a failure of the currency list fails the call; without flags every
// currency gets model.DefaultFlagURL.
func (s *DirectoryService) ListCurrencies(ctx context.Context) ([]model.Currency, error) {
	var (
		currencies []model.Currency
		flags      []model.Flag
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		currencies, err = s.repository.FetchCurrencies(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		flags, err = s.repository.FetchFlags(gctx)
		if err != nil {
			s.log.Warn("Flag lookup failed, using default flags", "error", err)
			flags = nil
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		s.log.Error("Failed to fetch currency list", "error", err)
		return nil, err
	}

	return withHomeCurrency(currencies, flagIndex(flags), s.homeName), nil
}

// GetOrFetch returns the stored currency list verbatim when there is one,
// and otherwise fetches and stores it.
func (s *DirectoryService) GetOrFetch(ctx context.Context) ([]model.Currency, error) {
	if currencies, found := s.loadCached(ctx); found {
		s.log.Debug("Currency list found in store", "count", len(currencies))
		return currencies, nil
	}

	s.log.Info("Fetching currency list from repository")
	currencies, err := s.ListCurrencies(ctx)
	if err != nil {
		return nil, err
	}

	blob, err := json.Marshal(currencies)
	if err != nil {
		return nil, fmt.Errorf("encode currency list: %w", err)
	}
	if err := s.store.Set(ctx, CurrenciesKey, string(blob)); err != nil {
		s.log.Error("Failed to store currency list", "error", err)
	}

	return currencies, nil
}

func (s *DirectoryService) loadCached(ctx context.Context) ([]model.Currency, bool) {
	blob, found, err := s.store.Get(ctx, CurrenciesKey)
	if err != nil {
		s.log.Warn("Failed to read stored currency list", "error", err)
		return nil, false
	}
	if !found {
		return nil, false
	}

	var currencies []model.Currency
	if err := json.Unmarshal([]byte(blob), &currencies); err != nil || currencies == nil {
		s.log.Warn("Ignoring unreadable stored currency list", "error", err)
		return nil, false
	}

	return currencies, true
}

func flagIndex(flags []model.Flag) map[string]string {
	index := make(map[string]string, len(flags))
	for _, f := range flags {
		if f.Code != "" && f.FlagURL != "" {
			index[f.Code] = f.FlagURL
		}
	}
	return index
}

// withHomeCurrency assigns flags and makes sure BRL appears exactly once,
// at the end unless upstream already listed it.
func withHomeCurrency(upstream []model.Currency, flags map[string]string, homeName string) []model.Currency {
	out := make([]model.Currency, 0, len(upstream)+1)
	hasHome := false

	for _, c := range upstream {
		if c.IsHome() {
			if hasHome {
				continue
			}
			hasHome = true
		}
		c.FlagURL = flagFor(c.Symbol, flags)
		out = append(out, c)
	}

	if !hasHome {
		out = append(out, model.Currency{
			Name:    homeName,
			Symbol:  model.HomeSymbol,
			FlagURL: flagFor(model.HomeSymbol, flags),
		})
	}

	return out
}

func flagFor(symbol string, flags map[string]string) string {
	if url, ok := flags[symbol]; ok {
		return url
	}
	return model.DefaultFlagURL
}
