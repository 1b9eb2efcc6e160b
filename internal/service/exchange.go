package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"brl-rate-service/internal/domain/model"
	"brl-rate-service/internal/domain/ports"
	"brl-rate-service/internal/metrics"
	"brl-rate-service/pkg/logger"
	"brl-rate-service/pkg/utils"

	"golang.org/x/sync/singleflight"
)

type ExchangeService struct {
	repository ports.RateRepository
	cache      ports.RateCache
	metrics    *metrics.Metrics
	now        func() time.Time
	inflight   singleflight.Group
	log        *logger.Logger
}

func NewExchangeService(repository ports.RateRepository, cache ports.RateCache, m *metrics.Metrics, log *logger.Logger) *ExchangeService {
	return NewExchangeServiceWithClock(repository, cache, m, time.Now, log)
}

func NewExchangeServiceWithClock(repository ports.RateRepository, cache ports.RateCache, m *metrics.Metrics, now func() time.Time, log *logger.Logger) *ExchangeService {
	return &ExchangeService{
		repository: repository,
		cache:      cache,
		metrics:    m,
		now:        now,
		log:        log,
	}
}

// GetRate returns the foreign -> BRL quotes of symbol on date. Cached
// records are returned without touching the network; fetched ones are
// written through to the cache. Concurrent requests for the same pair
// share one upstream call.
func (s *ExchangeService) GetRate(ctx context.Context, symbol, date string) (*model.RateRecord, error) {
	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("%w: currency is required", ErrInvalidCurrency)
	}

	if err := s.validateDate(date); err != nil {
		return nil, err
	}

	if record, found := s.cache.Get(ctx, symbol, date); found {
		s.metrics.CacheHit()
		s.log.Info("Exchange rate found in cache", "currency", symbol, "date", date)
		return record, nil
	}
	s.metrics.CacheMiss()

	// A caller that gives up stops waiting without cancelling the shared fetch.
	flight := s.inflight.DoChan(symbol+"/"+date, func() (interface{}, error) {
		return s.fetchAndCache(context.WithoutCancel(ctx), symbol, date)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case result := <-flight:
		if result.Err != nil {
			return nil, result.Err
		}
		record := result.Val.(*model.RateRecord)
		if result.Shared {
			return record.Clone(), nil
		}
		return record, nil
	}
}

func (s *ExchangeService) fetchAndCache(ctx context.Context, symbol, date string) (*model.RateRecord, error) {
	s.log.Info("Fetching exchange rate from repository", "currency", symbol, "date", date)

	record, err := s.repository.FetchRate(ctx, symbol, date)
	if err != nil {
		s.log.Error("Failed to fetch exchange rate", "error", err, "currency", symbol, "date", date)
		return nil, fmt.Errorf("fetch rate [%s %s]: %w", symbol, date, err)
	}

	if record == nil || len(record.Quotes) == 0 {
		s.log.Warn("Upstream returned no quotes", "currency", symbol, "date", date)
		return nil, fmt.Errorf("%w: no quotes for %s on %s", model.ErrInvalidData, symbol, date)
	}

	if err := s.cache.Put(ctx, symbol, date, record); err != nil {
		s.log.Error("Failed to cache exchange rate", "error", err, "currency", symbol, "date", date)
	}

	return record, nil
}

// Convert prices amount of request.From in request.To. One side must be
// BRL: BRL -> foreign inverts the upstream quotes before scaling, while
// foreign -> BRL scales them directly.
func (s *ExchangeService) Convert(ctx context.Context, request model.ConversionRequest) (*model.ConversionResult, error) {
	pair := model.CurrencyPair{
		From: normalizeSymbol(request.From),
		To:   normalizeSymbol(request.To),
	}

	if err := validatePair(pair); err != nil {
		return nil, err
	}

	if request.Amount <= 0 || math.IsNaN(request.Amount) || math.IsInf(request.Amount, 0) {
		return nil, ErrInvalidAmount
	}

	record, err := s.GetRate(ctx, pair.ForeignSymbol(), request.Date)
	if err != nil {
		return nil, err
	}

	if pair.From == model.HomeSymbol {
		record = Invert(record)
	}

	scaled, err := Scale(record, request.Amount)
	if err != nil {
		s.log.Error("Failed to convert exchange rate", "error", err, "pair", pair.String(), "date", request.Date)
		return nil, fmt.Errorf("convert %s on %s: %w", pair.String(), request.Date, err)
	}

	lastQuote, _ := scaled.LastQuote()

	return &model.ConversionResult{
		From:        pair.From,
		To:          pair.To,
		Amount:      request.Amount,
		Date:        scaled.Date,
		Description: fmt.Sprintf("%s %s to %s", strconv.FormatFloat(request.Amount, 'f', -1, 64), pair.From, pair.To),
		LastQuote:   lastQuote,
		Record:      scaled,
	}, nil
}

func (s *ExchangeService) validateDate(date string) error {
	if _, err := utils.ParseDate(date); err != nil {
		return fmt.Errorf("%w: %q is not a YYYY-MM-DD date", ErrInvalidDate, date)
	}

	if utils.IsFuture(date, s.now()) {
		return fmt.Errorf("%w: %s is in the future", ErrInvalidDate, date)
	}

	return nil
}

func validatePair(pair model.CurrencyPair) error {
	if pair.From == "" || pair.To == "" {
		return fmt.Errorf("%w: from and to are required", ErrInvalidCurrency)
	}

	if pair.From == pair.To {
		return fmt.Errorf("%w: cannot convert %s to itself", ErrInvalidCurrency, pair.From)
	}

	if pair.From != model.HomeSymbol && pair.To != model.HomeSymbol {
		return fmt.Errorf("%w: conversions are only allowed between %s and other currencies", ErrInvalidCurrency, model.HomeSymbol)
	}

	return nil
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
