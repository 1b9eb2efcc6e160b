package repository

import (
	"context"
	"time"

	"brl-rate-service/internal/domain/model"
	"brl-rate-service/internal/domain/ports"
	"brl-rate-service/internal/metrics"
	"brl-rate-service/pkg/logger"
)

// loggingRepository decorates a ports.RateRepository with call logging
// and upstream request metrics.
type loggingRepository struct {
	next    ports.RateRepository
	log     *logger.Logger
	metrics *metrics.Metrics
}

func NewLoggingRepository(log *logger.Logger, m *metrics.Metrics, next ports.RateRepository) ports.RateRepository {
	return &loggingRepository{
		next:    next,
		log:     log,
		metrics: m,
	}
}

func (r *loggingRepository) FetchCurrencies(ctx context.Context) (currencies []model.Currency, err error) {
	defer func(begin time.Time) {
		r.metrics.Upstream("currencies", err)
		r.log.Debug("Upstream call",
			"method", "fetch_currencies",
			"count", len(currencies),
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.FetchCurrencies(ctx)
}

func (r *loggingRepository) FetchFlags(ctx context.Context) (flags []model.Flag, err error) {
	defer func(begin time.Time) {
		r.metrics.Upstream("flags", err)
		r.log.Debug("Upstream call",
			"method", "fetch_flags",
			"count", len(flags),
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.FetchFlags(ctx)
}

func (r *loggingRepository) FetchRate(ctx context.Context, symbol, date string) (record *model.RateRecord, err error) {
	defer func(begin time.Time) {
		r.metrics.Upstream("rate", err)
		r.log.Debug("Upstream call",
			"method", "fetch_rate",
			"currency", symbol,
			"date", date,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.FetchRate(ctx, symbol, date)
}
