package service

import (
	"fmt"

	"brl-rate-service/internal/domain/model"

	"github.com/shopspring/decimal"
)

const (
	invertPrecision = 6
	scalePrecision  = 2
)

// Invert turns foreign -> BRL quotes into BRL -> foreign quotes. Zero rates
// are kept as they are. The input record is not modified.
func Invert(record *model.RateRecord) *model.RateRecord {
	out := record.Clone()
	if out == nil {
		return nil
	}

	one := decimal.NewFromInt(1)
	for i := range out.Quotes {
		out.Quotes[i].BuyRate = applyNonZero(out.Quotes[i].BuyRate, func(rate decimal.Decimal) decimal.Decimal {
			return one.Div(rate).Round(invertPrecision)
		})
		out.Quotes[i].SellRate = applyNonZero(out.Quotes[i].SellRate, func(rate decimal.Decimal) decimal.Decimal {
			return one.Div(rate).Round(invertPrecision)
		})
	}
	out.Inverted = true

	return out
}

// Scale multiplies every nonzero rate by amount, rounded to cents.
func Scale(record *model.RateRecord, amount float64) (*model.RateRecord, error) {
	if record == nil || len(record.Quotes) == 0 {
		return nil, fmt.Errorf("%w: no quotes to scale", model.ErrInvalidData)
	}

	out := record.Clone()
	factor := decimal.NewFromFloat(amount)
	for i := range out.Quotes {
		out.Quotes[i].BuyRate = applyNonZero(out.Quotes[i].BuyRate, func(rate decimal.Decimal) decimal.Decimal {
			return rate.Mul(factor).Round(scalePrecision)
		})
		out.Quotes[i].SellRate = applyNonZero(out.Quotes[i].SellRate, func(rate decimal.Decimal) decimal.Decimal {
			return rate.Mul(factor).Round(scalePrecision)
		})
	}
	out.ScaledAmount = &amount

	return out, nil
}

func applyNonZero(rate float64, fn func(decimal.Decimal) decimal.Decimal) float64 {
	if rate == 0 {
		return rate
	}
	return fn(decimal.NewFromFloat(rate)).InexactFloat64()
}
