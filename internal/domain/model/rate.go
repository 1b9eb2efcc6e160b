package model

import (
	"fmt"
)

type RateQuote struct {
	Timestamp string  `json:"timestamp"`
	BuyRate   float64 `json:"buyRate"`
	SellRate  float64 `json:"sellRate"`
}

// RateRecord holds the quotes published for one currency on one date,
// in chronological order. Rates are foreign -> BRL unless Inverted is set.
type RateRecord struct {
	CurrencySymbol string      `json:"currencySymbol"`
	Date           string      `json:"date"`
	Quotes         []RateQuote `json:"quotes"`
	Inverted       bool        `json:"inverted,omitempty"`
	ScaledAmount   *float64    `json:"scaledAmount,omitempty"`
}

// LastQuote returns the most recent quote, or false if there is none.
func (r *RateRecord) LastQuote() (RateQuote, bool) {
	if r == nil || len(r.Quotes) == 0 {
		return RateQuote{}, false
	}
	return r.Quotes[len(r.Quotes)-1], true
}

// Clone returns a deep copy of r.
func (r *RateRecord) Clone() *RateRecord {
	if r == nil {
		return nil
	}
	out := *r
	if r.Quotes != nil {
		out.Quotes = make([]RateQuote, len(r.Quotes))
		copy(out.Quotes, r.Quotes)
	}
	if r.ScaledAmount != nil {
		amount := *r.ScaledAmount
		out.ScaledAmount = &amount
	}
	return &out
}

type CurrencyPair struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (p CurrencyPair) String() string {
	return fmt.Sprintf("%s-%s", p.From, p.To)
}

// ForeignSymbol is the non-BRL side of the pair.
func (p CurrencyPair) ForeignSymbol() string {
	if p.From == HomeSymbol {
		return p.To
	}
	return p.From
}

type ConversionRequest struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
	Date   string  `json:"date"`
}

type ConversionResult struct {
	From        string      `json:"from"`
	To          string      `json:"to"`
	Amount      float64     `json:"amount"`
	Date        string      `json:"date"`
	Description string      `json:"description"`
	LastQuote   RateQuote   `json:"lastQuote"`
	Record      *RateRecord `json:"record"`
}

// RateHistory is the persisted shape of the rate cache: symbol -> date -> record.
type RateHistory map[string]map[string]*RateRecord
