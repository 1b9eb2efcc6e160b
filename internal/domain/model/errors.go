package model

import (
	"errors"
	"fmt"
)

var (
	ErrNetwork      = errors.New("network error")
	ErrExchangeRate = errors.New("exchange rate error")
	ErrInvalidData  = errors.New("invalid exchange rate data")
)

// DefaultRateErrorMessage is used when the rate endpoint fails without a message.
const DefaultRateErrorMessage = "An unknown error occurred while fetching the exchange rate."

// ExchangeRateError is a structured failure returned by the rate endpoint.
type ExchangeRateError struct {
	StatusCode int
	Message    string
}

func (e *ExchangeRateError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

func (e *ExchangeRateError) Is(target error) bool {
	return target == ErrExchangeRate
}
