package model

const (
	// HomeSymbol is the reference currency every upstream rate is quoted against.
	HomeSymbol = "BRL"
	HomeName   = "Real Brasileiro"

	// DefaultFlagURL is assigned when no flag is known for a currency.
	DefaultFlagURL = "/static/flags/default.svg"
)

type Currency struct {
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
	FlagURL string `json:"flagUrl"`
}

func (c Currency) IsHome() bool {
	return c.Symbol == HomeSymbol
}

// Flag is one row of the optional flag lookup table.
type Flag struct {
	Code    string `json:"code"`
	FlagURL string `json:"flagUrl"`
}
