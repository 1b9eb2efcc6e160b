package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"brl-rate-service/internal/domain/model"
	"brl-rate-service/pkg/logger"

	"github.com/tidwall/gjson"
)

// BrasilAPI reads currencies and PTAX quotes from the BrasilAPI cambio/v1
// endpoints, plus an optional flag lookup table.
type BrasilAPI struct {
	baseURL    string
	flagsURL   string
	httpClient *http.Client
	log        *logger.Logger
}

type currencyResponse struct {
	Symbol string `json:"simbolo"`
	Name   string `json:"nome"`
	Type   string `json:"tipo_moeda"`
}

func NewBrasilAPI(baseURL, flagsURL string, timeout time.Duration, log *logger.Logger) *BrasilAPI {
	return &BrasilAPI{
		baseURL:  baseURL,
		flagsURL: flagsURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

func (b *BrasilAPI) FetchCurrencies(ctx context.Context) ([]model.Currency, error) {
	body, status, err := b.get(ctx, b.baseURL+"/moedas")
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: currency list returned status %d", model.ErrNetwork, status)
	}

	var upstream []currencyResponse
	if err := json.Unmarshal(body, &upstream); err != nil {
		return nil, fmt.Errorf("%w: failed to decode currency list: %v", model.ErrNetwork, err)
	}

	currencies := make([]model.Currency, 0, len(upstream)+1)
	for _, c := range upstream {
		currencies = append(currencies, model.Currency{
			Name:   c.Name,
			Symbol: c.Symbol,
		})
	}

	return currencies, nil
}

// FetchFlags returns nil without a request when no flag source is configured.
func (b *BrasilAPI) FetchFlags(ctx context.Context) ([]model.Flag, error) {
	if b.flagsURL == "" {
		return nil, nil
	}

	body, status, err := b.get(ctx, b.flagsURL)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: flag lookup returned status %d", model.ErrNetwork, status)
	}

	var flags []model.Flag
	if err := json.Unmarshal(body, &flags); err != nil {
		return nil, fmt.Errorf("%w: failed to decode flag lookup: %v", model.ErrNetwork, err)
	}

	return flags, nil
}

func (b *BrasilAPI) FetchRate(ctx context.Context, symbol, date string) (*model.RateRecord, error) {
	endpoint := fmt.Sprintf("%s/cotacao/%s/%s", b.baseURL, url.PathEscape(symbol), url.PathEscape(date))

	body, status, err := b.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	if status < 200 || status > 299 {
		message := gjson.GetBytes(body, "message").String()
		if message == "" {
			message = model.DefaultRateErrorMessage
		}
		return nil, &model.ExchangeRateError{StatusCode: status, Message: message}
	}

	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: rate response is not valid JSON", model.ErrNetwork)
	}

	return parseRateRecord(body, symbol, date), nil
}

// parseRateRecord maps the upstream payload to a RateRecord. Rates may be
// published as numbers or numeric strings; both end up as float64.
func parseRateRecord(body []byte, symbol, date string) *model.RateRecord {
	parsed := gjson.ParseBytes(body)

	record := &model.RateRecord{
		CurrencySymbol: parsed.Get("moeda").String(),
		Date:           parsed.Get("data").String(),
	}
	if record.CurrencySymbol == "" {
		record.CurrencySymbol = symbol
	}
	if record.Date == "" {
		record.Date = date
	}

	quotes := parsed.Get("cotacoes")
	if !quotes.IsArray() {
		return record
	}

	record.Quotes = make([]model.RateQuote, 0, len(quotes.Array()))
	quotes.ForEach(func(_, q gjson.Result) bool {
		record.Quotes = append(record.Quotes, model.RateQuote{
			Timestamp: q.Get("data_hora_cotacao").String(),
			BuyRate:   q.Get("cotacao_compra").Float(),
			SellRate:  q.Get("cotacao_venda").Float(),
		})
		return true
	})

	return record
}

func (b *BrasilAPI) get(ctx context.Context, endpoint string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: failed to send request: %v", model.ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: failed to read response: %v", model.ErrNetwork, err)
	}

	return body, resp.StatusCode, nil
}
