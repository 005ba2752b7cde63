package ratesync

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gmu1026/billing/internal/domain/slip"
	"github.com/gmu1026/billing/internal/infrastructure/config"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	ratesPath        = "/api/exchange-rates"
	defaultTimeout   = 10 * time.Second
	defaultMaxRecord = 500
)

// HBClient pulls daily USD→KRW quotes from the HB exchange-rate API and
// upserts them into the local rate table. It is the only network dependency
// of slip generation; every call carries an explicit timeout and a cap on
// accepted records, and a failed sync degrades to a missing rate instead of
// aborting the run.
type HBClient struct {
	baseURL    string
	apiKey     string
	maxRecords int
	httpClient *http.Client
	rateRepo   slip.ExchangeRateRepository
	logger     *zap.Logger
}

// NewHBClient creates a new HBClient
func NewHBClient(cfg config.RateSyncConfig, rateRepo slip.ExchangeRateRepository, logger *zap.Logger) *HBClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxRecords := cfg.MaxRecords
	if maxRecords <= 0 {
		maxRecords = defaultMaxRecord
	}
	return &HBClient{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		maxRecords: maxRecords,
		httpClient: &http.Client{Timeout: timeout},
		rateRepo:   rateRepo,
		logger:     logger,
	}
}

// hbRateRow is one day's quote set as the HB API returns it
type hbRateRow struct {
	Date         string           `json:"date"` // YYYY-MM-DD
	CurrencyFrom string           `json:"currency_from"`
	CurrencyTo   string           `json:"currency_to"`
	BasicRate    *decimal.Decimal `json:"basic_rate"`
	SendRate     *decimal.Decimal `json:"send_rate"`
	BuyRate      *decimal.Decimal `json:"buy_rate"`
	SellRate     *decimal.Decimal `json:"sell_rate"`
}

type hbRatesResponse struct {
	Rates []hbRateRow `json:"rates"`
}

// SyncRecent fetches the last N days of quotes and upserts them locally.
// Returns how many rate rows were written.
func (c *HBClient) SyncRecent(ctx context.Context, days int) (int, error) {
	if c.baseURL == "" {
		return 0, fmt.Errorf("ratesync: no base URL configured")
	}
	if days <= 0 {
		days = 7
	}

	url := fmt.Sprintf("%s%s?days=%d", c.baseURL, ratesPath, days)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("ratesync: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("ratesync: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, fmt.Errorf("ratesync: HTTP %d: %s", resp.StatusCode, string(body))
	}

	var parsed hbRatesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, fmt.Errorf("ratesync: failed to decode response: %w", err)
	}

	synced := 0
	for _, row := range parsed.Rates {
		if synced >= c.maxRecords {
			c.logger.Warn("rate sync record cap reached, dropping remainder",
				zap.Int("cap", c.maxRecords))
			break
		}
		written, err := c.upsertRow(ctx, row, c.maxRecords-synced)
		if err != nil {
			return synced, err
		}
		synced += written
	}

	c.logger.Info("exchange rates synced from HB",
		zap.Int("records", synced),
		zap.Int("days", days))
	return synced, nil
}

// upsertRow writes up to limit typed rate rows from one day's quote set
func (c *HBClient) upsertRow(ctx context.Context, row hbRateRow, limit int) (int, error) {
	rateDate, err := time.Parse("2006-01-02", row.Date)
	if err != nil {
		c.logger.Warn("skipping rate row with malformed date", zap.String("date", row.Date))
		return 0, nil
	}
	from := row.CurrencyFrom
	if from == "" {
		from = "USD"
	}
	to := row.CurrencyTo
	if to == "" {
		to = "KRW"
	}

	quotes := []struct {
		rateType slip.RateType
		value    *decimal.Decimal
	}{
		{slip.RateTypeBasic, row.BasicRate},
		{slip.RateTypeSend, row.SendRate},
		{slip.RateTypeBuy, row.BuyRate},
		{slip.RateTypeSell, row.SellRate},
	}

	written := 0
	for _, q := range quotes {
		if q.value == nil || written >= limit {
			continue
		}
		rate, err := slip.NewExchangeRate(rateDate, from, to, q.rateType, *q.value, slip.RateSourceHB)
		if err != nil {
			c.logger.Warn("skipping invalid rate row",
				zap.String("date", row.Date),
				zap.String("rate_type", string(q.rateType)),
				zap.Error(err))
			continue
		}
		if err := c.rateRepo.Upsert(ctx, rate); err != nil {
			return written, fmt.Errorf("ratesync: failed to store rate: %w", err)
		}
		written++
	}
	return written, nil
}
