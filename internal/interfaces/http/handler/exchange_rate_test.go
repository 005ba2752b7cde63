package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	slipapp "github.com/gmu1026/billing/internal/application/slip"
	"github.com/gmu1026/billing/internal/domain/shared"
	"github.com/gmu1026/billing/internal/domain/slip"
	"github.com/gmu1026/billing/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeRateRepo is an in-memory ExchangeRateRepository keyed by
// (date, pair, type).
type fakeRateRepo struct {
	rates []*slip.ExchangeRate
}

func (f *fakeRateRepo) key(date time.Time, from, to string, rateType slip.RateType) string {
	return date.Format("20060102") + from + to + string(rateType)
}

func (f *fakeRateRepo) FindByDate(ctx context.Context, rateDate time.Time, from, to string, rateType slip.RateType) (*slip.ExchangeRate, error) {
	want := f.key(rateDate, from, to, rateType)
	for _, r := range f.rates {
		if f.key(r.RateDate, r.CurrencyFrom, r.CurrencyTo, r.RateType) == want {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeRateRepo) FindRecent(ctx context.Context, from, to string, limit int) ([]slip.ExchangeRate, error) {
	out := make([]slip.ExchangeRate, 0, len(f.rates))
	for _, r := range f.rates {
		if r.CurrencyFrom == from && r.CurrencyTo == to {
			out = append(out, *r)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeRateRepo) Insert(ctx context.Context, rate *slip.ExchangeRate) error {
	existing, _ := f.FindByDate(ctx, rate.RateDate, rate.CurrencyFrom, rate.CurrencyTo, rate.RateType)
	if existing != nil {
		return shared.ErrDuplicateRate
	}
	f.rates = append(f.rates, rate)
	return nil
}

func (f *fakeRateRepo) Upsert(ctx context.Context, rate *slip.ExchangeRate) error {
	want := f.key(rate.RateDate, rate.CurrencyFrom, rate.CurrencyTo, rate.RateType)
	for i, r := range f.rates {
		if f.key(r.RateDate, r.CurrencyFrom, r.CurrencyTo, r.RateType) == want {
			f.rates[i] = rate
			return nil
		}
	}
	f.rates = append(f.rates, rate)
	return nil
}

func newRateRouter(repo *fakeRateRepo) *gin.Engine {
	svc := slipapp.NewExchangeRateService(repo, nil, zap.NewNop())
	h := NewExchangeRateHandler(svc)

	router := gin.New()
	api := router.Group("/api/v1")
	h.RegisterRoutes(api)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestCreateRateEndpoint(t *testing.T) {
	repo := &fakeRateRepo{}
	router := newRateRouter(repo)

	w := postJSON(t, router, "/api/v1/exchange-rates", gin.H{
		"rate_date": "2025-03-10T00:00:00Z",
		"rate":      "1450.50",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, repo.rates, 1)
	assert.Equal(t, "USD", repo.rates[0].CurrencyFrom)
	assert.Equal(t, "KRW", repo.rates[0].CurrencyTo)
	assert.True(t, repo.rates[0].Rate.Equal(decimal.RequireFromString("1450.50")))
}

func TestCreateRateEndpointRejectsDuplicate(t *testing.T) {
	repo := &fakeRateRepo{}
	router := newRateRouter(repo)

	body := gin.H{
		"rate_date": "2025-03-10T00:00:00Z",
		"rate":      "1450.50",
	}
	assert.Equal(t, http.StatusCreated, postJSON(t, router, "/api/v1/exchange-rates", body).Code)

	w := postJSON(t, router, "/api/v1/exchange-rates", body)
	assert.Equal(t, http.StatusConflict, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrCodeAlreadyExists, resp.Error.Code)
}

func TestCreateRateEndpointOverwrite(t *testing.T) {
	repo := &fakeRateRepo{}
	router := newRateRouter(repo)

	assert.Equal(t, http.StatusCreated, postJSON(t, router, "/api/v1/exchange-rates", gin.H{
		"rate_date": "2025-03-10T00:00:00Z",
		"rate":      "1450.50",
	}).Code)

	w := postJSON(t, router, "/api/v1/exchange-rates", gin.H{
		"rate_date": "2025-03-10T00:00:00Z",
		"rate":      "1460.00",
		"overwrite": true,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, repo.rates, 1)
	assert.True(t, repo.rates[0].Rate.Equal(decimal.RequireFromString("1460.00")))
}

func TestListRatesEndpoint(t *testing.T) {
	repo := &fakeRateRepo{}
	router := newRateRouter(repo)

	assert.Equal(t, http.StatusCreated, postJSON(t, router, "/api/v1/exchange-rates", gin.H{
		"rate_date": "2025-03-10T00:00:00Z",
		"rate":      "1450.50",
	}).Code)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/exchange-rates?limit=5", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Len(t, resp.Data, 1)
}

func TestSyncEndpointWithoutSyncer(t *testing.T) {
	router := newRateRouter(&fakeRateRepo{})

	w := postJSON(t, router, "/api/v1/exchange-rates/sync", gin.H{"days": 7})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrCodeUpstreamUnavailable, resp.Error.Code)
}
