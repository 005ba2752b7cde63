package slip

import (
	"testing"
	"time"

	"github.com/gmu1026/billing/internal/domain/shared"
	"github.com/gmu1026/billing/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultAlibabaConfig(t *testing.T) {
	cfg := DefaultAlibabaConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "1100", cfg.Bukrs)
	assert.Equal(t, "10000003", cfg.Prctr)
	assert.Equal(t, "41021010", cfg.HkontSales)
	assert.Equal(t, "41021020", cfg.HkontSalesExport)
	assert.Equal(t, "42021010", cfg.HkontPurchase)
	assert.Equal(t, "11060110", cfg.ARAccountDefault)
	assert.Equal(t, "IBABA001", cfg.Zzref2)
	assert.Equal(t, RoundingFloor, cfg.RoundingRule)
}

func TestVendorConfigValidate(t *testing.T) {
	cfg := DefaultAlibabaConfig()
	cfg.HkontSales = ""
	require.ErrorIs(t, cfg.Validate(), shared.ErrMissingVendorConfig)
}

func TestVendorConfigSgtxt(t *testing.T) {
	cfg := DefaultAlibabaConfig()
	assert.Equal(t, "Alibaba_Cloud_06월_매출", cfg.Sgtxt("06", SlipTypeSales))
	assert.Equal(t, "Alibaba_Cloud_12월_매입", cfg.Sgtxt("12", SlipTypePurchase))
}

func TestVendorConfigRateSelection(t *testing.T) {
	cfg := DefaultAlibabaConfig()

	assert.Equal(t, RateTypeSend, cfg.RateTypeFor(SlipTypeSales, false))
	assert.Equal(t, RateTypeBasic, cfg.RateTypeFor(SlipTypePurchase, false))
	assert.Equal(t, RateTypeBasic, cfg.RateTypeFor(SlipTypeSales, true))

	assert.Equal(t, RateDateDocumentDate, cfg.RateDateRuleFor(SlipTypeSales, false))
	assert.Equal(t, RateDateLastOfPrevMonth, cfg.RateDateRuleFor(SlipTypeSales, true))
}

func TestCurrencyProfileFor(t *testing.T) {
	cfg := DefaultAlibabaConfig()

	t.Run("domestic sales", func(t *testing.T) {
		p := cfg.CurrencyProfileFor(SlipTypeSales, false, "")
		assert.Equal(t, valueobject.KRW, p.Currency)
		assert.True(t, p.ConvertToKRW)
		assert.Equal(t, "41021010", p.Accounts.Hkont)
		assert.Equal(t, "11060110", p.Accounts.CounterAccount)
	})

	t.Run("domestic purchase", func(t *testing.T) {
		p := cfg.CurrencyProfileFor(SlipTypePurchase, false, "")
		assert.Equal(t, "42021010", p.Accounts.Hkont)
		assert.Equal(t, "21120110", p.Accounts.CounterAccount)
	})

	t.Run("overseas sales keeps company currency and export account", func(t *testing.T) {
		p := cfg.CurrencyProfileFor(SlipTypeSales, true, valueobject.USD)
		assert.Equal(t, valueobject.USD, p.Currency)
		assert.False(t, p.ConvertToKRW)
		assert.Equal(t, "41021020", p.Accounts.Hkont)
	})

	t.Run("overseas with no company currency defaults to USD", func(t *testing.T) {
		p := cfg.CurrencyProfileFor(SlipTypeSales, true, "")
		assert.Equal(t, valueobject.USD, p.Currency)
	})
}

func TestNewExchangeRateValidation(t *testing.T) {
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	t.Run("rejects zero rate", func(t *testing.T) {
		_, err := NewExchangeRate(day, "USD", "KRW", RateTypeBasic, decimal.Zero, RateSourceManual)
		require.Error(t, err)
	})

	t.Run("rejects same currency pair", func(t *testing.T) {
		_, err := NewExchangeRate(day, "KRW", "KRW", RateTypeBasic, decimal.NewFromInt(1), RateSourceManual)
		require.Error(t, err)
	})

	t.Run("accepts positive rate", func(t *testing.T) {
		r, err := NewExchangeRate(day, "USD", "KRW", RateTypeBasic, decimal.NewFromFloat(1450), RateSourceManual)
		require.NoError(t, err)
		assert.Equal(t, RateSourceManual, r.Source)
	})
}
