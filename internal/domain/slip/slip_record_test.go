package slip

import (
	"testing"

	"github.com/gmu1026/billing/internal/domain/billing"
	"github.com/gmu1026/billing/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func str(s string) *string { return &s }

func TestSlipTypeBillingType(t *testing.T) {
	assert.Equal(t, billing.BillingTypeEnduser, SlipTypeSales.BillingType())
	assert.Equal(t, billing.BillingTypeReseller, SlipTypePurchase.BillingType())
}

func TestSlipRecordConfirm(t *testing.T) {
	t.Run("requires a mapped partner", func(t *testing.T) {
		r := SlipRecord{}
		err := r.Confirm()
		require.ErrorIs(t, err, shared.ErrUnmappedPartner)
		assert.False(t, r.IsConfirmed)
	})

	t.Run("confirms with partner", func(t *testing.T) {
		r := SlipRecord{Partner: str("BP0001")}
		require.NoError(t, r.Confirm())
		assert.True(t, r.IsConfirmed)
	})
}

func TestSlipRecordApply(t *testing.T) {
	t.Run("patching partner rewrites the partner code", func(t *testing.T) {
		r := SlipRecord{}
		require.NoError(t, r.Apply(SlipPatch{Partner: str("BP0002"), PartnerName: str("ACME")}))
		assert.Equal(t, "BP0002", *r.Partner)
		assert.Equal(t, "BP0002", *r.Zzcon)
		assert.Equal(t, "ACME", *r.PartnerName)
	})

	t.Run("patching sales contract re-derives purchase contract", func(t *testing.T) {
		r := SlipRecord{}
		require.NoError(t, r.Apply(SlipPatch{Zzsconid: str("매출ALI777")}))
		assert.Equal(t, "매출ALI777", *r.Zzsconid)
		assert.Equal(t, "매입ALI777", *r.Zzpconid)
	})

	t.Run("patching amount", func(t *testing.T) {
		r := SlipRecord{}
		amt := decimal.NewFromInt(145371)
		require.NoError(t, r.Apply(SlipPatch{Wrbtr: &amt}))
		assert.True(t, r.Wrbtr.Equal(amt))
	})

	t.Run("confirmed records are immutable", func(t *testing.T) {
		r := SlipRecord{Partner: str("BP0001")}
		require.NoError(t, r.Confirm())
		err := r.Apply(SlipPatch{Partner: str("BP0009")})
		require.Error(t, err)
		assert.Equal(t, "BP0001", *r.Partner)
	})
}

func TestNewBatchID(t *testing.T) {
	a := NewBatchID()
	b := NewBatchID()
	assert.Len(t, a, 8)
	assert.NotEqual(t, a, b)
}
