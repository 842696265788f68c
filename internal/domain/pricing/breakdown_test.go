//go:build unit

package pricing_test

import (
	"testing"

	"fleet-console/internal/domain/pricing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreakdown(t *testing.T) {
	d := decimal.RequireFromString

	t.Run("estimated charge sums the components", func(t *testing.T) {
		b, err := pricing.NewBreakdown(d("47500"), d("1500"), d("2000"), nil)
		require.NoError(t, err)
		assert.True(t, d("51000").Equal(b.EstimatedCharge()), b.EstimatedCharge().String())
	})

	t.Run("subscription charge is included when present", func(t *testing.T) {
		sub := d("500")
		b, err := pricing.NewBreakdown(d("47500"), d("1500"), d("2000"), &sub)
		require.NoError(t, err)
		assert.True(t, d("51500").Equal(b.EstimatedCharge()))
	})

	t.Run("negative components are rejected", func(t *testing.T) {
		_, err := pricing.NewBreakdown(d("-1"), d("0"), d("0"), nil)
		assert.ErrorIs(t, err, pricing.ErrNegativeComponent)

		neg := d("-5")
		_, err = pricing.NewBreakdown(d("1"), d("0"), d("0"), &neg)
		assert.ErrorIs(t, err, pricing.ErrNegativeComponent)
	})

	t.Run("wallet coverage", func(t *testing.T) {
		b, err := pricing.NewBreakdown(d("100"), d("10"), d("10"), nil)
		require.NoError(t, err)
		assert.False(t, b.CoveredByWallet())

		low := d("119.99")
		b.WalletBalance = &low
		assert.False(t, b.CoveredByWallet())

		enough := d("120")
		b.WalletBalance = &enough
		assert.True(t, b.CoveredByWallet())
	})
}
