//go:build unit

package subscription_test

import (
	"testing"

	"fleet-console/internal/domain/subscription"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBillingCycle(t *testing.T) {
	for _, in := range []string{"monthly", " Quarterly ", "YEARLY"} {
		c, err := subscription.NewBillingCycle(in)
		require.NoError(t, err, in)
		assert.True(t, c.IsValid())
	}
	_, err := subscription.NewBillingCycle("weekly")
	assert.ErrorIs(t, err, subscription.ErrInvalidBillingCycle)
}

func TestCategory(t *testing.T) {
	c, err := subscription.NewCategory("bundle")
	require.NoError(t, err)
	assert.Equal(t, subscription.CategoryBundle, c)

	_, err = subscription.NewCategory("")
	assert.ErrorIs(t, err, subscription.ErrInvalidCategory)
}

func TestPlanRef(t *testing.T) {
	t.Run("plan id", func(t *testing.T) {
		ref, err := subscription.NewPlanRef(" plan-1 ", nil)
		require.NoError(t, err)
		assert.True(t, ref.HasPlan())
		assert.Equal(t, "plan-1", ref.PlanID)
	})

	t.Run("estimate only", func(t *testing.T) {
		est := &subscription.Estimate{
			AssetCount:   3,
			BillingCycle: subscription.CycleMonthly,
			Category:     subscription.CategoryFuel,
			PerAsset:     decimal.NewFromInt(5000),
			TotalAmount:  decimal.NewFromInt(15000),
		}
		ref, err := subscription.NewPlanRef("", est)
		require.NoError(t, err)
		assert.False(t, ref.HasPlan())
		assert.Same(t, est, ref.Estimate)
	})

	t.Run("neither", func(t *testing.T) {
		_, err := subscription.NewPlanRef("  ", nil)
		assert.ErrorIs(t, err, subscription.ErrEmptyPlanRef)
	})
}
