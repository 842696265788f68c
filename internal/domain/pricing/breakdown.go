package pricing

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrNegativeComponent = errors.New("price component cannot be negative")

// Breakdown is the server-computed itemized pricing of a draft. It is always
// replaced as a whole when inputs change.
type Breakdown struct {
	ConsumablePrice    decimal.Decimal
	ServicePrice       decimal.Decimal
	DeliveryPrice      decimal.Decimal
	SubscriptionCharge *decimal.Decimal
	Quantity           int
	Amount             decimal.Decimal
	RemainingUses      *int
	WalletBalance      *decimal.Decimal
}

func NewBreakdown(consumable, service, delivery decimal.Decimal, subscription *decimal.Decimal) (Breakdown, error) {
	for _, c := range []decimal.Decimal{consumable, service, delivery} {
		if c.IsNegative() {
			return Breakdown{}, ErrNegativeComponent
		}
	}
	if subscription != nil && subscription.IsNegative() {
		return Breakdown{}, ErrNegativeComponent
	}
	return Breakdown{
		ConsumablePrice:    consumable,
		ServicePrice:       service,
		DeliveryPrice:      delivery,
		SubscriptionCharge: subscription,
	}, nil
}

// EstimatedCharge is consumable + service + delivery, plus the subscription
// charge when one applies.
func (b Breakdown) EstimatedCharge() decimal.Decimal {
	total := b.ConsumablePrice.Add(b.ServicePrice).Add(b.DeliveryPrice)
	if b.SubscriptionCharge != nil {
		total = total.Add(*b.SubscriptionCharge)
	}
	return total
}

// CoveredByWallet reports whether the wallet balance pays the whole charge.
func (b Breakdown) CoveredByWallet() bool {
	if b.WalletBalance == nil {
		return false
	}
	return b.WalletBalance.GreaterThanOrEqual(b.EstimatedCharge())
}

// UnitPrices holds the per-litre price of each fuel type.
type UnitPrices struct {
	Petrol decimal.Decimal
	Diesel decimal.Decimal
}
