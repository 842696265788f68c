package backend

import (
	"context"
	"net/http"

	"fleet-console/internal/domain/pricing"
	"fleet-console/internal/domain/request"
	"fleet-console/internal/infra"
	"fleet-console/internal/usecase/shared"

	"github.com/shopspring/decimal"
)

var _ shared.FuelPricing = (*Client)(nil)

func (c *Client) FuelPricingDetail(ctx context.Context, fuelType request.FuelType, amount decimal.Decimal) (shared.FuelQuote, error) {
	var resp pricingDetailResponse
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/fuel/pricing-detail",
		body:   pricingDetailRequest{Amount: amount, FuelType: fuelType.String()},
		op:     "fuel pricing detail",
	}, &resp)
	if err != nil {
		return shared.FuelQuote{}, err
	}

	if resp.Estimation.Litres.IsNegative() {
		return shared.FuelQuote{}, infra.WrapGatewayErr(c.logger, infra.KindDecode, 0, "negative litre estimation", nil)
	}
	return shared.FuelQuote{
		UnitPrices: pricing.UnitPrices{
			Petrol: resp.UnitPrice.Petrol,
			Diesel: resp.UnitPrice.Diesel,
		},
		Litres: resp.Estimation.Litres,
	}, nil
}

func (c *Client) toBreakdown(r breakdownResponse) (pricing.Breakdown, error) {
	b, err := pricing.NewBreakdown(r.ConsumablePrice, r.ServicePrice, r.DeliveryPrice, r.SubscriptionCharge)
	if err != nil {
		return pricing.Breakdown{}, infra.WrapGatewayErr(c.logger, infra.KindDecode, 0, "pricing breakdown", err)
	}
	b.Quantity = r.Quantity
	b.Amount = r.Amount
	b.RemainingUses = r.RemainingUses
	b.WalletBalance = r.WalletBalance
	return b, nil
}
