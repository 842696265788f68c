package response

import (
	"fleet-console/internal/domain/payment"
	"fleet-console/internal/domain/subscription"

	"github.com/shopspring/decimal"
)

type EstimateResponse struct {
	AssetCount   int             `json:"assetCount"`
	BillingCycle string          `json:"billingCycle"`
	Category     string          `json:"category"`
	PerAsset     decimal.Decimal `json:"perAsset"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
}

func FromEstimate(e subscription.Estimate) EstimateResponse {
	return EstimateResponse{
		AssetCount:   e.AssetCount,
		BillingCycle: e.BillingCycle.String(),
		Category:     e.Category.String(),
		PerAsset:     e.PerAsset,
		TotalAmount:  e.TotalAmount,
	}
}

type PaymentResponse struct {
	Reference        string `json:"reference"`
	AuthorizationURL string `json:"authorizationUrl"`
	Phase            string `json:"phase"`
}

func FromPayment(s payment.Snapshot) PaymentResponse {
	return PaymentResponse{
		Reference:        s.Reference,
		AuthorizationURL: s.AuthorizationURL,
		Phase:            string(s.Phase),
	}
}
