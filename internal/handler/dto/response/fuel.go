package response

import "github.com/shopspring/decimal"

type LitresResponse struct {
	Quantity        int              `json:"quantity"`
	EstimatedAmount *decimal.Decimal `json:"estimatedAmount,omitempty"`
}

type ConversionResponse struct {
	Applied  bool `json:"applied"`
	Quantity int  `json:"quantity"`
	Estimate *int `json:"estimate,omitempty"`
}

type UnitPriceResponse struct {
	FuelType  string           `json:"fuelType"`
	UnitPrice *decimal.Decimal `json:"unitPrice,omitempty"`
}
