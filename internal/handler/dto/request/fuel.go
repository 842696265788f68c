package request

import (
	"github.com/shopspring/decimal"
)

type FuelTypeRequest struct {
	FuelType string `json:"fuelType" binding:"required,oneof=PETROL DIESEL"`
}

type LitresRequest struct {
	Litres *int `json:"litres" binding:"required"`
}

type AmountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}
