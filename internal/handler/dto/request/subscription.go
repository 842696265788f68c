package request

import (
	"fleet-console/internal/domain/subscription"
	"fleet-console/internal/usecase/validation"
)

type SubscriptionEstimateRequest struct {
	AssetCount   int    `json:"assetCount"`
	BillingCycle string `json:"billingCycle"`
	Category     string `json:"category"`
}

// ToInput leaves unknown enum values in place; the validator reports them as
// field errors.
func (r SubscriptionEstimateRequest) ToInput() validation.SubscriptionInput {
	return validation.SubscriptionInput{
		AssetCount:   r.AssetCount,
		BillingCycle: normalizeCycle(r.BillingCycle),
		Category:     normalizeCategory(r.Category),
	}
}

// PaymentInitRequest pays for an existing plan, or for the last estimate when
// PlanID is empty.
type PaymentInitRequest struct {
	PlanID       string `json:"planId,omitempty"`
	BillingCycle string `json:"billingCycle"`
	StartsAt     string `json:"startsAt" binding:"required"`
}

func (r PaymentInitRequest) Cycle() subscription.BillingCycle {
	return normalizeCycle(r.BillingCycle)
}

type VerifyPaymentRequest struct {
	PlanID    string `json:"planId,omitempty"`
	StartDate string `json:"startDate" binding:"required"`
}

func normalizeCycle(s string) subscription.BillingCycle {
	if c, err := subscription.NewBillingCycle(s); err == nil {
		return c
	}
	return subscription.BillingCycle(s)
}

func normalizeCategory(s string) subscription.Category {
	if c, err := subscription.NewCategory(s); err == nil {
		return c
	}
	return subscription.Category(s)
}
