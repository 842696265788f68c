package subscription

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidBillingCycle = errors.New("invalid billing cycle")
	ErrInvalidCategory     = errors.New("invalid subscription category")
	ErrInvalidAssetCount   = errors.New("asset count must be positive")
	ErrEmptyPlanRef        = errors.New("plan reference requires a plan id or an estimate")
)

type BillingCycle string

const (
	CycleMonthly   BillingCycle = "monthly"
	CycleQuarterly BillingCycle = "quarterly"
	CycleYearly    BillingCycle = "yearly"
)

func NewBillingCycle(s string) (BillingCycle, error) {
	c := BillingCycle(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", ErrInvalidBillingCycle
	}
	return c, nil
}

func (c BillingCycle) IsValid() bool {
	switch c {
	case CycleMonthly, CycleQuarterly, CycleYearly:
		return true
	default:
		return false
	}
}

func (c BillingCycle) String() string {
	return string(c)
}

// Category selects the subscription plan family.
type Category string

const (
	CategoryFuel        Category = "fuel"
	CategoryMaintenance Category = "maintenance"
	CategoryEmergency   Category = "emergency"
	CategoryBundle      Category = "bundle"
)

func NewCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", ErrInvalidCategory
	}
	return c, nil
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryFuel, CategoryMaintenance, CategoryEmergency, CategoryBundle:
		return true
	default:
		return false
	}
}

func (c Category) String() string {
	return string(c)
}

type Estimate struct {
	AssetCount   int
	BillingCycle BillingCycle
	Category     Category
	PerAsset     decimal.Decimal
	TotalAmount  decimal.Decimal
}

// PlanRef identifies what a payment is for: an existing plan or a fresh
// estimate.
type PlanRef struct {
	PlanID   string
	Estimate *Estimate
}

func NewPlanRef(planID string, estimate *Estimate) (PlanRef, error) {
	planID = strings.TrimSpace(planID)
	if planID == "" && estimate == nil {
		return PlanRef{}, ErrEmptyPlanRef
	}
	return PlanRef{PlanID: planID, Estimate: estimate}, nil
}

func (p PlanRef) HasPlan() bool {
	return p.PlanID != ""
}
