package backend

import (
	"time"

	"fleet-console/internal/domain/request"
	"fleet-console/internal/domain/subscription"
	"fleet-console/internal/usecase/shared"

	"github.com/shopspring/decimal"
)

// emergencyTowing is the emergency_type the backend files towing jobs under.
const emergencyTowing = "TOWING"

type serviceRequest struct {
	AssetIDs        []string `json:"asset_ids"`
	FuelType        string   `json:"fuel_type,omitempty"`
	MaintenanceType string   `json:"maintenance_type,omitempty"`
	EmergencyType   string   `json:"emergency_type,omitempty"`
	TowingMethod    string   `json:"towing_method,omitempty"`

	LocationID        string   `json:"location_id,omitempty"`
	LocationAddress   string   `json:"location_address,omitempty"`
	LocationLatitude  *float64 `json:"location_latitude,omitempty"`
	LocationLongitude *float64 `json:"location_longitude,omitempty"`

	ToLocationID        string   `json:"to_location_id,omitempty"`
	ToLocationAddress   string   `json:"to_location_address,omitempty"`
	ToLocationLatitude  *float64 `json:"to_location_latitude,omitempty"`
	ToLocationLongitude *float64 `json:"to_location_longitude,omitempty"`

	TimeSlot    string `json:"time_slot"`
	IsScheduled bool   `json:"is_scheduled"`
	Quantity    int    `json:"quantity,omitempty"`
	Note        string `json:"note,omitempty"`
}

type locationFields struct {
	id, address string
	lat, lng    *float64
}

func flattenLocation(spec request.LocationSpec) locationFields {
	switch l := spec.(type) {
	case request.SavedLocation:
		return locationFields{id: l.ID}
	case request.ManualLocation:
		f := locationFields{address: l.Address}
		if l.Coordinates != nil {
			lat, lng := l.Coordinates.Latitude, l.Coordinates.Longitude
			f.lat, f.lng = &lat, &lng
		}
		return f
	default:
		return locationFields{}
	}
}

func newServiceRequest(o shared.ServiceOrder) serviceRequest {
	r := serviceRequest{
		AssetIDs:    o.AssetIDs,
		TimeSlot:    o.Slot.Wire(),
		IsScheduled: o.Slot.IsScheduled(),
		Note:        o.Note,
	}
	if r.AssetIDs == nil {
		r.AssetIDs = []string{}
	}

	from := o.Location
	switch o.Kind {
	case request.KindFuel:
		r.FuelType = o.FuelType.String()
		r.Quantity = o.Quantity
	case request.KindMaintenance:
		r.MaintenanceType = o.MaintenanceType
	case request.KindEmergency:
		r.EmergencyType = o.EmergencyType
	case request.KindTowing:
		r.EmergencyType = emergencyTowing
		r.TowingMethod = o.TowingMethod.String()
		from = o.Pickup
		to := flattenLocation(o.Dropoff)
		r.ToLocationID, r.ToLocationAddress = to.id, to.address
		r.ToLocationLatitude, r.ToLocationLongitude = to.lat, to.lng
	}

	loc := flattenLocation(from)
	r.LocationID, r.LocationAddress = loc.id, loc.address
	r.LocationLatitude, r.LocationLongitude = loc.lat, loc.lng
	return r
}

type breakdownResponse struct {
	ConsumablePrice    decimal.Decimal  `json:"consumable_price"`
	ServicePrice       decimal.Decimal  `json:"service_price"`
	DeliveryPrice      decimal.Decimal  `json:"delivery_price"`
	SubscriptionCharge *decimal.Decimal `json:"subscription_charge"`
	Quantity           int              `json:"quantity"`
	Amount             decimal.Decimal  `json:"amount"`
	RemainingUses      *int             `json:"remaining_uses"`
	WalletBalance      *decimal.Decimal `json:"wallet_balance"`
}

type placeResponse struct {
	OrderID string             `json:"order_id"`
	Pricing *breakdownResponse `json:"pricing"`
}

type pricingDetailRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	FuelType string          `json:"fuel_type"`
}

type pricingDetailResponse struct {
	UnitPrice struct {
		Petrol decimal.Decimal `json:"petrol"`
		Diesel decimal.Decimal `json:"diesel"`
	} `json:"unit_price"`
	Estimation struct {
		Litres decimal.Decimal `json:"litres"`
	} `json:"estimation"`
}

type assetResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	PlateNumber  string `json:"plate_number"`
	FuelType     string `json:"fuel_type"`
	TankCapacity int    `json:"tank_capacity"`
}

type savedLocationResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type estimateRequest struct {
	AssetCount   int    `json:"asset_count"`
	BillingCycle string `json:"billing_cycle"`
	Category     string `json:"category"`
}

type estimateResponse struct {
	PerAsset    decimal.Decimal `json:"per_asset"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

type assignInitRequest struct {
	PlanID       string           `json:"plan_id,omitempty"`
	Estimate     *estimatePayload `json:"estimate,omitempty"`
	BillingCycle string           `json:"billing_cycle"`
	StartsAt     string           `json:"starts_at"`
}

type estimatePayload struct {
	AssetCount  int             `json:"asset_count"`
	Category    string          `json:"category"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

func newAssignInitRequest(in shared.AssignmentInit) assignInitRequest {
	r := assignInitRequest{
		PlanID:       in.Plan.PlanID,
		BillingCycle: in.BillingCycle.String(),
		StartsAt:     in.StartsAt.Format(dateLayout),
	}
	if !in.Plan.HasPlan() && in.Plan.Estimate != nil {
		r.Estimate = &estimatePayload{
			AssetCount:  in.Plan.Estimate.AssetCount,
			Category:    in.Plan.Estimate.Category.String(),
			TotalAmount: in.Plan.Estimate.TotalAmount,
		}
	}
	return r
}

type assignInitResponse struct {
	AuthorizationURL string `json:"authorization_url"`
	Reference        string `json:"reference"`
}

type assignVerifyRequest struct {
	PlanID       string `json:"plan_id"`
	PaymentRef   string `json:"payment_ref"`
	StartDate    string `json:"start_date"`
	BillingCycle string `json:"billing_cycle"`
}

type assignVerifyResponse struct {
	Success bool `json:"success"`
}

// dateLayout is the calendar-day format of subscription start dates.
const dateLayout = time.DateOnly

func estimateFromResponse(in shared.EstimateInput, resp estimateResponse) subscription.Estimate {
	return subscription.Estimate{
		AssetCount:   in.AssetCount,
		BillingCycle: in.BillingCycle,
		Category:     in.Category,
		PerAsset:     resp.PerAsset,
		TotalAmount:  resp.TotalAmount,
	}
}
