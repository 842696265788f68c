package response

import (
	"time"

	"fleet-console/internal/domain/pricing"
	"fleet-console/internal/domain/request"
	"fleet-console/internal/pkg/patch"
	"fleet-console/internal/usecase/composer"
	"fleet-console/internal/usecase/shared"
	"fleet-console/internal/usecase/timeslot"

	"github.com/shopspring/decimal"
)

type CoordinatesResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type LocationResponse struct {
	SavedLocationID string               `json:"savedLocationId,omitempty"`
	Address         string               `json:"address,omitempty"`
	Coordinates     *CoordinatesResponse `json:"coordinates,omitempty"`
}

type FuelResponse struct {
	FuelType         string          `json:"fuelType,omitempty"`
	Quantity         int             `json:"quantity"`
	Amount           decimal.Decimal `json:"amount"`
	QuantityEstimate *int            `json:"quantityEstimate,omitempty"`
}

type DraftResponse struct {
	Kind            string            `json:"kind"`
	AssetIDs        []string          `json:"assetIds"`
	Location        *LocationResponse `json:"location,omitempty"`
	Pickup          *LocationResponse `json:"pickup,omitempty"`
	Dropoff         *LocationResponse `json:"dropoff,omitempty"`
	TimeSlot        string            `json:"timeSlot,omitempty"`
	Note            string            `json:"note,omitempty"`
	Fuel            *FuelResponse     `json:"fuel,omitempty"`
	MaintenanceType string            `json:"maintenanceType,omitempty"`
	EmergencyType   string            `json:"emergencyType,omitempty"`
	TowingMethod    string            `json:"towingMethod,omitempty"`
}

type NoticeResponse struct {
	Field   string    `json:"field"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

type PredictionResponse struct {
	PlaceID     string `json:"placeId,omitempty"`
	Description string `json:"description"`
}

type BreakdownResponse struct {
	ConsumablePrice    decimal.Decimal  `json:"consumablePrice"`
	ServicePrice       decimal.Decimal  `json:"servicePrice"`
	DeliveryPrice      decimal.Decimal  `json:"deliveryPrice"`
	SubscriptionCharge *decimal.Decimal `json:"subscriptionCharge,omitempty"`
	EstimatedCharge    decimal.Decimal  `json:"estimatedCharge"`
	Quantity           int              `json:"quantity,omitempty"`
	Amount             decimal.Decimal  `json:"amount"`
	RemainingUses      *int             `json:"remainingUses,omitempty"`
	WalletBalance      *decimal.Decimal `json:"walletBalance,omitempty"`
	CoveredByWallet    bool             `json:"coveredByWallet"`
}

type SessionResponse struct {
	ID          string                          `json:"id"`
	Draft       DraftResponse                   `json:"draft"`
	FieldErrors map[string]string               `json:"fieldErrors"`
	Notices     []NoticeResponse                `json:"notices"`
	Predictions map[string][]PredictionResponse `json:"predictions,omitempty"`
	Phase       string                          `json:"phase"`
	Breakdown   *BreakdownResponse              `json:"breakdown,omitempty"`
	Payment     *PaymentResponse                `json:"payment,omitempty"`
	OrderID     string                          `json:"orderId,omitempty"`
}

func FromView(v composer.View) SessionResponse {
	resp := SessionResponse{
		ID:          v.ID,
		Draft:       FromDraft(v.Draft),
		FieldErrors: FromFieldErrors(v.FieldErrors),
		Notices:     make([]NoticeResponse, 0, len(v.Notices)),
		Phase:       string(v.Phase),
		OrderID:     v.OrderID,
	}
	for _, n := range v.Notices {
		resp.Notices = append(resp.Notices, NoticeResponse{Field: string(n.Field), Message: n.Message, At: n.At})
	}
	if len(v.Predictions) > 0 {
		resp.Predictions = make(map[string][]PredictionResponse, len(v.Predictions))
		for f, ps := range v.Predictions {
			resp.Predictions[f.String()] = FromPredictions(ps)
		}
	}
	if v.Breakdown != nil {
		bd := FromBreakdown(*v.Breakdown)
		resp.Breakdown = &bd
	}
	if v.Payment != nil {
		p := FromPayment(*v.Payment)
		resp.Payment = &p
	}
	return resp
}

func FromDraft(d *request.Draft) DraftResponse {
	resp := DraftResponse{
		Kind:            d.Kind.String(),
		AssetIDs:        d.Assets.IDs(),
		Location:        FromLocation(d.Location),
		Pickup:          FromLocation(d.Pickup),
		Dropoff:         FromLocation(d.Dropoff),
		TimeSlot:        d.Slot.Wire(),
		Note:            d.Note,
		MaintenanceType: d.MaintenanceType,
		EmergencyType:   d.EmergencyType,
		TowingMethod:    d.TowingMethod.String(),
	}
	if d.Kind == request.KindFuel {
		resp.Fuel = &FuelResponse{
			FuelType:         d.Fuel.Type.String(),
			Quantity:         d.Fuel.Quantity,
			Amount:           d.Fuel.Amount,
			QuantityEstimate: d.Fuel.QuantityEstimate,
		}
	}
	return resp
}

func FromLocation(spec request.LocationSpec) *LocationResponse {
	switch l := spec.(type) {
	case request.SavedLocation:
		return &LocationResponse{SavedLocationID: l.ID}
	case request.ManualLocation:
		return &LocationResponse{Address: l.Address, Coordinates: FromCoordinates(l.Coordinates)}
	default:
		return nil
	}
}

func FromCoordinates(c *request.Coordinates) *CoordinatesResponse {
	if c == nil {
		return nil
	}
	return &CoordinatesResponse{Latitude: c.Latitude, Longitude: c.Longitude}
}

func FromFieldErrors(fe request.FieldErrors) map[string]string {
	out := make(map[string]string, len(fe))
	for k, v := range fe {
		out[string(k)] = v
	}
	return out
}

func FromPredictions(ps []request.Prediction) []PredictionResponse {
	out := make([]PredictionResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, PredictionResponse{PlaceID: p.PlaceID, Description: p.Description})
	}
	return out
}

func FromBreakdown(b pricing.Breakdown) BreakdownResponse {
	return BreakdownResponse{
		ConsumablePrice:    b.ConsumablePrice,
		ServicePrice:       b.ServicePrice,
		DeliveryPrice:      b.DeliveryPrice,
		SubscriptionCharge: b.SubscriptionCharge,
		EstimatedCharge:    b.EstimatedCharge(),
		Quantity:           b.Quantity,
		Amount:             b.Amount,
		RemainingUses:      b.RemainingUses,
		WalletBalance:      b.WalletBalance,
		CoveredByWallet:    b.CoveredByWallet(),
	}
}

type AssetResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	PlateNumber  string `json:"plateNumber"`
	FuelType     string `json:"fuelType,omitempty"`
	TankCapacity int    `json:"tankCapacity,omitempty"`
	Selected     bool   `json:"selected"`
}

func FromAssets(assets []shared.AssetSnapshot, selected request.AssetSelection) []AssetResponse {
	out := make([]AssetResponse, 0, len(assets))
	for _, a := range assets {
		out = append(out, AssetResponse{
			ID:           a.ID,
			Name:         a.Name,
			PlateNumber:  a.PlateNumber,
			FuelType:     a.FuelType.String(),
			TankCapacity: a.TankCapacity,
			Selected:     selected.Contains(a.ID),
		})
	}
	return out
}

type SavedLocationResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Address     string               `json:"address"`
	Coordinates *CoordinatesResponse `json:"coordinates,omitempty"`
}

func FromSavedLocations(ls []shared.SavedLocationSnapshot) []SavedLocationResponse {
	out := make([]SavedLocationResponse, 0, len(ls))
	for _, l := range ls {
		out = append(out, SavedLocationResponse{
			ID:          l.ID,
			Name:        l.Name,
			Address:     l.Address,
			Coordinates: FromCoordinates(l.Coordinates),
		})
	}
	return out
}

type SearchResponse struct {
	Applied     bool                 `json:"applied"`
	Predictions []PredictionResponse `json:"predictions"`
}

type ResolutionResponse struct {
	Applied  bool              `json:"applied"`
	Location *LocationResponse `json:"location,omitempty"`
	Error    string            `json:"error,omitempty"`
}

type TimeSlotOptionResponse struct {
	Label     string     `json:"label"`
	Immediate bool       `json:"immediate"`
	StartHour *int       `json:"startHour,omitempty"`
	Start     *time.Time `json:"start,omitempty"`
	End       *time.Time `json:"end,omitempty"`
}

func FromOptions(opts []timeslot.Option) []TimeSlotOptionResponse {
	out := make([]TimeSlotOptionResponse, 0, len(opts))
	for _, o := range opts {
		r := TimeSlotOptionResponse{Label: o.Label, Immediate: o.Immediate}
		if !o.Immediate {
			r.StartHour, r.Start, r.End = patch.Ref(o.StartHour), patch.Ref(o.Start), patch.Ref(o.End)
		}
		out = append(out, r)
	}
	return out
}

type ValidationResponse struct {
	Valid       bool              `json:"valid"`
	FieldErrors map[string]string `json:"fieldErrors"`
}

type ReceiptResponse struct {
	OrderID   string            `json:"orderId"`
	Breakdown BreakdownResponse `json:"breakdown"`
}
