package request

// Field is the stable key of a draft input used in field error maps.
type Field string

const (
	KeyAssets          Field = "assets"
	KeyLocation        Field = "location"
	KeyPickup          Field = "pickup"
	KeyDropoff         Field = "dropoff"
	KeyTimeSlot        Field = "time_slot"
	KeyFuelType        Field = "fuel_type"
	KeyQuantity        Field = "quantity"
	KeyAmount          Field = "amount"
	KeyMaintenanceType Field = "maintenance_type"
	KeyEmergencyType   Field = "emergency_type"
	KeyTowingMethod    Field = "towing_method"
	KeyAssetCount      Field = "asset_count"
	KeyBillingCycle    Field = "billing_cycle"
	KeyCategory        Field = "category"
	KeyStartsAt        Field = "starts_at"
)

// FieldFor maps a location input to its error key.
func FieldFor(l LocationField) Field {
	return Field(l)
}

// FieldErrors collects every violated field of a draft.
type FieldErrors map[Field]string

func (fe FieldErrors) Add(f Field, msg string) {
	if _, exists := fe[f]; exists {
		return
	}
	fe[f] = msg
}

func (fe FieldErrors) Has(f Field) bool {
	_, ok := fe[f]
	return ok
}

func (fe FieldErrors) IsEmpty() bool {
	return len(fe) == 0
}

func (fe FieldErrors) Clone() FieldErrors {
	out := make(FieldErrors, len(fe))
	for k, v := range fe {
		out[k] = v
	}
	return out
}
