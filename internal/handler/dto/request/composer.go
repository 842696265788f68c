package request

import (
	"strings"

	"fleet-console/internal/domain/request"
	"fleet-console/internal/usecase/draftstore"
	"fleet-console/internal/usecase/location"
)

type OpenSessionRequest struct {
	Kind string `json:"kind" binding:"required,oneof=fuel maintenance emergency towing"`
}

// PatchDraftRequest carries only the fields the client changed.
type PatchDraftRequest struct {
	Kind            *string   `json:"kind,omitempty" binding:"omitempty,oneof=fuel maintenance emergency towing"`
	AssetIDs        *[]string `json:"assetIds,omitempty" binding:"omitempty,dive,required"`
	Note            *string   `json:"note,omitempty" binding:"omitempty,max=500"`
	FuelType        *string   `json:"fuelType,omitempty" binding:"omitempty,oneof=PETROL DIESEL"`
	Quantity        *int      `json:"quantity,omitempty" binding:"omitempty,min=0"`
	MaintenanceType *string   `json:"maintenanceType,omitempty"`
	EmergencyType   *string   `json:"emergencyType,omitempty"`
	TowingMethod    *string   `json:"towingMethod,omitempty" binding:"omitempty,oneof=FLATBED HOOK_AND_CHAIN WHEEL_LIFT"`
}

// ToPatch converts everything except the fuel type, which goes through the
// quantity converter so its unit price is primed.
func (r PatchDraftRequest) ToPatch() draftstore.Patch {
	var p draftstore.Patch
	if r.Kind != nil {
		k := request.ServiceKind(*r.Kind)
		p.Kind = &k
	}
	if r.AssetIDs != nil {
		ids := append([]string{}, *r.AssetIDs...)
		p.AssetIDs = &ids
	}
	p.Note = r.Note
	p.Quantity = r.Quantity
	p.MaintenanceType = r.MaintenanceType
	p.EmergencyType = r.EmergencyType
	if r.TowingMethod != nil {
		m := request.TowingMethod(*r.TowingMethod)
		p.TowingMethod = &m
	}
	return p
}

func (r PatchDraftRequest) GetFuelType() *request.FuelType {
	if r.FuelType == nil {
		return nil
	}
	ft := request.FuelType(*r.FuelType)
	return &ft
}

type SearchLocationRequest struct {
	Query string `json:"query"`
}

type ResolveLocationRequest struct {
	SavedLocationID string `json:"savedLocationId,omitempty"`
	Description     string `json:"description,omitempty"`
}

func (r ResolveLocationRequest) ToSelection() location.Selection {
	if strings.TrimSpace(r.SavedLocationID) != "" {
		return location.SavedSelection(r.SavedLocationID)
	}
	return location.DescriptionSelection(r.Description)
}

type ManualAddressRequest struct {
	Address string `json:"address" binding:"required,max=300"`
}

type TimeSlotRequest struct {
	Immediate bool   `json:"immediate"`
	Date      string `json:"date,omitempty"`
	StartHour *int   `json:"startHour,omitempty" binding:"omitempty,min=0,max=23"`
}
