package property

import (
	"github.com/attcrm/backend/internal/domain/property"
	"github.com/attcrm/backend/internal/domain/shared"
	"github.com/attcrm/backend/internal/domain/shared/valueobject"
)

// CreatePropertyRequest represents a request to create a property
type CreatePropertyRequest struct {
	Name       string `json:"name"`
	Location   string `json:"location"`
	Type       string `json:"type"`
	UsesPhases bool   `json:"usesPhases"`
}

// CreatePhaseRequest represents a request to create or find a phase
type CreatePhaseRequest struct {
	Name string `json:"name"`
}

// AddUnitRequest represents a request to add a unit. PhaseName is ignored for
// properties that do not use phases.
type AddUnitRequest struct {
	UnitNumber    string                  `json:"unitNumber"`
	Status        string                  `json:"status"`
	PhaseName     string                  `json:"phaseName"`
	ListPrice     valueobject.Amount      `json:"listPrice"`
	SalePrice     valueobject.Amount      `json:"salePrice"`
	TotalReceived valueobject.Amount      `json:"totalReceived"`
	Buyer         *property.BuyerPatch    `json:"buyer"`
	Contract      *property.ContractPatch `json:"contract"`
}

func (r AddUnitRequest) toDraft() property.UnitDraft {
	return property.UnitDraft{
		UnitNumber:    r.UnitNumber,
		Status:        r.Status,
		PhaseName:     r.PhaseName,
		ListPrice:     r.ListPrice,
		SalePrice:     r.SalePrice,
		TotalReceived: r.TotalReceived,
		Buyer:         r.Buyer,
		Contract:      r.Contract,
	}
}

// UpdateUnitRequest represents a partial unit update. Omitted fields keep
// their current value; label is accepted in place of unitNumber.
type UpdateUnitRequest struct {
	UnitNumber    shared.Optional[string]                  `json:"unitNumber"`
	Label         shared.Optional[string]                  `json:"label"`
	Status        shared.Optional[property.StatusInput]    `json:"status"`
	ListPrice     shared.Optional[valueobject.Amount]      `json:"listPrice"`
	SalePrice     shared.Optional[valueobject.Amount]      `json:"salePrice"`
	TotalReceived shared.Optional[valueobject.Amount]      `json:"totalReceived"`
	Buyer         shared.Optional[*property.BuyerPatch]    `json:"buyer"`
	Contract      shared.Optional[*property.ContractPatch] `json:"contract"`
}

func (r UpdateUnitRequest) toPatch() property.UnitPatch {
	return property.UnitPatch{
		UnitNumber:    r.UnitNumber,
		Label:         r.Label,
		Status:        r.Status,
		ListPrice:     r.ListPrice,
		SalePrice:     r.SalePrice,
		TotalReceived: r.TotalReceived,
		Buyer:         r.Buyer,
		Contract:      r.Contract,
	}
}

// AddMilestoneRequest represents a request to add a milestone to a unit
type AddMilestoneRequest struct {
	Label  string             `json:"label"`
	Amount valueobject.Amount `json:"amount"`
}

// UpdateMilestoneRequest identifies a milestone by label and carries the
// fields to change
type UpdateMilestoneRequest struct {
	Label     string                              `json:"label"`
	Completed shared.Optional[bool]               `json:"completed"`
	Amount    shared.Optional[valueobject.Amount] `json:"amount"`
}

// PhaseResult is returned by phase creation
type PhaseResult struct {
	Phase *property.Phase `json:"phase"`
}

// AddUnitResult is returned by unit creation
type AddUnitResult struct {
	PropertyID string          `json:"propertyId"`
	Phase      *property.Phase `json:"phase"`
	Unit       *property.Unit  `json:"unit"`
}

// UnitResult is returned by unit and milestone mutations
type UnitResult struct {
	PropertyID string         `json:"propertyId"`
	PhaseID    string         `json:"phaseId"`
	Unit       *property.Unit `json:"unit"`
}

// PropertySummary is the trimmed property shown alongside a single unit
type PropertySummary struct {
	ID   string        `json:"id"`
	Name string        `json:"name"`
	Type property.Type `json:"type"`
}

// PhaseSummary is the trimmed phase shown alongside a single unit
type PhaseSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UnitContextResult is a unit together with its owning property and phase
type UnitContextResult struct {
	Property PropertySummary `json:"property"`
	Phase    PhaseSummary    `json:"phase"`
	Unit     *property.Unit  `json:"unit"`
}
