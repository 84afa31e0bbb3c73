package property

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/attcrm/backend/internal/domain/shared"
	"github.com/attcrm/backend/internal/domain/shared/valueobject"
)

// UnitStatus represents the sales status of a unit
type UnitStatus string

const (
	UnitStatusAvailable      UnitStatus = "available"
	UnitStatusDeposit        UnitStatus = "deposit"
	UnitStatusUnderContract  UnitStatus = "under_contract"
	UnitStatusSignedContract UnitStatus = "signed_contract"
	UnitStatusSold           UnitStatus = "sold"
)

// UnitStatuses lists the valid statuses in sales-pipeline order
var UnitStatuses = []UnitStatus{
	UnitStatusAvailable,
	UnitStatusDeposit,
	UnitStatusUnderContract,
	UnitStatusSignedContract,
	UnitStatusSold,
}

// IsValid returns true if s is one of UnitStatuses
func (s UnitStatus) IsValid() bool {
	for _, v := range UnitStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Unit is an individual sellable inventory item
type Unit struct {
	ID            string             `json:"id"`
	UnitNumber    string             `json:"unitNumber"`
	Status        UnitStatus         `json:"status"`
	ListPrice     valueobject.Amount `json:"listPrice"`
	SalePrice     valueobject.Amount `json:"salePrice"`
	TotalReceived valueobject.Amount `json:"totalReceived"`
	Buyer         Buyer              `json:"buyer"`
	Contract      Contract           `json:"contract"`
	Milestones    []Milestone        `json:"milestones"`
}

// UnitDraft carries the input for a new unit. Buyer and contract fields that
// are left out start blank.
type UnitDraft struct {
	UnitNumber    string             `json:"unitNumber"`
	Status        string             `json:"status"`
	PhaseName     string             `json:"phaseName"`
	ListPrice     valueobject.Amount `json:"listPrice"`
	SalePrice     valueobject.Amount `json:"salePrice"`
	TotalReceived valueobject.Amount `json:"totalReceived"`
	Buyer         *BuyerPatch        `json:"buyer"`
	Contract      *ContractPatch     `json:"contract"`
}

// StatusInput is a requested status in a partial update. JSON that is not a
// string decodes as "", which matches no status and so is ignored.
type StatusInput string

// UnmarshalJSON implements json.Unmarshaler. It never fails.
func (s *StatusInput) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		*s = ""
		return nil
	}
	*s = StatusInput(v)
	return nil
}

// UnitPatch is a partial unit update. Only fields that are Set change.
type UnitPatch struct {
	UnitNumber    shared.Optional[string]             `json:"unitNumber"`
	Label         shared.Optional[string]             `json:"label"`
	Status        shared.Optional[StatusInput]        `json:"status"`
	ListPrice     shared.Optional[valueobject.Amount] `json:"listPrice"`
	SalePrice     shared.Optional[valueobject.Amount] `json:"salePrice"`
	TotalReceived shared.Optional[valueobject.Amount] `json:"totalReceived"`
	Buyer         shared.Optional[*BuyerPatch]        `json:"buyer"`
	Contract      shared.Optional[*ContractPatch]     `json:"contract"`
}

func newUnit(draft UnitDraft) (*Unit, error) {
	number := strings.TrimSpace(draft.UnitNumber)
	if number == "" {
		return nil, ErrUnitNumberRequired
	}
	status, err := parseStatus(draft.Status)
	if err != nil {
		return nil, err
	}

	buyer, err := Buyer{}.Merge(draft.Buyer)
	if err != nil {
		return nil, err
	}
	contract, err := Contract{}.Merge(draft.Contract)
	if err != nil {
		return nil, err
	}

	return &Unit{
		ID:            NewID("unit"),
		UnitNumber:    number,
		Status:        status,
		ListPrice:     draft.ListPrice,
		SalePrice:     draft.SalePrice,
		TotalReceived: draft.TotalReceived,
		Buyer:         buyer,
		Contract:      contract,
		Milestones:    []Milestone{},
	}, nil
}

func parseStatus(raw string) (UnitStatus, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrUnitStatusRequired
	}
	status := UnitStatus(raw)
	if !status.IsValid() {
		names := make([]string, len(UnitStatuses))
		for i, s := range UnitStatuses {
			names[i] = string(s)
		}
		return "", shared.NewValidationError(fmt.Sprintf("Invalid unit status. Valid options: %s", strings.Join(names, ", ")))
	}
	return status, nil
}

// Apply updates the unit with every field present in patch. An unknown or
// empty status is ignored. The unit is left untouched when an error is returned.
func (u *Unit) Apply(patch UnitPatch) error {
	next := *u

	if number, ok := patch.unitNumber(); ok {
		number = strings.TrimSpace(number)
		if number == "" {
			return ErrUnitNumberRequired
		}
		next.UnitNumber = number
	}
	if raw, ok := patch.Status.Get(); ok {
		if status := UnitStatus(strings.TrimSpace(string(raw))); status.IsValid() {
			next.Status = status
		}
	}
	if v, ok := patch.ListPrice.Get(); ok {
		next.ListPrice = v
	}
	if v, ok := patch.SalePrice.Get(); ok {
		next.SalePrice = v
	}
	if v, ok := patch.TotalReceived.Get(); ok {
		next.TotalReceived = v
	}
	if v, ok := patch.Buyer.Get(); ok {
		buyer, err := u.Buyer.Merge(v)
		if err != nil {
			return err
		}
		next.Buyer = buyer
	}
	if v, ok := patch.Contract.Get(); ok {
		contract, err := u.Contract.Merge(v)
		if err != nil {
			return err
		}
		next.Contract = contract
	}

	*u = next
	return nil
}

// unitNumber prefers unitNumber over its label alias
func (p UnitPatch) unitNumber() (string, bool) {
	if p.UnitNumber.Set {
		return p.UnitNumber.Value, true
	}
	return p.Label.Get()
}

// AddMilestone appends a new milestone. Labels are unique per unit, ignoring case.
func (u *Unit) AddMilestone(draft MilestoneDraft) error {
	label := strings.TrimSpace(draft.Label)
	if label == "" {
		return ErrMilestoneLabel
	}
	index := NewNameIndex(u.Milestones, func(m Milestone) string { return m.Label })
	if _, exists := index.Lookup(label); exists {
		return ErrMilestoneExists
	}
	u.Milestones = append(u.Milestones, Milestone{
		Label:     label,
		Completed: false,
		Amount:    draft.Amount,
	})
	return nil
}

// UpdateMilestone applies patch to the milestone matching label, ignoring case
func (u *Unit) UpdateMilestone(label string, patch MilestonePatch) error {
	index := NewNameIndex(u.Milestones, func(m Milestone) string { return m.Label })
	i, ok := index.Lookup(label)
	if !ok {
		return ErrMilestoneNotFound
	}
	u.Milestones[i].apply(patch)
	return nil
}

// FindMilestone returns the milestone matching label, ignoring case
func (u *Unit) FindMilestone(label string) (Milestone, bool) {
	index := NewNameIndex(u.Milestones, func(m Milestone) string { return m.Label })
	if i, ok := index.Lookup(label); ok {
		return u.Milestones[i], true
	}
	return Milestone{}, false
}

// Clone returns a deep copy of the unit
func (u *Unit) Clone() *Unit {
	if u == nil {
		return nil
	}
	c := *u
	c.Buyer.PassportFile = u.Buyer.PassportFile.clone()
	c.Contract.DocumentFile = u.Contract.DocumentFile.clone()
	c.Milestones = make([]Milestone, len(u.Milestones))
	copy(c.Milestones, u.Milestones)
	return &c
}
