package property

import (
	"fmt"
	"strings"

	"github.com/attcrm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DefaultPhaseName is the name of the synthetic phase that holds every unit of
// a property that does not use phases
const DefaultPhaseName = "General Inventory"

// Type is the kind of development a property is
type Type string

const (
	TypeSemiDetached Type = "semi_detached"
	TypeVilla        Type = "villa"
	TypeApartment    Type = "apartment"
)

// Types lists the accepted property types in display order
var Types = []Type{TypeSemiDetached, TypeVilla, TypeApartment}

// IsValid returns true if t is one of Types
func (t Type) IsValid() bool {
	for _, v := range Types {
		if v == t {
			return true
		}
	}
	return false
}

// Domain errors returned by the Property aggregate
var (
	ErrPropertyNotFound     = shared.NewNotFoundError("Property not found.")
	ErrUnitNotFound         = shared.NewNotFoundError("Unit not found.")
	ErrMilestoneNotFound    = shared.NewNotFoundError("Milestone not found.")
	ErrPropertyFields       = shared.NewValidationError("Name, location, and type are required.")
	ErrPhasesDisabled       = shared.NewValidationError("This property does not use phases.")
	ErrPhaseNameRequired    = shared.NewValidationError("Phase name is required.")
	ErrUnitPhaseRequired    = shared.NewValidationError("Phase name is required for this property.")
	ErrUnitNumberRequired   = shared.NewValidationError("Unit number is required.")
	ErrUnitStatusRequired   = shared.NewValidationError("Status is required.")
	ErrMilestoneLabel       = shared.NewValidationError("Milestone label is required.")
	ErrMilestoneExists      = shared.NewValidationError("Milestone label already exists for this unit.")
	ErrAttachmentNotEncoded = shared.NewValidationError("Attachment data must be base64 encoded.")
)

// Property is the aggregate root of the sales tracker. It exclusively owns its
// phases, which own their units.
type Property struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Location   string   `json:"location"`
	Type       Type     `json:"type"`
	UsesPhases bool     `json:"usesPhases"`
	Phases     []*Phase `json:"phases"`
}

// NewProperty validates the input and creates a property. Villas never use
// phases, and a property without phases starts with the default phase.
func NewProperty(name, location, propertyType string, usesPhases bool) (*Property, error) {
	name = strings.TrimSpace(name)
	location = strings.TrimSpace(location)
	t := Type(strings.ToLower(strings.TrimSpace(propertyType)))

	if name == "" || location == "" || t == "" {
		return nil, ErrPropertyFields
	}
	if !t.IsValid() {
		return nil, invalidTypeError()
	}

	if t == TypeVilla {
		usesPhases = false
	}

	p := &Property{
		ID:         NewID("prop"),
		Name:       name,
		Location:   location,
		Type:       t,
		UsesPhases: usesPhases,
		Phases:     []*Phase{},
	}
	if !p.UsesPhases {
		p.Phases = append(p.Phases, newPhase(DefaultPhaseName))
	}
	return p, nil
}

// NewID returns an identifier of the form <prefix>-<8 hex digits>
func NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}

// AddPhase returns the phase matching name case-insensitively, creating it when
// none exists. created reports whether a new phase was appended.
func (p *Property) AddPhase(name string) (phase *Phase, created bool, err error) {
	if !p.UsesPhases {
		return nil, false, ErrPhasesDisabled
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, ErrPhaseNameRequired
	}
	phase, created = p.matchOrCreatePhase(name)
	return phase, created, nil
}

// FindUnit searches every phase for the unit and returns it with its phase
func (p *Property) FindUnit(unitID string) (*Phase, *Unit, error) {
	for _, ph := range p.Phases {
		if u := ph.unit(unitID); u != nil {
			return ph, u, nil
		}
	}
	return nil, nil, ErrUnitNotFound
}

// AddUnit validates the draft, resolves its target phase and appends the new
// unit. Nothing is changed when an error is returned.
func (p *Property) AddUnit(draft UnitDraft) (*Phase, *Unit, error) {
	unit, err := newUnit(draft)
	if err != nil {
		return nil, nil, err
	}
	phase, err := p.resolvePhase(draft.PhaseName)
	if err != nil {
		return nil, nil, err
	}
	phase.Units = append(phase.Units, unit)
	return phase, unit, nil
}

// UpdateUnit applies a partial update to a unit
func (p *Property) UpdateUnit(unitID string, patch UnitPatch) (*Phase, *Unit, error) {
	phase, unit, err := p.FindUnit(unitID)
	if err != nil {
		return nil, nil, err
	}
	if err := unit.Apply(patch); err != nil {
		return nil, nil, err
	}
	return phase, unit, nil
}

// RemoveUnit deletes a unit from whichever phase holds it
func (p *Property) RemoveUnit(unitID string) (*Phase, *Unit, error) {
	for _, ph := range p.Phases {
		for i, u := range ph.Units {
			if u.ID == unitID {
				ph.Units = append(ph.Units[:i], ph.Units[i+1:]...)
				return ph, u, nil
			}
		}
	}
	return nil, nil, ErrUnitNotFound
}

// AddMilestone appends a new, incomplete milestone to a unit
func (p *Property) AddMilestone(unitID string, draft MilestoneDraft) (*Phase, *Unit, error) {
	if strings.TrimSpace(draft.Label) == "" {
		return nil, nil, ErrMilestoneLabel
	}
	phase, unit, err := p.FindUnit(unitID)
	if err != nil {
		return nil, nil, err
	}
	if err := unit.AddMilestone(draft); err != nil {
		return nil, nil, err
	}
	return phase, unit, nil
}

// UpdateMilestone applies a partial update to the milestone with the given label
func (p *Property) UpdateMilestone(unitID, label string, patch MilestonePatch) (*Phase, *Unit, error) {
	phase, unit, err := p.FindUnit(unitID)
	if err != nil {
		return nil, nil, err
	}
	if err := unit.UpdateMilestone(label, patch); err != nil {
		return nil, nil, err
	}
	return phase, unit, nil
}

// UnitCount returns the number of units across all phases
func (p *Property) UnitCount() int {
	n := 0
	for _, ph := range p.Phases {
		n += len(ph.Units)
	}
	return n
}

// Clone returns a deep copy that shares no mutable state with p
func (p *Property) Clone() *Property {
	if p == nil {
		return nil
	}
	c := *p
	c.Phases = make([]*Phase, 0, len(p.Phases))
	for _, ph := range p.Phases {
		c.Phases = append(c.Phases, ph.clone())
	}
	return &c
}

// Normalize fills nil collections so the aggregate always serialises with
// empty arrays rather than null
func (p *Property) Normalize() {
	if p.Phases == nil {
		p.Phases = []*Phase{}
	}
	for _, ph := range p.Phases {
		if ph.Units == nil {
			ph.Units = []*Unit{}
		}
		for _, u := range ph.Units {
			if u.Milestones == nil {
				u.Milestones = []Milestone{}
			}
		}
	}
}

func (p *Property) resolvePhase(name string) (*Phase, error) {
	if !p.UsesPhases {
		return p.defaultPhase(), nil
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrUnitPhaseRequired
	}
	phase, _ := p.matchOrCreatePhase(name)
	return phase, nil
}

func (p *Property) defaultPhase() *Phase {
	if len(p.Phases) == 0 {
		p.Phases = append(p.Phases, newPhase(DefaultPhaseName))
	}
	return p.Phases[0]
}

func (p *Property) matchOrCreatePhase(name string) (*Phase, bool) {
	index := NewNameIndex(p.Phases, func(ph *Phase) string { return ph.Name })
	if i, ok := index.Lookup(name); ok {
		return p.Phases[i], false
	}
	phase := newPhase(name)
	p.Phases = append(p.Phases, phase)
	return phase, true
}

func invalidTypeError() error {
	names := make([]string, len(Types))
	for i, t := range Types {
		names[i] = string(t)
	}
	return shared.NewValidationError(fmt.Sprintf("Invalid property type. Valid options: %s", strings.Join(names, ", ")))
}
