package property

import (
	"encoding/json"
	"testing"

	"github.com/attcrm/backend/internal/domain/shared"
	"github.com/attcrm/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPhasedProperty(t *testing.T) *Property {
	t.Helper()
	p, err := NewProperty("Palm Residences", "Abu Dhabi", "semi_detached", true)
	require.NoError(t, err)
	return p
}

func addUnit(t *testing.T, p *Property, phaseName, number string) *Unit {
	t.Helper()
	_, u, err := p.AddUnit(UnitDraft{UnitNumber: number, Status: "available", PhaseName: phaseName})
	require.NoError(t, err)
	return u
}

func TestNewProperty(t *testing.T) {
	t.Run("creates phased property without phases", func(t *testing.T) {
		p := newPhasedProperty(t)
		assert.Regexp(t, `^prop-[0-9a-f]{8}$`, p.ID)
		assert.Equal(t, "Palm Residences", p.Name)
		assert.Equal(t, TypeSemiDetached, p.Type)
		assert.True(t, p.UsesPhases)
		assert.NotNil(t, p.Phases)
		assert.Empty(t, p.Phases)
	})

	t.Run("villa never uses phases", func(t *testing.T) {
		p, err := NewProperty("X", "Y", "villa", true)
		require.NoError(t, err)
		assert.False(t, p.UsesPhases)
		require.Len(t, p.Phases, 1)
		assert.Equal(t, DefaultPhaseName, p.Phases[0].Name)
	})

	t.Run("property without phases gets default phase", func(t *testing.T) {
		p, err := NewProperty("Harbor Heights", "Doha", "apartment", false)
		require.NoError(t, err)
		require.Len(t, p.Phases, 1)
		assert.Regexp(t, `^phase-[0-9a-f]{8}$`, p.Phases[0].ID)
	})

	t.Run("trims input and normalises type", func(t *testing.T) {
		p, err := NewProperty("  Azure  ", " Dubai ", " Apartment ", false)
		require.NoError(t, err)
		assert.Equal(t, "Azure", p.Name)
		assert.Equal(t, "Dubai", p.Location)
		assert.Equal(t, TypeApartment, p.Type)
	})

	t.Run("requires name, location and type", func(t *testing.T) {
		for _, in := range [][3]string{{"", "Y", "villa"}, {"X", "  ", "villa"}, {"X", "Y", ""}} {
			_, err := NewProperty(in[0], in[1], in[2], false)
			assert.ErrorIs(t, err, ErrPropertyFields)
			assert.True(t, shared.IsValidationError(err))
		}
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := NewProperty("X", "Y", "castle", false)
		require.Error(t, err)
		assert.True(t, shared.IsValidationError(err))
		assert.Equal(t, "Invalid property type. Valid options: semi_detached, villa, apartment", err.Error())
	})
}

func TestProperty_AddPhase(t *testing.T) {
	t.Run("creates new phase", func(t *testing.T) {
		p := newPhasedProperty(t)
		phase, created, err := p.AddPhase(" Palm North ")
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, "Palm North", phase.Name)
		assert.Len(t, p.Phases, 1)
	})

	t.Run("returns existing phase ignoring case", func(t *testing.T) {
		p := newPhasedProperty(t)
		first, _, err := p.AddPhase("Palm North")
		require.NoError(t, err)

		again, created, err := p.AddPhase("PALM north")
		require.NoError(t, err)
		assert.False(t, created)
		assert.Same(t, first, again)
		assert.Len(t, p.Phases, 1)
	})

	t.Run("requires name", func(t *testing.T) {
		p := newPhasedProperty(t)
		_, _, err := p.AddPhase("   ")
		assert.ErrorIs(t, err, ErrPhaseNameRequired)
	})

	t.Run("rejects property without phases", func(t *testing.T) {
		p, err := NewProperty("Villas", "Dubai", "villa", false)
		require.NoError(t, err)
		_, _, err = p.AddPhase("Tower A")
		assert.ErrorIs(t, err, ErrPhasesDisabled)
		assert.Len(t, p.Phases, 1)
	})
}

func TestProperty_AddUnit(t *testing.T) {
	t.Run("places unit in named phase, creating it", func(t *testing.T) {
		p := newPhasedProperty(t)
		phase, unit, err := p.AddUnit(UnitDraft{
			UnitNumber: " SD-101 ",
			Status:     "available",
			PhaseName:  "Palm North",
			ListPrice:  valueobject.NewAmountFromInt(1250000),
			Buyer:      &BuyerPatch{Name: shared.Some(" Layla ")},
		})
		require.NoError(t, err)
		assert.Equal(t, "Palm North", phase.Name)
		assert.Regexp(t, `^unit-[0-9a-f]{8}$`, unit.ID)
		assert.Equal(t, "SD-101", unit.UnitNumber)
		assert.Equal(t, UnitStatusAvailable, unit.Status)
		assert.True(t, unit.ListPrice.Equals(valueobject.NewAmountFromInt(1250000)))
		assert.True(t, unit.SalePrice.IsNull())
		assert.Equal(t, "Layla", unit.Buyer.Name)
		assert.Equal(t, "", unit.Contract.Reference)
		assert.NotNil(t, unit.Milestones)
		assert.Empty(t, unit.Milestones)
	})

	t.Run("reuses phase ignoring case", func(t *testing.T) {
		p := newPhasedProperty(t)
		addUnit(t, p, "Palm North", "A")
		addUnit(t, p, "palm NORTH", "B")
		require.Len(t, p.Phases, 1)
		assert.Len(t, p.Phases[0].Units, 2)
	})

	t.Run("property without phases uses default phase", func(t *testing.T) {
		p, err := NewProperty("Villas", "Dubai", "villa", false)
		require.NoError(t, err)
		phase, _, err := p.AddUnit(UnitDraft{UnitNumber: "V-1", Status: "sold", PhaseName: "ignored"})
		require.NoError(t, err)
		assert.Same(t, p.Phases[0], phase)
		assert.Len(t, p.Phases, 1)
	})

	t.Run("requires phase name when property uses phases", func(t *testing.T) {
		p := newPhasedProperty(t)
		_, _, err := p.AddUnit(UnitDraft{UnitNumber: "A", Status: "available"})
		assert.ErrorIs(t, err, ErrUnitPhaseRequired)
		assert.Empty(t, p.Phases)
	})

	t.Run("validation failures leave phase unchanged", func(t *testing.T) {
		p := newPhasedProperty(t)
		addUnit(t, p, "Palm North", "A")

		tests := []struct {
			name  string
			draft UnitDraft
			err   error
		}{
			{"missing number", UnitDraft{Status: "available", PhaseName: "Palm North"}, ErrUnitNumberRequired},
			{"missing status", UnitDraft{UnitNumber: "B", PhaseName: "Palm North"}, ErrUnitStatusRequired},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, _, err := p.AddUnit(tt.draft)
				assert.ErrorIs(t, err, tt.err)
				assert.Len(t, p.Phases[0].Units, 1)
			})
		}
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		p := newPhasedProperty(t)
		_, _, err := p.AddUnit(UnitDraft{UnitNumber: "A", Status: "unknown_status", PhaseName: "P1"})
		require.Error(t, err)
		assert.True(t, shared.IsValidationError(err))
		assert.Contains(t, err.Error(), "Invalid unit status. Valid options: available, deposit")
		assert.Empty(t, p.Phases)
	})
}

func TestProperty_UpdateUnit(t *testing.T) {
	newSoldCandidate := func(t *testing.T) (*Property, *Unit) {
		p := newPhasedProperty(t)
		_, u, err := p.AddUnit(UnitDraft{
			UnitNumber: "SD-101",
			Status:     "available",
			PhaseName:  "Palm North",
			ListPrice:  valueobject.NewAmountFromInt(1250000),
			Buyer:      &BuyerPatch{Name: shared.Some("Layla"), Phone: shared.Some("+971")},
			Contract:   &ContractPatch{Reference: shared.Some("PR-SD-101")},
		})
		require.NoError(t, err)
		return p, u
	}

	t.Run("status only leaves everything else", func(t *testing.T) {
		p, u := newSoldCandidate(t)
		before := *u.Clone()

		_, updated, err := p.UpdateUnit(u.ID, UnitPatch{Status: shared.Some(StatusInput("sold"))})
		require.NoError(t, err)
		assert.Equal(t, UnitStatusSold, updated.Status)
		assert.Equal(t, before.UnitNumber, updated.UnitNumber)
		assert.True(t, before.ListPrice.Equals(updated.ListPrice))
		assert.Equal(t, before.Buyer, updated.Buyer)
		assert.Equal(t, before.Contract, updated.Contract)
	})

	t.Run("invalid status is ignored", func(t *testing.T) {
		p, u := newSoldCandidate(t)
		_, updated, err := p.UpdateUnit(u.ID, UnitPatch{Status: shared.Some(StatusInput("bogus")), SalePrice: shared.Some(valueobject.NewAmountFromInt(5))})
		require.NoError(t, err)
		assert.Equal(t, UnitStatusAvailable, updated.Status)
		assert.True(t, updated.SalePrice.Equals(valueobject.NewAmountFromInt(5)))
	})

	t.Run("non-string status from JSON is ignored", func(t *testing.T) {
		tests := []string{`5`, `true`, `{"v":"sold"}`, `["sold"]`}
		for _, raw := range tests {
			p, u := newSoldCandidate(t)
			var patch UnitPatch
			require.NoError(t, json.Unmarshal([]byte(`{"status":`+raw+`,"salePrice":"100"}`), &patch), raw)
			assert.True(t, patch.Status.Set, raw)

			_, updated, err := p.UpdateUnit(u.ID, patch)
			require.NoError(t, err, raw)
			assert.Equal(t, UnitStatusAvailable, updated.Status, raw)
			assert.True(t, updated.SalePrice.Equals(valueobject.NewAmountFromInt(100)), raw)
		}
	})

	t.Run("label is an alias of unit number", func(t *testing.T) {
		p, u := newSoldCandidate(t)
		_, updated, err := p.UpdateUnit(u.ID, UnitPatch{Label: shared.Some("SD-102")})
		require.NoError(t, err)
		assert.Equal(t, "SD-102", updated.UnitNumber)

		_, updated, err = p.UpdateUnit(u.ID, UnitPatch{UnitNumber: shared.Some("SD-103"), Label: shared.Some("SD-999")})
		require.NoError(t, err)
		assert.Equal(t, "SD-103", updated.UnitNumber)
	})

	t.Run("blank unit number is rejected atomically", func(t *testing.T) {
		p, u := newSoldCandidate(t)
		_, _, err := p.UpdateUnit(u.ID, UnitPatch{UnitNumber: shared.Some(" "), Status: shared.Some(StatusInput("sold"))})
		assert.ErrorIs(t, err, ErrUnitNumberRequired)
		assert.Equal(t, "SD-101", u.UnitNumber)
		assert.Equal(t, UnitStatusAvailable, u.Status)
	})

	t.Run("explicit null price clears it", func(t *testing.T) {
		p, u := newSoldCandidate(t)
		var patch UnitPatch
		require.NoError(t, json.Unmarshal([]byte(`{"listPrice":null}`), &patch))
		_, updated, err := p.UpdateUnit(u.ID, patch)
		require.NoError(t, err)
		assert.True(t, updated.ListPrice.IsNull())
	})

	t.Run("buyer merges field by field", func(t *testing.T) {
		p, u := newSoldCandidate(t)
		var patch UnitPatch
		require.NoError(t, json.Unmarshal([]byte(`{"buyer":{"passportNumber":" A455 ","initialPayment":"150000"}}`), &patch))
		_, updated, err := p.UpdateUnit(u.ID, patch)
		require.NoError(t, err)
		assert.Equal(t, "Layla", updated.Buyer.Name)
		assert.Equal(t, "+971", updated.Buyer.Phone)
		assert.Equal(t, "A455", updated.Buyer.PassportNumber)
		assert.True(t, updated.Buyer.InitialPayment.Equals(valueobject.NewAmountFromInt(150000)))
		assert.Equal(t, "PR-SD-101", updated.Contract.Reference)
	})

	t.Run("unknown unit", func(t *testing.T) {
		p, _ := newSoldCandidate(t)
		_, _, err := p.UpdateUnit("unit-missing", UnitPatch{Status: shared.Some(StatusInput("sold"))})
		assert.ErrorIs(t, err, ErrUnitNotFound)
		assert.True(t, shared.IsNotFound(err))
	})
}

func TestProperty_RemoveUnit(t *testing.T) {
	p := newPhasedProperty(t)
	addUnit(t, p, "North", "A")
	b := addUnit(t, p, "South", "B")

	phase, removed, err := p.RemoveUnit(b.ID)
	require.NoError(t, err)
	assert.Equal(t, "South", phase.Name)
	assert.Equal(t, b.ID, removed.ID)
	assert.Equal(t, 1, p.UnitCount())

	_, _, err = p.FindUnit(b.ID)
	assert.ErrorIs(t, err, ErrUnitNotFound)

	_, _, err = p.RemoveUnit(b.ID)
	assert.ErrorIs(t, err, ErrUnitNotFound)
}

func TestProperty_Milestones(t *testing.T) {
	t.Run("adds incomplete milestone", func(t *testing.T) {
		p := newPhasedProperty(t)
		u := addUnit(t, p, "North", "A")

		_, updated, err := p.AddMilestone(u.ID, MilestoneDraft{Label: " Deposit ", Amount: valueobject.NewAmountFromInt(100000)})
		require.NoError(t, err)
		require.Len(t, updated.Milestones, 1)
		assert.Equal(t, "Deposit", updated.Milestones[0].Label)
		assert.False(t, updated.Milestones[0].Completed)
	})

	t.Run("duplicate label ignoring case fails", func(t *testing.T) {
		p := newPhasedProperty(t)
		u := addUnit(t, p, "North", "A")
		_, _, err := p.AddMilestone(u.ID, MilestoneDraft{Label: "Deposit"})
		require.NoError(t, err)

		_, _, err = p.AddMilestone(u.ID, MilestoneDraft{Label: "DEPOSIT"})
		assert.ErrorIs(t, err, ErrMilestoneExists)
		assert.Len(t, u.Milestones, 1)
	})

	t.Run("blank label fails before unit lookup", func(t *testing.T) {
		p := newPhasedProperty(t)
		_, _, err := p.AddMilestone("unit-missing", MilestoneDraft{Label: " "})
		assert.ErrorIs(t, err, ErrMilestoneLabel)
	})

	t.Run("update changes only supplied fields", func(t *testing.T) {
		p := newPhasedProperty(t)
		u := addUnit(t, p, "North", "A")
		_, _, err := p.AddMilestone(u.ID, MilestoneDraft{Label: "Deposit", Amount: valueobject.NewAmountFromInt(100000)})
		require.NoError(t, err)

		_, updated, err := p.UpdateMilestone(u.ID, "deposit", MilestonePatch{Completed: shared.Some(true)})
		require.NoError(t, err)
		m, ok := updated.FindMilestone("Deposit")
		require.True(t, ok)
		assert.True(t, m.Completed)
		assert.True(t, m.Amount.Equals(valueobject.NewAmountFromInt(100000)))
	})

	t.Run("update unknown milestone", func(t *testing.T) {
		p := newPhasedProperty(t)
		u := addUnit(t, p, "North", "A")
		_, _, err := p.UpdateMilestone(u.ID, "Handover", MilestonePatch{Completed: shared.Some(true)})
		assert.ErrorIs(t, err, ErrMilestoneNotFound)
	})

	t.Run("update with blank label is not found", func(t *testing.T) {
		p := newPhasedProperty(t)
		u := addUnit(t, p, "North", "A")
		_, _, err := p.AddMilestone(u.ID, MilestoneDraft{Label: "Deposit"})
		require.NoError(t, err)

		for _, label := range []string{"", "  "} {
			_, _, err := p.UpdateMilestone(u.ID, label, MilestonePatch{Completed: shared.Some(true)})
			assert.ErrorIs(t, err, ErrMilestoneNotFound)
		}
		assert.False(t, u.Milestones[0].Completed)
	})

	t.Run("update unknown unit", func(t *testing.T) {
		p := newPhasedProperty(t)
		_, _, err := p.UpdateMilestone("unit-missing", "Deposit", MilestonePatch{})
		assert.ErrorIs(t, err, ErrUnitNotFound)
	})
}

func TestProperty_Clone(t *testing.T) {
	p := newPhasedProperty(t)
	u := addUnit(t, p, "North", "A")
	_, _, err := p.UpdateUnit(u.ID, UnitPatch{Buyer: shared.Some(&BuyerPatch{
		PassportFile: shared.Some(&AttachmentInput{Name: "passport.pdf", Data: "aGVsbG8="}),
	})})
	require.NoError(t, err)

	c := p.Clone()
	c.Phases[0].Units[0].Buyer.PassportFile.Name = "changed.pdf"
	c.Phases[0].Units[0].UnitNumber = "Z"
	c.Phases[0].Name = "Changed"

	assert.Equal(t, "passport.pdf", u.Buyer.PassportFile.Name)
	assert.Equal(t, "A", u.UnitNumber)
	assert.Equal(t, "North", p.Phases[0].Name)
}

func TestProperty_JSONShape(t *testing.T) {
	p, err := NewProperty("X", "Y", "villa", true)
	require.NoError(t, err)
	data, err := json.Marshal(p)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, false, decoded["usesPhases"])
	phases := decoded["phases"].([]any)
	require.Len(t, phases, 1)
	assert.Equal(t, []any{}, phases[0].(map[string]any)["units"])
}
