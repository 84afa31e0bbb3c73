package property

import (
	"github.com/attcrm/backend/internal/domain/shared"
	"github.com/attcrm/backend/internal/domain/shared/valueobject"
)

// Milestone is a payment or progress checkpoint of a unit, keyed by label
type Milestone struct {
	Label     string             `json:"label"`
	Completed bool               `json:"completed"`
	Amount    valueobject.Amount `json:"amount"`
}

// MilestoneDraft is the input for a new milestone
type MilestoneDraft struct {
	Label  string             `json:"label"`
	Amount valueobject.Amount `json:"amount"`
}

// MilestonePatch is a partial milestone update
type MilestonePatch struct {
	Completed shared.Optional[bool]               `json:"completed"`
	Amount    shared.Optional[valueobject.Amount] `json:"amount"`
}

func (m *Milestone) apply(patch MilestonePatch) {
	if v, ok := patch.Completed.Get(); ok {
		m.Completed = v
	}
	if v, ok := patch.Amount.Get(); ok {
		m.Amount = v
	}
}
