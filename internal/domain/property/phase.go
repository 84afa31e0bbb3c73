package property

// Phase is a named group of units inside a property, such as a tower or a
// construction stage
type Phase struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Units []*Unit `json:"units"`
}

func newPhase(name string) *Phase {
	return &Phase{
		ID:    NewID("phase"),
		Name:  name,
		Units: []*Unit{},
	}
}

func (ph *Phase) unit(unitID string) *Unit {
	for _, u := range ph.Units {
		if u.ID == unitID {
			return u
		}
	}
	return nil
}

func (ph *Phase) clone() *Phase {
	c := *ph
	c.Units = make([]*Unit, 0, len(ph.Units))
	for _, u := range ph.Units {
		c.Units = append(c.Units, u.Clone())
	}
	return &c
}
