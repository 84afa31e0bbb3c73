package models

import (
	"github.com/attcrm/backend/internal/domain/property"
)

// PropertyModel is the row of a property aggregate. Phases, units and their
// embedded values live in a single JSON document because they have no
// identity outside the aggregate and are always loaded together.
type PropertyModel struct {
	BaseModel
	Name       string            `gorm:"type:varchar(200);not null"`
	Location   string            `gorm:"type:varchar(200);not null"`
	Type       string            `gorm:"type:varchar(32);not null"`
	UsesPhases bool              `gorm:"not null"`
	Phases     []*property.Phase `gorm:"type:text;serializer:json;not null"`
	Version    int               `gorm:"not null;default:1"`
}

// TableName returns the table name for GORM
func (PropertyModel) TableName() string {
	return "properties"
}

// ToDomain converts the row to a Property aggregate
func (m *PropertyModel) ToDomain() *property.Property {
	p := &property.Property{
		ID:         m.ID,
		Name:       m.Name,
		Location:   m.Location,
		Type:       property.Type(m.Type),
		UsesPhases: m.UsesPhases,
		Phases:     m.Phases,
	}
	p.Normalize()
	return p
}

// FromDomain copies the aggregate into the row, keeping bookkeeping columns
func (m *PropertyModel) FromDomain(p *property.Property) {
	m.ID = p.ID
	m.Name = p.Name
	m.Location = p.Location
	m.Type = string(p.Type)
	m.UsesPhases = p.UsesPhases
	m.Phases = p.Phases
	if m.Phases == nil {
		m.Phases = []*property.Phase{}
	}
}

// PropertyModelFromDomain creates a new row from the aggregate
func PropertyModelFromDomain(p *property.Property) *PropertyModel {
	m := &PropertyModel{}
	m.FromDomain(p)
	return m
}

// AllModels lists every model for schema migration
func AllModels() []any {
	return []any{&PropertyModel{}}
}
