package persistence

import (
	"context"
	"errors"

	"github.com/attcrm/backend/internal/domain/property"
	"github.com/attcrm/backend/internal/domain/shared"
	"github.com/attcrm/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPropertyRepository implements PropertyRepository using GORM
type GormPropertyRepository struct {
	db *gorm.DB
}

// NewGormPropertyRepository creates a new GormPropertyRepository
func NewGormPropertyRepository(db *gorm.DB) *GormPropertyRepository {
	return &GormPropertyRepository{db: db}
}

// FindAll returns every property in insertion order
func (r *GormPropertyRepository) FindAll(ctx context.Context) ([]*property.Property, error) {
	var rows []models.PropertyModel
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*property.Property, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}
	return out, nil
}

// FindByID finds a property by its ID
func (r *GormPropertyRepository) FindByID(ctx context.Context, id string) (*property.Property, error) {
	var row models.PropertyModel
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

// Create inserts a new property row
func (r *GormPropertyRepository) Create(ctx context.Context, p *property.Property) error {
	return r.db.WithContext(ctx).Create(models.PropertyModelFromDomain(p)).Error
}

// Delete removes the property row, and with it every phase and unit
func (r *GormPropertyRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.PropertyModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Update locks the row (SELECT ... FOR UPDATE; sqlite serialises writers
// instead), applies fn and writes the result in the same transaction
func (r *GormPropertyRepository) Update(ctx context.Context, id string, fn func(*property.Property) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row models.PropertyModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&row, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		p := row.ToDomain()
		if err := fn(p); err != nil {
			return err
		}

		row.FromDomain(p)
		row.Version++
		return tx.Save(&row).Error
	})
}

// Count returns the number of stored properties
func (r *GormPropertyRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.PropertyModel{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// Ping checks the connection
func (r *GormPropertyRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
