package persistence

import (
	"context"
	"sync"

	"github.com/attcrm/backend/internal/domain/property"
	"github.com/attcrm/backend/internal/domain/shared"
)

// MemoryPropertyRepository keeps properties in process memory, in insertion
// order. Nothing survives a restart. Callers only ever see deep copies.
type MemoryPropertyRepository struct {
	mu         sync.RWMutex
	properties []*property.Property
}

// NewMemoryPropertyRepository creates an empty in-memory repository
func NewMemoryPropertyRepository() *MemoryPropertyRepository {
	return &MemoryPropertyRepository{properties: []*property.Property{}}
}

// FindAll returns every property in insertion order
func (r *MemoryPropertyRepository) FindAll(_ context.Context) ([]*property.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*property.Property, 0, len(r.properties))
	for _, p := range r.properties {
		out = append(out, p.Clone())
	}
	return out, nil
}

// FindByID finds a property by its ID
func (r *MemoryPropertyRepository) FindByID(_ context.Context, id string) (*property.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, shared.ErrNotFound
	}
	return r.properties[i].Clone(), nil
}

// Create appends a copy of the property
func (r *MemoryPropertyRepository) Create(_ context.Context, p *property.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(p.ID) >= 0 {
		return shared.NewDomainError("ALREADY_EXISTS", "Property already exists.")
	}
	stored := p.Clone()
	stored.Normalize()
	r.properties = append(r.properties, stored)
	return nil
}

// Delete removes the property and everything it owns
func (r *MemoryPropertyRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return shared.ErrNotFound
	}
	r.properties = append(r.properties[:i], r.properties[i+1:]...)
	return nil
}

// Update runs fn on a private copy and swaps it in when fn succeeds. The
// write lock is held throughout, so updates never interleave. The committed
// value is cloned again so fn's copy stays private to the caller.
func (r *MemoryPropertyRepository) Update(ctx context.Context, id string, fn func(*property.Property) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	i := r.indexOf(id)
	if i < 0 {
		return shared.ErrNotFound
	}

	working := r.properties[i].Clone()
	if err := fn(working); err != nil {
		return err
	}
	r.properties[i] = working.Clone()
	return nil
}

// Count returns the number of stored properties
func (r *MemoryPropertyRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.properties)), nil
}

// Ping always succeeds
func (r *MemoryPropertyRepository) Ping(_ context.Context) error {
	return nil
}

func (r *MemoryPropertyRepository) indexOf(id string) int {
	for i, p := range r.properties {
		if p.ID == id {
			return i
		}
	}
	return -1
}
