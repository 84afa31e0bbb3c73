package property

import "context"

// PropertyRepository defines the interface for property persistence.
// Implementations hand out deep copies; callers never share state with the store.
type PropertyRepository interface {
	// FindAll returns every property in insertion order
	FindAll(ctx context.Context) ([]*Property, error)

	// FindByID returns shared.ErrNotFound when the property does not exist
	FindByID(ctx context.Context, id string) (*Property, error)

	// Create stores a new property
	Create(ctx context.Context, property *Property) error

	// Delete removes a property with all its phases and units.
	// It returns shared.ErrNotFound when the property does not exist.
	Delete(ctx context.Context, id string) error

	// Update loads the property, passes a private copy to fn and stores the
	// copy only when fn returns nil. Concurrent updates are serialised.
	Update(ctx context.Context, id string, fn func(*Property) error) error

	// Count returns the number of stored properties
	Count(ctx context.Context) (int64, error)

	// Ping checks that the backing store is reachable
	Ping(ctx context.Context) error
}
