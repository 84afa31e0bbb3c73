package persistence

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/attcrm/backend/internal/domain/property"
	"github.com/attcrm/backend/internal/domain/shared"
	"github.com/attcrm/backend/internal/domain/shared/valueobject"
	"github.com/attcrm/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteRepo(t *testing.T) *GormPropertyRepository {
	t.Helper()

	db, err := NewDatabase(config.StoreSQLite, &config.DatabaseConfig{SQLitePath: ":memory:"}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate(context.Background()))

	return NewGormPropertyRepository(db.DB)
}

func repositories(t *testing.T) map[string]property.PropertyRepository {
	return map[string]property.PropertyRepository{
		"memory": NewMemoryPropertyRepository(),
		"sqlite": newSQLiteRepo(t),
	}
}

func mustProperty(t *testing.T, name string, usesPhases bool) *property.Property {
	t.Helper()
	p, err := property.NewProperty(name, "Limassol", "apartment", usesPhases)
	require.NoError(t, err)
	return p
}

func TestPropertyRepository_CreateAndFind(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			first := mustProperty(t, "Harbour View", false)
			second := mustProperty(t, "Olive Grove", true)
			require.NoError(t, repo.Create(ctx, first))
			require.NoError(t, repo.Create(ctx, second))

			all, err := repo.FindAll(ctx)
			require.NoError(t, err)
			require.Len(t, all, 2)
			assert.Equal(t, first.ID, all[0].ID)
			assert.Equal(t, second.ID, all[1].ID)

			got, err := repo.FindByID(ctx, first.ID)
			require.NoError(t, err)
			assert.Equal(t, "Harbour View", got.Name)
			assert.Equal(t, property.TypeApartment, got.Type)
			require.Len(t, got.Phases, 1)
			assert.Equal(t, property.DefaultPhaseName, got.Phases[0].Name)
			assert.NotNil(t, got.Phases[0].Units)

			phased, err := repo.FindByID(ctx, second.ID)
			require.NoError(t, err)
			assert.True(t, phased.UsesPhases)
			assert.NotNil(t, phased.Phases)

			count, err := repo.Count(ctx)
			require.NoError(t, err)
			assert.Equal(t, int64(2), count)
			assert.NoError(t, repo.Ping(ctx))
		})
	}
}

func TestPropertyRepository_NotFound(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := repo.FindByID(ctx, "prop-missing")
			assert.ErrorIs(t, err, shared.ErrNotFound)

			err = repo.Delete(ctx, "prop-missing")
			assert.ErrorIs(t, err, shared.ErrNotFound)

			called := false
			err = repo.Update(ctx, "prop-missing", func(*property.Property) error {
				called = true
				return nil
			})
			assert.ErrorIs(t, err, shared.ErrNotFound)
			assert.False(t, called)
		})
	}
}

func TestPropertyRepository_Update(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			p := mustProperty(t, "Harbour View", false)
			require.NoError(t, repo.Create(ctx, p))

			var unitID string
			err := repo.Update(ctx, p.ID, func(p *property.Property) error {
				_, unit, err := p.AddUnit(property.UnitDraft{
					UnitNumber: "A-101",
					Status:     "deposit",
					ListPrice:  valueobject.NewAmountFromInt(250000),
				})
				if err != nil {
					return err
				}
				unitID = unit.ID
				_, _, err = p.AddMilestone(unit.ID, property.MilestoneDraft{
					Label:  "Deposit",
					Amount: valueobject.NewAmountFromInt(10000),
				})
				return err
			})
			require.NoError(t, err)

			got, err := repo.FindByID(ctx, p.ID)
			require.NoError(t, err)
			_, unit, err := got.FindUnit(unitID)
			require.NoError(t, err)
			assert.Equal(t, "A-101", unit.UnitNumber)
			assert.Equal(t, property.UnitStatusDeposit, unit.Status)
			assert.True(t, unit.ListPrice.Equals(valueobject.NewAmountFromInt(250000)))
			assert.True(t, unit.SalePrice.IsNull())
			require.Len(t, unit.Milestones, 1)
			assert.Equal(t, "Deposit", unit.Milestones[0].Label)
			assert.True(t, unit.Milestones[0].Amount.Equals(valueobject.NewAmountFromInt(10000)))
		})
	}
}

func TestPropertyRepository_UpdateFailureLeavesStoreUnchanged(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			p := mustProperty(t, "Harbour View", false)
			require.NoError(t, repo.Create(ctx, p))

			err := repo.Update(ctx, p.ID, func(p *property.Property) error {
				p.Name = "Renamed"
				if _, _, err := p.AddUnit(property.UnitDraft{UnitNumber: "A-1", Status: "available"}); err != nil {
					return err
				}
				return property.ErrMilestoneLabel
			})
			assert.ErrorIs(t, err, property.ErrMilestoneLabel)

			got, err := repo.FindByID(ctx, p.ID)
			require.NoError(t, err)
			assert.Equal(t, "Harbour View", got.Name)
			assert.Equal(t, 0, got.UnitCount())
		})
	}
}

func TestPropertyRepository_ConcurrentUpdates(t *testing.T) {
	const workers = 20

	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			p := mustProperty(t, "Harbour View", false)
			require.NoError(t, repo.Create(ctx, p))

			var wg sync.WaitGroup
			errs := make(chan error, workers)
			for i := 0; i < workers; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					errs <- repo.Update(ctx, p.ID, func(p *property.Property) error {
						_, _, err := p.AddUnit(property.UnitDraft{
							UnitNumber: fmt.Sprintf("U-%02d", i),
							Status:     "available",
						})
						return err
					})
				}(i)
			}
			wg.Wait()
			close(errs)
			for err := range errs {
				require.NoError(t, err)
			}

			got, err := repo.FindByID(ctx, p.ID)
			require.NoError(t, err)
			assert.Equal(t, workers, got.UnitCount())
		})
	}
}

func TestPropertyRepository_Delete(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			keep := mustProperty(t, "Harbour View", false)
			drop := mustProperty(t, "Olive Grove", false)
			require.NoError(t, repo.Create(ctx, keep))
			require.NoError(t, repo.Create(ctx, drop))

			require.NoError(t, repo.Delete(ctx, drop.ID))

			_, err := repo.FindByID(ctx, drop.ID)
			assert.ErrorIs(t, err, shared.ErrNotFound)
			all, err := repo.FindAll(ctx)
			require.NoError(t, err)
			require.Len(t, all, 1)
			assert.Equal(t, keep.ID, all[0].ID)
		})
	}
}

func TestMemoryPropertyRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryPropertyRepository()
	p := mustProperty(t, "Harbour View", false)
	require.NoError(t, repo.Create(ctx, p))

	p.Name = "mutated after create"

	got, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Harbour View", got.Name)

	got.Phases[0].Name = "mutated after read"
	var escaped *property.Property
	require.NoError(t, repo.Update(ctx, p.ID, func(p *property.Property) error {
		escaped = p
		return nil
	}))
	escaped.Name = "mutated after update"

	again, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Harbour View", again.Name)
	assert.Equal(t, property.DefaultPhaseName, again.Phases[0].Name)
}

func TestMemoryPropertyRepository_CanceledContext(t *testing.T) {
	repo := NewMemoryPropertyRepository()
	p := mustProperty(t, "Harbour View", false)
	require.NoError(t, repo.Create(context.Background(), p))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.Update(ctx, p.ID, func(*property.Property) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}
