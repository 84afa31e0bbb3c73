package property

import (
	"context"
	"errors"

	"github.com/attcrm/backend/internal/domain/property"
	"github.com/attcrm/backend/internal/domain/shared"
	"github.com/attcrm/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// PropertyService handles property, phase, unit and milestone operations.
// Every mutation runs inside a single repository update, so it either fully
// applies or leaves the store unchanged.
type PropertyService struct {
	repo   property.PropertyRepository
	logger *zap.Logger
}

// NewPropertyService creates a new PropertyService
func NewPropertyService(repo property.PropertyRepository, logger *zap.Logger) *PropertyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PropertyService{
		repo:   repo,
		logger: logger,
	}
}

// List returns every property in insertion order
func (s *PropertyService) List(ctx context.Context) ([]*property.Property, error) {
	properties, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if properties == nil {
		properties = []*property.Property{}
	}
	return properties, nil
}

// Get retrieves a property by ID
func (s *PropertyService) Get(ctx context.Context, id string) (*property.Property, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err)
	}
	return p, nil
}

// Create validates and stores a new property
func (s *PropertyService) Create(ctx context.Context, req CreatePropertyRequest) (*property.Property, error) {
	p, err := property.NewProperty(req.Name, req.Location, req.Type, req.UsesPhases)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("property created",
		zap.String("property_id", p.ID),
		zap.String("type", string(p.Type)),
		zap.Bool("uses_phases", p.UsesPhases),
	)
	return p, nil
}

// Delete removes a property with all its phases and units
func (s *PropertyService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return translateNotFound(err)
	}
	s.logger.Info("property deleted", zap.String("property_id", id))
	return nil
}

// CreatePhase returns the phase matching the name, creating it if needed
func (s *PropertyService) CreatePhase(ctx context.Context, id string, req CreatePhaseRequest) (*PhaseResult, error) {
	var result *PhaseResult
	err := s.update(ctx, "create_phase", id, func(p *property.Property) error {
		phase, created, err := p.AddPhase(req.Name)
		if err != nil {
			return err
		}
		if created {
			s.logger.Info("phase created",
				zap.String("property_id", p.ID),
				zap.String("phase_id", phase.ID),
			)
		}
		result = &PhaseResult{Phase: phase}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AddUnit creates a unit in the phase resolved from the request
func (s *PropertyService) AddUnit(ctx context.Context, id string, req AddUnitRequest) (*AddUnitResult, error) {
	var result *AddUnitResult
	err := s.update(ctx, "add_unit", id, func(p *property.Property) error {
		phase, unit, err := p.AddUnit(req.toDraft())
		if err != nil {
			return err
		}
		result = &AddUnitResult{PropertyID: p.ID, Phase: phase, Unit: unit}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("unit added",
		zap.String("property_id", id),
		zap.String("phase_id", result.Phase.ID),
		zap.String("unit_id", result.Unit.ID),
	)
	return result, nil
}

// GetUnit returns a unit with a summary of its property and phase
func (s *PropertyService) GetUnit(ctx context.Context, id, unitID string) (*UnitContextResult, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, property.ErrUnitNotFound
		}
		return nil, err
	}
	phase, unit, err := p.FindUnit(unitID)
	if err != nil {
		return nil, err
	}
	return &UnitContextResult{
		Property: PropertySummary{ID: p.ID, Name: p.Name, Type: p.Type},
		Phase:    PhaseSummary{ID: phase.ID, Name: phase.Name},
		Unit:     unit,
	}, nil
}

// UpdateUnit applies a partial update to a unit
func (s *PropertyService) UpdateUnit(ctx context.Context, id, unitID string, req UpdateUnitRequest) (*UnitResult, error) {
	result, err := s.mutateUnit(ctx, "update_unit", id, func(p *property.Property) (*property.Phase, *property.Unit, error) {
		return p.UpdateUnit(unitID, req.toPatch())
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("unit updated", zap.String("property_id", id), zap.String("unit_id", unitID))
	return result, nil
}

// DeleteUnit removes a unit and returns it with the id of its former phase
func (s *PropertyService) DeleteUnit(ctx context.Context, id, unitID string) (*UnitResult, error) {
	result, err := s.mutateUnit(ctx, "delete_unit", id, func(p *property.Property) (*property.Phase, *property.Unit, error) {
		return p.RemoveUnit(unitID)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("unit deleted", zap.String("property_id", id), zap.String("unit_id", unitID))
	return result, nil
}

// AddMilestone appends a milestone to a unit
func (s *PropertyService) AddMilestone(ctx context.Context, id, unitID string, req AddMilestoneRequest) (*UnitResult, error) {
	result, err := s.mutateUnit(ctx, "add_milestone", id, func(p *property.Property) (*property.Phase, *property.Unit, error) {
		return p.AddMilestone(unitID, property.MilestoneDraft{Label: req.Label, Amount: req.Amount})
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("milestone added",
		zap.String("property_id", id),
		zap.String("unit_id", unitID),
		zap.String("label", req.Label),
	)
	return result, nil
}

// UpdateMilestone updates the completion flag or amount of a milestone
func (s *PropertyService) UpdateMilestone(ctx context.Context, id, unitID string, req UpdateMilestoneRequest) (*UnitResult, error) {
	patch := property.MilestonePatch{Completed: req.Completed, Amount: req.Amount}
	result, err := s.mutateUnit(ctx, "update_milestone", id, func(p *property.Property) (*property.Phase, *property.Unit, error) {
		return p.UpdateMilestone(unitID, req.Label, patch)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("milestone updated",
		zap.String("property_id", id),
		zap.String("unit_id", unitID),
		zap.String("label", req.Label),
	)
	return result, nil
}

// Ping checks the backing store
func (s *PropertyService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func (s *PropertyService) mutateUnit(
	ctx context.Context,
	method, id string,
	fn func(*property.Property) (*property.Phase, *property.Unit, error),
) (*UnitResult, error) {
	var result *UnitResult
	err := s.update(ctx, method, id, func(p *property.Property) error {
		phase, unit, err := fn(p)
		if err != nil {
			return err
		}
		result = &UnitResult{PropertyID: p.ID, PhaseID: phase.ID, Unit: unit}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// update runs fn as one repository update inside a span named property.{method}
func (s *PropertyService) update(ctx context.Context, method, id string, fn func(*property.Property) error) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "property", method, telemetry.AttrPropertyID, id)
	defer span.End()

	err := s.repo.Update(ctx, id, fn)
	if err == nil {
		return nil
	}
	var domainErr *shared.DomainError
	if !errors.As(err, &domainErr) {
		telemetry.RecordError(span, err)
		s.logger.Error("property update failed", zap.String("property_id", id), zap.Error(err))
	}
	return translateNotFound(err)
}

func translateNotFound(err error) error {
	if errors.Is(err, shared.ErrNotFound) {
		return property.ErrPropertyNotFound
	}
	return err
}
