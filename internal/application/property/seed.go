package property

import (
	"context"

	"github.com/attcrm/backend/internal/domain/property"
	"github.com/attcrm/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// SeedDemoData loads the demo properties when the store is empty and returns
// how many were inserted
func (s *PropertyService) SeedDemoData(ctx context.Context) (int, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		s.logger.Debug("store not empty, skipping demo data", zap.Int64("properties", count))
		return 0, nil
	}

	demo := DemoProperties()
	for _, p := range demo {
		if err := s.repo.Create(ctx, p); err != nil {
			return 0, err
		}
	}
	s.logger.Info("demo data loaded", zap.Int("properties", len(demo)))
	return len(demo), nil
}

// DemoProperties returns a fresh copy of the demo portfolio
func DemoProperties() []*property.Property {
	return []*property.Property{
		{
			ID:         "prop-001",
			Name:       "Palm Residences",
			Type:       property.TypeSemiDetached,
			UsesPhases: true,
			Location:   "Abu Dhabi, UAE",
			Phases: []*property.Phase{
				{
					ID:   "phase-1",
					Name: "Palm North",
					Units: []*property.Unit{
						emptyUnit("unit-1a", "SD-101", property.UnitStatusAvailable, 1250000),
						{
							ID:            "unit-1b",
							UnitNumber:    "SD-115",
							Status:        property.UnitStatusSold,
							ListPrice:     amount(1395000),
							SalePrice:     amount(1375000),
							TotalReceived: amount(450000),
							Buyer: property.Buyer{
								Name:           "Layla Kader",
								PassportNumber: "A45599871",
								PurchaseDate:   "2024-05-18",
								InitialPayment: amount(150000),
								FirstPayment:   amount(200000),
								SecondPayment:  amount(100000),
								Phone:          "+971501112233",
							},
							Contract: property.Contract{Reference: "PR-SD-115", Telephone: "+97125555000"},
							Milestones: []property.Milestone{
								{Label: "Reservation", Completed: true, Amount: amount(50000)},
								{Label: "Deposit", Completed: true, Amount: amount(100000)},
								{Label: "Handover", Completed: false, Amount: amount(300000)},
							},
						},
					},
				},
				{
					ID:   "phase-2",
					Name: "Palm South",
					Units: []*property.Unit{
						{
							ID:            "unit-2a",
							UnitNumber:    "SD-220",
							Status:        property.UnitStatusUnderContract,
							ListPrice:     amount(1320000),
							SalePrice:     valueobject.NullAmount(),
							TotalReceived: amount(250000),
							Buyer: property.Buyer{
								Name:           "Aamir Rahman",
								PassportNumber: "P77892344",
								PurchaseDate:   "2024-04-02",
								InitialPayment: amount(100000),
								FirstPayment:   amount(150000),
								SecondPayment:  valueobject.NullAmount(),
								Phone:          "+971509998877",
							},
							Contract: property.Contract{Reference: "PR-SD-220", Telephone: "+97125555123"},
							Milestones: []property.Milestone{
								{Label: "Deposit", Completed: true, Amount: amount(100000)},
								{Label: "First Draw", Completed: true, Amount: amount(150000)},
							},
						},
					},
				},
			},
		},
		{
			ID:         "prop-002",
			Name:       "Azure Retreat Villas",
			Type:       property.TypeVilla,
			UsesPhases: false,
			Location:   "Dubai, UAE",
			Phases: []*property.Phase{
				{
					ID:   "phase-villas",
					Name: property.DefaultPhaseName,
					Units: []*property.Unit{
						emptyUnit("villa-5", "Villa 5", property.UnitStatusAvailable, 3850000),
						{
							ID:            "villa-7",
							UnitNumber:    "Villa 7",
							Status:        property.UnitStatusSignedContract,
							ListPrice:     amount(4120000),
							SalePrice:     amount(4075000),
							TotalReceived: amount(750000),
							Buyer: property.Buyer{
								Name:           "Farah Aziz",
								PassportNumber: "AA0993456",
								PurchaseDate:   "2024-01-12",
								InitialPayment: amount(250000),
								FirstPayment:   amount(300000),
								SecondPayment:  amount(200000),
								Phone:          "+971504561234",
							},
							Contract: property.Contract{Reference: "ARV-07", Telephone: "+97145557890"},
							Milestones: []property.Milestone{
								{Label: "Deposit", Completed: true, Amount: amount(250000)},
								{Label: "Construction", Completed: true, Amount: amount(300000)},
								{Label: "Finishing", Completed: false, Amount: amount(200000)},
							},
						},
					},
				},
			},
		},
		{
			ID:         "prop-003",
			Name:       "Harbor Heights",
			Type:       property.TypeApartment,
			UsesPhases: false,
			Location:   "Doha, Qatar",
			Phases: []*property.Phase{
				{
					ID:   "phase-harbor",
					Name: "Inventory",
					Units: []*property.Unit{
						{
							ID:            "apt-1402",
							UnitNumber:    "Apt 1402",
							Status:        property.UnitStatusDeposit,
							ListPrice:     amount(980000),
							SalePrice:     valueobject.NullAmount(),
							TotalReceived: amount(90000),
							Buyer: property.Buyer{
								Name:           "Jude Carter",
								PassportNumber: "M4456778",
								PurchaseDate:   "2024-06-05",
								InitialPayment: amount(50000),
								FirstPayment:   amount(40000),
								SecondPayment:  valueobject.NullAmount(),
								Phone:          "+97455501122",
							},
							Contract: property.Contract{Reference: "HH-A1402", Telephone: "+97433334444"},
							Milestones: []property.Milestone{
								{Label: "Deposit", Completed: true, Amount: amount(50000)},
								{Label: "Financing", Completed: false, Amount: amount(40000)},
							},
						},
						emptyUnit("apt-1708", "Apt 1708", property.UnitStatusAvailable, 1150000),
					},
				},
			},
		},
	}
}

func emptyUnit(id, number string, status property.UnitStatus, listPrice int64) *property.Unit {
	return &property.Unit{
		ID:         id,
		UnitNumber: number,
		Status:     status,
		ListPrice:  amount(listPrice),
		Milestones: []property.Milestone{},
	}
}

func amount(v int64) valueobject.Amount {
	return valueobject.NewAmountFromInt(v)
}
