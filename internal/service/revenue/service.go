package revenue

import (
	"context"
	"fmt"

	"github.com/barberdesk/salon-backend-go/internal/domain/catalog"
	"github.com/barberdesk/salon-backend-go/internal/domain/employee"
	"github.com/barberdesk/salon-backend-go/internal/domain/revenue"
	"github.com/barberdesk/salon-backend-go/internal/domain/user"
	"github.com/barberdesk/salon-backend-go/internal/pkg/clock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RevenueServiceImpl struct {
	revenueRepo  revenue.RevenueRepository
	packageRepo  catalog.PackageRepository
	employeeRepo employee.EmployeeRepository
	clock        clock.Clock
}

func NewRevenueService(
	revenueRepo revenue.RevenueRepository,
	packageRepo catalog.PackageRepository,
	employeeRepo employee.EmployeeRepository,
	clk clock.Clock,
) revenue.RevenueService {
	return &RevenueServiceImpl{
		revenueRepo:  revenueRepo,
		packageRepo:  packageRepo,
		employeeRepo: employeeRepo,
		clock:        clk,
	}
}

// SelectPackage implements revenue.RevenueService. The sale is priced from
// the package at the moment of sale; later package edits do not rewrite it.
func (s *RevenueServiceImpl) SelectPackage(ctx context.Context, principal user.Principal, req revenue.SelectPackageRequest) (revenue.SaleResponse, error) {
	if principal.EmployeeID == "" {
		return revenue.SaleResponse{}, revenue.ErrUnauthorized
	}
	if err := req.Validate(); err != nil {
		return revenue.SaleResponse{}, err
	}

	pkg, err := s.packageRepo.GetByID(ctx, req.PackageID)
	if err != nil {
		return revenue.SaleResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, principal.EmployeeID)
	if err != nil {
		return revenue.SaleResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return revenue.SaleResponse{}, fmt.Errorf("failed to generate id: %w", err)
	}

	packageID := pkg.ID
	created, err := s.revenueRepo.Create(ctx, revenue.Revenue{
		ID:         id.String(),
		EmployeeID: emp.ID,
		AmountHt:   pkg.PriceHt(),
		AmountTtc:  pkg.PriceTtc,
		Date:       s.clock.Now(),
		PackageID:  &packageID,
	})
	if err != nil {
		return revenue.SaleResponse{}, err
	}

	commission := pkg.PriceHt().Mul(emp.CommissionPercentage).Div(decimal.NewFromInt(100)).Round(2)

	return revenue.SaleResponse{
		PackageName: pkg.Name,
		PriceHt:     pkg.PriceHt(),
		Commission:  commission,
		Revenue:     revenue.ToResponse(created),
	}, nil
}

// ListMine implements revenue.RevenueService.
func (s *RevenueServiceImpl) ListMine(ctx context.Context, principal user.Principal, limit int) ([]revenue.RevenueResponse, error) {
	if principal.EmployeeID == "" {
		return nil, revenue.ErrUnauthorized
	}

	revenues, err := s.revenueRepo.ListByEmployee(ctx, principal.EmployeeID, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]revenue.RevenueResponse, 0, len(revenues))
	for _, r := range revenues {
		responses = append(responses, revenue.ToResponse(r))
	}
	return responses, nil
}
