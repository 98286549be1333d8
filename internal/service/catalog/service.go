package catalog

import (
	"context"
	"fmt"

	"github.com/barberdesk/salon-backend-go/internal/domain/catalog"
	"github.com/barberdesk/salon-backend-go/internal/domain/employee"
	"github.com/barberdesk/salon-backend-go/internal/domain/user"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PackageServiceImpl struct {
	packageRepo  catalog.PackageRepository
	employeeRepo employee.EmployeeRepository
}

func NewPackageService(
	packageRepo catalog.PackageRepository,
	employeeRepo employee.EmployeeRepository,
) catalog.PackageService {
	return &PackageServiceImpl{
		packageRepo:  packageRepo,
		employeeRepo: employeeRepo,
	}
}

// Create implements catalog.PackageService.
func (s *PackageServiceImpl) Create(ctx context.Context, principal user.Principal, req catalog.CreatePackageRequest) (catalog.PackageResponse, error) {
	if !principal.IsAdmin() {
		return catalog.PackageResponse{}, user.ErrAdminPrivilegeRequired
	}
	if err := req.Validate(); err != nil {
		return catalog.PackageResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return catalog.PackageResponse{}, fmt.Errorf("failed to generate id: %w", err)
	}

	created, err := s.packageRepo.Create(ctx, catalog.Package{
		ID:        id.String(),
		Name:      req.Name,
		PriceTtc:  req.PriceTtc,
		CreatedBy: principal.UserID,
	})
	if err != nil {
		return catalog.PackageResponse{}, err
	}

	return s.toResponse(created, decimal.Zero), nil
}

// List implements catalog.PackageService. The catalog is shared across the
// salon; employee principals additionally see what each sale would earn them.
func (s *PackageServiceImpl) List(ctx context.Context, principal user.Principal) ([]catalog.PackageResponse, error) {
	packages, err := s.packageRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	commissionPct := decimal.Zero
	if !principal.IsAdmin() && principal.EmployeeID != "" {
		emp, err := s.employeeRepo.GetByID(ctx, principal.EmployeeID)
		if err != nil {
			return nil, err
		}
		commissionPct = emp.CommissionPercentage
	}

	responses := make([]catalog.PackageResponse, 0, len(packages))
	for _, p := range packages {
		commission := p.PriceHt().Mul(commissionPct).Div(decimal.NewFromInt(100)).Round(2)
		responses = append(responses, s.toResponse(p, commission))
	}
	return responses, nil
}

// Update implements catalog.PackageService.
func (s *PackageServiceImpl) Update(ctx context.Context, principal user.Principal, req catalog.UpdatePackageRequest) (catalog.PackageResponse, error) {
	if !principal.IsAdmin() {
		return catalog.PackageResponse{}, user.ErrAdminPrivilegeRequired
	}
	if err := req.Validate(); err != nil {
		return catalog.PackageResponse{}, err
	}

	found, err := s.packageRepo.GetByID(ctx, req.ID)
	if err != nil {
		return catalog.PackageResponse{}, err
	}

	if req.Name != nil {
		found.Name = *req.Name
	}
	if req.PriceTtc != nil {
		found.PriceTtc = *req.PriceTtc
	}

	if err := s.packageRepo.Update(ctx, found); err != nil {
		return catalog.PackageResponse{}, err
	}

	return s.toResponse(found, decimal.Zero), nil
}

// Delete implements catalog.PackageService. Recorded sales keep their
// amounts; only the catalog entry disappears.
func (s *PackageServiceImpl) Delete(ctx context.Context, principal user.Principal, id string) error {
	if !principal.IsAdmin() {
		return user.ErrAdminPrivilegeRequired
	}

	if _, err := s.packageRepo.GetByID(ctx, id); err != nil {
		return err
	}

	return s.packageRepo.Delete(ctx, id)
}

func (s *PackageServiceImpl) toResponse(p catalog.Package, commission decimal.Decimal) catalog.PackageResponse {
	return catalog.PackageResponse{
		ID:         p.ID,
		Name:       p.Name,
		PriceTtc:   p.PriceTtc,
		PriceHt:    p.PriceHt(),
		Commission: commission,
	}
}
