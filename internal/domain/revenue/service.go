package revenue

import (
	"context"

	"github.com/barberdesk/salon-backend-go/internal/domain/user"
)

type RevenueService interface {
	// SelectPackage records a sale of the given package by the acting
	// employee, dated now.
	SelectPackage(ctx context.Context, principal user.Principal, req SelectPackageRequest) (SaleResponse, error)
	// ListMine returns the acting employee's revenues, most recent first.
	ListMine(ctx context.Context, principal user.Principal, limit int) ([]RevenueResponse, error)
}
