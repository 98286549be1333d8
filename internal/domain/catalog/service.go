package catalog

import (
	"context"

	"github.com/barberdesk/salon-backend-go/internal/domain/user"
)

type PackageService interface {
	Create(ctx context.Context, principal user.Principal, req CreatePackageRequest) (PackageResponse, error)
	// List returns every package; for employee principals each entry carries
	// the commission the employee would earn on a sale.
	List(ctx context.Context, principal user.Principal) ([]PackageResponse, error)
	Update(ctx context.Context, principal user.Principal, req UpdatePackageRequest) (PackageResponse, error)
	Delete(ctx context.Context, principal user.Principal, id string) error
}
