package employee

import (
	"context"

	"github.com/barberdesk/salon-backend-go/internal/domain/user"
)

type EmployeeService interface {
	Create(ctx context.Context, principal user.Principal, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetByID(ctx context.Context, principal user.Principal, id string) (EmployeeResponse, error)
	List(ctx context.Context, principal user.Principal) ([]EmployeeResponse, error)
	Update(ctx context.Context, principal user.Principal, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, principal user.Principal, id string) error
}
