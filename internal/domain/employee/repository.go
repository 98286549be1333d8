package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, e Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByEmail(ctx context.Context, email string) (Employee, error)
	// ListByScope returns employees created by the given admin plus orphaned
	// employees (created_by IS NULL).
	ListByScope(ctx context.Context, adminID string) ([]Employee, error)
	// ListAll returns every employee; used by batch jobs.
	ListAll(ctx context.Context) ([]Employee, error)
	Update(ctx context.Context, e Employee) error
	Delete(ctx context.Context, id string) error
}
