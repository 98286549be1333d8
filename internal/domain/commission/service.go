package commission

import (
	"context"

	"github.com/barberdesk/salon-backend-go/internal/domain/user"
)

type CommissionService interface {
	// Generate recomputes weekly commission rows for every employee over the
	// requested number of past weeks. Validated rows are left untouched
	// unless force is set and the deployment allows overwriting them.
	Generate(ctx context.Context, req GenerateRequest) (GenerateSummary, error)
	// ListMine returns the calling employee's commission history, most
	// recent week first, duplicates collapsed.
	ListMine(ctx context.Context, principal user.Principal, limit int) ([]CommissionResponse, error)
	// Validate marks the row as checked by its employee. Admins may validate
	// rows of employees in their scope.
	Validate(ctx context.Context, principal user.Principal, id string) (CommissionResponse, error)
	// Pay marks a validated row as paid out.
	Pay(ctx context.Context, principal user.Principal, id string) (CommissionResponse, error)
}
