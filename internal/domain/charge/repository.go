package charge

import (
	"context"
	"time"
)

type ChargeRepository interface {
	Create(ctx context.Context, c Charge) (Charge, error)
	GetByID(ctx context.Context, id string) (Charge, error)
	// ListByScope returns charges logged by the admin or by employees in the
	// admin's scope, most recent first. Zero time bounds disable the filter.
	ListByScope(ctx context.Context, adminID string, start, end time.Time) ([]Charge, error)
	// ListByRange returns every charge inside the half-open window
	// [start, end); used by archival jobs.
	ListByRange(ctx context.Context, start, end time.Time) ([]Charge, error)
	// ListAll returns every charge; used by the prorated charge policy.
	ListAll(ctx context.Context) ([]Charge, error)
	Delete(ctx context.Context, id string) error
}
