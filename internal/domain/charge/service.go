package charge

import (
	"context"

	"github.com/barberdesk/salon-backend-go/internal/domain/user"
)

type ChargeService interface {
	Create(ctx context.Context, principal user.Principal, req CreateChargeRequest) (ChargeResponse, error)
	List(ctx context.Context, principal user.Principal, req ListChargesRequest) ([]ChargeResponse, error)
	Delete(ctx context.Context, principal user.Principal, id string) error
}
