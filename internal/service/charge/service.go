package charge

import (
	"context"
	"fmt"
	"time"

	"github.com/barberdesk/salon-backend-go/internal/domain/charge"
	"github.com/barberdesk/salon-backend-go/internal/domain/user"
	"github.com/barberdesk/salon-backend-go/internal/pkg/clock"
	"github.com/barberdesk/salon-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
)

type ChargeServiceImpl struct {
	chargeRepo charge.ChargeRepository
	clock      clock.Clock
}

func NewChargeService(chargeRepo charge.ChargeRepository, clk clock.Clock) charge.ChargeService {
	return &ChargeServiceImpl{
		chargeRepo: chargeRepo,
		clock:      clk,
	}
}

// Create implements charge.ChargeService.
func (s *ChargeServiceImpl) Create(ctx context.Context, principal user.Principal, req charge.CreateChargeRequest) (charge.ChargeResponse, error) {
	if !principal.IsAdmin() {
		return charge.ChargeResponse{}, user.ErrAdminPrivilegeRequired
	}
	if err := req.Validate(); err != nil {
		return charge.ChargeResponse{}, err
	}

	date := clock.StartOfDay(s.clock.Now())
	if req.Date != "" {
		parsed, _ := validator.IsValidDate(req.Date)
		date = parsed
	}

	id, err := uuid.NewV7()
	if err != nil {
		return charge.ChargeResponse{}, fmt.Errorf("failed to generate id: %w", err)
	}

	created, err := s.chargeRepo.Create(ctx, charge.Charge{
		ID:          id.String(),
		EmployeeID:  principal.UserID,
		Name:        req.Name,
		Amount:      req.Amount,
		Date:        date,
		Description: req.Description,
	})
	if err != nil {
		return charge.ChargeResponse{}, err
	}

	return charge.ToResponse(created), nil
}

// List implements charge.ChargeService.
func (s *ChargeServiceImpl) List(ctx context.Context, principal user.Principal, req charge.ListChargesRequest) ([]charge.ChargeResponse, error) {
	if !principal.IsAdmin() {
		return nil, user.ErrAdminPrivilegeRequired
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var start, end time.Time
	if req.StartDate != "" {
		start, _ = validator.IsValidDate(req.StartDate)
	}
	if req.EndDate != "" {
		// inclusive end date becomes an exclusive bound at the next midnight
		parsed, _ := validator.IsValidDate(req.EndDate)
		end = parsed.AddDate(0, 0, 1)
	}

	charges, err := s.chargeRepo.ListByScope(ctx, principal.UserID, start, end)
	if err != nil {
		return nil, err
	}

	responses := make([]charge.ChargeResponse, 0, len(charges))
	for _, c := range charges {
		responses = append(responses, charge.ToResponse(c))
	}
	return responses, nil
}

// Delete implements charge.ChargeService.
func (s *ChargeServiceImpl) Delete(ctx context.Context, principal user.Principal, id string) error {
	if !principal.IsAdmin() {
		return user.ErrAdminPrivilegeRequired
	}

	found, err := s.chargeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if found.EmployeeID != principal.UserID {
		return charge.ErrUnauthorized
	}

	return s.chargeRepo.Delete(ctx, id)
}
