package employee

import (
	"context"
	"errors"
	"fmt"

	"github.com/barberdesk/salon-backend-go/internal/domain/employee"
	"github.com/barberdesk/salon-backend-go/internal/domain/user"
	"github.com/barberdesk/salon-backend-go/internal/pkg/database"
	"github.com/barberdesk/salon-backend-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

type EmployeeServiceImpl struct {
	db           *database.DB
	employeeRepo employee.EmployeeRepository
	userRepo     user.UserRepository
}

func NewEmployeeService(
	db *database.DB,
	employeeRepo employee.EmployeeRepository,
	userRepo user.UserRepository,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		db:           db,
		employeeRepo: employeeRepo,
		userRepo:     userRepo,
	}
}

// Create implements employee.EmployeeService. It creates the employee record
// together with its login account; either both exist afterwards or neither.
func (s *EmployeeServiceImpl) Create(ctx context.Context, principal user.Principal, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if !principal.IsAdmin() {
		return employee.EmployeeResponse{}, user.ErrAdminPrivilegeRequired
	}
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if _, err := s.employeeRepo.GetByEmail(ctx, req.Email); err == nil {
		return employee.EmployeeResponse{}, employee.ErrEmailExists
	} else if !errors.Is(err, employee.ErrEmployeeNotFound) {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	employeeID, err := uuid.NewV7()
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to generate id: %w", err)
	}
	userID, err := uuid.NewV7()
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to generate id: %w", err)
	}

	adminID := principal.UserID
	newEmployee := employee.Employee{
		ID:                   employeeID.String(),
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		Email:                req.Email,
		CommissionPercentage: req.CommissionPercentage,
		CreatedBy:            &adminID,
	}

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		created, err := s.employeeRepo.Create(txCtx, newEmployee)
		if err != nil {
			return err
		}
		newEmployee = created

		employeeRef := created.ID
		_, err = s.userRepo.Create(txCtx, user.User{
			ID:           userID.String(),
			Email:        req.Email,
			PasswordHash: string(hash),
			Role:         user.RoleEmployee,
			EmployeeID:   &employeeRef,
		})
		return err
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.ToResponse(newEmployee), nil
}

// GetByID implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetByID(ctx context.Context, principal user.Principal, id string) (employee.EmployeeResponse, error) {
	found, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if !principal.OwnsEmployee(found.ID, found.CreatedBy) {
		return employee.EmployeeResponse{}, employee.ErrUnauthorized
	}

	return employee.ToResponse(found), nil
}

// List implements employee.EmployeeService. Admins see the employees they
// created plus orphaned ones; an employee sees only itself.
func (s *EmployeeServiceImpl) List(ctx context.Context, principal user.Principal) ([]employee.EmployeeResponse, error) {
	if !principal.IsAdmin() {
		if principal.EmployeeID == "" {
			return nil, employee.ErrUnauthorized
		}
		self, err := s.employeeRepo.GetByID(ctx, principal.EmployeeID)
		if err != nil {
			return nil, err
		}
		return []employee.EmployeeResponse{employee.ToResponse(self)}, nil
	}

	employees, err := s.employeeRepo.ListByScope(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, employee.ToResponse(e))
	}
	return responses, nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, principal user.Principal, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if !principal.IsAdmin() {
		return employee.EmployeeResponse{}, user.ErrAdminPrivilegeRequired
	}
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	found, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if !principal.OwnsEmployee(found.ID, found.CreatedBy) {
		return employee.EmployeeResponse{}, employee.ErrUnauthorized
	}

	if req.FirstName != nil {
		found.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		found.LastName = *req.LastName
	}
	if req.CommissionPercentage != nil {
		found.CommissionPercentage = *req.CommissionPercentage
	}

	if err := s.employeeRepo.Update(ctx, found); err != nil {
		return employee.EmployeeResponse{}, err
	}

	// Password changes go through the login account, not the employee row.
	if req.Password != nil {
		if err := s.updatePassword(ctx, found.ID, *req.Password); err != nil {
			return employee.EmployeeResponse{}, err
		}
	}

	return employee.ToResponse(found), nil
}

func (s *EmployeeServiceImpl) updatePassword(ctx context.Context, employeeID, password string) error {
	account, err := s.userRepo.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	account.PasswordHash = string(hash)

	return s.userRepo.Update(ctx, account)
}

// Delete implements employee.EmployeeService. The login account goes with
// the employee record.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, principal user.Principal, id string) error {
	if !principal.IsAdmin() {
		return user.ErrAdminPrivilegeRequired
	}

	found, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !principal.OwnsEmployee(found.ID, found.CreatedBy) {
		return employee.ErrUnauthorized
	}

	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		account, err := s.userRepo.GetByEmployeeID(txCtx, found.ID)
		if err != nil && !errors.Is(err, user.ErrUserNotFound) {
			return err
		}
		if err == nil {
			if err := s.userRepo.Delete(txCtx, account.ID); err != nil {
				return err
			}
		}

		return s.employeeRepo.Delete(txCtx, found.ID)
	})
}
