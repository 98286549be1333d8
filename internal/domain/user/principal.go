package user

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
)

// Principal is the acting identity extracted from the access token. It carries
// the role and the ownership scope used to authorize reads and mutations:
// an admin owns the employees it created, an employee owns only itself.
type Principal struct {
	UserID     string
	Role       Role
	EmployeeID string // set for employee principals, empty for admins
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// OwnsEmployee reports whether the principal may act on records belonging to
// the given employee. createdBy is the employee's creating admin; a nil
// createdBy marks an orphaned employee visible to every admin.
func (p Principal) OwnsEmployee(employeeID string, createdBy *string) bool {
	if p.IsAdmin() {
		return createdBy == nil || *createdBy == p.UserID
	}
	return p.EmployeeID == employeeID
}

// PrincipalFromContext extracts the Principal from the verified JWT claims.
func PrincipalFromContext(ctx context.Context) (Principal, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Principal{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Principal{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	roleStr, ok := claims["role"].(string)
	if !ok || roleStr == "" {
		return Principal{}, fmt.Errorf("role claim is missing or invalid")
	}

	p := Principal{UserID: userID, Role: Role(roleStr)}
	if employeeID, ok := claims["employee_id"].(string); ok {
		p.EmployeeID = employeeID
	}

	return p, nil
}
