package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Salon owner - manages employees, packages, charges
	RoleEmployee Role = "employee" // Regular employee - records revenue, tracks commission
)

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	EmployeeID   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin checks if user is a salon admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
