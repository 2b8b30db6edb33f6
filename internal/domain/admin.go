package domain

import "time"

// AdminRole enumerates dashboard operator roles.
type AdminRole string

const (
	AdminRoleStaff AdminRole = "STAFF"
	AdminRoleOwner AdminRole = "OWNER"
)

// Admin models a dashboard operator.
type Admin struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         AdminRole
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
