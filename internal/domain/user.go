package domain

import "time"

// Role represents the role of an authenticated user.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleDealer   Role = "DEALER"
	RoleDriver   Role = "DRIVER"
	RoleCustomer Role = "CUSTOMER"

	// RoleSystem is used for internal calls that are not tied to a user,
	// such as the engine marking a payment after the ledger records it.
	RoleSystem Role = "SYSTEM"
)

// ValidRole reports whether the given role can be registered by a user.
func ValidRole(role Role) bool {
	switch role {
	case RoleAdmin, RoleDealer, RoleDriver, RoleCustomer:
		return true
	default:
		return false
	}
}

// User represents an authenticated account in the system.
type User struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}
