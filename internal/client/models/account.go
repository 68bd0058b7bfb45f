// Package models defines the identity records kept by the LuxeStay client.
package models

import "fmt"

// Role gates access to the guest area and the admin back-office.
type Role string

const (
	RoleGuest   Role = "guest"
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
)

// StaffRoles may sign in to the admin back-office.
var StaffRoles = []Role{RoleAdmin, RoleManager, RoleStaff}

// ParseRole converts user input to a Role.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleGuest, RoleAdmin, RoleManager, RoleStaff:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// IsStaff reports whether r belongs to the back-office.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleManager || r == RoleStaff
}

// Account holds the public fields of a registered identity.
type Account struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Session is the currently authenticated identity plus its opaque token.
type Session struct {
	User  Account `json:"user"`
	Token string  `json:"token"`
}

// AuthState is what route guards need to decide on a page.
type AuthState struct {
	User            *Account `json:"user"`
	IsAuthenticated bool     `json:"isAuthenticated"`
}
