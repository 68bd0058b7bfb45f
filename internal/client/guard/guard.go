// Package guard decides whether the current identity may open a protected
// page, and where to send it otherwise.
package guard

import (
	"context"
	"slices"

	"github.com/dmitrijs2005/luxestay/internal/client/models"
	"github.com/dmitrijs2005/luxestay/internal/client/services"
)

// Paths the guards redirect to.
const (
	PathHome           = "/"
	PathGuestLogin     = "/guest/login"
	PathGuestDashboard = "/guest/dashboard"
	PathAdminLogin     = "/admin/login"
)

// Policy describes a protected area. Empty Roles admits any signed-in user.
type Policy struct {
	Roles         []models.Role
	LoginPath     string
	ForbiddenPath string
}

var (
	GuestPolicy = Policy{LoginPath: PathGuestLogin, ForbiddenPath: PathHome}
	AdminPolicy = Policy{Roles: models.StaffRoles, LoginPath: PathAdminLogin, ForbiddenPath: PathAdminLogin}
)

// Decision is the outcome of a guard check. Redirect is set when Allowed is
// false.
type Decision struct {
	Allowed  bool
	Redirect string
	User     *models.Account
}

type Guard struct {
	auth services.AuthService
}

func NewGuard(auth services.AuthService) *Guard {
	return &Guard{auth: auth}
}

// Check applies p to the current session.
func (g *Guard) Check(ctx context.Context, p Policy) (Decision, error) {
	user, err := g.auth.CurrentUser(ctx)
	if err != nil {
		return Decision{}, err
	}
	if user == nil {
		return Decision{Redirect: p.LoginPath}, nil
	}
	if len(p.Roles) > 0 && !slices.Contains(p.Roles, user.Role) {
		return Decision{Redirect: p.ForbiddenPath, User: user}, nil
	}
	return Decision{Allowed: true, User: user}, nil
}

// RedirectIfAuthenticated is used by login and signup pages: a signed-in
// user is sent to the guest dashboard instead. An empty result means stay.
func (g *Guard) RedirectIfAuthenticated(ctx context.Context) (string, error) {
	ok, err := g.auth.IsAuthenticated(ctx)
	if err != nil || !ok {
		return "", err
	}
	return PathGuestDashboard, nil
}
