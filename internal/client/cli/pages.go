package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/luxestay/internal/client/guard"
)

// Dashboard opens the guest dashboard, which any signed-in user may see.
func (a *App) Dashboard(ctx context.Context) error {
	d, err := a.check(ctx, guard.GuestPolicy)
	if err != nil {
		return err
	}
	if !d.Allowed {
		a.println("Please sign in first, redirecting to", d.Redirect)
		return nil
	}

	a.println("== Guest dashboard ==")
	a.println("Name: ", d.User.Name)
	a.println("Email:", d.User.Email)
	return nil
}

// Admin opens the back-office dashboard for admin, manager and staff.
func (a *App) Admin(ctx context.Context) error {
	d, err := a.check(ctx, guard.AdminPolicy)
	if err != nil {
		return err
	}
	if !d.Allowed {
		a.println("Back-office access requires a staff account, redirecting to", d.Redirect)
		return nil
	}

	a.println("== LuxeStay Admin ==")
	a.println(fmt.Sprintf("Signed in as %s (%s)", d.User.Name, d.User.Role))
	return nil
}

// WhoAmI prints the current identity. With verbose it also decodes the
// session token.
func (a *App) WhoAmI(ctx context.Context, verbose bool) error {
	opCtx, cancel := a.withTimeout(ctx)
	session, err := a.authService.CurrentSession(opCtx)
	cancel()
	if err != nil {
		return a.report(ctx, err, "Session check failed")
	}
	if session == nil {
		a.println("Not signed in")
		return nil
	}

	u := session.User
	a.println(fmt.Sprintf("%s <%s> role=%s id=%s", u.Name, u.Email, u.Role, u.ID))
	if !verbose {
		return nil
	}

	claims, err := a.tokens.ParseToken(session.Token)
	if err != nil {
		a.println("Token: cannot be verified with the current secret key")
		return nil
	}
	a.println("Token id:", claims.ID)
	if claims.IssuedAt != nil {
		a.println("Issued at:", claims.IssuedAt.Time.Format(time.RFC3339))
	}
	return nil
}

func (a *App) check(ctx context.Context, p guard.Policy) (guard.Decision, error) {
	opCtx, cancel := a.withTimeout(ctx)
	defer cancel()

	d, err := a.guard.Check(opCtx, p)
	if err != nil {
		return d, a.report(ctx, err, "Session check failed")
	}
	return d, nil
}
