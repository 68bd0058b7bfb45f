package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/luxestay/internal/client/forms"
	"github.com/dmitrijs2005/luxestay/internal/client/models"
	"github.com/dmitrijs2005/luxestay/internal/client/services"
	"github.com/dmitrijs2005/luxestay/internal/common"
)

// getSimpleText, getLine and getPassword are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getLine = GetLine
var getPassword = GetPassword

// Signup runs the guest signup form. A signed-in user is sent to the guest
// dashboard instead. Signup never signs the new account in.
func (a *App) Signup(ctx context.Context) error {
	if done, err := a.redirectIfAuthenticated(ctx); done || err != nil {
		return err
	}

	name, err := getLine(a.reader, "Full name", a.out)
	if err != nil {
		return err
	}
	email, err := getLine(a.reader, "Email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password: ", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword("Confirm password: ", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	terms, err := getSimpleText(a.reader, "Agree to the terms and conditions? (y/N)", a.out)
	if err != nil {
		return err
	}

	form := forms.SignupForm{
		Name:            name,
		Email:           email,
		Password:        password,
		ConfirmPassword: confirm,
		AgreeToTerms:    isYes(terms),
	}
	if err := form.Validate(); err != nil {
		a.println(err.Error())
		return err
	}

	opCtx, cancel := a.withTimeout(ctx)
	defer cancel()

	created, err := a.authService.Signup(opCtx, form.Name, form.Email, form.Password)
	if err != nil {
		return a.report(ctx, err, "Signup failed")
	}

	a.signupEmail = created.Email
	a.println(fmt.Sprintf("Account created for %s. Use 'login' to sign in.", created.Email))
	return nil
}

// Login signs a guest in (any role is accepted) and opens the guest
// dashboard.
func (a *App) Login(ctx context.Context) error {
	if done, err := a.redirectIfAuthenticated(ctx); done || err != nil {
		return err
	}

	if err := a.login(ctx, ""); err != nil {
		return err
	}
	return a.Dashboard(ctx)
}

// AdminLogin asks for the back-office role first, then signs in requiring
// that role, and opens the admin dashboard.
func (a *App) AdminLogin(ctx context.Context) error {
	answer, err := getSimpleText(a.reader, "Role (admin, manager, staff) [admin]", a.out)
	if err != nil {
		return err
	}
	if answer == "" {
		answer = string(models.RoleAdmin)
	}

	role, err := models.ParseRole(answer)
	if err == nil && !role.IsStaff() {
		err = fmt.Errorf("role %q has no back-office access", answer)
	}
	if err != nil {
		a.println("Unknown role:", answer)
		return err
	}

	if err := a.login(ctx, role); err != nil {
		return err
	}
	return a.Admin(ctx)
}

func (a *App) login(ctx context.Context, role models.Role) error {
	prompt, prefill := "Email", ""
	if role == "" && a.signupEmail != "" {
		prefill = a.signupEmail
		prompt = fmt.Sprintf("Email [%s]", prefill)
	}

	email, err := getLine(a.reader, prompt, a.out)
	if err != nil {
		return err
	}
	if email == "" {
		email = prefill
	}

	password, err := getPassword("Enter password: ", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	opCtx, cancel := a.withTimeout(ctx)
	defer cancel()

	session, err := a.authService.Login(opCtx, email, password, role)
	if err != nil {
		return a.report(ctx, err, "Login failed")
	}

	a.signupEmail = ""
	a.println(fmt.Sprintf("Signed in as %s (%s)", session.User.Name, session.User.Role))
	return nil
}

// Logout drops the current session. Logging out twice is harmless.
func (a *App) Logout(ctx context.Context) error {
	opCtx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.authService.Logout(opCtx); err != nil {
		return a.report(ctx, err, "Logout failed")
	}
	a.println("Signed out")
	return nil
}

// redirectIfAuthenticated opens the guest dashboard for a signed-in user
// and reports whether it did.
func (a *App) redirectIfAuthenticated(ctx context.Context) (bool, error) {
	opCtx, cancel := a.withTimeout(ctx)
	target, err := a.guard.RedirectIfAuthenticated(opCtx)
	cancel()
	if err != nil {
		return false, a.report(ctx, err, "Session check failed")
	}
	if target == "" {
		return false, nil
	}

	a.println("Already signed in, opening", target)
	return true, a.Dashboard(ctx)
}

// report shows err the way the forms do and returns it. Errors outside the
// identity taxonomy are logged as well, since their message is generic.
func (a *App) report(ctx context.Context, err error, fallback string) error {
	msg := services.UserMessage(err, fallback)
	if msg == fallback {
		a.logger.Error(ctx, fallback, "error", err)
	}
	a.println(msg)
	return err
}
