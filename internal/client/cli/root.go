package cli

import (
	"context"
	"fmt"
)

// getStatus renders the prompt badge: "(name role)" when signed in.
func (a *App) getStatus(ctx context.Context) string {
	opCtx, cancel := a.withTimeout(ctx)
	defer cancel()

	user, err := a.authService.CurrentUser(opCtx)
	if err != nil || user == nil {
		return ""
	}
	return fmt.Sprintf("(%s %s)", user.Name, user.Role)
}

// Root prints the banner and runs the REPL until the user leaves.
func (a *App) Root(ctx context.Context) {
	a.println("Welcome to LuxeStay CLI (type 'help' for commands)")
	runREPL(ctx, a, func() string { return a.getStatus(ctx) }, a.reader)
}
