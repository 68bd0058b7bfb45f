package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	AdminLogin(ctx context.Context) error
	WhoAmI(ctx context.Context, verbose bool) error
	Dashboard(ctx context.Context) error
	Admin(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the LuxeStay CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF, when ctx is done, or when the user types
// "exit" or "quit".
//
// Commands
//
//	Signed out:
//	  - help           show available commands
//	  - signup         create a guest account
//	  - login          guest login
//	  - adminlogin     back-office login
//	  - dashboard      guest dashboard
//	  - admin          back-office dashboard
//	  - whoami [-v]    current identity
//	  - exit | quit    leave the program
//
//	Signed in additionally:
//	  - logout         end the session
//
//	adminlogin stays available while signed in, to switch to a
//	back-office role.
//
// Errors returned by command handlers are ignored here; handlers show
// their own messages. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		printlnFn(fmt.Sprintf("luxestay %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				printlnFn("Available commands: whoami [-v], dashboard, admin, adminlogin, logout, exit")
			} else {
				printlnFn("Available commands: signup, login, adminlogin, whoami, dashboard, admin, exit")
			}

		case "signup":
			_ = a.Signup(ctx)

		case "login":
			_ = a.Login(ctx)

		case "adminlogin":
			_ = a.AdminLogin(ctx)

		case "whoami":
			verbose := len(args) > 0 && args[0] == "-v"
			_ = a.WhoAmI(ctx, verbose)

		case "dashboard":
			_ = a.Dashboard(ctx)

		case "admin":
			_ = a.Admin(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
