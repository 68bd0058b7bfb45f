// Package cli provides the interactive LuxeStay command-line client.
//
// It wires configuration, the local key-value store, the identity service
// and an interactive REPL. Each page of the hotel site that deals with
// identity has a command here:
//
//   - signup      guest signup form
//   - login       guest login
//   - adminlogin  back-office login with a role (admin, manager, staff)
//   - dashboard   guest dashboard, behind the guest guard
//   - admin       back-office dashboard, behind the admin guard
//   - whoami      current session (-v adds token details)
//   - logout
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
