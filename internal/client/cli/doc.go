// Package cli provides the interactive folio admin command-line client.
//
// It wires configuration, the local store, the backend services and an
// interactive REPL. Typical flow: evaluate the bootstrap gate, prompt for
// credentials when a backend is configured, start the content refetch loop
// and execute user commands.
//
// Key features:
//   - Login / Logout / Whoami against the portfolio backend
//   - Local configuration (backend URL, API key, spreadsheet ids)
//   - Cached views of the six portfolio content domains
//   - Admin actions: remote settings and the audit log
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, Root and runREPL for details.
package cli
