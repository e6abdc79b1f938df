// Package cli provides the interactive siteauth command-line client.
//
// It wires configuration, the HTTP API client and a small REPL:
//
//   - signup  create an account
//   - login   authenticate and keep the token in memory
//   - whoami  show the account behind the current token
//   - logout  forget the token
//
// Passwords are read without echo and wiped after use. Nothing is written
// to disk. The REPL is started via App.Run(ctx), which blocks until the user
// exits.
package cli
