// Package client contains the API client the siteauth CLI uses to talk to
// the server.
//
// # Overview
//
// The package provides a transport-agnostic contract (see the Client
// interface) for Signup, Login, Me and Ping, and a concrete JSON-over-HTTP
// implementation (see HTTPClient) that maps response status codes to
// sentinel errors.
//
// # Error Handling
//
// Callers match with errors.Is: ErrValidation (400), ErrConflict (409),
// ErrUnauthorized (401), ErrUnavailable (503 or transport failure). The
// server's generic message is appended for display.
package client
