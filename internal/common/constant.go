// Package common contains shared constants and sentinel errors used across
// siteauth components.
package common

// AuthorizationHeaderName is the HTTP header carrying the bearer token.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token inside the Authorization header.
const BearerPrefix = "Bearer "

// RequestIDHeaderName echoes the per-request id assigned by the server.
const RequestIDHeaderName = "X-Request-ID"
