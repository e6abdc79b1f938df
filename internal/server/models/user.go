// Package models holds the server-side persistent entities.
package models

import "time"

// User is an account record owned by the Credential Store. It is created once
// at signup and only read afterwards.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}
