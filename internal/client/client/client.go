package client

import "context"

// User is the public account view returned by the server.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type Client interface {
	Signup(ctx context.Context, username, email string, password []byte) (*User, error)
	Login(ctx context.Context, email string, password []byte) (token string, user *User, err error)
	Me(ctx context.Context, token string) (*User, error)
	Ping(ctx context.Context) error
}
