package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/siteauth/internal/client/client"
	"github.com/dmitrijs2005/siteauth/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Signup prompts for username, email and password and creates an account.
// No session is started; the user logs in separately.
func (a *App) Signup(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.api.Signup(ctx, username, email, password)
	if err != nil {
		a.report("Signup failed", err)
		return err
	}

	fmt.Fprintf(a.out, "Account created for %s. You can now log in.\n", u.Email)
	return nil
}

// Login prompts for credentials and keeps the issued token in memory.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	token, u, err := a.api.Login(ctx, email, password)
	if err != nil {
		a.report("Login failed", err)
		return err
	}

	a.token = token
	a.user = u
	fmt.Fprintln(a.out, "Login successful")
	return nil
}

// WhoAmI shows the account behind the current token. An expired or rejected
// token ends the session.
func (a *App) WhoAmI(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not logged in")
		return client.ErrUnauthorized
	}

	u, err := a.api.Me(ctx, a.token)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			a.clearSession()
			fmt.Fprintln(a.out, "Session expired, please log in again")
			return err
		}
		a.report("Lookup failed", err)
		return err
	}

	a.user = u
	fmt.Fprintf(a.out, "id: %s\nusername: %s\nemail: %s\n", u.ID, u.Username, u.Email)
	return nil
}

// Logout forgets the in-memory token.
func (a *App) Logout(ctx context.Context) error {
	a.clearSession()
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) report(action string, err error) {
	switch {
	case errors.Is(err, client.ErrUnavailable):
		fmt.Fprintf(a.out, "%s: server unavailable, try again later\n", action)
	case errors.Is(err, client.ErrUnauthorized):
		fmt.Fprintf(a.out, "%s: invalid credentials\n", action)
	case errors.Is(err, client.ErrConflict):
		fmt.Fprintf(a.out, "%s: an account with this email already exists\n", action)
	case errors.Is(err, client.ErrValidation):
		fmt.Fprintf(a.out, "%s: username, email and password are required\n", action)
	default:
		fmt.Fprintf(a.out, "%s: %v\n", action, err)
	}
}
