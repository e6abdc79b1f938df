package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/siteauth/internal/client/client"
	"github.com/dmitrijs2005/siteauth/internal/client/config"
)

type App struct {
	config *config.Config
	api    client.Client
	reader *bufio.Reader
	out    io.Writer

	token string
	user  *client.User
}

func NewApp(c *config.Config) (*App, error) {
	api := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)
	return &App{config: c, api: api, reader: bufio.NewReader(os.Stdin), out: os.Stdout}, nil
}

// Run greets the user, probes the server once and enters the REPL.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to siteauth CLI (type 'help' for commands)")

	if err := a.api.Ping(ctx); err != nil {
		fmt.Fprintf(a.out, "Warning: %s is not reachable right now\n", a.config.ServerURL)
	}

	runREPL(ctx, a, a.getStatus, a.reader)

	a.clearSession()
}

func (a *App) isLoggedIn() bool {
	return a.token != ""
}

func (a *App) getStatus() string {
	if a.user == nil {
		return ""
	}
	name := a.user.Username
	if name == "" {
		name = a.user.Email
	}
	return fmt.Sprintf("(%s)", name)
}

func (a *App) clearSession() {
	a.token = ""
	a.user = nil
}
