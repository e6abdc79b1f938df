package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/siteauth/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":5000")
//	-g string   gRPC health bind address ("" disables)
//	-b string   database driver: postgres|sqlite|memory
//	-d string   database DSN
//	-s string   JWT HMAC secret key
//	-t int      token validity, hours
//	-w int      store call timeout, seconds
//	-k int      bcrypt cost
//	-l string   log level
//
// os.Args is filtered through flagx.FilterArgs first so the -c/-config flag
// consumed by the JSON loader does not trip this flag set.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-b", "-d", "-s", "-t", "-w", "-k", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run HTTP server")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "address and port to run gRPC health server")
	fs.StringVar(&config.DatabaseDriver, "b", config.DatabaseDriver, "database driver (postgres, sqlite, memory)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Hours()), "token validity (in hours)")
	storeTimeout := fs.Int("w", int(config.StoreTimeout.Seconds()), "store call timeout (in seconds)")

	fs.IntVar(&config.PasswordCost, "k", config.PasswordCost, "bcrypt cost")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// Durations are only replaced when given explicitly, so sub-unit values
	// from JSON or env survive the whole-number flag defaults.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Hour
		case "w":
			config.StoreTimeout = time.Duration(*storeTimeout) * time.Second
		}
	})
}
