package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/onboard/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the auth backend
//	-d string   path of the local SQLite database
//	-t int      request timeout in seconds
//	-l string   log level (debug, info, warn, error)
//
// os.Args is filtered with flagx.FilterArgs first so flags owned by other
// parsers (-c/-config) do not trip this flag set.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-t", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the auth backend")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "path to the local database file")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// -t is whole seconds; leave env or file values alone unless it was given.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
}
