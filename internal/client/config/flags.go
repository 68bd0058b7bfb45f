package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/luxestay/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Only -d, -s, -t and -l are looked at; everything else on the command line
// (for example -c) is filtered out with flagx.FilterArgs first.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-s", "-t", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local database file")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "secret key for session tokens")
	timeout := fs.Int("t", int(cfg.CommandTimeout.Seconds()), "command timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.CommandTimeout = time.Duration(*timeout) * time.Second
}
