package config

import (
	"time"

	"github.com/dmitrijs2005/luxestay/internal/cryptox"
)

// Config holds runtime settings for the LuxeStay CLI.
//
// Fields:
//   - DatabasePath: SQLite file backing the key-value store, or ":memory:"
//     for a throwaway session.
//   - SecretKey: HMAC key for session tokens. Empty means a random key per run.
//   - CommandTimeout: deadline applied to each REPL command.
//   - LogLevel: debug, info, warn or error.
//   - PasswordHash: Argon2id cost for newly stored passwords.
type Config struct {
	DatabasePath   string
	SecretKey      string
	CommandTimeout time.Duration
	LogLevel       string
	PasswordHash   cryptox.Params
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "luxestay.db"
	c.SecretKey = ""
	c.CommandTimeout = 5 * time.Second
	c.LogLevel = "warn"
	c.PasswordHash = cryptox.DefaultParams()
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
