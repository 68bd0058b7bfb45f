// Package config loads runtime configuration for the LuxeStay CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   path of the local SQLite database (":memory:" for none)
//	-s string   secret key for session tokens
//	-t int      per-command timeout (seconds)
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
// Durations use timex.Duration, so they can be strings like "5s" or integer
// nanoseconds. Only the keys present in the file override earlier values:
//
//	{
//	  "database_path": "luxestay.db",
//	  "secret_key": "change-me",
//	  "command_timeout": "5s",
//	  "log_level": "info",
//	  "password_hash": {"memory_kib": 65536, "iterations": 3, "parallelism": 4}
//	}
//
// The package does not read environment variables.
package config
