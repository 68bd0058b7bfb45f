package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/luxestay/internal/flagx"
	"github.com/dmitrijs2005/luxestay/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell "absent" from "zero", so a partial file keeps earlier values.
type JsonConfig struct {
	DatabasePath   *string         `json:"database_path"`
	SecretKey      *string         `json:"secret_key"`
	CommandTimeout *timex.Duration `json:"command_timeout"`
	LogLevel       *string         `json:"log_level"`
	PasswordHash   *struct {
		MemoryKiB   uint32 `json:"memory_kib"`
		Iterations  uint32 `json:"iterations"`
		Parallelism uint8  `json:"parallelism"`
	} `json:"password_hash"`
}

// parseJson overlays Config with values loaded from the file named by -c or
// -config. Without such a flag nothing happens. Read and unmarshal errors
// panic, the same as bad flags.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
	if jc.SecretKey != nil {
		cfg.SecretKey = *jc.SecretKey
	}
	if jc.CommandTimeout != nil {
		cfg.CommandTimeout = jc.CommandTimeout.Duration
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if ph := jc.PasswordHash; ph != nil {
		if ph.MemoryKiB != 0 {
			cfg.PasswordHash.MemoryKiB = ph.MemoryKiB
		}
		if ph.Iterations != 0 {
			cfg.PasswordHash.Iterations = ph.Iterations
		}
		if ph.Parallelism != 0 {
			cfg.PasswordHash.Parallelism = ph.Parallelism
		}
	}
}
