// Package config loads runtime configuration for the onboarding client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables MARKET_*, with an optional .env file loaded
//     first (see parseEnv).
//  3. Optional JSON or YAML file (see parseJson) selected via flags: -c or
//     -config. The format follows the extension (.yaml/.yml, else JSON).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the auth backend
//	-d string   local SQLite database path
//	-t int      request timeout (seconds)
//	-l string   log level
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so it can be either a
// string like "15s" or integer nanoseconds:
//
//	{
//	  "server_base_url": "https://api.example.com/api/v1",
//	  "db_path": "onboard.db",
//	  "request_timeout": "15s",
//	  "log_level": "info",
//	  "log_format": "json",
//	  "catalogue_seed": 7
//	}
package config
