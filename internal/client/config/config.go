package config

import "time"

// Config holds runtime settings for the onboarding client.
//
// Fields:
//   - ServerBaseURL: root URL of the auth backend; endpoint paths are appended.
//   - DBPath: SQLite file holding the session and interest selections.
//   - RequestTimeout: upper bound for one backend request.
//   - LogLevel, LogFormat: slog level name and "text" or "json".
//   - CatalogueSeed: seed for the generated interest catalogue.
type Config struct {
	ServerBaseURL  string
	DBPath         string
	RequestTimeout time.Duration
	LogLevel       string
	LogFormat      string
	CatalogueSeed  int64
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:4000/api/v1"
	c.DBPath = "onboard.db"
	c.RequestTimeout = 15 * time.Second
	c.LogLevel = "warn"
	c.LogFormat = "text"
	c.CatalogueSeed = 1
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (and .env), JSON (if present) and command-line flags (if
// present). Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
