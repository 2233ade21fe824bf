package config

import (
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	var c Config
	c.LoadDefaults()
	return &c
}

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = append([]string{"testbin"}, args...)
}

func withoutEnvFile(t *testing.T) {
	t.Helper()
	orig := envFile
	t.Cleanup(func() { envFile = orig })
	envFile = filepath.Join(t.TempDir(), "missing.env")
}

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "http://localhost:4000/api/v1", c.ServerBaseURL)
	assert.Equal(t, "onboard.db", c.DBPath)
	assert.Equal(t, 15*time.Second, c.RequestTimeout)
	assert.Equal(t, "warn", c.LogLevel)
	assert.Equal(t, "text", c.LogFormat)
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expected    *Config
		expectPanic bool
	}{
		{
			name:     "all flags",
			args:     []string{"-a", "https://api.example.com", "-d", "/tmp/x.db", "-t", "3", "-l", "debug"},
			expected: &Config{ServerBaseURL: "https://api.example.com", DBPath: "/tmp/x.db", RequestTimeout: 3 * time.Second, LogLevel: "debug"},
		},
		{
			name:     "foreign flags ignored",
			args:     []string{"-c", "cfg.json", "-a", "http://h"},
			expected: &Config{ServerBaseURL: "http://h"},
		},
		{name: "bad timeout", args: []string{"-t", "abc"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withArgs(t, tt.args...)
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			cfg := &Config{}
			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(cfg) })
				return
			}
			require.NotPanics(t, func() { parseFlags(cfg) })
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}

func TestParseJson(t *testing.T) {
	t.Run("partial file overrides only named fields", func(t *testing.T) {
		path := writeTempJSON(t, map[string]any{
			"server_base_url": "https://json.example",
			"request_timeout": "2s",
			"catalogue_seed":  0,
		})
		withArgs(t, "-config", path)

		cfg := defaults()
		parseJson(cfg)

		want := defaults()
		want.ServerBaseURL = "https://json.example"
		want.RequestTimeout = 2 * time.Second
		want.CatalogueSeed = 0
		assert.Empty(t, cmp.Diff(want, cfg))
	})

	t.Run("no flag no changes", func(t *testing.T) {
		withArgs(t)

		cfg := defaults()
		parseJson(cfg)
		assert.Empty(t, cmp.Diff(defaults(), cfg))
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))
		withArgs(t, "-c", bad)

		require.Panics(t, func() { parseJson(&Config{}) })
	})

	t.Run("yaml file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cfg.yaml")
		body := "server_base_url: https://yaml.example\nrequest_timeout: 4s\nlog_format: json\n"
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
		withArgs(t, "-c", path)

		cfg := defaults()
		parseJson(cfg)

		want := defaults()
		want.ServerBaseURL = "https://yaml.example"
		want.RequestTimeout = 4 * time.Second
		want.LogFormat = "json"
		assert.Empty(t, cmp.Diff(want, cfg))
	})

	t.Run("invalid yaml panics", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cfg.yml")
		require.NoError(t, os.WriteFile(path, []byte("server_base_url: [unclosed"), 0o600))
		withArgs(t, "-c", path)

		require.Panics(t, func() { parseJson(&Config{}) })
	})

	t.Run("missing file panics", func(t *testing.T) {
		withArgs(t, "-c", filepath.Join(t.TempDir(), "nope.json"))
		require.Panics(t, func() { parseJson(&Config{}) })
	})
}

func TestParseEnv(t *testing.T) {
	withoutEnvFile(t)
	t.Setenv(EnvServerBaseURL, "https://env.example")
	t.Setenv(EnvRequestTimeout, "750ms")
	t.Setenv(EnvLogFormat, "json")
	t.Setenv(EnvCatalogueSeed, "not-a-number")

	cfg := defaults()
	parseEnv(cfg)

	want := defaults()
	want.ServerBaseURL = "https://env.example"
	want.RequestTimeout = 750 * time.Millisecond
	want.LogFormat = "json"
	assert.Empty(t, cmp.Diff(want, cfg))
}

func TestParseEnv_DotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("MARKET_DB_PATH=/var/lib/onboard.db\n"), 0o600))

	orig := envFile
	t.Cleanup(func() { envFile = orig })
	envFile = path
	// t.Setenv registers the cleanup; unset so the file value is applied
	t.Setenv(EnvDBPath, "")
	require.NoError(t, os.Unsetenv(EnvDBPath))

	cfg := defaults()
	parseEnv(cfg)
	assert.Equal(t, "/var/lib/onboard.db", cfg.DBPath)
}

func TestLoadConfig_Precedence(t *testing.T) {
	withoutEnvFile(t)
	t.Setenv(EnvServerBaseURL, "https://env.example")
	t.Setenv(EnvLogLevel, "info")
	path := writeTempJSON(t, map[string]any{"server_base_url": "https://json.example", "db_path": "json.db"})
	withArgs(t, "-c", path, "-d", "flag.db")

	cfg := LoadConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, "https://json.example", cfg.ServerBaseURL)
	assert.Equal(t, "flag.db", cfg.DBPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_SubSecondTimeoutKeptWithoutFlag(t *testing.T) {
	for _, tt := range []struct {
		name string
		env  string
		args []string
		want time.Duration
	}{
		{name: "sub-second", env: "750ms", want: 750 * time.Millisecond},
		{name: "fractional", env: "2500ms", want: 2500 * time.Millisecond},
		{name: "flag wins", env: "2500ms", args: []string{"-t", "4"}, want: 4 * time.Second},
	} {
		t.Run(tt.name, func(t *testing.T) {
			withoutEnvFile(t)
			t.Setenv(EnvRequestTimeout, tt.env)
			withArgs(t, tt.args...)

			cfg := LoadConfig()

			assert.Equal(t, tt.want, cfg.RequestTimeout)
		})
	}
}
