package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/onboard/internal/flagx"
	"github.com/dmitrijs2005/onboard/internal/timex"
	"gopkg.in/yaml.v3"
)

// JsonConfig is a DTO used exclusively for config file unmarshalling.
// Pointer and zero-value fields mean "not set" so a partial file only
// overrides what it names.
type JsonConfig struct {
	ServerBaseURL  string          `json:"server_base_url"`
	DBPath         string          `json:"db_path"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	LogLevel       string          `json:"log_level"`
	LogFormat      string          `json:"log_format"`
	CatalogueSeed  *int64          `json:"catalogue_seed"`
}

// yamlToJSON converts a YAML document to JSON so both file formats share
// the JsonConfig decoding (and timex.Duration parsing).
func yamlToJSON(data []byte) ([]byte, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return json.Marshal(doc)
}

// parseJson overlays Config with values loaded from the file named by -c or
// -config. Files ending in .yaml or .yml are read as YAML, anything else as
// JSON. Without either flag nothing is loaded. Read and unmarshal errors
// panic.
func parseJson(cfg *Config) {
	configFile := flagx.ConfigPath(os.Args[1:])
	if configFile == "" {
		return
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		panic(err)
	}

	switch strings.ToLower(filepath.Ext(configFile)) {
	case ".yaml", ".yml":
		if data, err = yamlToJSON(data); err != nil {
			panic(err)
		}
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.DBPath != "" {
		cfg.DBPath = jc.DBPath
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.LogFormat != "" {
		cfg.LogFormat = jc.LogFormat
	}
	if jc.CatalogueSeed != nil {
		cfg.CatalogueSeed = *jc.CatalogueSeed
	}
}
