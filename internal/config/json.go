package config

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// JSONConfigParser parses JSON configuration files. Fields mirror the Config
// struct tags; omitted fields keep their default values and quirk entries are
// merged over the defaults.
type JSONConfigParser struct{}

// NewJSONConfigParser creates a JSON parser.
func NewJSONConfigParser() *JSONConfigParser {
	return &JSONConfigParser{}
}

// Parse decodes content over DefaultConfig. Unknown fields are rejected.
func (p *JSONConfigParser) Parse(content []byte) (*Config, error) {
	cfg := DefaultConfig()

	dec := json.NewDecoder(bytes.NewReader(content))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode JSON configuration: %w", err)
	}
	if cfg.Quirks == nil {
		cfg.Quirks = make(map[string]QuirkConfig)
	}
	return &cfg, nil
}
