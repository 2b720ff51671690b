package config

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"regexp"
)

// Parser provides a unified interface for parsing glrage configuration files.
// It detects whether a file is a Lua script or a JSON document.
type Parser struct {
	jsonParser *JSONConfigParser
	luaParser  *LuaConfigParser
}

// NewParser creates a new Parser that can handle both formats.
func NewParser() (*Parser, error) {
	luaParser, err := NewLuaConfigParser()
	if err != nil {
		return nil, fmt.Errorf("failed to create Lua parser: %w", err)
	}

	return &Parser{
		jsonParser: NewJSONConfigParser(),
		luaParser:  luaParser,
	}, nil
}

// ParseFile reads and parses a configuration file, auto-detecting the format.
func (p *Parser) ParseFile(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return p.Parse(content)
}

// Parse parses configuration content, auto-detecting the format.
func (p *Parser) Parse(content []byte) (*Config, error) {
	switch DetectFormat(content) {
	case FormatLua:
		return p.luaParser.Parse(content)
	case FormatJSON:
		return p.jsonParser.Parse(content)
	default:
		return nil, fmt.Errorf("unrecognized configuration format")
	}
}

// ParseFromFS reads and parses a configuration file from a filesystem.
func (p *Parser) ParseFromFS(fsys fs.FS, path string) (*Config, error) {
	content, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config from FS %s: %w", path, err)
	}

	return p.Parse(content)
}

// ParseReader parses configuration from an io.Reader.
// The format parameter must be "lua" or "json".
func (p *Parser) ParseReader(r io.Reader, format string) (*Config, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	switch format {
	case FormatLua:
		return p.luaParser.Parse(content)
	case FormatJSON:
		return p.jsonParser.Parse(content)
	default:
		return nil, fmt.Errorf("unknown format: %s (expected 'lua' or 'json')", format)
	}
}

// Close releases resources associated with the parser.
func (p *Parser) Close() error {
	if p.luaParser != nil {
		return p.luaParser.Close()
	}
	return nil
}

// Configuration formats accepted by ParseReader.
const (
	FormatLua  = "lua"
	FormatJSON = "json"
)

// luaConfigPattern matches an assignment to glrage.config or glrage.games at
// the start of a line, so comments mentioning them do not count.
var luaConfigPattern = regexp.MustCompile(`(?m)^\s*glrage\.(config|games)\s*=`)

// DetectFormat returns FormatLua, FormatJSON or "" for content.
func DetectFormat(content []byte) string {
	if luaConfigPattern.Match(content) {
		return FormatLua
	}
	if bytes.HasPrefix(bytes.TrimSpace(content), []byte("{")) {
		return FormatJSON
	}
	return ""
}
