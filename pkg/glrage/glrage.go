package glrage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/opd-ai/go-glrage/internal/config"
	"github.com/opd-ai/go-glrage/internal/ddraw"
)

// Configuration format constants for use with NewFromReader.
const (
	FormatLua  = config.FormatLua
	FormatJSON = config.FormatJSON
)

// ErrQuit is returned by a client frame to end Run without an error.
var ErrQuit = errors.New("glrage: client quit")

// ErrNoWindow is returned when a windowed instance is requested from a
// build without the Ebitengine host.
var ErrNoWindow = errors.New("glrage: windowed mode unavailable in this build")

// Client is a legacy program driven one frame at a time.
type Client interface {
	// Frame draws one frame through dd, typically ending in a Flip or in
	// the Unlock of a stand-alone primary surface. Returning ErrQuit ends
	// Run without an error.
	Frame(dd *ddraw.DirectDraw) error
}

// Initializer is implemented by clients that set up their surfaces before
// the first frame.
type Initializer interface {
	Init(dd *ddraw.DirectDraw) error
}

// ClientFunc adapts a function to Client.
type ClientFunc func(dd *ddraw.DirectDraw) error

// Frame calls f(dd).
func (f ClientFunc) Frame(dd *ddraw.DirectDraw) error {
	return f(dd)
}

// New creates an Instance from a configuration file on disk, in Lua or
// JSON format.
//
// Example:
//
//	inst, err := glrage.New("glrage.lua", &glrage.Options{WatchConfig: true})
//	if err != nil {
//		log.Fatal(err)
//	}
func New(configPath string, opts *Options) (*Instance, error) {
	loader := func() (*config.Config, error) {
		return loadConfig(func(p *config.Parser) (*config.Config, error) {
			return p.ParseFile(configPath)
		})
	}
	return newFromLoader(loader, configPath, configPath, opts)
}

// NewFromFS creates an Instance using configuration from a filesystem such
// as an embed.FS.
func NewFromFS(fsys fs.FS, configPath string, opts *Options) (*Instance, error) {
	loader := func() (*config.Config, error) {
		return loadConfig(func(p *config.Parser) (*config.Config, error) {
			return p.ParseFromFS(fsys, configPath)
		})
	}
	return newFromLoader(loader, "embedded:"+configPath, "", opts)
}

// NewFromReader creates an Instance from configuration content in the given
// format ("lua" or "json").
func NewFromReader(r io.Reader, format string, opts *Options) (*Instance, error) {
	if format != FormatLua && format != FormatJSON {
		return nil, fmt.Errorf("invalid format: %s (expected '%s' or '%s')", format, FormatLua, FormatJSON)
	}

	// The content is kept so ReloadConfig can parse it again.
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	loader := func() (*config.Config, error) {
		return loadConfig(func(p *config.Parser) (*config.Config, error) {
			return p.ParseReader(bytes.NewReader(content), format)
		})
	}
	return newFromLoader(loader, "reader", "", opts)
}

// NewDefault creates an Instance with the built-in default configuration.
func NewDefault(opts *Options) (*Instance, error) {
	loader := func() (*config.Config, error) {
		cfg := config.DefaultConfig()
		return &cfg, nil
	}
	return newFromLoader(loader, "defaults", "", opts)
}

func newFromLoader(loader func() (*config.Config, error), source, watchPath string, opts *Options) (*Instance, error) {
	if opts == nil {
		defaultOpts := DefaultOptions()
		opts = &defaultOpts
	}
	cfg, err := loader()
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return newInstance(cfg, *opts, source, watchPath, loader)
}

// loadConfig parses with a fresh parser, then expands environment
// references and validates the result.
func loadConfig(parse func(*config.Parser) (*config.Config, error)) (*config.Config, error) {
	p, err := config.NewParser()
	if err != nil {
		return nil, fmt.Errorf("parser init: %w", err)
	}
	defer p.Close()

	cfg, err := parse(p)
	if err != nil {
		return nil, err
	}
	config.ExpandEnvConfig(cfg)
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
