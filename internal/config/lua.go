package config

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/arnodel/golua/lib"
	rt "github.com/arnodel/golua/runtime"
)

// LuaConfigParser parses Lua configuration files. The script fills the
// glrage.config table with settings and the glrage.games table with per-title
// quirks:
//
//	glrage.config = {
//	    width = 640, height = 480, bit_depth = 16,
//	    title = "glrage", fullscreen = false,
//	    screenshot_format = "webp",
//	}
//	glrage.games = {
//	    tomb = { line_doubling = true },
//	}
type LuaConfigParser struct {
	runtime *rt.Runtime
	cleanup func()
	mu      sync.Mutex
}

// gameKeysChunk collects the string keys of glrage.games in sorted order.
// Table iteration is done in Lua so the result has a stable order.
const gameKeysChunk = `
local keys = {}
if type(glrage) == "table" and type(glrage.games) == "table" then
  for k, v in pairs(glrage.games) do
    if type(k) == "string" and type(v) == "table" then
      keys[#keys + 1] = k
    end
  end
  table.sort(keys)
end
return keys
`

// Resource limits for one configuration script.
const (
	luaCPULimit    = 10_000_000
	luaMemoryLimit = 50 * 1024 * 1024
)

// NewLuaConfigParser creates a new LuaConfigParser with a fresh Lua runtime.
func NewLuaConfigParser() (*LuaConfigParser, error) {
	return NewLuaConfigParserWithOutput(io.Discard)
}

// NewLuaConfigParserWithOutput creates a LuaConfigParser whose print output
// goes to stdout.
func NewLuaConfigParserWithOutput(stdout io.Writer) (*LuaConfigParser, error) {
	if stdout == nil {
		stdout = os.Stdout
	}

	runtime := rt.New(stdout)
	cleanup := lib.LoadAll(runtime)

	return &LuaConfigParser{
		runtime: runtime,
		cleanup: cleanup,
	}, nil
}

// Parse executes content and extracts the configuration from the glrage
// table. Settings the script leaves out keep their default values.
func (p *LuaConfigParser) Parse(content []byte) (*Config, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.initGlobal()

	if _, err := p.run("config", content); err != nil {
		return nil, err
	}

	return p.extractConfig()
}

// run compiles and executes a chunk under the resource limits. golua panics
// when a hard limit is exceeded; the panic is returned as an error.
func (p *LuaConfigParser) run(name string, content []byte) (v rt.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			v, err = rt.NilValue, fmt.Errorf("Lua %s exceeded resource limits: %v", name, r)
		}
	}()

	closure, err := p.runtime.CompileAndLoadLuaChunk(
		name,
		content,
		rt.TableValue(p.runtime.GlobalEnv()),
	)
	if err != nil {
		return rt.NilValue, fmt.Errorf("failed to compile Lua %s: %w", name, err)
	}

	ctx := rt.RuntimeContextDef{
		HardLimits: rt.RuntimeResources{
			Cpu:    luaCPULimit,
			Memory: luaMemoryLimit,
		},
	}
	p.runtime.PushContext(ctx)
	defer p.runtime.PopContext()

	v, err = rt.Call1(p.runtime.MainThread(), rt.FunctionValue(closure))
	if err != nil {
		return rt.NilValue, fmt.Errorf("failed to execute Lua %s: %w", name, err)
	}
	return v, nil
}

// initGlobal resets the glrage global table before a script runs.
func (p *LuaConfigParser) initGlobal() {
	glrage := rt.NewTable()
	glrage.Set(rt.StringValue("config"), rt.TableValue(rt.NewTable()))
	glrage.Set(rt.StringValue("games"), rt.TableValue(rt.NewTable()))
	p.runtime.GlobalEnv().Set(rt.StringValue("glrage"), rt.TableValue(glrage))
}

func (p *LuaConfigParser) extractConfig() (*Config, error) {
	cfg := DefaultConfig()

	glrageVal := p.runtime.GlobalEnv().Get(rt.StringValue("glrage"))
	if glrageVal == rt.NilValue {
		return &cfg, nil
	}
	glrage, ok := glrageVal.TryTable()
	if !ok {
		return nil, fmt.Errorf("glrage is not a table")
	}

	if t, ok := glrage.Get(rt.StringValue("config")).TryTable(); ok {
		extractConfigTable(&cfg, t)
	}

	if err := p.extractGames(&cfg, glrage); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func extractConfigTable(cfg *Config, table *rt.Table) {
	if val := getTableInt(table, "width"); val != nil {
		cfg.Display.Width = *val
	}
	if val := getTableInt(table, "height"); val != nil {
		cfg.Display.Height = *val
	}
	if val := getTableInt(table, "bit_depth"); val != nil {
		cfg.Display.BitDepth = *val
	}

	if val := getTableString(table, "title"); val != nil {
		cfg.Window.Title = *val
	}
	if val := getTableBool(table, "fullscreen"); val != nil {
		cfg.Window.Fullscreen = *val
	}
	if val := getTableBool(table, "vsync"); val != nil {
		cfg.Window.VSync = *val
	}
	if val := getTableFloat(table, "window_scale"); val != nil {
		cfg.Window.Scale = *val
	}

	if val := getTableString(table, "screenshot_dir"); val != nil {
		cfg.Screenshot.Dir = *val
	}
	if val := getTableString(table, "screenshot_format"); val != nil {
		cfg.Screenshot.Format = *val
	}
	if val := getTableFloat(table, "screenshot_scale"); val != nil {
		cfg.Screenshot.Scale = *val
	}

	if val := getTableString(table, "game_id"); val != nil {
		cfg.Game.ID = *val
	}
}

// extractGames merges glrage.games over the default quirk table.
func (p *LuaConfigParser) extractGames(cfg *Config, glrage *rt.Table) error {
	games, ok := glrage.Get(rt.StringValue("games")).TryTable()
	if !ok {
		return nil
	}

	keysVal, err := p.run("games", []byte(gameKeysChunk))
	if err != nil {
		return err
	}
	keys, ok := keysVal.TryTable()
	if !ok {
		return nil
	}

	for i := int64(1); ; i++ {
		name, ok := keys.Get(rt.IntValue(i)).TryString()
		if !ok {
			break
		}
		game, ok := games.Get(rt.StringValue(name)).TryTable()
		if !ok {
			continue
		}
		q := cfg.Quirks[name]
		if val := getTableBool(game, "line_doubling"); val != nil {
			q.LineDoubling = *val
		}
		cfg.Quirks[name] = q
	}
	return nil
}

// Close releases resources associated with the parser's Lua runtime.
func (p *LuaConfigParser) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cleanup != nil {
		p.cleanup()
		p.cleanup = nil
	}
	return nil
}

// getTableBool retrieves a boolean value from a Lua table.
// Returns nil if the key doesn't exist or is not a boolean.
func getTableBool(table *rt.Table, key string) *bool {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil
	}

	if b, ok := val.TryBool(); ok {
		return &b
	}

	// "yes"/"no" strings for compatibility with hand-edited files
	if s, ok := val.TryString(); ok {
		b := parseBool(s)
		return &b
	}

	return nil
}

// getTableString retrieves a string value from a Lua table.
func getTableString(table *rt.Table, key string) *string {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil
	}

	if s, ok := val.TryString(); ok {
		return &s
	}

	return nil
}

// getTableFloat retrieves a float64 value from a Lua table.
func getTableFloat(table *rt.Table, key string) *float64 {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil
	}

	if n, ok := val.TryFloat(); ok {
		return &n
	}

	if n, ok := val.TryInt(); ok {
		f := float64(n)
		return &f
	}

	return nil
}

// getTableInt retrieves an int value from a Lua table. Floats are truncated.
func getTableInt(table *rt.Table, key string) *int {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil
	}

	if n, ok := val.TryInt(); ok {
		i := int(n)
		return &i
	}

	if f, ok := val.TryFloat(); ok {
		i := int(f)
		return &i
	}

	return nil
}

// parseBool accepts yes/true/1 as true; anything else is false.
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1":
		return true
	default:
		return false
	}
}
