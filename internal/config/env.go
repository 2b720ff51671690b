package config

import (
	"os"
	"regexp"
	"strings"
)

// envRef matches ${NAME}, ${NAME:-default} and $NAME.
var envRef = regexp.MustCompile(`\$(?:\{([^}]+)\}|([A-Za-z_][A-Za-z0-9_]*))`)

// ExpandEnv replaces environment references in s. A default given with :-
// is used when the variable is unset or empty; otherwise the reference
// expands to the variable's value, possibly empty. A $ that starts no
// reference is kept.
func ExpandEnv(s string) string {
	return envRef.ReplaceAllStringFunc(s, func(ref string) string {
		m := envRef.FindStringSubmatch(ref)
		if m[2] != "" {
			return os.Getenv(m[2])
		}
		name, fallback, hasFallback := strings.Cut(m[1], ":-")
		if v := os.Getenv(name); v != "" || !hasFallback {
			return v
		}
		return fallback
	})
}

// ExpandEnvConfig expands environment variables in the string values of cfg
// that usually hold paths or identities: the window title, the screenshot
// directory and the game ID.
func ExpandEnvConfig(cfg *Config) {
	if cfg == nil {
		return
	}

	cfg.Window.Title = ExpandEnv(cfg.Window.Title)
	cfg.Screenshot.Dir = ExpandEnv(cfg.Screenshot.Dir)
	cfg.Game.ID = ExpandEnv(cfg.Game.ID)
}
