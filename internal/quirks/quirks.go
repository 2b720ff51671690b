// Package quirks holds per-title fixups applied to stand-alone primary
// surfaces after the client unlocks them.
package quirks

import (
	"sort"
	"strings"

	"github.com/opd-ai/go-glrage/internal/config"
	"github.com/opd-ai/go-glrage/internal/ddraw"
)

// LineDoubling copies every even scanline over the odd scanline below it.
// Titles that render interlaced video sequences only write the even lines.
var LineDoubling ddraw.PostWriteFilter = ddraw.PostWriteFilterFunc(doubleLines)

func doubleLines(desc ddraw.SurfaceDesc, buf []byte) {
	pitch := desc.Pitch
	if pitch <= 0 {
		return
	}
	rows := min(desc.Height, len(buf)/pitch)
	for y := 0; y+1 < rows; y += 2 {
		src := buf[y*pitch : (y+1)*pitch]
		copy(buf[(y+1)*pitch:(y+2)*pitch], src)
	}
}

// Registry maps game identity substrings to post-write filters.
// The zero value has no entries.
type Registry struct {
	keys    []string
	filters map[string]ddraw.PostWriteFilter
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{filters: make(map[string]ddraw.PostWriteFilter)}
}

// FromConfig builds a registry from the quirk table of cfg.
func FromConfig(cfg config.Config) *Registry {
	r := NewRegistry()
	for key, q := range cfg.Quirks {
		if q.LineDoubling {
			r.Register(key, LineDoubling)
		}
	}
	return r
}

// Register adds or replaces the filter for identities containing key.
// Keys are compared case-insensitively.
func (r *Registry) Register(key string, f ddraw.PostWriteFilter) {
	if r.filters == nil {
		r.filters = make(map[string]ddraw.PostWriteFilter)
	}
	key = strings.ToLower(key)
	if _, ok := r.filters[key]; !ok {
		r.keys = append(r.keys, key)
		sort.Strings(r.keys)
	}
	r.filters[key] = f
}

// Len returns the number of registered keys.
func (r *Registry) Len() int {
	return len(r.keys)
}

// PostWriteFilter returns the filter of the first key, in sorted order, that
// is a substring of gameID, or nil.
func (r *Registry) PostWriteFilter(gameID string) ddraw.PostWriteFilter {
	if r == nil || gameID == "" {
		return nil
	}
	id := strings.ToLower(gameID)
	for _, key := range r.keys {
		if key != "" && strings.Contains(id, key) {
			return r.filters[key]
		}
	}
	return nil
}
