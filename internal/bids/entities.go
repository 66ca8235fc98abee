// Package bids parses BIDS-derivatives figure filenames into entity maps.
package bids

import (
	"path"
	"strconv"
	"strings"
)

// longNames maps the short entity prefixes used in filenames to the long
// keys reported to callers. This is the fixed derivatives vocabulary; a
// prefix outside this table is kept under its short key.
var longNames = map[string]string{
	"sub":   "subject",
	"ses":   "session",
	"task":  "task",
	"acq":   "acquisition",
	"ce":    "ceagent",
	"rec":   "reconstruction",
	"dir":   "direction",
	"run":   "run",
	"echo":  "echo",
	"space": "space",
	"den":   "density",
	"res":   "resolution",
	"hemi":  "hemisphere",
	"label": "label",
	"desc":  "desc",
}

// intEntities are parsed as ints when their value is numeric.
var intEntities = map[string]bool{
	"run":  true,
	"echo": true,
}

// Entities is an insertion-ordered entity-key -> value mapping. Values are
// strings, except int-valued entities (run, echo).
type Entities struct {
	keys []string
	vals map[string]any
}

// NewEntities returns an empty entity map.
func NewEntities() *Entities {
	return &Entities{vals: make(map[string]any)}
}

// Set stores a value, preserving first-insertion key order.
func (e *Entities) Set(key string, val any) {
	if _, ok := e.vals[key]; !ok {
		e.keys = append(e.keys, key)
	}
	e.vals[key] = val
}

// Get returns the value for key and whether it is present.
func (e *Entities) Get(key string) (any, bool) {
	v, ok := e.vals[key]
	return v, ok
}

// GetString returns the value for key as a string, or "" if absent.
func (e *Entities) GetString(key string) string {
	v, ok := e.vals[key]
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	}
	return ""
}

// Has reports whether key is present.
func (e *Entities) Has(key string) bool {
	_, ok := e.vals[key]
	return ok
}

// Keys returns the entity keys in insertion order.
func (e *Entities) Keys() []string {
	return e.keys
}

// Len returns the number of entities.
func (e *Entities) Len() int {
	return len(e.keys)
}

// ParseEntities parses the final segment of a figure path into entities.
// Unknown or absent entities are simply absent keys, never errors.
func ParseEntities(p string) *Entities {
	ents := NewEntities()
	name := path.Base(strings.ReplaceAll(p, "\\", "/"))

	ext := ""
	if dot := strings.Index(name, "."); dot >= 0 {
		ext = name[dot:]
		name = name[:dot]
	}

	parts := strings.Split(name, "_")
	suffix := ""
	if last := parts[len(parts)-1]; !strings.Contains(last, "-") {
		suffix = last
		parts = parts[:len(parts)-1]
	}

	for _, part := range parts {
		short, val, ok := strings.Cut(part, "-")
		if !ok || short == "" || val == "" {
			continue
		}
		key := short
		if long, known := longNames[short]; known {
			key = long
		}
		if intEntities[short] {
			if n, err := strconv.Atoi(val); err == nil {
				ents.Set(key, n)
				continue
			}
		}
		ents.Set(key, val)
	}
	if suffix != "" {
		ents.Set("suffix", suffix)
	}
	if ext != "" {
		ents.Set("extension", ext)
	}
	return ents
}
