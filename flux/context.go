package flux

import (
	"fmt"
	"sort"
	"strings"

	"github.com/c360/fluxkit/errors"
)

// Context is an immutable key/value map carrying ambient metadata (trace
// identifiers, user identity) opposite to the direction of data flow.
// The zero value is the empty context. Every Put returns a new value;
// an existing Context is never mutated, so values can be shared freely
// across stages without aliasing concerns.
type Context struct {
	entries map[string]any
}

// EmptyContext returns the canonical empty context.
func EmptyContext() Context {
	return Context{}
}

// Put returns a new Context with key set to value. The receiver is
// unchanged.
func (c Context) Put(key string, value any) Context {
	next := make(map[string]any, len(c.entries)+1)
	for k, v := range c.entries {
		next[k] = v
	}
	next[key] = value
	return Context{entries: next}
}

// Get returns the value for key, or a classified ErrKeyNotFound error when
// the key is absent. Use GetOrDefault for lookups that must not fail.
func (c Context) Get(key string) (any, error) {
	if v, ok := c.entries[key]; ok {
		return v, nil
	}
	return nil, errors.WrapInvalid(errors.ErrKeyNotFound,
		"Context", "Get", fmt.Sprintf("lookup of key %q", key))
}

// GetOrDefault returns the value for key, or def when the key is absent.
func (c Context) GetOrDefault(key string, def any) any {
	if v, ok := c.entries[key]; ok {
		return v
	}
	return def
}

// HasKey reports whether key is present.
func (c Context) HasKey(key string) bool {
	_, ok := c.entries[key]
	return ok
}

// Len returns the number of entries.
func (c Context) Len() int {
	return len(c.entries)
}

// String renders the context in a stable, human-readable form for
// diagnostics. Keys are sorted so log output is deterministic.
func (c Context) String() string {
	if len(c.entries) == 0 {
		return "Context{}"
	}

	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("Context{")
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%v", k, c.entries[k])
	}
	b.WriteString("}")
	return b.String()
}
