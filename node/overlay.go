package node

import "strings"

// ResolvedPrefix is the namespace that filter and sort paths are rewritten
// into when the resolved-field overlay covers them. Lookups under this
// prefix read from the overlay instead of the raw node.
const ResolvedPrefix = "__resolved"

// ResolvedPath prefixes a dotted path with the overlay namespace.
func ResolvedPath(path string) string {
	return ResolvedPrefix + "." + path
}

// Overlay holds schema-computed field values that are not physically
// present on the raw nodes, keyed by node ID and dotted field path.
//
// A nil Overlay is valid and covers nothing.
type Overlay struct {
	paths  map[string]struct{}
	values map[string]map[string]Value
}

// NewOverlay creates an empty overlay.
func NewOverlay() *Overlay {
	return &Overlay{
		paths:  make(map[string]struct{}),
		values: make(map[string]map[string]Value),
	}
}

// Set records the resolved value of a dotted path for one node and marks
// the path as overlay-covered.
func (o *Overlay) Set(nodeID, path string, v Value) {
	o.paths[path] = struct{}{}
	byPath, ok := o.values[nodeID]
	if !ok {
		byPath = make(map[string]Value)
		o.values[nodeID] = byPath
	}
	byPath[path] = v
}

// Covers reports whether the given dotted path must be read from the
// overlay: either the path itself is registered, or it is a nested
// descendant of a registered path.
func (o *Overlay) Covers(path string) bool {
	if o == nil {
		return false
	}
	if _, ok := o.paths[path]; ok {
		return true
	}
	for p := range o.paths {
		if strings.HasPrefix(path, p+".") {
			return true
		}
	}
	return false
}

// Lookup resolves a dotted path for one node from the overlay. Descendant
// paths of a registered path descend into the registered value.
func (o *Overlay) Lookup(nodeID, path string) (Value, bool) {
	if o == nil {
		return Value{}, false
	}
	byPath, ok := o.values[nodeID]
	if !ok {
		return Value{}, false
	}
	if v, ok := byPath[path]; ok {
		return v, true
	}
	for p, v := range byPath {
		if strings.HasPrefix(path, p+".") {
			return v.Get(path[len(p)+1:])
		}
	}
	return Value{}, false
}
