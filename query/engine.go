package query

import (
	"errors"
	"fmt"

	"github.com/bahadirdogan/gatsby/filter"
	"github.com/bahadirdogan/gatsby/node"
	"github.com/bahadirdogan/gatsby/store"
)

// ErrIndexBuild is returned when the store fails to build a typed-chain
// index. It is a hard failure: silently skipping the index would let the
// fast path and the fallback disagree.
var ErrIndexBuild = errors.New("index build failed")

// QuerySpec describes one query: a friendly filter object, a multi-key
// sort specification, the candidate node types, the execution mode and an
// optional resolved-field overlay.
type QuerySpec struct {
	// Filter is the friendly nested filter object. A nil or empty filter
	// matches every candidate.
	Filter map[string]any

	// Sort is applied after filtering, earlier keys first.
	Sort []SortKey

	// Types are the candidate node type names.
	Types []string

	// FirstOnly makes the query return at most one node: the first match
	// in candidate iteration order.
	FirstOnly bool

	// Overlay holds schema-computed field values consulted preferentially
	// by filters and sort keys whose paths it covers.
	Overlay *node.Overlay
}

// Result is the outcome of a query.
//
// Absent is true only when a non-first-only query ran a real filter and
// matched nothing; it lets callers tell "filtered out everything" apart
// from "no filter given". First-only queries that find nothing return an
// empty Nodes slice with Absent false.
type Result struct {
	Nodes  []*node.Node
	Absent bool
}

// lookupState tags the outcome of the indexed fast path.
type lookupState uint8

const (
	// lookupFound: the index answered with at least one node.
	lookupFound lookupState = iota
	// lookupEmpty: the lookup is authoritative and there is no match.
	lookupEmpty
	// lookupUndetermined: the fast path could not answer; the engine must
	// retry through the general matcher. Never surfaced to callers.
	lookupUndetermined
)

// lookup is the tagged result of the indexed fast path.
type lookup struct {
	state lookupState
	nodes []*node.Node
}

// Engine executes queries against an explicitly provided store handle.
type Engine struct {
	store store.Store
}

// New creates an Engine backed by the given store.
func New(s store.Store) *Engine {
	return &Engine{store: s}
}

// Run executes the query: indexed fast path when the filter is a flat
// equality chain, general predicate matching otherwise, then sorting.
func (e *Engine) Run(spec QuerySpec) (Result, error) {
	hasFilter := len(spec.Filter) > 0

	if fc, ok := filter.AsFlatChain(spec.Filter); ok {
		lk, err := e.runIndexed(fc, spec.Types)
		if err != nil {
			return Result{}, err
		}
		switch lk.state {
		case lookupFound:
			nodes := lk.nodes
			if spec.FirstOnly && len(nodes) > 1 {
				nodes = nodes[:1]
			}
			return e.finish(nodes, spec, hasFilter), nil
		case lookupEmpty:
			return noMatch(spec.FirstOnly, hasFilter), nil
		}
		// Undetermined: fall through to the general matcher.
	}

	preds, err := filter.Compile(spec.Filter, spec.Overlay)
	if err != nil {
		return Result{}, err
	}

	nodes := e.matchNodes(preds, spec)
	if len(nodes) == 0 {
		return noMatch(spec.FirstOnly, hasFilter), nil
	}
	return e.finish(nodes, spec, hasFilter), nil
}

// runIndexed resolves a flat chain through the typed-chain index.
//
// The ["id"] chain is special: identifiers are unique across the whole
// node space, so the lookup is authoritative either way and a miss or a
// type mismatch is Empty, not Undetermined. For every other chain a miss
// is Undetermined: the value may live on a schema-computed field the index
// cannot see, and only the general matcher can decide.
func (e *Engine) runIndexed(fc *filter.FlatChain, types []string) (lookup, error) {
	if len(fc.Path) == 1 && fc.Path[0] == "id" {
		id, ok := fc.Value.AsString()
		if !ok {
			return lookup{state: lookupEmpty}, nil
		}
		n, found := e.store.GetByID(id)
		if !found || !typeAllowed(n.Type, types) {
			return lookup{state: lookupEmpty}, nil
		}
		return lookup{state: lookupFound, nodes: []*node.Node{n}}, nil
	}

	if err := e.store.EnsureIndex(fc.Path, types); err != nil {
		return lookup{}, fmt.Errorf("%w: %w", ErrIndexBuild, err)
	}

	nodes, ok := e.store.LookupByChain(fc.Path, fc.Value, types)
	if !ok || len(nodes) == 0 {
		return lookup{state: lookupUndetermined}, nil
	}
	return lookup{state: lookupFound, nodes: nodes}, nil
}

// finish sorts the result and wraps it.
func (e *Engine) finish(nodes []*node.Node, spec QuerySpec, hasFilter bool) Result {
	if len(nodes) == 0 {
		return noMatch(spec.FirstOnly, hasFilter)
	}
	sortNodes(nodes, spec.Sort, spec.Overlay)
	return Result{Nodes: nodes}
}

// noMatch builds the zero-result state: an empty slice in first-only mode,
// absent when a real filter matched nothing in all mode.
func noMatch(firstOnly, hasFilter bool) Result {
	if !firstOnly && hasFilter {
		return Result{Absent: true}
	}
	return Result{Nodes: []*node.Node{}}
}

func typeAllowed(typeName string, types []string) bool {
	for _, t := range types {
		if t == typeName {
			return true
		}
	}
	return false
}
