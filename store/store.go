package store

import (
	"errors"

	"github.com/bahadirdogan/gatsby/node"
)

// ErrDuplicateNode is returned when a node with an already known ID is
// inserted.
//
// This is a store-layer sentinel; the gatsby package may translate it into
// its public error contract.
var ErrDuplicateNode = errors.New("duplicate node id")

// Store is the record-store capability the query engine depends on.
//
// Implementations must preserve a stable candidate iteration order
// (typically insertion order): the engine's first-only mode returns the
// first match in that order.
type Store interface {
	// EnsureIndex idempotently builds the secondary index over the given
	// property chain restricted to nodes of the given types. A failed
	// build must be reported: silent partial indexing would corrupt query
	// results.
	EnsureIndex(chain []string, types []string) error

	// LookupByChain queries the typed-chain index for exact matches of
	// value, in candidate iteration order. ok is false when the index
	// cannot answer, e.g. the chain is not physically present on any node
	// of the given types (a schema-computed field).
	LookupByChain(chain []string, value node.Value, types []string) (nodes []*node.Node, ok bool)

	// GetByID resolves a node by its globally unique identifier.
	GetByID(id string) (*node.Node, bool)

	// EnumerateResolved appends every node of the given type to out, in
	// candidate iteration order.
	EnumerateResolved(typeName string, out *[]*node.Node)
}
