// Package query executes filter and sort specifications against a node
// store.
//
// The engine resolves a query one of two ways: a filter that reduces to a
// single indexable equality chain goes through the typed-chain index fast
// path; everything else is compiled into a canonical predicate set and
// evaluated against the candidate node set. The fast path may also decline
// (undetermined), in which case the engine re-runs the query through the
// general matcher. Results are sorted last, with a stable multi-key,
// overlay-aware ordering.
package query
