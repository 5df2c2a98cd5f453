package query

import (
	"strings"

	"github.com/bahadirdogan/gatsby/filter"
	"github.com/bahadirdogan/gatsby/node"
)

// matchNodes evaluates a canonical predicate set against the candidate
// node set of the query's types, in candidate iteration order.
func (e *Engine) matchNodes(preds filter.Set, spec QuerySpec) []*node.Node {
	// Unique-identifier shortcut: a single id equality resolves by direct
	// lookup instead of scanning. The found node's type must still be one
	// of the candidate types.
	if len(preds) == 1 && preds[0].Path == "id" && preds[0].Op == filter.OpEq {
		id, ok := preds[0].Value.AsString()
		if !ok {
			return nil
		}
		n, found := e.store.GetByID(id)
		if !found || !typeAllowed(n.Type, spec.Types) {
			return nil
		}
		return []*node.Node{n}
	}

	var candidates []*node.Node
	for _, t := range spec.Types {
		e.store.EnumerateResolved(t, &candidates)
	}

	var matched []*node.Node
	for _, n := range candidates {
		if matches(preds, n, spec.Overlay) {
			matched = append(matched, n)
			if spec.FirstOnly {
				break
			}
		}
	}
	return matched
}

// matches reports whether a node satisfies every predicate in the set. An
// empty set matches every node.
func matches(preds filter.Set, n *node.Node, overlay *node.Overlay) bool {
	for i := range preds {
		v, ok := resolveValue(n, preds[i].Path, overlay)
		if !evalPredicate(preds[i], v, ok) {
			return false
		}
	}
	return true
}

// resolveValue reads a dotted path off a node, redirecting paths in the
// overlay namespace to the overlay's precomputed values.
func resolveValue(n *node.Node, path string, overlay *node.Overlay) (node.Value, bool) {
	if rest, ok := strings.CutPrefix(path, node.ResolvedPrefix+"."); ok {
		return overlay.Lookup(n.ID, rest)
	}
	return n.Get(path)
}

// evalPredicate applies one predicate to a resolved field value. exists is
// false when the path is absent from the node; inequality and negated
// membership treat an absent field as a non-matching value and succeed.
func evalPredicate(p filter.Predicate, v node.Value, exists bool) bool {
	switch p.Op {
	case filter.OpEq:
		return exists && node.Equal(v, p.Value)
	case filter.OpNe:
		return !exists || !node.Equal(v, p.Value)
	case filter.OpIn:
		return exists && valueIn(v, p.Value)
	case filter.OpNin:
		return !exists || !valueIn(v, p.Value)
	case filter.OpGt:
		return exists && node.Greater(v, p.Value)
	case filter.OpGte:
		return exists && (node.Greater(v, p.Value) || node.Equal(v, p.Value))
	case filter.OpLt:
		return exists && node.Less(v, p.Value)
	case filter.OpLte:
		return exists && (node.Less(v, p.Value) || node.Equal(v, p.Value))
	case filter.OpRegex:
		if !exists || p.Re == nil {
			return false
		}
		s, ok := v.AsString()
		return ok && p.Re.MatchString(s)
	case filter.OpElemMatch:
		if !exists {
			return false
		}
		elems, ok := v.AsArray()
		if !ok {
			return false
		}
		for _, elem := range elems {
			if elemMatches(p.Elem, elem) {
				return true
			}
		}
		return false
	default:
		// Unknown operators never match.
		return false
	}
}

// elemMatches applies a nested predicate set to one array element. Paths
// are element-relative; an empty path addresses the element itself.
func elemMatches(preds filter.Set, elem node.Value) bool {
	for i := range preds {
		v, ok := elem.Get(preds[i].Path)
		if !evalPredicate(preds[i], v, ok) {
			return false
		}
	}
	return true
}

func valueIn(v, set node.Value) bool {
	elems, ok := set.AsArray()
	if !ok {
		return false
	}
	for _, e := range elems {
		if node.Equal(v, e) {
			return true
		}
	}
	return false
}
