package filter

import (
	"regexp"
	"sort"

	"github.com/bahadirdogan/gatsby/node"
)

// Op identifies a comparison operator. The set is closed: operator names
// outside it compile to OpUnknown, which never matches.
type Op uint8

const (
	// OpUnknown is an unrecognized operator. It always evaluates to
	// non-match.
	OpUnknown Op = iota
	// OpEq is value equality.
	OpEq
	// OpNe is value inequality.
	OpNe
	// OpIn is set membership.
	OpIn
	// OpNin is negated set membership.
	OpNin
	// OpGt is an ordered greater-than comparison.
	OpGt
	// OpGte is an ordered greater-or-equal comparison.
	OpGte
	// OpLt is an ordered less-than comparison.
	OpLt
	// OpLte is an ordered less-or-equal comparison.
	OpLte
	// OpRegex matches a compiled pattern. Both the regex and glob operator
	// names compile to it.
	OpRegex
	// OpElemMatch applies a nested predicate set to elements of an
	// array-valued field.
	OpElemMatch
)

// String returns the canonical tag of the operator.
func (op Op) String() string {
	switch op {
	case OpEq:
		return "$eq"
	case OpNe:
		return "$ne"
	case OpIn:
		return "$in"
	case OpNin:
		return "$nin"
	case OpGt:
		return "$gt"
	case OpGte:
		return "$gte"
	case OpLt:
		return "$lt"
	case OpLte:
		return "$lte"
	case OpRegex:
		return "$regex"
	case OpElemMatch:
		return "$elemMatch"
	default:
		return "$unknown"
	}
}

// opNames maps friendly operator names to their Op. The regex and glob
// names are absent: they need pattern compilation and are handled directly
// by Compile.
var opNames = map[string]Op{
	"eq":        OpEq,
	"ne":        OpNe,
	"in":        OpIn,
	"nin":       OpNin,
	"gt":        OpGt,
	"gte":       OpGte,
	"lt":        OpLt,
	"lte":       OpLte,
	"elemMatch": OpElemMatch,
}

// Predicate is one entry of a canonical predicate set: a single comparison
// against one dotted field path.
type Predicate struct {
	// Path is the fully dotted field path, possibly rewritten into the
	// resolved-field overlay namespace.
	Path string

	// Op is the comparison operator.
	Op Op

	// Raw preserves the original operator name when Op is OpUnknown.
	Raw string

	// Value is the comparison operand.
	Value node.Value

	// Re is the compiled pattern for OpRegex.
	Re *regexp.Regexp

	// Elem is the nested predicate set for OpElemMatch. Its paths are
	// relative to the array elements.
	Elem Set
}

// Set is a canonical predicate set: predicates ANDed together. An empty
// set matches every node.
type Set []Predicate

// Compile flattens a friendly filter into a canonical predicate set.
//
// Dotted paths covered by the overlay are rewritten into the overlay
// namespace after flattening, so evaluation reads precomputed values
// instead of the raw node. Paths inside elemMatch are element-relative and
// never rewritten.
func Compile(raw map[string]any, overlay *node.Overlay) (Set, error) {
	set, err := compile(raw, "", overlay)
	if err != nil {
		return nil, err
	}
	sortSet(set)
	return set, nil
}

// sortSet imposes a canonical order so that map iteration does not leak
// into the compiled output.
func sortSet(set Set) {
	sort.SliceStable(set, func(i, j int) bool {
		if set[i].Path != set[j].Path {
			return set[i].Path < set[j].Path
		}
		if set[i].Op != set[j].Op {
			return set[i].Op < set[j].Op
		}
		return set[i].Raw < set[j].Raw
	})
}

func compile(raw map[string]any, prefix string, overlay *node.Overlay) (Set, error) {
	var set Set
	for key, val := range raw {
		if op, ok := opNames[key]; ok {
			p, err := compileOp(op, prefix, val, overlay)
			if err != nil {
				return nil, err
			}
			set = append(set, p)
			continue
		}

		switch key {
		case "regex":
			re, err := CompileRegex(val)
			if err != nil {
				return nil, err
			}
			set = append(set, Predicate{Path: rewrite(prefix, overlay), Op: OpRegex, Re: re})
		case "glob":
			re, err := CompileGlob(val)
			if err != nil {
				return nil, err
			}
			set = append(set, Predicate{Path: rewrite(prefix, overlay), Op: OpRegex, Re: re})
		default:
			if sub, ok := val.(map[string]any); ok {
				nested, err := compile(sub, join(prefix, key), overlay)
				if err != nil {
					return nil, err
				}
				set = append(set, nested...)
				continue
			}
			// A leaf under an unrecognized name: keep it as a literal
			// operator tag that never matches.
			set = append(set, Predicate{Path: prefix, Op: OpUnknown, Raw: key})
		}
	}
	return set, nil
}

func compileOp(op Op, prefix string, val any, overlay *node.Overlay) (Predicate, error) {
	if op == OpElemMatch {
		sub, ok := val.(map[string]any)
		if !ok {
			return Predicate{Path: rewrite(prefix, overlay), Op: OpElemMatch}, nil
		}
		// Element-relative paths: compiled as a unit, not flattened into
		// the enclosing dotted notation.
		elem, err := compile(sub, "", nil)
		if err != nil {
			return Predicate{}, err
		}
		sortSet(elem)
		return Predicate{Path: rewrite(prefix, overlay), Op: OpElemMatch, Elem: elem}, nil
	}

	v, err := node.FromAny(val)
	if err != nil {
		return Predicate{}, err
	}
	return Predicate{Path: rewrite(prefix, overlay), Op: op, Value: v}, nil
}

func rewrite(path string, overlay *node.Overlay) string {
	if overlay.Covers(path) {
		return node.ResolvedPath(path)
	}
	return path
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
