package filter

import "github.com/bahadirdogan/gatsby/node"

// FlatChain is a raw filter reduced to a single property chain and one
// equality target: the indexable fast-path shape.
type FlatChain struct {
	// Path is the property chain without the trailing operator.
	Path []string

	// Value is the equality target.
	Value node.Value
}

// AsFlatChain reports whether the raw filter reduces to exactly one
// property chain with exactly one "eq" comparison.
//
// The descent requires exactly one key per level. An elemMatch level
// disqualifies (array matches are never indexable this way), as does a
// terminal operator other than "eq" or a terminal value that is not a
// string, number or boolean.
func AsFlatChain(raw map[string]any) (*FlatChain, bool) {
	var chain []string
	cur := raw

	for {
		if len(cur) != 1 {
			return nil, false
		}

		var key string
		var val any
		for k, v := range cur {
			key, val = k, v
		}
		if key == "elemMatch" {
			return nil, false
		}
		chain = append(chain, key)

		if sub, ok := val.(map[string]any); ok {
			cur = sub
			continue
		}

		v, err := node.FromAny(val)
		if err != nil || !v.IsScalar() {
			return nil, false
		}
		if chain[len(chain)-1] != "eq" {
			return nil, false
		}
		return &FlatChain{Path: chain[:len(chain)-1], Value: v}, true
	}
}
