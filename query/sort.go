package query

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bahadirdogan/gatsby/node"
)

// Direction is a sort direction.
type Direction uint8

const (
	// Ascending sorts smallest first.
	Ascending Direction = iota
	// Descending sorts largest first.
	Descending
)

// ParseDirection parses a direction specification case-insensitively.
// Accepted forms: "asc", "ascending", "desc", "descending".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	default:
		return Ascending, fmt.Errorf("unknown sort direction %q", s)
	}
}

// SortKey is one (field path, direction) pair of a sort specification.
// Paths use the same dotted notation as filters.
type SortKey struct {
	Path      string
	Direction Direction
}

// sortNodes applies a stable multi-key sort in place. Earlier keys take
// priority on ties; each key honors its own direction.
//
// Key values resolve through the overlay when it covers the path (the path
// itself or a nested descendant of a covered path). Absent values compare
// greater than any present value, so they order last ascending and first
// descending.
func sortNodes(nodes []*node.Node, keys []SortKey, overlay *node.Overlay) {
	if len(keys) == 0 || len(nodes) < 2 {
		return
	}

	sort.SliceStable(nodes, func(i, j int) bool {
		for _, key := range keys {
			c := compareKey(nodes[i], nodes[j], key, overlay)
			if c == 0 {
				continue
			}
			return c < 0
		}
		return false
	})
}

func compareKey(a, b *node.Node, key SortKey, overlay *node.Overlay) int {
	va, oka := sortValue(a, key.Path, overlay)
	vb, okb := sortValue(b, key.Path, overlay)

	var c int
	switch {
	case oka && okb:
		c = node.Compare(va, vb)
	case oka:
		c = -1
	case okb:
		c = 1
	default:
		return 0
	}

	if key.Direction == Descending {
		c = -c
	}
	return c
}

func sortValue(n *node.Node, path string, overlay *node.Overlay) (node.Value, bool) {
	if overlay.Covers(path) {
		return overlay.Lookup(n.ID, path)
	}
	return n.Get(path)
}
