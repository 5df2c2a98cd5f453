package store

import (
	"sort"
	"strings"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/singleflight"

	"github.com/bahadirdogan/gatsby/node"
)

// MemoryStore is an in-memory Store with lazily built, memoized
// typed-chain indexes.
//
// Nodes are kept in insertion order and assigned dense row ids in that
// order; index posting lists are roaring bitmaps over those rows, so
// materializing a posting list preserves candidate iteration order.
//
// Architecture:
//   - Primary storage: insertion-ordered node log + id map
//   - Typed-chain indexes: (chain, type-set) key -> valueKey -> bitmap
//
// Reads and EnsureIndex are safe to call concurrently; a build for one
// (chain, type-set) key happens at most once even when raced.
type MemoryStore struct {
	mu sync.RWMutex

	nodes  []*node.Node
	rows   map[string]uint32
	byID   map[string]*node.Node
	byType map[string][]*node.Node

	indexes map[string]*chainIndex
	group   singleflight.Group
}

// chainIndex is a secondary index over one property chain restricted to a
// set of node types.
type chainIndex struct {
	// postings maps a value's stable key to the rows holding that value.
	postings map[string]*roaring.Bitmap

	// applicable is false when no candidate node physically carries the
	// chain, e.g. a schema-computed or proxied field.
	applicable bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rows:    make(map[string]uint32),
		byID:    make(map[string]*node.Node),
		byType:  make(map[string][]*node.Node),
		indexes: make(map[string]*chainIndex),
	}
}

// Insert adds a node to the store. The node's position in candidate
// iteration order is its insertion position.
//
// Inserting while queries are running is outside the engine's contract;
// indexes built before the insert are not invalidated.
func (s *MemoryStore) Insert(n *node.Node) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[n.ID]; exists {
		return ErrDuplicateNode
	}
	s.rows[n.ID] = uint32(len(s.nodes))
	s.nodes = append(s.nodes, n)
	s.byID[n.ID] = n
	s.byType[n.Type] = append(s.byType[n.Type], n)
	return nil
}

// Len returns the number of stored nodes.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.nodes)
}

// GetByID implements Store.
func (s *MemoryStore) GetByID(id string) (*node.Node, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.byID[id]
	return n, ok
}

// EnumerateResolved implements Store.
func (s *MemoryStore) EnumerateResolved(typeName string, out *[]*node.Node) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	*out = append(*out, s.byType[typeName]...)
}

// EnsureIndex implements Store. Identifier lookups use the id map
// directly, so the ["id"] chain never builds an index.
func (s *MemoryStore) EnsureIndex(chain []string, types []string) error {
	if len(chain) == 1 && chain[0] == "id" {
		return nil
	}

	key := indexKey(chain, types)

	s.mu.RLock()
	_, built := s.indexes[key]
	s.mu.RUnlock()
	if built {
		return nil
	}

	// Deduplicate racing builds of the same key; losers wait for the one
	// build and share its outcome.
	_, err, _ := s.group.Do(key, func() (any, error) {
		s.mu.RLock()
		_, built := s.indexes[key]
		s.mu.RUnlock()
		if built {
			return nil, nil
		}

		ix := s.buildIndex(chain, types)

		s.mu.Lock()
		s.indexes[key] = ix
		s.mu.Unlock()
		return nil, nil
	})
	return err
}

func (s *MemoryStore) buildIndex(chain []string, types []string) *chainIndex {
	s.mu.RLock()
	defer s.mu.RUnlock()

	path := strings.Join(chain, ".")
	ix := &chainIndex{postings: make(map[string]*roaring.Bitmap)}

	for _, t := range types {
		for _, n := range s.byType[t] {
			v, ok := n.Get(path)
			if !ok {
				continue
			}
			ix.applicable = true
			vk := v.Key()
			bm, ok := ix.postings[vk]
			if !ok {
				bm = roaring.New()
				ix.postings[vk] = bm
			}
			bm.Add(s.rows[n.ID])
		}
	}
	return ix
}

// LookupByChain implements Store.
func (s *MemoryStore) LookupByChain(chain []string, value node.Value, types []string) ([]*node.Node, bool) {
	if len(chain) == 1 && chain[0] == "id" {
		if id, ok := value.AsString(); ok {
			if n, found := s.GetByID(id); found {
				return []*node.Node{n}, true
			}
		}
		return nil, true
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ix, built := s.indexes[indexKey(chain, types)]
	if !built || !ix.applicable {
		return nil, false
	}

	bm, ok := ix.postings[value.Key()]
	if !ok {
		return nil, true
	}

	nodes := make([]*node.Node, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		nodes = append(nodes, s.nodes[it.Next()])
	}
	return nodes, true
}

// indexKey is the memoization key for one (chain, type-set) index. The
// type set is order-insensitive.
func indexKey(chain, types []string) string {
	sorted := make([]string, len(types))
	copy(sorted, types)
	sort.Strings(sorted)
	return strings.Join(chain, ".") + "|" + strings.Join(sorted, "\x1f")
}
