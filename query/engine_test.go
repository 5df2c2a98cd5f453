package query

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bahadirdogan/gatsby/node"
	"github.com/bahadirdogan/gatsby/store"
)

// spyStore wraps a Store and records index usage.
type spyStore struct {
	store.Store
	ensureCalls int
	lookupCalls int
}

func (s *spyStore) EnsureIndex(chain []string, types []string) error {
	s.ensureCalls++
	return s.Store.EnsureIndex(chain, types)
}

func (s *spyStore) LookupByChain(chain []string, value node.Value, types []string) ([]*node.Node, bool) {
	s.lookupCalls++
	return s.Store.LookupByChain(chain, value, types)
}

// failingStore reports every index build as failed.
type failingStore struct {
	store.Store
}

func (failingStore) EnsureIndex([]string, []string) error {
	return errors.New("out of memory")
}

func seedStore(t *testing.T) *store.MemoryStore {
	t.Helper()
	s := store.NewMemoryStore()
	nodes := []*node.Node{
		{ID: "1", Type: "Animal", Fields: node.MustFromMap(map[string]any{
			"name": "Fox", "age": 3, "tags": []any{"red", "fast"},
		})},
		{ID: "2", Type: "Animal", Fields: node.MustFromMap(map[string]any{
			"name": "Owl", "age": 5, "tags": []any{"brown"},
		})},
		{ID: "3", Type: "Animal", Fields: node.MustFromMap(map[string]any{
			"name": "Bear", "age": 3, "tags": []any{"brown", "big"},
		})},
		{ID: "4", Type: "Plant", Fields: node.MustFromMap(map[string]any{
			"name": "Fox", "age": 1,
		})},
	}
	for _, n := range nodes {
		require.NoError(t, s.Insert(n))
	}
	return s
}

func ids(nodes []*node.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID
	}
	return out
}

func TestRunFastPathSingleEquality(t *testing.T) {
	spy := &spyStore{Store: seedStore(t)}
	e := New(spy)

	res, err := e.Run(QuerySpec{
		Filter: map[string]any{"name": map[string]any{"eq": "Fox"}},
		Types:  []string{"Animal"},
	})
	require.NoError(t, err)
	assert.False(t, res.Absent)
	assert.Equal(t, []string{"1"}, ids(res.Nodes))
	assert.Equal(t, 1, spy.ensureCalls)
	assert.Equal(t, 1, spy.lookupCalls)
}

func TestRunFastPathAndFallbackAgree(t *testing.T) {
	s := seedStore(t)

	fast, err := New(s).Run(QuerySpec{
		Filter: map[string]any{"age": map[string]any{"eq": 3}},
		Types:  []string{"Animal"},
	})
	require.NoError(t, err)

	// The same equality phrased with a second always-true condition is not
	// a flat chain, so it runs through the general matcher.
	slow, err := New(s).Run(QuerySpec{
		Filter: map[string]any{
			"age":  map[string]any{"eq": 3},
			"name": map[string]any{"ne": ""},
		},
		Types: []string{"Animal"},
	})
	require.NoError(t, err)

	assert.Equal(t, ids(fast.Nodes), ids(slow.Nodes))
	assert.Equal(t, []string{"1", "3"}, ids(fast.Nodes))
}

func TestRunElemMatchAlwaysFallsBack(t *testing.T) {
	spy := &spyStore{Store: seedStore(t)}
	e := New(spy)

	res, err := e.Run(QuerySpec{
		Filter: map[string]any{"tags": map[string]any{"elemMatch": map[string]any{"eq": "brown"}}},
		Types:  []string{"Animal"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "3"}, ids(res.Nodes))
	// elemMatch disqualifies the flat-chain fast path entirely.
	assert.Zero(t, spy.ensureCalls)
	assert.Zero(t, spy.lookupCalls)
}

func TestRunIDFilter(t *testing.T) {
	e := New(seedStore(t))

	res, err := e.Run(QuerySpec{
		Filter: map[string]any{"id": map[string]any{"eq": "1"}},
		Types:  []string{"Animal"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, ids(res.Nodes))

	// The identifier exists, but its type is not a candidate.
	res, err = e.Run(QuerySpec{
		Filter: map[string]any{"id": map[string]any{"eq": "4"}},
		Types:  []string{"Animal"},
	})
	require.NoError(t, err)
	assert.True(t, res.Absent)

	res, err = e.Run(QuerySpec{
		Filter:    map[string]any{"id": map[string]any{"eq": "4"}},
		Types:     []string{"Animal"},
		FirstOnly: true,
	})
	require.NoError(t, err)
	assert.False(t, res.Absent)
	require.NotNil(t, res.Nodes)
	assert.Empty(t, res.Nodes)
}

func TestRunZeroMatchStates(t *testing.T) {
	e := New(seedStore(t))

	// All mode with a real filter: absent, not an empty array.
	res, err := e.Run(QuerySpec{
		Filter: map[string]any{"name": map[string]any{"eq": "Wolf"}},
		Types:  []string{"Animal"},
	})
	require.NoError(t, err)
	assert.True(t, res.Absent)
	assert.Nil(t, res.Nodes)

	// First-only: an empty array.
	res, err = e.Run(QuerySpec{
		Filter:    map[string]any{"name": map[string]any{"eq": "Wolf"}},
		Types:     []string{"Animal"},
		FirstOnly: true,
	})
	require.NoError(t, err)
	assert.False(t, res.Absent)
	require.NotNil(t, res.Nodes)
	assert.Empty(t, res.Nodes)

	// No filter over an empty candidate set: empty, not absent.
	res, err = e.Run(QuerySpec{Types: []string{"Mineral"}})
	require.NoError(t, err)
	assert.False(t, res.Absent)
	assert.Empty(t, res.Nodes)
}

func TestRunNoFilterMatchesEverything(t *testing.T) {
	e := New(seedStore(t))

	res, err := e.Run(QuerySpec{Types: []string{"Animal"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, ids(res.Nodes))
}

func TestRunFirstOnlyIsPrefixOfAllMode(t *testing.T) {
	e := New(seedStore(t))
	filter := map[string]any{"age": map[string]any{"gte": 3}}

	all, err := e.Run(QuerySpec{Filter: filter, Types: []string{"Animal"}})
	require.NoError(t, err)

	first, err := e.Run(QuerySpec{Filter: filter, Types: []string{"Animal"}, FirstOnly: true})
	require.NoError(t, err)

	require.Len(t, first.Nodes, 1)
	assert.Equal(t, all.Nodes[0].ID, first.Nodes[0].ID)
}

func TestRunOperatorSemantics(t *testing.T) {
	e := New(seedStore(t))

	tests := []struct {
		name   string
		filter map[string]any
		want   []string
	}{
		{
			name:   "ne",
			filter: map[string]any{"name": map[string]any{"ne": "Fox"}},
			want:   []string{"2", "3"},
		},
		{
			name:   "in",
			filter: map[string]any{"name": map[string]any{"in": []any{"Fox", "Bear"}}},
			want:   []string{"1", "3"},
		},
		{
			name:   "nin",
			filter: map[string]any{"name": map[string]any{"nin": []any{"Fox", "Bear"}}},
			want:   []string{"2"},
		},
		{
			name:   "gt and lte combine",
			filter: map[string]any{"age": map[string]any{"gt": 2, "lte": 5}},
			want:   []string{"1", "2", "3"},
		},
		{
			name:   "lt",
			filter: map[string]any{"age": map[string]any{"lt": 4}},
			want:   []string{"1", "3"},
		},
		{
			name:   "regex",
			filter: map[string]any{"name": map[string]any{"regex": "/^[FB]/"}},
			want:   []string{"1", "3"},
		},
		{
			name:   "glob",
			filter: map[string]any{"name": map[string]any{"glob": "Fo?"}},
			want:   []string{"1"},
		},
		{
			name:   "ne matches nodes missing the field",
			filter: map[string]any{"missing": map[string]any{"ne": "x"}},
			want:   []string{"1", "2", "3"},
		},
		{
			name:   "unknown operator never matches",
			filter: map[string]any{"name": map[string]any{"near": "Fox"}},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := e.Run(QuerySpec{Filter: tt.filter, Types: []string{"Animal"}})
			require.NoError(t, err)
			if tt.want == nil {
				assert.True(t, res.Absent)
				return
			}
			assert.Equal(t, tt.want, ids(res.Nodes))
		})
	}
}

func TestRunIdempotent(t *testing.T) {
	e := New(seedStore(t))
	spec := QuerySpec{
		Filter: map[string]any{"age": map[string]any{"gte": 3}},
		Types:  []string{"Animal"},
		Sort:   []SortKey{{Path: "name"}},
	}

	first, err := e.Run(spec)
	require.NoError(t, err)
	second, err := e.Run(spec)
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "1", "2"}, ids(first.Nodes))
	assert.Equal(t, ids(first.Nodes), ids(second.Nodes))
}

func TestRunUndeterminedFallsBackToOverlay(t *testing.T) {
	s := seedStore(t)
	ov := node.NewOverlay()
	ov.Set("1", "computedSlug", node.String("/fox"))
	ov.Set("2", "computedSlug", node.String("/owl"))
	ov.Set("3", "computedSlug", node.String("/bear"))

	spy := &spyStore{Store: s}
	e := New(spy)

	// Flat chain over a field no node physically carries: the index is
	// inapplicable, the fast path declines, the fallback reads the
	// overlay.
	res, err := e.Run(QuerySpec{
		Filter:  map[string]any{"computedSlug": map[string]any{"eq": "/owl"}},
		Types:   []string{"Animal"},
		Overlay: ov,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, ids(res.Nodes))
	assert.Equal(t, 1, spy.ensureCalls)
}

func TestRunIndexMissStillFallsBack(t *testing.T) {
	spy := &spyStore{Store: seedStore(t)}
	e := New(spy)

	// "name" is indexed and physically present, but no Animal is named
	// Wolf. The fast path reports undetermined rather than empty, so the
	// engine re-scans before concluding absence.
	res, err := e.Run(QuerySpec{
		Filter: map[string]any{"name": map[string]any{"eq": "Wolf"}},
		Types:  []string{"Animal"},
	})
	require.NoError(t, err)
	assert.True(t, res.Absent)
	assert.Equal(t, 1, spy.lookupCalls)
}

func TestRunIndexBuildFailurePropagates(t *testing.T) {
	e := New(failingStore{Store: seedStore(t)})

	_, err := e.Run(QuerySpec{
		Filter: map[string]any{"name": map[string]any{"eq": "Fox"}},
		Types:  []string{"Animal"},
	})
	require.ErrorIs(t, err, ErrIndexBuild)
}
