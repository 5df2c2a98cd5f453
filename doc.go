// Package gatsby provides an in-memory query engine for typed,
// semi-structured records ("nodes").
//
// Queries combine a declarative, MongoDB-style filter expression with a
// multi-key sort specification. Most real-world filters are single
// equality lookups; those resolve in near-constant time through lazily
// built typed-chain indexes, while arbitrary nested expressions run
// through a fully general predicate matcher over the candidate node set.
// The two paths never disagree: whenever the index cannot answer, the
// engine falls back to the general matcher.
//
// # Quick start
//
//	st := store.NewMemoryStore()
//	_ = st.Insert(&node.Node{
//	    ID:   "1",
//	    Type: "Animal",
//	    Fields: node.MustFromMap(map[string]any{"name": "Fox"}),
//	})
//
//	g := gatsby.New(st)
//	res, err := g.RunQuery(ctx, query.QuerySpec{
//	    Filter: map[string]any{"name": map[string]any{"eq": "Fox"}},
//	    Types:  []string{"Animal"},
//	})
//
// Filters support eq, ne, in, nin, gt, gte, lt, lte, regex, glob and
// elemMatch. Schema-computed field values that are not physically present
// on the raw nodes are supplied through a resolved-field overlay, which
// both filtering and sorting consult preferentially.
package gatsby
