package node

// Node is a uniquely identified, typed document. Nodes are owned by the
// store; the query engine treats them as immutable for the duration of a
// query.
type Node struct {
	// ID is the globally unique identifier.
	ID string

	// Type is the node's type name.
	Type string

	// Fields holds the nested field values.
	Fields map[string]Value
}

// Get resolves a dotted field path against the node.
//
// The identifier and type name are addressable as the reserved paths "id"
// and "type" unless the node carries fields with those names.
func (n *Node) Get(path string) (Value, bool) {
	if n == nil {
		return Value{}, false
	}
	if v, ok := Object(n.Fields).Get(path); ok {
		return v, true
	}
	switch path {
	case "id":
		return String(n.ID), true
	case "type":
		return String(n.Type), true
	}
	return Value{}, false
}
