// Package filter compiles friendly nested filter objects into a canonical
// predicate form and evaluates structural properties of raw filters.
//
// A friendly filter is a nested map: plain keys descend into fields and are
// flattened into dotted paths, while recognized operator names (eq, ne, in,
// nin, gt, gte, lt, lte, regex, glob, elemMatch) terminate a path with a
// comparison. Unrecognized operator names are kept as an explicit unknown
// variant that never matches, so unknown extensions degrade instead of
// failing.
package filter
