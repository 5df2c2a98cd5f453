// Package node provides the record model for the query engine.
//
// A Node is a typed, semi-structured document: a globally unique ID, a type
// name and an arbitrarily nested mapping of fields. Field values use a small
// typed Value representation designed to make filtering fast and predictable:
// no reflection and no fmt-based stringification.
package node
