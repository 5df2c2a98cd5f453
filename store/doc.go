// Package store defines the record-store capability consumed by the query
// engine and provides an in-memory implementation with lazily built
// typed-chain indexes.
//
// The engine never reaches for an ambient store: the Store handle is passed
// explicitly wherever lookups or candidate enumeration happen.
package store
