// Package kv is the local durable key-value store behind the identity
// service: a SQLite table for real runs and a map for ephemeral ones.
//
// Contract shared by all implementations:
//   - Get of a missing key returns (nil, nil).
//   - Set overwrites.
//   - Delete of a missing key is not an error.
//   - WithTx applies the callback's writes only if it returns nil.
package kv
