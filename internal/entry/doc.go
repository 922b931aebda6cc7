// Package entry is the schema engine behind pipeline configuration analysis.
//
// A configuration document arrives as a raw tree of maps, slices and scalars.
// Each position in that tree is wrapped by a Node that knows how to validate
// its own shape and, in a second pass, compose itself against values resolved
// elsewhere in the document (global defaults, global variables, workflow
// rules). The concrete node catalog lives in the ci package; this package
// provides the protocol every node follows:
//
//   - Base carries the raw value, location, error list and children of a node.
//   - Chain runs a shape check first and, only when the shape matches, every
//     structural and domain check, collecting all of their messages.
//   - Table is the per-node registration of permitted keys. Keys outside the
//     table, or gated behind a disabled feature, are reported together.
//   - Candidates selects a concrete node type for a raw hash by ordered
//     matching predicates.
//   - Directive, Fallback and MergeVariables resolve inherited values as pure
//     functions.
//
// Nodes never perform I/O and never panic on malformed input. A tree must be
// composed by a single goroutine; independent trees may be composed
// concurrently.
package entry
