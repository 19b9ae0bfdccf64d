// Package batch runs a matcher over large record sets in bounded chunks.
//
// The orchestrator owns the mechanics that are the same for every matcher:
// dropping duplicate record ids (the last occurrence wins, mirroring how
// repeated rows overwrite each other downstream), splitting the input into
// chunks so progress is observable and memory stays flat, running an
// optional batch prematcher as a fast path, and folding every result into
// one matching.Statistics.
//
// # Prematching
//
// A Prematcher resolves whole chunks in one pass, typically through a
// precomputed key table. Prematch hits at or above the configured
// confidence threshold are accepted as-is; everything else falls through to
// the per-record matcher. A prematcher that fails or panics degrades its
// chunk to per-record matching and the run continues.
//
// # Failure semantics
//
// Individual records never abort a run: matchers report failures as result
// data. Run returns an error only for context cancellation, and then the
// results and statistics accumulated so far are still returned.
package batch
