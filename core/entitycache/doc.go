// Package entitycache bulk-loads the child records of one parent entity
// into memory so the transformation never issues one query per child row.
//
// A Manager owns a set of Tables (one per child record type) and a small
// amount of per-entity bookkeeping: which parent ids are tracked, whether
// the cache is populated, and how it got populated. The lifecycle is
//
//	Uninitialized -> Populating(method) -> Populated -> Cleared
//
// and Clear must run once per entity, success or failure, so that peak
// memory stays bounded over a long run across thousands of entities.
//
// # Bulk loading
//
// BulkLoad fans out over the registered tables concurrently and fetches
// each table's rows in bounded id batches, so the IN-clause size stays
// within what the shop database tolerates. Fetching is delegated to a
// FetchFunc per table; the manager never builds SQL itself.
//
// # Fallback
//
// EnsureCached is the miss path: ids that were never tracked are fetched
// directly (same bounded batching), merged into every table, and added to
// the tracked set. A fallback fetch that itself fails escalates as a
// *FallbackError naming the unresolved ids; silent partial data is never
// returned.
//
// # Diagnostics
//
// CheckConsistency compares the tracked id set against what the tables
// actually hold and reports mismatches. It is a diagnostic, not a gate: a
// populated but inconsistent cache is still usable through EnsureCached.
package entitycache
