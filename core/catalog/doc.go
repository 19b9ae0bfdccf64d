// Package catalog loads the vehicle configuration and parts terminology
// master files into an immutable in-memory index.
//
// The index is built once at process start and is read-only afterwards, so it
// can be shared across concurrently processed entities without locking.
//
// # Files
//
// The catalog is distributed as a set of named TSV files (header row, tab
// separated). Required files (make, model, year, base_vehicle, parts,
// parts_description) abort startup when missing or unparsable. Optional files
// (submodel, engine_config, transmission_config, body_config, brake_config,
// part_numbers, vehicle_keys, make_aliases) degrade their dimension to an
// empty index with a logged warning.
//
// # Sources
//
// Files are read through the Source interface. DirSource reads a local
// directory; ObjectSource reads a prefix in object storage, which is how the
// catalog drop is usually distributed.
//
// # Normalization
//
// All name lookups share one normal form: lowercase, non-alphanumeric runs
// collapsed to single spaces, trimmed. A hand-maintained alias table maps
// common industry make-name variants ("CHEVY", "VW", ...) into the same
// normalized lookup.
package catalog
