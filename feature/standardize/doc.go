// Package standardize implements the shop record standardization feature.
//
// It pulls the records of one shop entity at a time out of the shop
// database, resolves every unit and service part line against the canonical
// vehicle catalog, and writes the enriched records to object storage as one
// JSON document per entity.
//
// # Pipeline
//
// Entities pass through a strict FIFO queue (`core/queue`) so exactly one
// entity owns the cache and the database at a time:
//  1. Admission: Enqueue the entity and wait for the turn.
//  2. Load: Bulk-load all customer-scoped tables into the entity cache.
//  3. Match: Run the vehicle and part batch orchestrators over the cached
//     units and part lines, decoding VINs for incomplete units first.
//  4. Write: Assemble the per-customer output tree and hand it to the Sink.
//
// # Components
//
//   - Service: Orchestrates the pipeline and exposes single-descriptor
//     matching for the HTTP surface.
//   - Handler: Exposes HTTP endpoints for matching, catalog state and the
//     queue.
//   - Sink: Destination for standardized output; ObjectSink writes JSON to
//     object storage, Discard drops it for dry runs.
//   - Loader: Registers the feature with the application.
//
// # HTTP Endpoints
//
//   - POST /match/vehicle : Match one vehicle descriptor.
//   - POST /match/part : Match one part descriptor.
//   - GET /catalog/stats : Catalog dimension counts and load time.
//   - POST /catalog/reload : Rebuild the catalog index from storage.
//   - GET /entities : List entity ids present in the shop database.
//   - GET /queue : Current queue holder and waiters.
//   - GET /healthz : Liveness.
package standardize
