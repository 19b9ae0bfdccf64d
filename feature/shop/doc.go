// Package shop maps the operational shop database: customers, their
// vehicles (units), addresses, notes, service history and the parts used on
// repair orders.
//
// The schema is the legacy camelCase MySQL layout, mapped with explicit
// GORM column tags. Three pieces build on the models:
//
//   - Repository: ID-batched fetchers, one per child table, each taking a
//     slice of customer ids and returning rows keyed by customer id.
//   - Cache: an entitycache.Manager wired with one table per child type,
//     giving a transformation run its per-entity record cache.
//   - VerifySchema: reflects over the GORM tags and compares them against
//     the live database before a run touches any data.
//
// Units and part lines convert themselves into matcher descriptors via
// their Descriptor methods; nothing else in the system reads raw rows.
package shop
