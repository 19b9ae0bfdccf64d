package shop

import (
	"shop-transformer/core/entitycache"

	"go.uber.org/zap"
)

// Cache is the per-entity record cache: an entitycache.Manager wired with
// one table per shop child type, all keyed by customer id. The typed Rows
// handles stay accessible so callers read rows back without casts.
type Cache struct {
	Manager   *entitycache.Manager
	Customers *entitycache.Rows[Customer]
	Units     *entitycache.Rows[Unit]
	Addresses *entitycache.Rows[Address]
	Notes     *entitycache.Rows[Note]
	History   *entitycache.Rows[ServiceHistory]
	PartLines *entitycache.Rows[PartLine]
}

// NewCache assembles a cache over the repository's fetchers.
func NewCache(cfg entitycache.Config, repo *Repository, logger *zap.Logger) *Cache {
	c := &Cache{
		Customers: entitycache.NewRows("Customer", repo.Customers),
		Units:     entitycache.NewRows("Unit", repo.Units),
		Addresses: entitycache.NewRows("Address", repo.Addresses),
		Notes:     entitycache.NewRows("Note", repo.Notes),
		History:   entitycache.NewRows("ServiceHistory", repo.History),
		PartLines: entitycache.NewRows("ServiceHistoryPart", repo.PartLines),
	}
	c.Manager = entitycache.NewManager(cfg, logger,
		c.Customers, c.Units, c.Addresses, c.Notes, c.History, c.PartLines)
	return c
}
