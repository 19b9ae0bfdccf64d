package standardize

import (
	"errors"
	"time"

	"shop-transformer/core/catalog"
	"shop-transformer/core/logger"
	"shop-transformer/core/matching"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CatalogStatus pairs the index dimension counts with the load timestamp.
type CatalogStatus struct {
	Stats    catalog.Stats `json:"stats"`
	LoadedAt time.Time     `json:"loaded_at"`
}

// Handler handles HTTP requests for the standardization service.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the standardization routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	match := app.Group("/match")
	match.Post("/vehicle", h.HandleMatchVehicle)
	match.Post("/part", h.HandleMatchPart)

	cat := app.Group("/catalog")
	cat.Get("/stats", h.HandleCatalogStats)
	cat.Post("/reload", h.HandleCatalogReload)

	app.Get("/entities", h.HandleListEntities)
	app.Get("/queue", h.HandleQueueSnapshot)
	app.Get("/healthz", h.HandleHealth)
}

// HandleMatchVehicle resolves a single vehicle descriptor against the catalog.
// @Summary Match Vehicle
// @Description Resolve one vehicle descriptor to its canonical catalog entry. Incomplete descriptors with a VIN are decoded first.
// @Tags match
// @Accept json
// @Produce json
// @Param descriptor body matching.VehicleDescriptor true "Vehicle Descriptor"
// @Success 200 {object} matching.Result[matching.CanonicalVehicle] "Match Result"
// @Failure 400 {object} map[string]string "Malformed Body"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /match/vehicle [post]
func (h *Handler) HandleMatchVehicle(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var d matching.VehicleDescriptor
	if err := c.BodyParser(&d); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	result, err := h.service.MatchVehicle(c.Context(), d)
	if err != nil {
		l.Error("Vehicle match failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(result)
}

// HandleMatchPart resolves a single part descriptor against the catalog.
// @Summary Match Part
// @Description Resolve one part descriptor to its canonical catalog part type.
// @Tags match
// @Accept json
// @Produce json
// @Param descriptor body matching.PartDescriptor true "Part Descriptor"
// @Success 200 {object} matching.Result[matching.CanonicalPart] "Match Result"
// @Failure 400 {object} map[string]string "Malformed Body"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /match/part [post]
func (h *Handler) HandleMatchPart(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var d matching.PartDescriptor
	if err := c.BodyParser(&d); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	result, err := h.service.MatchPart(c.Context(), d)
	if err != nil {
		l.Error("Part match failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(result)
}

// HandleCatalogStats reports the dimension counts of the loaded catalog.
// @Summary Get Catalog Stats
// @Description Get row counts per catalog dimension and the load timestamp.
// @Tags catalog
// @Produce json
// @Success 200 {object} CatalogStatus "Catalog Status"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /catalog/stats [get]
func (h *Handler) HandleCatalogStats(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	stats, err := h.service.CatalogStats(c.Context())
	if err != nil {
		l.Error("Catalog stats failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(CatalogStatus{Stats: stats, LoadedAt: h.service.CatalogLoadedAt()})
}

// HandleCatalogReload rebuilds the catalog index from storage.
// @Summary Reload Catalog
// @Description Rebuild the catalog index from its source. Concurrent reloads collapse into one rebuild.
// @Tags catalog
// @Produce json
// @Success 200 {object} CatalogStatus "Catalog Status"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /catalog/reload [post]
func (h *Handler) HandleCatalogReload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	stats, err := h.service.ReloadCatalog(c.Context())
	if err != nil {
		l.Error("Catalog reload failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	l.Info("Catalog reloaded", zap.Int("base_vehicles", stats.BaseVehicles))
	return c.JSON(CatalogStatus{Stats: stats, LoadedAt: h.service.CatalogLoadedAt()})
}

// HandleListEntities lists the entity ids present in the shop database.
// @Summary List Entities
// @Description List the distinct entity ids found in the shop Customer table.
// @Tags entities
// @Produce json
// @Success 200 {object} map[string][]int "Entity IDs"
// @Failure 503 {object} map[string]string "Database Not Connected"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /entities [get]
func (h *Handler) HandleListEntities(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	ids, err := h.service.EntityIDs(c.Context())
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, ErrNoDatabase) {
			status = fiber.StatusServiceUnavailable
		} else {
			l.Error("Entity listing failed", zap.Error(err))
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"entities": ids})
}

// HandleQueueSnapshot reports the current state of the admission queue.
// @Summary Get Queue State
// @Description Get the entity currently being processed and the waiting line behind it.
// @Tags queue
// @Produce json
// @Success 200 {object} queue.Snapshot "Queue Snapshot"
// @Router /queue [get]
func (h *Handler) HandleQueueSnapshot(c *fiber.Ctx) error {
	return c.JSON(h.service.QueueSnapshot())
}

// HandleHealth reports liveness.
// @Summary Health Check
// @Description Report service liveness.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string "OK"
// @Router /healthz [get]
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
