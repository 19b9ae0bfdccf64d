package standardize

import (
	"shop-transformer/core/catalog"
	"shop-transformer/feature/shop"
	"shop-transformer/feature/standardize/vindecode"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the standardization feature. db may be nil, which
// disables the entity endpoints but keeps matching and catalog routes up.
func NewFeature(store *catalog.Store, db *gorm.DB, decoder vindecode.Decoder, sink Sink, cfg Config, logger *zap.Logger) *Feature {
	var repo *shop.Repository
	if db != nil {
		repo = shop.NewRepository(db)
	}
	svc := NewService(store, repo, decoder, sink, cfg, logger)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "standardize"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Service exposes the underlying service for command-line entry points and
// shutdown hooks.
func (f *Feature) Service() *Service {
	return f.service
}
