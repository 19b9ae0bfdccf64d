package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"shop-transformer/core/catalog"
	"shop-transformer/core/config"
	"shop-transformer/core/database"
	"shop-transformer/core/loader"
	"shop-transformer/core/logger"
	"shop-transformer/core/middleware/auth"
	"shop-transformer/core/middleware/rayid"
	"shop-transformer/core/storage"

	"shop-transformer/feature/standardize"
	"shop-transformer/feature/standardize/vindecode"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "shop-transformer/docs/swagger"
)

// @title Shop Transformer API
// @version 1.0
// @description API for matching shop records against the reference catalogs.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the standardization server",
	Long:  `Starts the HTTP server exposing on-demand matching, catalog state and the entity queue.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to the shop database (Optional). Without it the match
		// and catalog endpoints still work; entity processing reports 503.
		var db *gorm.DB
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional shop database connection failed", zap.Error(err))
		} else {
			db = conn
			logg = logg.With(zap.String("database", cfg.Database.Name))
			logg.Info("Connected to shop database")
		}

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 5. Initialize Storage and the catalog store above it
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}
		store := catalog.NewStore(cfg.Catalog.Source(client), logg)

		sink := standardize.NewObjectSink(client, cfg.Transform.OutputBucket, cfg.Transform.OutputPrefix, logg)

		// 6. Initialize Feature Loader
		mgr := loader.NewManager()

		feature := standardize.NewFeature(store, db, vindecode.NewOffline(), sink, standardize.Config{
			Matching: cfg.Matching,
			Batch:    cfg.Batch,
			Cache:    cfg.Cache,
		}, logg)
		mgr.Register(feature)

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Custom to use Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 2.5 Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 3. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 4. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 5. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(cfg.Server.Addr()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 6. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		feature.Service().Close()
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
