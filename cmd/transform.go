package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"shop-transformer/core/catalog"
	"shop-transformer/core/config"
	"shop-transformer/core/database"
	"shop-transformer/core/logger"
	"shop-transformer/core/matching"
	"shop-transformer/core/storage"
	"shop-transformer/feature/shop"
	"shop-transformer/feature/standardize"
	"shop-transformer/feature/standardize/vindecode"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	transformEntities []int
	transformAll      bool
	transformDryRun   bool
	transformLimit    int
	transformJSON     bool
)

// transformCmd represents the transform command
var transformCmd = &cobra.Command{
	Use:   "transform",
	Short: "Run the batch standardization over shop entities",
	Long: `Standardizes shop records entity by entity: loads each entity's
customers, units and service part lines, matches them against the reference
catalogs and writes one JSON document per entity to object storage.
Entities are processed strictly one at a time.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		startTime := time.Now()

		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// The batch run cannot do anything without the shop database.
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("database connection required: %w", err)
		}

		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}

		// Surface schema drift before touching any records. Drift is
		// reported, not fatal: the queries name their columns explicitly
		// and fail loudly on their own when a column is truly gone.
		schema, err := shop.VerifySchema(db)
		if err != nil {
			return fmt.Errorf("schema verification failed: %w", err)
		}
		for table, tr := range schema.Tables {
			if tr.Status == "ok" {
				continue
			}
			logg.Warn("Shop schema drift",
				zap.String("table", table),
				zap.Strings("missing_columns", tr.MissingColumns),
				zap.Strings("type_mismatches", tr.TypeMismatches))
		}
		for _, e := range schema.Errors {
			logg.Warn("Shop schema inspection failed", zap.String("error", e))
		}

		store := catalog.NewStore(cfg.Catalog.Source(client), logg)
		repo := shop.NewRepository(db)

		var sink standardize.Sink = standardize.NewObjectSink(
			client, cfg.Transform.OutputBucket, cfg.Transform.OutputPrefix, logg)
		if transformDryRun {
			logg.Info("Dry run: outputs will be discarded")
			sink = standardize.Discard{}
		}

		svc := standardize.NewService(store, repo, vindecode.NewOffline(), sink, standardize.Config{
			Matching: cfg.Matching,
			Batch:    cfg.Batch,
			Cache:    cfg.Cache,
		}, logg)
		defer svc.Close()

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		go func() {
			c := make(chan os.Signal, 1)
			signal.Notify(c, os.Interrupt, syscall.SIGTERM)
			<-c
			logg.Warn("Interrupt received, aborting run")
			cancel()
		}()

		ids := transformEntities
		if transformAll {
			ids, err = svc.EntityIDs(ctx)
			if err != nil {
				return fmt.Errorf("failed to list entities: %w", err)
			}
		}
		if len(ids) == 0 {
			return fmt.Errorf("no entities selected: pass --entities or --all")
		}
		if transformLimit > 0 && len(ids) > transformLimit {
			ids = ids[:transformLimit]
		}

		report, err := svc.Run(ctx, ids)
		if err != nil {
			if report != nil {
				printRunReport(report, time.Since(startTime))
			}
			return fmt.Errorf("transformation run failed: %w", err)
		}

		if transformJSON {
			filename := fmt.Sprintf("transform_run_%d.json", time.Now().Unix())
			data, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal JSON: %w", err)
			}
			if err := os.WriteFile(filename, data, 0644); err != nil {
				return fmt.Errorf("failed to save JSON file: %w", err)
			}
			logg.Info("Detailed JSON report saved", zap.String("file", filename))
		}

		printRunReport(report, time.Since(startTime))

		logg.Info("Transformation run completed",
			zap.String("run_id", report.RunID),
			zap.Int("entities", report.Entities),
			zap.Int("failed", report.Failed),
			zap.Float64("vehicle_match_rate", report.Vehicles.MatchRate),
			zap.Float64("part_match_rate", report.Parts.MatchRate),
			zap.Duration("execution_time", time.Since(startTime)),
		)
		return nil
	},
}

func printRunReport(report *standardize.RunReport, elapsed time.Duration) {
	fmt.Println("\n=== Transformation Run ===")
	fmt.Printf("Run ID:           %s\n", report.RunID)
	fmt.Printf("Entities:         %d\n", report.Entities)
	fmt.Printf("Failed:           %d\n", report.Failed)
	fmt.Printf("Vehicles Matched: %d/%d (%.1f%%)\n",
		report.Vehicles.Matched, report.Vehicles.Total, report.Vehicles.MatchRate*100)
	fmt.Printf("Parts Matched:    %d/%d (%.1f%%)\n",
		report.Parts.Matched, report.Parts.Total, report.Parts.MatchRate*100)
	fmt.Printf("Execution Time:   %s\n", elapsed.String())

	printFailureCounts("Vehicle failures", report.Vehicles.FailureCounts)
	printFailureCounts("Part failures", report.Parts.FailureCounts)

	for _, er := range report.Reports {
		if er.Error != "" {
			fmt.Printf("\nEntity %d FAILED: %s\n", er.EntityID, er.Error)
		}
	}
}

func printFailureCounts(title string, counts map[matching.FailureReason]int) {
	if len(counts) == 0 {
		return
	}
	reasons := make([]string, 0, len(counts))
	for r := range counts {
		reasons = append(reasons, string(r))
	}
	sort.Strings(reasons)

	fmt.Printf("\n%s:\n", title)
	for _, r := range reasons {
		fmt.Printf("- %s: %d\n", r, counts[matching.FailureReason(r)])
	}
}

func init() {
	RootCmd.AddCommand(transformCmd)

	transformCmd.Flags().IntSliceVar(&transformEntities, "entities", nil, "Entity ids to standardize")
	transformCmd.Flags().BoolVar(&transformAll, "all", false, "Standardize every entity in the shop database")
	transformCmd.Flags().BoolVar(&transformDryRun, "dry-run", false, "Match and report without writing outputs")
	transformCmd.Flags().IntVar(&transformLimit, "limit", 0, "Stop after this many entities (0 = no limit)")
	transformCmd.Flags().BoolVar(&transformJSON, "json", false, "Save the full run report as JSON")
}
