package cmd

import (
	"fmt"
	"os"

	"shop-transformer/core/catalog"
	"shop-transformer/core/config"
	"shop-transformer/core/logger"
	"shop-transformer/core/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// catalogCmd represents the catalog command
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Load the reference catalogs and report their dimensions",
	Long: `Loads the configured catalog drop (object storage or local directory)
and prints the row counts of every dimension. A drop that fails to load
exits non-zero, which makes this the quickest sanity check after
distributing a new drop.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			fmt.Printf("Failed to load config: %v\n", err)
			os.Exit(1)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			fmt.Printf("Failed to create logger: %v\n", err)
			os.Exit(1)
		}

		var client storage.Client
		if cfg.Catalog.Dir == "" {
			client, err = storage.NewClient(cfg.Storage)
			if err != nil {
				logg.Fatal("Failed to create storage client", zap.Error(err))
			}
		}

		store := catalog.NewStore(cfg.Catalog.Source(client), logg)
		idx, err := store.Index(cmd.Context())
		if err != nil {
			logg.Fatal("Catalog failed to load", zap.Error(err))
		}
		stats := idx.Stats()

		fmt.Println("\n=== Reference Catalog ===")
		fmt.Printf("Makes:                %d\n", stats.Makes)
		fmt.Printf("Make Aliases:         %d\n", stats.MakeAliases)
		fmt.Printf("Models:               %d\n", stats.Models)
		fmt.Printf("Years:                %d\n", stats.Years)
		fmt.Printf("Base Vehicles:        %d\n", stats.BaseVehicles)
		fmt.Printf("Submodels:            %d\n", stats.Submodels)
		fmt.Printf("Engine Configs:       %d\n", stats.EngineConfigs)
		fmt.Printf("Transmission Configs: %d\n", stats.TransmissionConfigs)
		fmt.Printf("Body Configs:         %d\n", stats.BodyConfigs)
		fmt.Printf("Brake Configs:        %d\n", stats.BrakeConfigs)
		fmt.Printf("Vehicle Keys:         %d\n", stats.VehicleKeys)
		fmt.Printf("Parts:                %d\n", stats.Parts)
		fmt.Printf("Part Descriptions:    %d\n", stats.PartDescriptions)
		fmt.Printf("Part Numbers:         %d\n", stats.PartNumbers)
		fmt.Printf("Keyword Tokens:       %d\n", stats.KeywordTokens)
		fmt.Printf("Loaded At:            %s\n", store.LoadedAt().Format("2006-01-02 15:04:05 MST"))
	},
}

func init() {
	RootCmd.AddCommand(catalogCmd)
}
