package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"shop-transformer/core/catalog"
	"shop-transformer/core/config"
	"shop-transformer/core/logger"
	"shop-transformer/core/matching"
	"shop-transformer/core/storage"
	"shop-transformer/feature/standardize"
	"shop-transformer/feature/standardize/vindecode"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var vehicleDescriptor matching.VehicleDescriptor

// vehicleCmd represents the vehicle command
var vehicleCmd = &cobra.Command{
	Use:   "vehicle",
	Short: "Match a single vehicle descriptor against the catalog",
	Long: `Resolves one vehicle described by flags (or just a VIN) to its
canonical catalog entry and prints the tier, confidence and alternatives.`,
	Run: func(cmd *cobra.Command, args []string) {
		runVehicleMatch(cmd.Context(), vehicleDescriptor)
	},
}

func init() {
	RootCmd.AddCommand(vehicleCmd)

	vehicleCmd.Flags().StringVar(&vehicleDescriptor.Make, "make", "", "Vehicle make (e.g. 'Ford')")
	vehicleCmd.Flags().StringVar(&vehicleDescriptor.Model, "model", "", "Vehicle model (e.g. 'F-150')")
	vehicleCmd.Flags().IntVar(&vehicleDescriptor.Year, "year", 0, "Model year")
	vehicleCmd.Flags().StringVar(&vehicleDescriptor.Submodel, "submodel", "", "Submodel or trim")
	vehicleCmd.Flags().StringVar(&vehicleDescriptor.VIN, "vin", "", "VIN, decoded when make/model/year are incomplete")
}

func runVehicleMatch(ctx context.Context, d matching.VehicleDescriptor) {
	svc := newMatchService()

	result, err := svc.MatchVehicle(ctx, d)
	if err != nil {
		zap.L().Fatal("Vehicle match failed", zap.Error(err))
	}

	fmt.Println("\n--- Vehicle Match ---")
	fmt.Printf("Make:           %s\n", orDash(d.Make))
	fmt.Printf("Model:          %s\n", orDash(d.Model))
	fmt.Printf("Year:           %s\n", orDashInt(d.Year))
	if d.VIN != "" {
		fmt.Printf("VIN:            %s\n", d.VIN)
	}
	fmt.Println("---------------------")
	printMatchStatus(result.Matched, result.Tier, result.Confidence)

	if result.Matched {
		v := result.Primary
		fmt.Printf("Base Vehicle:   %d\n", v.BaseVehicleID)
		fmt.Printf("Canonical:      %s %s %d\n", v.MakeName, v.ModelName, v.Year)
		if v.SubmodelName != "" {
			fmt.Printf("Submodel:       %s (%d)\n", v.SubmodelName, v.SubmodelID)
		}
		fmt.Printf("Alternatives:   %d\n", len(result.Alternatives))
	} else {
		fmt.Printf("Reason:         %s\n", result.FailureReason)
		fmt.Printf("Details:        %s\n", result.FailureDetails)
		if len(result.AttemptedTiers) > 0 {
			fmt.Printf("Attempted:      %s\n", strings.Join(result.AttemptedTiers, ", "))
		}
	}
	fmt.Println("---------------------")
}

// newMatchService builds a service wired for single-descriptor matching:
// catalog and decoder only, no shop database, no sink.
func newMatchService() *standardize.Service {
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
	zap.ReplaceGlobals(logg)

	var client storage.Client
	if cfg.Catalog.Dir == "" {
		client, err = storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}
	}

	store := catalog.NewStore(cfg.Catalog.Source(client), logg)
	return standardize.NewService(store, nil, vindecode.NewOffline(), nil, standardize.Config{
		Matching: cfg.Matching,
		Batch:    cfg.Batch,
		Cache:    cfg.Cache,
	}, logg)
}

func printMatchStatus(matched bool, tier string, confidence float64) {
	statusColor := "\033[32m" // Green
	status := "MATCHED"
	if !matched {
		statusColor = "\033[31m" // Red
		status = "NO MATCH"
	}
	resetColor := "\033[0m"

	fmt.Printf("Status:         %s%s%s\n", statusColor, status, resetColor)
	if matched {
		fmt.Printf("Tier:           %s\n", tier)
		fmt.Printf("Confidence:     %.2f\n", confidence)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func orDashInt(n int) string {
	if n == 0 {
		return "-"
	}
	return fmt.Sprintf("%d", n)
}
