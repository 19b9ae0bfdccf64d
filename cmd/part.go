package cmd

import (
	"context"
	"fmt"
	"strings"

	"shop-transformer/core/matching"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var partDescriptor matching.PartDescriptor

// partCmd represents the part command
var partCmd = &cobra.Command{
	Use:   "part",
	Short: "Match a single part descriptor against the catalog terminology",
	Long: `Resolves one part line described by flags to its canonical
terminology entry and prints the tier and confidence.`,
	Run: func(cmd *cobra.Command, args []string) {
		runPartMatch(cmd.Context(), partDescriptor)
	},
}

func init() {
	RootCmd.AddCommand(partCmd)

	partCmd.Flags().StringVar(&partDescriptor.Title, "title", "", "Part line title (e.g. 'Oil Filter')")
	partCmd.Flags().StringVar(&partDescriptor.Description, "description", "", "Free-form part description")
	partCmd.Flags().StringVar(&partDescriptor.ShopNumber, "shop-number", "", "Shop part number")
	partCmd.Flags().StringVar(&partDescriptor.VendorNumber, "vendor-number", "", "Vendor part number")
}

func runPartMatch(ctx context.Context, d matching.PartDescriptor) {
	svc := newMatchService()

	result, err := svc.MatchPart(ctx, d)
	if err != nil {
		zap.L().Fatal("Part match failed", zap.Error(err))
	}

	fmt.Println("\n--- Part Match ---")
	fmt.Printf("Title:          %s\n", orDash(d.Title))
	fmt.Printf("Description:    %s\n", orDash(d.Description))
	fmt.Printf("Shop Number:    %s\n", orDash(d.ShopNumber))
	fmt.Printf("Vendor Number:  %s\n", orDash(d.VendorNumber))
	fmt.Println("------------------")
	printMatchStatus(result.Matched, result.Tier, result.Confidence)

	if result.Matched {
		p := result.Primary
		fmt.Printf("Part:           %s (%d)\n", p.Name, p.PartID)
		if p.Description != "" {
			fmt.Printf("Description:    %s\n", p.Description)
		}
		fmt.Printf("Alternatives:   %d\n", len(result.Alternatives))
	} else {
		fmt.Printf("Reason:         %s\n", result.FailureReason)
		fmt.Printf("Details:        %s\n", result.FailureDetails)
		if len(result.AttemptedTiers) > 0 {
			fmt.Printf("Attempted:      %s\n", strings.Join(result.AttemptedTiers, ", "))
		}
	}
	fmt.Println("------------------")
}
