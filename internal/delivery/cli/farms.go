package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rooted/backend/internal/domain"
)

var (
	farmsSearch string
	farmsFilter string
	farmsSort   string
	farmsJSON   bool
)

var farmsCmd = &cobra.Command{
	Use:   "farms",
	Short: "List farms in the catalog",
	Long: `Lists catalog farms, optionally narrowed by a search term that matches
farm names and produce types, and filtered to organic or delivery farms.`,
	Args: cobra.NoArgs,
	RunE: runFarms,
}

func init() {
	farmsCmd.Flags().StringVarP(&farmsSearch, "search", "s", "", "match farm names and produce types")
	farmsCmd.Flags().StringVar(&farmsFilter, "filter", domain.FilterAll, "all, organic or delivery")
	farmsCmd.Flags().StringVar(&farmsSort, "sort", domain.SortByDistance, "distance, rating or eco-score")
	farmsCmd.Flags().BoolVar(&farmsJSON, "json", false, "output farms as JSON")
	rootCmd.AddCommand(farmsCmd)
}

func runFarms(cmd *cobra.Command, _ []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	farms, err := catalogService.ListFarms(context.Background(), domain.FarmQuery{
		Search: farmsSearch,
		Filter: farmsFilter,
		SortBy: farmsSort,
	})
	if err != nil {
		return fmt.Errorf("listing farms failed: %w", err)
	}

	if farmsJSON {
		data, err := json.MarshalIndent(farms, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal farms: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(farms) == 0 {
		cmd.Println("No farms found.")
		return nil
	}

	for _, farm := range farms {
		delivery := "pickup only"
		if farm.DeliveryAvailable {
			delivery = "delivery"
		}
		cmd.Printf("  %-24s %5.1f km  rating %.1f  eco %.1f  %s\n",
			farm.Name, farm.DistanceKm, farm.Rating, farm.EcoScore, delivery)
	}
	return nil
}
