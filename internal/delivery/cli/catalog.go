package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rooted/backend/internal/infrastructure/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Work with farm catalog files",
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a YAML farm catalog",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogValidate,
}

func init() {
	catalogCmd.AddCommand(catalogValidateCmd)
	rootCmd.AddCommand(catalogCmd)
}

func runCatalogValidate(cmd *cobra.Command, args []string) error {
	farms, err := catalog.NewFileSource(args[0]).FetchFarms(context.Background())
	if err != nil {
		return fmt.Errorf("catalog %s is invalid: %w", args[0], err)
	}

	cmd.Printf("%s: %d farms OK\n", args[0], len(farms))
	return nil
}
