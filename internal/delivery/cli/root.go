// Package cli implements the rootedctl command line.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rooted/backend/internal/domain"
)

// version is set at build time via -ldflags
var version = "dev"

// AssistantService answers chat messages
type AssistantService interface {
	Respond(ctx context.Context, request *domain.ChatRequest) (*domain.AssistantReply, error)
}

// CatalogService serves the farm browse view
type CatalogService interface {
	ListFarms(ctx context.Context, query domain.FarmQuery) ([]*domain.Farm, error)
}

var (
	assistantService AssistantService
	catalogService   CatalogService
)

var rootCmd = &cobra.Command{
	Use:   "rootedctl",
	Short: "Query the Rooted farm assistant from the terminal",
	Long: `rootedctl talks to the same assistant and catalog as the Rooted API.
Ask for produce in plain language or browse the farms in the catalog.`,
	SilenceUsage: true,
}

// SetServices wires the services used by the commands
func SetServices(assistant AssistantService, catalog CatalogService) {
	assistantService = assistant
	catalogService = catalog
}

// SetVersion overrides the version reported by the version command
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
