package cli

import (
	"bytes"
	"context"

	"github.com/rooted/backend/internal/infrastructure/catalog"
	"github.com/rooted/backend/internal/usecase"
)

// setupTestServices wires services over the embedded catalog and returns a cleanup func
func setupTestServices() func() {
	store, err := catalog.Load(context.Background(), catalog.NewEmbeddedSource())
	if err != nil {
		panic(err)
	}

	origAssistant, origCatalog := assistantService, catalogService
	SetServices(
		usecase.NewAssistantService(nil, store, usecase.AssistantServiceConfig{}, nil),
		usecase.NewCatalogService(store),
	)

	return func() {
		assistantService, catalogService = origAssistant, origCatalog
	}
}

// execute runs rootCmd with args and returns combined output
func execute(args ...string) (string, error) {
	askJSON = false
	farmsSearch, farmsFilter, farmsSort, farmsJSON = "", "all", "distance", false

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}
