package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rooted/backend/internal/domain"
)

var askJSON bool

var askCmd = &cobra.Command{
	Use:   "ask [message]",
	Short: "Ask the assistant for produce",
	Long: `Sends a message to the farm assistant and prints its reply.
Quantities such as "2kg strawberries" and preferences such as "organic",
"cheapest", "closest" or "delivery" are understood.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the full reply as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if assistantService == nil {
		return errors.New("assistant service not configured")
	}

	reply, err := assistantService.Respond(context.Background(), &domain.ChatRequest{
		Message: strings.Join(args, " "),
	})
	if err != nil {
		return fmt.Errorf("assistant failed: %w", err)
	}

	if askJSON {
		data, err := json.MarshalIndent(reply, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal reply: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(reply.Text)
	return nil
}
