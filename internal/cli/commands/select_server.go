package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flightdeck360/flightdeck/internal/cli/serverselect"
)

// NewSelectServerCmd creates the select-server command
func NewSelectServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "select-server [alias-or-url]",
		Short: "Select the backend to use for commands",
		Long: `Select the backend to use for commands.

If no param is provided, an interactive prompt will be shown.
FLIGHTDECK_API_URL and FLIGHTDECK_BACKEND_URL still take precedence.

Examples:
  $ flightdeck select-server                              # Interactive selection
  $ flightdeck select-server local                        # http://localhost:5000/api
  $ flightdeck select-server https://api.example.com/api  # Custom URL`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var aliasOrURL string
			if len(args) > 0 {
				aliasOrURL = args[0]
			}
			return runSelectServer(cmd, aliasOrURL)
		},
	}

	return cmd
}

func runSelectServer(cmd *cobra.Command, aliasOrURL string) error {
	if aliasOrURL == "" {
		// Show interactive selection
		selected, err := serverselect.PromptBackendSelection()
		if err != nil {
			return err
		}
		aliasOrURL = selected
	}

	baseURL, err := serverselect.Select(aliasOrURL)
	if err != nil {
		return fmt.Errorf("failed to save selected backend: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Selected backend: %s\n", baseURL)
	return nil
}
