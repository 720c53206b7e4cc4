package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// newDiscoverCmd creates the 'discover' subcommand: a one-shot catalog build
// printed to stdout as JSON.
func newDiscoverCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "discover",
		Short: "Builds the catalog once and prints it as JSON",
		RunE:  runDiscoverCommand,
	}
}

func runDiscoverCommand(cmd *cobra.Command, _ []string) error {
	appInstance, err := resolveApp(cmd.Context())
	if err != nil {
		return err
	}

	cat, err := appInstance.BuildCatalog(cmd.Context())
	if err != nil {
		return fmt.Errorf("build catalog: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cat); err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	return nil
}
