package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"minipm/internal/logging"
)

var (
	// Global flags
	verbose     bool
	configPath  string
	profilePath string
	endpoint    string
	orgFlag     string
	timeout     time.Duration
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "minipm",
	Short: "Multi-tenant project and task tracker",
	Long: `minipm tracks projects, kanban tasks and task comments for several
organizations behind one GraphQL endpoint.

Run "minipm serve" to start the server. The project, task, comment, stats
and board commands talk to a running server as the organization chosen with
--org (or MINIPM_ORG, or the client profile).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := "warn"
		if verbose {
			level = "debug"
		}
		if err := logging.Initialize(logging.Config{Level: level, Format: "console"}); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "minipm.yaml", "Server config file")
	rootCmd.PersistentFlags().StringVar(&profilePath, "profile", "", "Client profile (default ~/.minipm/client.yaml)")
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "GraphQL endpoint (overrides profile and MINIPM_ENDPOINT)")
	rootCmd.PersistentFlags().StringVarP(&orgFlag, "org", "o", "", "Organization slug or name (overrides profile and MINIPM_ORG)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Request timeout (default from profile)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(orgCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(commentCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(boardCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
