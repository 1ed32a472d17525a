package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show organization totals and per-project progress",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	c, _, err := newClient()
	if err != nil {
		return err
	}
	ctx, stop := commandContext()
	defer stop()

	st, err := c.OrganizationStats(ctx)
	if err != nil {
		return err
	}
	if st == nil {
		return fmt.Errorf("no organization selected (use --org or MINIPM_ORG)")
	}
	projects, err := c.AllProjectStats(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Organization: %s\n\n", c.Organization())
	printOrganizationStats(out, st)
	fmt.Fprintln(out)
	printProjectStats(out, projects)
	return nil
}
