package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gosimple/slug"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"minipm/internal/logging"
	"minipm/internal/store"
	"minipm/internal/types"
)

// orgCmd administers organizations directly in the database; the GraphQL
// API has no organization mutations.
var orgCmd = &cobra.Command{
	Use:   "org",
	Short: "Manage organizations (direct database access)",
}

var orgCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create an organization",
	Example: `  minipm org create "Test Org" --slug test-org --email team@test.org
  minipm org create "Acme Corp"          # slug becomes acme-corp`,
	Args: cobra.ExactArgs(1),
	RunE: runOrgCreate,
}

var orgListCmd = &cobra.Command{
	Use:   "list",
	Short: "List organizations",
	RunE:  runOrgList,
}

var orgDeleteCmd = &cobra.Command{
	Use:   "delete [slug-or-name]",
	Short: "Delete an organization with all its projects, tasks and comments",
	Args:  cobra.ExactArgs(1),
	RunE:  runOrgDelete,
}

func init() {
	orgCreateCmd.Flags().String("slug", "", "URL-safe identifier (default: derived from name)")
	orgCreateCmd.Flags().String("email", "", "Contact email")
	orgDeleteCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")

	orgCmd.AddCommand(orgCreateCmd)
	orgCmd.AddCommand(orgListCmd)
	orgCmd.AddCommand(orgDeleteCmd)
}

func openStore() (*store.Store, error) {
	cfg, err := loadServerConfig()
	if err != nil {
		return nil, err
	}
	return store.Open(cfg.Database.Driver, cfg.Database.Path)
}

func runOrgCreate(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	name := args[0]
	s, _ := cmd.Flags().GetString("slug")
	if s == "" {
		s = slug.Make(name)
	}
	email, _ := cmd.Flags().GetString("email")

	ctx := context.Background()
	org := &types.Organization{Name: name, Slug: s, ContactEmail: email}
	if err := st.CreateOrganization(ctx, org); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return fmt.Errorf("an organization with slug %q already exists", s)
		}
		return err
	}
	logging.AuditFrom(ctx).Mutation(logging.AuditOrgCreate, org.Slug, org.ID, true, "Organization created")
	fmt.Fprintf(cmd.OutOrStdout(), "Created organization %q (slug: %s, id: %d)\n", org.Name, org.Slug, org.ID)
	return nil
}

func runOrgList(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	orgs, err := st.ListOrganizations(context.Background())
	if err != nil {
		return err
	}
	if len(orgs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No organizations. Create one with: minipm org create <name>")
		return nil
	}
	t := newTable(cmd.OutOrStdout(), table.Row{"ID", "Name", "Slug", "Contact", "Created"})
	for _, o := range orgs {
		t.AppendRow(table.Row{strconv.FormatInt(o.ID, 10), o.Name, o.Slug, orDash(o.ContactEmail),
			o.CreatedAt.Format("2006-01-02")})
	}
	t.Render()
	return nil
}

func runOrgDelete(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	org, err := st.ResolveOrganization(ctx, args[0])
	switch {
	case errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("no organization found with identifier: %s", args[0])
	case errors.Is(err, store.ErrAmbiguous):
		return fmt.Errorf("multiple organizations found with identifier: %s (use the slug)", args[0])
	case err != nil:
		return err
	}

	if !confirm(cmd, cmd.InOrStdin(), fmt.Sprintf("Delete organization %q and everything in it?", org.Name)) {
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
		return nil
	}
	if err := st.DeleteOrganization(ctx, org.ID); err != nil {
		return err
	}
	logging.AuditFrom(ctx).Mutation(logging.AuditOrgDelete, org.Slug, org.ID, true, "Organization deleted")
	fmt.Fprintf(cmd.OutOrStdout(), "Organization '%s' deleted successfully\n", org.Name)
	return nil
}
