package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"minipm/internal/client"
)

var projectCmd = &cobra.Command{
	Use:     "project",
	Aliases: []string{"projects"},
	Short:   "List and manage projects",
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects with task counts",
	Args:  cobra.NoArgs,
	RunE:  runProjectList,
}

var projectShowCmd = &cobra.Command{
	Use:   "show [project-id]",
	Short: "Show a project and its tasks",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectShow,
}

var projectCreateCmd = &cobra.Command{
	Use:     "create",
	Short:   "Create a project",
	Example: `  minipm project create --name "Website relaunch" --status active --due 2026-12-01`,
	Args:    cobra.NoArgs,
	RunE:    runProjectCreate,
}

var projectUpdateCmd = &cobra.Command{
	Use:   "update [project-id]",
	Short: "Change project fields; omitted flags keep their value",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectUpdate,
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete [project-id]",
	Short: "Delete a project with its tasks and comments",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectDelete,
}

var projectStatsCmd = &cobra.Command{
	Use:   "stats [project-id]",
	Short: "Show task counts for one project",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectStats,
}

func init() {
	for _, c := range []*cobra.Command{projectCreateCmd, projectUpdateCmd} {
		c.Flags().String("name", "", "Project name")
		c.Flags().String("description", "", "Description")
		c.Flags().String("status", "", "planning, active, on_hold, completed or cancelled")
		c.Flags().String("due", "", "Due date (YYYY-MM-DD)")
	}
	projectCreateCmd.MarkFlagRequired("name")
	projectDeleteCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")

	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectShowCmd)
	projectCmd.AddCommand(projectCreateCmd)
	projectCmd.AddCommand(projectUpdateCmd)
	projectCmd.AddCommand(projectDeleteCmd)
	projectCmd.AddCommand(projectStatsCmd)
}

func projectFieldsFromFlags(cmd *cobra.Command) (client.ProjectFields, error) {
	f := client.ProjectFields{
		Name:        optString(cmd, "name"),
		Description: optString(cmd, "description"),
		Status:      optString(cmd, "status"),
		DueDate:     optString(cmd, "due"),
	}
	if f.DueDate != nil && *f.DueDate != "" {
		if _, err := time.Parse("2006-01-02", *f.DueDate); err != nil {
			return f, fmt.Errorf("invalid --due %q: expected YYYY-MM-DD", *f.DueDate)
		}
	}
	if f.DueDate != nil && *f.DueDate == "" {
		f.DueDate = nil
	}
	return f, nil
}

// refetchProjects prints the project list after a write.
func refetchProjects(ctx context.Context, cmd *cobra.Command, c *client.Client) error {
	stats, err := c.AllProjectStats(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout())
	printProjectStats(cmd.OutOrStdout(), stats)
	return nil
}

func runProjectList(cmd *cobra.Command, args []string) error {
	c, _, err := newClient()
	if err != nil {
		return err
	}
	ctx, stop := commandContext()
	defer stop()

	stats, err := c.AllProjectStats(ctx)
	if err != nil {
		return err
	}
	printProjectStats(cmd.OutOrStdout(), stats)
	return nil
}

func runProjectShow(cmd *cobra.Command, args []string) error {
	c, _, err := newClient()
	if err != nil {
		return err
	}
	ctx, stop := commandContext()
	defer stop()

	p, err := c.Project(ctx, args[0])
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("project %s not found", args[0])
	}
	tasks, err := c.Tasks(ctx, p.ID)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	printProject(out, p)
	fmt.Fprintln(out)
	printTasks(out, tasks, time.Now())
	return nil
}

func runProjectCreate(cmd *cobra.Command, args []string) error {
	f, err := projectFieldsFromFlags(cmd)
	if err != nil {
		return err
	}
	c, _, err := newClient()
	if err != nil {
		return err
	}
	ctx, stop := commandContext()
	defer stop()

	p, err := c.CreateProject(ctx, f)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Project created (id %s)\n", p.ID)
	return refetchProjects(ctx, cmd, c)
}

func runProjectUpdate(cmd *cobra.Command, args []string) error {
	f, err := projectFieldsFromFlags(cmd)
	if err != nil {
		return err
	}
	c, _, err := newClient()
	if err != nil {
		return err
	}
	ctx, stop := commandContext()
	defer stop()

	if _, err := c.UpdateProject(ctx, args[0], f); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Project updated")
	return refetchProjects(ctx, cmd, c)
}

func runProjectDelete(cmd *cobra.Command, args []string) error {
	c, _, err := newClient()
	if err != nil {
		return err
	}
	ctx, stop := commandContext()
	defer stop()

	p, err := c.Project(ctx, args[0])
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("project %s not found", args[0])
	}
	question := fmt.Sprintf("Delete project %q and all its tasks?", p.Name)
	if !confirm(cmd, cmd.InOrStdin(), question) {
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
		return nil
	}
	res, err := c.DeleteProject(ctx, p.ID)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.Message)
	return refetchProjects(ctx, cmd, c)
}

func runProjectStats(cmd *cobra.Command, args []string) error {
	c, _, err := newClient()
	if err != nil {
		return err
	}
	ctx, stop := commandContext()
	defer stop()

	st, err := c.ProjectStats(ctx, args[0])
	if err != nil {
		return err
	}
	if st == nil {
		return fmt.Errorf("project %s not found", args[0])
	}
	printProjectStats(cmd.OutOrStdout(), []client.ProjectStats{*st})
	return nil
}
