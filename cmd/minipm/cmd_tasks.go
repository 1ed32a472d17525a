package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"minipm/cmd/minipm/ui"
	"minipm/internal/board"
	"minipm/internal/client"
)

var taskCmd = &cobra.Command{
	Use:     "task",
	Aliases: []string{"tasks"},
	Short:   "List and manage tasks",
}

var taskListCmd = &cobra.Command{
	Use:   "list [project-id]",
	Short: "List a project's tasks",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskList,
}

var taskShowCmd = &cobra.Command{
	Use:   "show [task-id]",
	Short: "Show a task with its comments",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskShow,
}

var taskCreateCmd = &cobra.Command{
	Use:     "create [project-id]",
	Short:   "Create a task",
	Example: `  minipm task create 3 --title "Write release notes" --priority high --due 2026-11-20`,
	Args:    cobra.ExactArgs(1),
	RunE:    runTaskCreate,
}

var taskUpdateCmd = &cobra.Command{
	Use:   "update [task-id]",
	Short: "Change task fields; omitted flags keep their value",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskUpdate,
}

var taskMoveCmd = &cobra.Command{
	Use:   "move [task-id] [status|next|prev]",
	Short: "Move a task to another board column",
	Long: `Sets a task's status. "next" and "prev" step one column right or left
(todo -> in_progress -> done).`,
	Args: cobra.ExactArgs(2),
	RunE: runTaskMove,
}

var taskDeleteCmd = &cobra.Command{
	Use:   "delete [task-id]",
	Short: "Delete a task and its comments",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskDelete,
}

func init() {
	taskListCmd.Flags().String("status", "", "Only tasks with this status")
	taskListCmd.Flags().String("assignee", "", "Only tasks assigned to this person")
	taskListCmd.Flags().Bool("overdue", false, "Only overdue tasks that are not done")

	for _, c := range []*cobra.Command{taskCreateCmd, taskUpdateCmd} {
		c.Flags().String("title", "", "Task title")
		c.Flags().String("description", "", "Description (markdown)")
		c.Flags().String("status", "", "todo, in_progress or done")
		c.Flags().String("priority", "", "low, medium, high or urgent")
		c.Flags().String("assignee", "", "Assignee")
		c.Flags().String("due", "", "Due date: YYYY-MM-DD (end of day, UTC) or RFC 3339")
	}
	taskCreateCmd.MarkFlagRequired("title")
	taskDeleteCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")

	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskShowCmd)
	taskCmd.AddCommand(taskCreateCmd)
	taskCmd.AddCommand(taskUpdateCmd)
	taskCmd.AddCommand(taskMoveCmd)
	taskCmd.AddCommand(taskDeleteCmd)
}

func taskFieldsFromFlags(cmd *cobra.Command) (client.TaskFields, error) {
	f := client.TaskFields{
		Title:       optString(cmd, "title"),
		Description: optString(cmd, "description"),
		Status:      optString(cmd, "status"),
		Priority:    optString(cmd, "priority"),
		Assignee:    optString(cmd, "assignee"),
	}
	if due := optString(cmd, "due"); due != nil {
		t, err := board.ParseDue(*due)
		if err != nil {
			return f, fmt.Errorf("invalid --due %q: expected YYYY-MM-DD or RFC 3339", *due)
		}
		f.DueDate = t
	}
	return f, nil
}

// filterTasks applies the list filters.
func filterTasks(tasks []client.Task, status, assignee string, overdue bool, now time.Time) []client.Task {
	out := []client.Task{}
	for _, t := range tasks {
		if status != "" && board.Normalize(t.Status) != board.Normalize(status) {
			continue
		}
		if assignee != "" && !strings.EqualFold(t.Assignee, assignee) {
			continue
		}
		if overdue && (board.Normalize(t.Status) == "done" || !board.IsOverdue(t.DueDate, now)) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// refetchTasks prints the project's task list after a write.
func refetchTasks(ctx context.Context, cmd *cobra.Command, c *client.Client, projectID string) error {
	tasks, err := c.Tasks(ctx, projectID)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout())
	printTasks(cmd.OutOrStdout(), tasks, time.Now())
	return nil
}

func projectOf(t *client.Task) string {
	if t == nil || t.Project == nil {
		return ""
	}
	return t.Project.ID
}

func runTaskList(cmd *cobra.Command, args []string) error {
	c, _, err := newClient()
	if err != nil {
		return err
	}
	ctx, stop := commandContext()
	defer stop()

	tasks, err := c.Tasks(ctx, args[0])
	if err != nil {
		return err
	}
	status, _ := cmd.Flags().GetString("status")
	assignee, _ := cmd.Flags().GetString("assignee")
	overdue, _ := cmd.Flags().GetBool("overdue")
	now := time.Now()
	printTasks(cmd.OutOrStdout(), filterTasks(tasks, status, assignee, overdue, now), now)
	return nil
}

func runTaskShow(cmd *cobra.Command, args []string) error {
	c, _, err := newClient()
	if err != nil {
		return err
	}
	ctx, stop := commandContext()
	defer stop()

	t, err := c.Task(ctx, args[0])
	if err != nil {
		return err
	}
	if t == nil {
		return fmt.Errorf("task %s not found", args[0])
	}
	comments, err := c.Comments(ctx, t.ID)
	if err != nil {
		return err
	}
	out, err := ui.RenderTaskMarkdown(*t, comments, time.Now(), 0)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

func runTaskCreate(cmd *cobra.Command, args []string) error {
	f, err := taskFieldsFromFlags(cmd)
	if err != nil {
		return err
	}
	c, _, err := newClient()
	if err != nil {
		return err
	}
	ctx, stop := commandContext()
	defer stop()

	t, err := c.CreateTask(ctx, args[0], f)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Task created (id %s)\n", t.ID)
	return refetchTasks(ctx, cmd, c, args[0])
}

func runTaskUpdate(cmd *cobra.Command, args []string) error {
	f, err := taskFieldsFromFlags(cmd)
	if err != nil {
		return err
	}
	c, _, err := newClient()
	if err != nil {
		return err
	}
	ctx, stop := commandContext()
	defer stop()

	t, err := c.UpdateTask(ctx, args[0], f)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Task updated")
	return refetchTasks(ctx, cmd, c, projectOf(t))
}

// resolveMove turns "next"/"prev" into a concrete status for the task.
func resolveMove(current, target string) (string, error) {
	switch strings.ToLower(target) {
	case "next":
		if s := board.Next(current); s != "" {
			return s, nil
		}
		return "", fmt.Errorf("task is already in the last column")
	case "prev", "previous":
		if s := board.Prev(current); s != "" {
			return s, nil
		}
		return "", fmt.Errorf("task is already in the first column")
	}
	return board.Normalize(target), nil
}

func runTaskMove(cmd *cobra.Command, args []string) error {
	c, _, err := newClient()
	if err != nil {
		return err
	}
	ctx, stop := commandContext()
	defer stop()

	t, err := c.Task(ctx, args[0])
	if err != nil {
		return err
	}
	if t == nil {
		return fmt.Errorf("task %s not found", args[0])
	}
	status, err := resolveMove(t.Status, args[1])
	if err != nil {
		return err
	}
	if _, err := c.MoveTask(ctx, t.ID, status); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Moved %q to %s\n", t.Title, status)
	return refetchTasks(ctx, cmd, c, projectOf(t))
}

func runTaskDelete(cmd *cobra.Command, args []string) error {
	c, _, err := newClient()
	if err != nil {
		return err
	}
	ctx, stop := commandContext()
	defer stop()

	t, err := c.Task(ctx, args[0])
	if err != nil {
		return err
	}
	if t == nil {
		return fmt.Errorf("task %s not found", args[0])
	}
	if !confirm(cmd, cmd.InOrStdin(), fmt.Sprintf("Delete task %q?", t.Title)) {
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
		return nil
	}
	res, err := c.DeleteTask(ctx, t.ID)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.Message)
	return refetchTasks(ctx, cmd, c, projectOf(t))
}
