package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"minipm/cmd/minipm/ui"
)

var boardPrint bool

var boardCmd = &cobra.Command{
	Use:   "board [project-id]",
	Short: "Open a project's kanban board",
	Long: `Shows the project's tasks in three columns: To Do, In Progress and Done.

Keys: j/k select a task, tab switches column, h/l (or arrows) move the task
to the previous or next column, c opens its comments (a to add), d deletes
it, r refreshes and q quits. n opens a form for a new task in the focused
column and e edits the selected one (tab between fields, enter saves). Every change is sent to the server and the
board is fetched again.`,
	Args: cobra.ExactArgs(1),
	RunE: runBoard,
}

func init() {
	boardCmd.Flags().BoolVar(&boardPrint, "print", false, "Print the board once and exit")
}

func runBoard(cmd *cobra.Command, args []string) error {
	c, prof, err := newClient()
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
	opts := ui.Options{
		ProjectID: p.ID,
		Title:     fmt.Sprintf("%s · %s", p.Name, p.Status),
		Author:    prof.Author,
		Styles:    ui.DefaultStyles(),
	}

	if boardPrint {
		tasks, err := c.Tasks(ctx, p.ID)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), ui.RenderBoard(opts.Styles, opts.Title, tasks, 0, time.Now()))
		return nil
	}
	return ui.Run(ctx, c, opts)
}
