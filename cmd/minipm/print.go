package main

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"minipm/internal/board"
	"minipm/internal/client"
	"minipm/internal/types"
)

func printProjectStats(w io.Writer, stats []client.ProjectStats) {
	if len(stats) == 0 {
		fmt.Fprintln(w, "No projects yet.")
		return
	}
	t := newTable(w, table.Row{"ID", "Project", "Tasks", "To Do", "In Progress", "Done", "Complete"})
	for _, s := range stats {
		t.AppendRow(table.Row{s.ProjectID, s.ProjectName, s.TotalTasks, s.TodoTasks,
			s.InProgressTasks, s.CompletedTasks, percent(s.CompletionRate)})
	}
	t.Render()
}

func printProject(w io.Writer, p *client.Project) {
	fmt.Fprintf(w, "%s  [%s]\n", p.Name, types.Label(p.Status))
	if p.Description != "" {
		fmt.Fprintln(w, p.Description)
	}
	if p.DueDate != "" {
		fmt.Fprintf(w, "Due: %s\n", p.DueDate)
	}
}

func printTasks(w io.Writer, tasks []client.Task, now time.Time) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks.")
		return
	}
	t := newTable(w, table.Row{"ID", "Title", "Status", "Priority", "Assignee", "Due"})
	for _, task := range tasks {
		due := "-"
		if task.DueDate != nil {
			due = task.DueDate.Format("2006-01-02")
			if board.Normalize(task.Status) != "done" && board.IsOverdue(task.DueDate, now) {
				due += " (overdue)"
			}
		}
		t.AppendRow(table.Row{task.ID, task.Title, types.Label(board.Normalize(task.Status)),
			types.Label(task.Priority), orDash(task.Assignee), due})
	}
	t.Render()
}

func printComments(w io.Writer, comments []client.Comment) {
	if len(comments) == 0 {
		fmt.Fprintln(w, "No comments yet.")
		return
	}
	t := newTable(w, table.Row{"ID", "Author", "When", "Comment"})
	for _, c := range comments {
		t.AppendRow(table.Row{c.ID, c.Author, c.CreatedAt.Local().Format("2006-01-02 15:04"), c.Content})
	}
	t.Render()
}

func printOrganizationStats(w io.Writer, s *client.OrganizationStats) {
	t := newTable(w, table.Row{"Metric", "Value"})
	t.AppendRows([]table.Row{
		{"Projects", s.TotalProjects},
		{"Active projects", s.ActiveProjects},
		{"Completed projects", s.CompletedProjects},
		{"Tasks", s.TotalTasks},
		{"Completed tasks", s.CompletedTasks},
		{"Completion", percent(s.OverallCompletionRate)},
	})
	t.Render()
}
