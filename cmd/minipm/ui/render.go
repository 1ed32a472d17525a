package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"minipm/internal/board"
	"minipm/internal/client"
)

const (
	minColumnWidth = 24
	defaultWidth   = 96
)

// columnWidth splits the terminal width between the board columns.
func columnWidth(width int) int {
	if width <= 0 {
		width = defaultWidth
	}
	// border and padding take four cells per column
	w := width/len(board.Columns) - 4
	if w < minColumnWidth {
		return minColumnWidth
	}
	return w
}

func truncate(s string, l int) string {
	r := []rune(s)
	if len(r) > l && l > 3 {
		return string(r[:l-3]) + "..."
	}
	return s
}

func dueLabel(t client.Task) string {
	if t.DueDate == nil {
		return ""
	}
	return "due " + t.DueDate.UTC().Format("2006-01-02")
}

// renderCard draws one task. selected marks the cursor.
func renderCard(s Styles, t client.Task, width int, selected bool, now time.Time) string {
	title := truncate(fmt.Sprintf("#%s %s", t.ID, t.Title), width-2)
	if selected {
		title = s.SelectedCard.Render(title)
	} else {
		title = s.Card.Render(title)
	}

	var meta []string
	prio := board.Normalize(t.Priority)
	if ps, ok := s.Priority[prio]; ok {
		meta = append(meta, ps.Render(prio))
	} else if prio != "" {
		meta = append(meta, prio)
	}
	if t.Assignee != "" {
		meta = append(meta, s.Muted.Render("@"+truncate(t.Assignee, 16)))
	}
	if due := dueLabel(t); due != "" {
		if board.Normalize(t.Status) != "done" && board.IsOverdue(t.DueDate, now) {
			meta = append(meta, s.Overdue.Render(due))
		} else {
			meta = append(meta, s.Muted.Render(due))
		}
	}
	return title + "\n  " + strings.Join(meta, " ")
}

// RenderColumns draws the board columns side by side. focusCol and focusRow
// place the cursor; pass -1 to draw without one.
func RenderColumns(s Styles, cols []board.Column, focusCol, focusRow, width int, now time.Time) string {
	cw := columnWidth(width)
	rendered := make([]string, 0, len(cols))
	for ci, col := range cols {
		var b strings.Builder
		b.WriteString(s.ColumnTitle.Render(fmt.Sprintf("%s (%d)", col.Title, len(col.Tasks))))
		b.WriteString("\n")
		if len(col.Tasks) == 0 {
			b.WriteString(s.Muted.Render("  no tasks"))
		}
		for ti, t := range col.Tasks {
			if ti > 0 {
				b.WriteString("\n")
			}
			b.WriteString(renderCard(s, t, cw, ci == focusCol && ti == focusRow, now))
		}
		style := s.Column
		if ci == focusCol {
			style = s.ActiveColumn
		}
		rendered = append(rendered, style.Width(cw).Render(b.String()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// RenderSummary is the one-line count shown under the board title.
func RenderSummary(sum board.Summary) string {
	line := fmt.Sprintf("%d tasks: %d to do, %d in progress, %d done",
		sum.Total, sum.Todo, sum.InProgress, sum.Done)
	if sum.Overdue > 0 {
		line += fmt.Sprintf(", %d overdue", sum.Overdue)
	}
	return line
}

// RenderBoard draws a whole board once, without a cursor. Used by
// "board --print".
func RenderBoard(s Styles, title string, tasks []client.Task, width int, now time.Time) string {
	var b strings.Builder
	b.WriteString(s.Header.Render(title))
	b.WriteString("\n")
	b.WriteString(s.Muted.Render(RenderSummary(board.Summarize(tasks, now))))
	b.WriteString("\n")
	b.WriteString(RenderColumns(s, board.Group(tasks), -1, -1, width, now))
	b.WriteString("\n")
	return b.String()
}

// TaskMarkdown describes a task and its comments as markdown.
func TaskMarkdown(t client.Task, comments []client.Comment, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", t.Title)
	if t.Project != nil {
		fmt.Fprintf(&b, "**Project:** %s  \n", t.Project.Name)
	}
	fmt.Fprintf(&b, "**Status:** %s  \n", t.Status)
	fmt.Fprintf(&b, "**Priority:** %s  \n", t.Priority)
	if t.Assignee != "" {
		fmt.Fprintf(&b, "**Assignee:** %s  \n", t.Assignee)
	}
	if t.DueDate != nil {
		due := t.DueDate.UTC().Format("2006-01-02 15:04 MST")
		if board.Normalize(t.Status) != "done" && board.IsOverdue(t.DueDate, now) {
			due += " (overdue)"
		}
		fmt.Fprintf(&b, "**Due:** %s  \n", due)
	}
	fmt.Fprintf(&b, "**Updated:** %s\n\n", t.UpdatedAt.UTC().Format("2006-01-02 15:04 MST"))
	if strings.TrimSpace(t.Description) != "" {
		b.WriteString(t.Description)
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "## Comments (%d)\n\n", len(comments))
	if len(comments) == 0 {
		b.WriteString("_No comments yet._\n")
	}
	for _, c := range comments {
		fmt.Fprintf(&b, "**%s** · %s\n\n", c.Author, c.CreatedAt.UTC().Format("2006-01-02 15:04"))
		for _, line := range strings.Split(c.Content, "\n") {
			fmt.Fprintf(&b, "> %s\n", line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RenderTaskMarkdown renders TaskMarkdown for the terminal. A width of 0
// wraps at 80 columns.
func RenderTaskMarkdown(t client.Task, comments []client.Comment, now time.Time, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := renderer.Render(TaskMarkdown(t, comments, now))
	if err != nil {
		return "", fmt.Errorf("failed to render task: %w", err)
	}
	return out, nil
}
