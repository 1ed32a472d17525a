package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"minipm/internal/board"
	"minipm/internal/client"
)

const (
	fieldTitle = iota
	fieldDescription
	fieldPriority
	fieldAssignee
	fieldDue
)

var formLabels = []string{"Title", "Description", "Priority", "Assignee", "Due"}

// taskForm edits one task in place. An empty taskID means a new task in
// column col.
type taskForm struct {
	taskID string
	col    board.Column
	title  string
	inputs []textinput.Model
	focus  int
}

func newTaskForm(t *client.Task, col board.Column) taskForm {
	f := taskForm{col: col, inputs: make([]textinput.Model, len(formLabels))}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Width = 48
		ti.CharLimit = 2000
		f.inputs[i] = ti
	}
	f.inputs[fieldTitle].CharLimit = 200
	f.inputs[fieldPriority].Placeholder = "medium"
	f.inputs[fieldDue].Placeholder = "YYYY-MM-DD"

	if t != nil {
		f.taskID = t.ID
		f.title = t.Title
		f.inputs[fieldTitle].SetValue(t.Title)
		f.inputs[fieldDescription].SetValue(t.Description)
		f.inputs[fieldPriority].SetValue(t.Priority)
		f.inputs[fieldAssignee].SetValue(t.Assignee)
		if t.DueDate != nil {
			f.inputs[fieldDue].SetValue(t.DueDate.UTC().Format("2006-01-02"))
		}
	}
	return f
}

func (f *taskForm) focusField(i int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = (i + len(f.inputs)) % len(f.inputs)
	return f.inputs[f.focus].Focus()
}

func (f *taskForm) blur() {
	f.inputs[f.focus].Blur()
}

func (f taskForm) value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

// fields converts the inputs to a write. When editing, description and
// assignee are always sent so they can be cleared; an empty due date
// leaves the stored one alone.
func (f taskForm) fields() (client.TaskFields, error) {
	var out client.TaskFields
	title := f.value(fieldTitle)
	if title == "" {
		return out, errors.New("title is required")
	}
	out.Title = &title

	editing := f.taskID != ""
	if d := f.value(fieldDescription); d != "" || editing {
		out.Description = &d
	}
	if a := f.value(fieldAssignee); a != "" || editing {
		out.Assignee = &a
	}
	if p := strings.ToLower(f.value(fieldPriority)); p != "" {
		out.Priority = &p
	}
	due, err := board.ParseDue(f.value(fieldDue))
	if err != nil {
		return out, errors.New("due must be YYYY-MM-DD or RFC 3339")
	}
	out.DueDate = due
	if !editing {
		status := f.col.Status
		out.Status = &status
	}
	return out, nil
}

func (f taskForm) view(s Styles) string {
	var b strings.Builder
	if f.taskID == "" {
		b.WriteString(s.ColumnTitle.Render("New task in " + f.col.Title))
	} else {
		b.WriteString(s.ColumnTitle.Render("Edit #" + f.taskID + " " + f.title))
	}
	b.WriteString("\n")
	for i, in := range f.inputs {
		label := formLabels[i] + ":"
		if i == f.focus {
			b.WriteString(s.Status.Render("> " + label))
		} else {
			b.WriteString(s.Muted.Render("  " + label))
		}
		b.WriteString(strings.Repeat(" ", 14-len(label)))
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(s.Muted.Render("tab: next field  enter: save  esc: cancel"))
	return b.String()
}
