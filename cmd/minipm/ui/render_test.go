package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"minipm/internal/client"
)

func TestDetectTheme(t *testing.T) {
	t.Setenv("COLORFGBG", "15;0")
	t.Setenv("MINIPM_DARK_MODE", "")
	assert.True(t, DetectTheme().IsDark)

	t.Setenv("COLORFGBG", "0;15")
	assert.False(t, DetectTheme().IsDark)

	t.Setenv("COLORFGBG", "")
	t.Setenv("MINIPM_DARK_MODE", "1")
	assert.True(t, DetectTheme().IsDark)
}

func TestRenderBoard(t *testing.T) {
	now := fixedNow()
	past := now.Add(-48 * time.Hour)
	tasks := []client.Task{
		{ID: "1", Title: "Draft outline", Status: "todo", Priority: "high", Assignee: "kim", DueDate: &past},
		{ID: "2", Title: "Publish", Status: "DONE", Priority: "low"},
		{ID: "3", Title: "Lost", Status: "archived"},
	}

	out := RenderBoard(NewStyles(LightTheme()), "Launch", tasks, 0, now)

	assert.Contains(t, out, "Launch")
	assert.Contains(t, out, "2 tasks: 1 to do, 0 in progress, 1 done, 1 overdue")
	assert.Contains(t, out, "To Do (1)")
	assert.Contains(t, out, "Done (1)")
	assert.Contains(t, out, "#1 Draft outline")
	assert.Contains(t, out, "@kim")
	assert.NotContains(t, out, "Lost")
}

func TestTaskMarkdown(t *testing.T) {
	now := fixedNow()
	due := now.Add(-time.Hour)
	task := client.Task{
		ID: "9", Title: "Edit copy", Status: "in_progress", Priority: "medium",
		Description: "Tighten the intro.",
		DueDate:     &due,
		Project:     &client.ProjectRef{ID: "7", Name: "Launch"},
	}

	md := TaskMarkdown(task, nil, now)
	assert.Contains(t, md, "# Edit copy")
	assert.Contains(t, md, "**Project:** Launch")
	assert.Contains(t, md, "(overdue)")
	assert.Contains(t, md, "Tighten the intro.")
	assert.Contains(t, md, "_No comments yet._")

	md = TaskMarkdown(task, []client.Comment{{Author: "kim", Content: "line one\nline two"}}, now)
	assert.Contains(t, md, "## Comments (1)")
	assert.Contains(t, md, "> line one\n> line two")
}

func TestRenderTaskMarkdown(t *testing.T) {
	out, err := RenderTaskMarkdown(client.Task{ID: "1", Title: "Edit copy", Status: "todo"}, nil, fixedNow(), 60)
	assert.NoError(t, err)
	assert.Contains(t, out, "Edit copy")
}
