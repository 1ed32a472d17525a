package tracker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minipm/internal/store"
	"minipm/internal/types"
)

func strPtr(s string) *string { return &s }

type fixture struct {
	svc   *Service
	store *store.Store
	acme  *types.Organization
	other *types.Organization
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s, err := store.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	ctx := context.Background()
	acme := &types.Organization{Name: "Acme", Slug: "acme"}
	other := &types.Organization{Name: "Globex", Slug: "globex"}
	require.NoError(t, s.CreateOrganization(ctx, acme))
	require.NoError(t, s.CreateOrganization(ctx, other))
	return &fixture{svc: New(s), store: s, acme: acme, other: other}
}

func (f *fixture) project(t *testing.T, name string) *types.Project {
	t.Helper()
	out, err := f.svc.CreateProject(context.Background(), f.acme, types.ProjectInput{Name: strPtr(name)})
	require.NoError(t, err)
	require.True(t, out.Success, out.Message)
	return out.Project
}

func (f *fixture) task(t *testing.T, projectID int64, title string) *types.Task {
	t.Helper()
	out, err := f.svc.CreateTask(context.Background(), f.acme, projectID, types.TaskInput{Title: strPtr(title)})
	require.NoError(t, err)
	require.True(t, out.Success, out.Message)
	return out.Task
}

func TestQueries_WithoutOrganization(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.project(t, "Launch")

	projects, err := f.svc.Projects(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, projects)
	assert.NotNil(t, projects)

	got, err := f.svc.Project(ctx, nil, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	tasks, err := f.svc.Tasks(ctx, nil, p.ID)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	stats, err := f.svc.OrganizationStats(ctx, nil)
	require.NoError(t, err)
	assert.Nil(t, stats)

	org, err := f.svc.Organization(ctx, nil)
	require.NoError(t, err)
	assert.Nil(t, org)
}

func TestQueries_ForeignIDsAreNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.project(t, "Launch")
	task := f.task(t, p.ID, "Secret")

	got, err := f.svc.Project(ctx, f.other, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	tasks, err := f.svc.Tasks(ctx, f.other, p.ID)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	tk, err := f.svc.Task(ctx, f.other, task.ID)
	require.NoError(t, err)
	assert.Nil(t, tk)

	comments, err := f.svc.Comments(ctx, f.other, task.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)

	st, err := f.svc.ProjectStats(ctx, f.other, p.ID)
	require.NoError(t, err)
	assert.Nil(t, st)
}

func TestCreateProject(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("no organization", func(t *testing.T) {
		out, err := f.svc.CreateProject(ctx, nil, types.ProjectInput{Name: strPtr("x")})
		require.NoError(t, err)
		assert.False(t, out.Success)
		assert.Equal(t, "No organization header", out.Message)
		assert.Nil(t, out.Project)
	})

	t.Run("defaults", func(t *testing.T) {
		due := time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC)
		out, err := f.svc.CreateProject(ctx, f.acme, types.ProjectInput{Name: strPtr("Website"), DueDate: &due})
		require.NoError(t, err)
		require.True(t, out.Success)
		assert.Equal(t, "Project created", out.Message)
		assert.Equal(t, types.ProjectPlanning, out.Project.Status)
		assert.Equal(t, "2026-03-01", out.Project.DueDate.Format("2006-01-02"))
		assert.Equal(t, 0, out.Project.DueDate.Hour())
	})

	t.Run("invalid status", func(t *testing.T) {
		out, err := f.svc.CreateProject(ctx, f.acme, types.ProjectInput{Name: strPtr("x"), Status: strPtr("archived")})
		require.NoError(t, err)
		assert.False(t, out.Success)
		assert.Contains(t, out.Message, "Invalid project status 'archived'")
	})

	t.Run("blank name", func(t *testing.T) {
		out, err := f.svc.CreateProject(ctx, f.acme, types.ProjectInput{Name: strPtr("  ")})
		require.NoError(t, err)
		assert.False(t, out.Success)
		assert.Equal(t, "Name is required", out.Message)
	})
}

func TestUpdateProject_OnlyProvidedFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	out, err := f.svc.CreateProject(ctx, f.acme, types.ProjectInput{
		Name: strPtr("Website"), Description: strPtr("relaunch"),
	})
	require.NoError(t, err)
	id := out.Project.ID

	out, err = f.svc.UpdateProject(ctx, f.acme, id, types.ProjectInput{Status: strPtr("active")})
	require.NoError(t, err)
	require.True(t, out.Success)
	assert.Equal(t, "Project updated", out.Message)
	assert.Equal(t, "Website", out.Project.Name)
	assert.Equal(t, "relaunch", out.Project.Description)
	assert.Equal(t, types.ProjectActive, out.Project.Status)

	out, err = f.svc.UpdateProject(ctx, f.other, id, types.ProjectInput{Name: strPtr("stolen")})
	require.NoError(t, err)
	assert.False(t, out.Success)
	assert.Equal(t, "Project not found", out.Message)
}

func TestDeleteProject(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.project(t, "Website")

	out, err := f.svc.DeleteProject(ctx, f.acme, p.ID)
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, "Project 'Website' deleted successfully", out.Message)

	out, err = f.svc.DeleteProject(ctx, f.acme, p.ID)
	require.NoError(t, err)
	assert.False(t, out.Success)
	assert.Equal(t, "Project not found", out.Message)
}

func TestTaskLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.project(t, "Launch")

	out, err := f.svc.CreateTask(ctx, f.acme, p.ID, types.TaskInput{
		Title: strPtr("Write copy"), Priority: strPtr("HIGH"), Assignee: strPtr("lee"),
	})
	require.NoError(t, err)
	require.True(t, out.Success, out.Message)
	assert.Equal(t, "Task created", out.Message)
	task := out.Task
	assert.Equal(t, types.TaskTodo, task.Status)
	assert.Equal(t, types.PriorityHigh, task.Priority)

	out, err = f.svc.UpdateTask(ctx, f.acme, task.ID, types.TaskInput{Status: strPtr("in_progress")})
	require.NoError(t, err)
	require.True(t, out.Success)
	assert.Equal(t, "Task updated", out.Message)
	assert.Equal(t, types.TaskInProgress, out.Task.Status)
	assert.Equal(t, "lee", out.Task.Assignee)

	out, err = f.svc.UpdateTask(ctx, f.acme, task.ID, types.TaskInput{Status: strPtr("blocked")})
	require.NoError(t, err)
	assert.False(t, out.Success)
	assert.Contains(t, out.Message, "Invalid task status 'blocked'")

	out, err = f.svc.DeleteTask(ctx, f.acme, task.ID)
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, "Task 'Write copy' deleted successfully", out.Message)

	out, err = f.svc.UpdateTask(ctx, f.acme, task.ID, types.TaskInput{Title: strPtr("again")})
	require.NoError(t, err)
	assert.Equal(t, "Task not found", out.Message)
}

func TestCreateTask_UnknownProject(t *testing.T) {
	f := newFixture(t)
	out, err := f.svc.CreateTask(context.Background(), f.acme, 999, types.TaskInput{Title: strPtr("x")})
	require.NoError(t, err)
	assert.False(t, out.Success)
	assert.Equal(t, "Project not found", out.Message)
}

func TestComments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	task := f.task(t, f.project(t, "Launch").ID, "Review")

	out, err := f.svc.AddComment(ctx, f.acme, task.ID, "ana", "looks good")
	require.NoError(t, err)
	require.True(t, out.Success)
	assert.Equal(t, "Comment added", out.Message)
	c := out.Comment

	out, err = f.svc.AddComment(ctx, f.acme, task.ID, "", "anonymous")
	require.NoError(t, err)
	assert.False(t, out.Success)
	assert.Equal(t, "Author is required", out.Message)

	out, err = f.svc.UpdateComment(ctx, f.acme, c.ID, "looks great")
	require.NoError(t, err)
	assert.Equal(t, "Comment updated", out.Message)
	assert.Equal(t, "looks great", out.Comment.Content)

	list, err := f.svc.Comments(ctx, f.acme, task.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	out, err = f.svc.DeleteComment(ctx, f.other, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Comment not found", out.Message)

	out, err = f.svc.DeleteComment(ctx, f.acme, c.ID)
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, "Comment deleted successfully", out.Message)
}

func TestStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.project(t, "Launch")
	f.task(t, p.ID, "a")
	done := f.task(t, p.ID, "b")
	_, err := f.svc.UpdateTask(ctx, f.acme, done.ID, types.TaskInput{Status: strPtr("done")})
	require.NoError(t, err)

	st, err := f.svc.ProjectStats(ctx, f.acme, p.ID)
	require.NoError(t, err)
	require.NotNil(t, st)
	assert.Equal(t, 2, st.TotalTasks)
	assert.InDelta(t, 0.5, st.CompletionRate, 1e-9)

	all, err := f.svc.AllProjectStats(ctx, f.acme)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	org, err := f.svc.OrganizationStats(ctx, f.acme)
	require.NoError(t, err)
	assert.Equal(t, 1, org.TotalProjects)
	assert.Equal(t, 1, org.CompletedTasks)
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "", Message(nil))
	assert.Equal(t, "Task not found", Message(ErrTaskNotFound))
	assert.Equal(t, "Title is required", Message(types.ValidateRequired("title", "", 10)))
	assert.True(t, isDomainError(ErrNoOrganization))
	assert.False(t, isDomainError(store.ErrAmbiguous))
}
