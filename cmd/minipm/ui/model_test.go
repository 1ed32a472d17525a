package ui

import (
	"context"
	"fmt"
	"strconv"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minipm/internal/client"
)

// fakeBackend keeps tasks and comments in memory and records calls.
type fakeBackend struct {
	tasks    []client.Task
	comments map[string][]client.Comment
	calls    []string
	moveErr  error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		tasks: []client.Task{
			{ID: "1", Title: "Draft outline", Status: "todo", Priority: "high"},
			{ID: "2", Title: "Collect quotes", Status: "todo", Priority: "low"},
			{ID: "3", Title: "Edit copy", Status: "in_progress", Priority: "medium"},
			{ID: "4", Title: "Publish", Status: "done", Priority: "urgent"},
		},
		comments: map[string][]client.Comment{},
	}
}

func (f *fakeBackend) Tasks(ctx context.Context, projectID string) ([]client.Task, error) {
	f.calls = append(f.calls, "tasks")
	return append([]client.Task(nil), f.tasks...), nil
}

func (f *fakeBackend) MoveTask(ctx context.Context, id, status string) (*client.Task, error) {
	f.calls = append(f.calls, "move "+id+" "+status)
	if f.moveErr != nil {
		return nil, f.moveErr
	}
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i].Status = status
			t := f.tasks[i]
			return &t, nil
		}
	}
	return nil, &client.MutationError{Operation: "updateTask", Message: "Task not found"}
}

func (f *fakeBackend) DeleteTask(ctx context.Context, id string) (*client.MutationResult, error) {
	f.calls = append(f.calls, "delete "+id)
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return &client.MutationResult{Success: true, Message: fmt.Sprintf("Task '%s' deleted successfully", t.Title)}, nil
		}
	}
	return nil, &client.MutationError{Operation: "deleteTask", Message: "Task not found"}
}

func (f *fakeBackend) Comments(ctx context.Context, taskID string) ([]client.Comment, error) {
	f.calls = append(f.calls, "comments "+taskID)
	return append([]client.Comment(nil), f.comments[taskID]...), nil
}

func (f *fakeBackend) AddComment(ctx context.Context, taskID, author, content string) (*client.Comment, error) {
	f.calls = append(f.calls, "comment "+taskID)
	c := client.Comment{ID: strconv.Itoa(len(f.comments[taskID]) + 1), Author: author, Content: content}
	f.comments[taskID] = append(f.comments[taskID], c)
	return &c, nil
}

func (f *fakeBackend) CreateTask(ctx context.Context, projectID string, fields client.TaskFields) (*client.Task, error) {
	f.calls = append(f.calls, "create "+projectID+" "+*fields.Status+" "+*fields.Title)
	t := client.Task{ID: strconv.Itoa(len(f.tasks) + 10), Priority: "medium"}
	applyFields(&t, fields)
	f.tasks = append(f.tasks, t)
	return &t, nil
}

func (f *fakeBackend) UpdateTask(ctx context.Context, id string, fields client.TaskFields) (*client.Task, error) {
	f.calls = append(f.calls, "update "+id+" "+*fields.Title)
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			applyFields(&f.tasks[i], fields)
			t := f.tasks[i]
			return &t, nil
		}
	}
	return nil, &client.MutationError{Operation: "updateTask", Message: "Task not found"}
}

func applyFields(t *client.Task, f client.TaskFields) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&t.Title, f.Title)
	set(&t.Description, f.Description)
	set(&t.Status, f.Status)
	set(&t.Priority, f.Priority)
	set(&t.Assignee, f.Assignee)
	if f.DueDate != nil {
		t.DueDate = f.DueDate
	}
}

// drive feeds the messages our own commands produce back into the model.
// Other messages (cursor blinks, quit) are dropped.
func drive(t *testing.T, m BoardModel, cmd tea.Cmd) BoardModel {
	t.Helper()
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			m = drive(t, m, c)
		}
	case tasksMsg, commentsMsg, mutatedMsg:
		next, cmd := m.Update(msg)
		m = drive(t, next.(BoardModel), cmd)
	}
	return m
}

func press(t *testing.T, m BoardModel, k tea.KeyMsg) BoardModel {
	t.Helper()
	next, cmd := m.Update(k)
	return drive(t, next.(BoardModel), cmd)
}

// typeText sends keys one by one and drops the returned commands, which
// are only cursor blinks while typing.
func typeText(m BoardModel, s string) BoardModel {
	for _, r := range s {
		next, _ := m.Update(runes(string(r)))
		m = next.(BoardModel)
	}
	return m
}

// tap sends one key and drops the returned command.
func tap(m BoardModel, k tea.KeyMsg) BoardModel {
	next, _ := m.Update(k)
	return next.(BoardModel)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func fixedNow() time.Time {
	return time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
}

func newModel(t *testing.T, f *fakeBackend) BoardModel {
	t.Helper()
	m := NewBoardModel(context.Background(), f, Options{
		ProjectID: "7",
		Title:     "Launch",
		Author:    "sam",
		Styles:    NewStyles(LightTheme()),
		Now:       fixedNow,
	})
	return drive(t, m, m.Init())
}

func columnTitles(m BoardModel) map[string][]string {
	out := map[string][]string{}
	for _, c := range m.Columns() {
		for _, t := range c.Tasks {
			out[c.Status] = append(out[c.Status], t.Title)
		}
	}
	return out
}

func TestBoard_InitGroupsTasks(t *testing.T) {
	m := newModel(t, newFakeBackend())

	cols := columnTitles(m)
	assert.Equal(t, []string{"Draft outline", "Collect quotes"}, cols["todo"])
	assert.Equal(t, []string{"Edit copy"}, cols["in_progress"])
	assert.Equal(t, []string{"Publish"}, cols["done"])

	sel, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "1", sel.ID)
}

func TestBoard_CursorMovement(t *testing.T) {
	m := newModel(t, newFakeBackend())

	m = press(t, m, runes("j"))
	sel, _ := m.Selected()
	assert.Equal(t, "2", sel.ID)

	// clamps at the bottom
	m = press(t, m, runes("j"))
	sel, _ = m.Selected()
	assert.Equal(t, "2", sel.ID)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	sel, _ = m.Selected()
	assert.Equal(t, "3", sel.ID)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	sel, _ = m.Selected()
	assert.Equal(t, "4", sel.ID)
}

func TestBoard_MoveRightRefetchesAndFollows(t *testing.T) {
	f := newFakeBackend()
	m := newModel(t, f)

	m = press(t, m, runes("l"))

	assert.Equal(t, []string{"tasks", "move 1 in_progress", "tasks"}, f.calls)
	assert.Equal(t, []string{"Draft outline", "Edit copy"}, columnTitles(m)["in_progress"])
	sel, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "1", sel.ID)
	assert.Contains(t, m.Status(), "in_progress")
	assert.NoError(t, m.Err())
}

func TestBoard_MoveLeftWithArrow(t *testing.T) {
	f := newFakeBackend()
	m := newModel(t, f)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})

	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})

	assert.Contains(t, f.calls, "move 3 todo")
	assert.Len(t, columnTitles(m)["todo"], 3)
	assert.Empty(t, columnTitles(m)["in_progress"])
}

func TestBoard_MovePastEdgeDoesNothing(t *testing.T) {
	f := newFakeBackend()
	m := newModel(t, f)

	m = press(t, m, runes("h"))

	assert.Equal(t, []string{"tasks"}, f.calls)
	assert.Contains(t, m.Status(), "cannot move")
}

func TestBoard_MoveErrorIsShown(t *testing.T) {
	f := newFakeBackend()
	f.moveErr = &client.MutationError{Operation: "updateTask", Message: "Task not found"}
	m := newModel(t, f)

	m = press(t, m, runes("l"))

	require.Error(t, m.Err())
	assert.Contains(t, m.View(), "Task not found")
}

func TestBoard_DeleteNeedsConfirmation(t *testing.T) {
	f := newFakeBackend()
	m := newModel(t, f)

	m = press(t, m, runes("d"))
	assert.Contains(t, m.View(), `Delete "Draft outline"?`)
	m = press(t, m, runes("n"))
	assert.Len(t, f.tasks, 4)
	assert.Equal(t, "Delete cancelled", m.Status())

	m = press(t, m, runes("d"))
	m = press(t, m, runes("y"))
	assert.Len(t, f.tasks, 3)
	assert.Equal(t, "Task 'Draft outline' deleted successfully", m.Status())
	assert.Equal(t, []string{"Collect quotes"}, columnTitles(m)["todo"])
}

func TestBoard_DeleteTargetsTaskAskedAbout(t *testing.T) {
	f := newFakeBackend()
	m := newModel(t, f)

	m = press(t, m, runes("d"))
	require.Contains(t, m.View(), `Delete "Draft outline"?`)

	// A refresh lands while the prompt is open and puts a newer task on top.
	newer := append([]client.Task{{ID: "9", Title: "Hotfix", Status: "todo", Priority: "urgent"}}, f.tasks...)
	next, _ := m.Update(tasksMsg{tasks: newer})
	m = next.(BoardModel)
	sel, _ := m.Selected()
	require.Equal(t, "9", sel.ID)
	assert.Contains(t, m.View(), `Delete "Draft outline"?`)

	m = press(t, m, runes("y"))

	assert.Contains(t, f.calls, "delete 1")
	assert.NotContains(t, f.calls, "delete 9")
	assert.Equal(t, "Task 'Draft outline' deleted successfully", m.Status())
}

func TestBoard_NewTaskInFocusedColumn(t *testing.T) {
	f := newFakeBackend()
	m := newModel(t, f)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})

	m = typeText(m, "n")
	assert.Contains(t, m.View(), "New task in In Progress")
	m = typeText(m, "Write changelog")
	m = tap(m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(m, "For 2.0")
	m = tap(m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(m, "HIGH")
	m = tap(m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(m, "kim")
	m = tap(m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(m, "2026-10-20")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	require.Contains(t, f.calls, "create 7 in_progress Write changelog")
	created := f.tasks[len(f.tasks)-1]
	assert.Equal(t, "For 2.0", created.Description)
	assert.Equal(t, "high", created.Priority)
	assert.Equal(t, "kim", created.Assignee)
	require.NotNil(t, created.DueDate)
	assert.Equal(t, "2026-10-20", created.DueDate.Format("2006-01-02"))

	assert.Equal(t, []string{"Edit copy", "Write changelog"}, columnTitles(m)["in_progress"])
	sel, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, created.ID, sel.ID)
	assert.Equal(t, `Created "Write changelog"`, m.Status())
}

func TestBoard_EditSelectedTask(t *testing.T) {
	f := newFakeBackend()
	m := newModel(t, f)

	m = typeText(m, "e")
	assert.Contains(t, m.View(), "Edit #1 Draft outline")
	m = tap(m, tea.KeyMsg{Type: tea.KeyEnd})
	m = typeText(m, " v2")
	for i := 0; i < fieldAssignee; i++ {
		m = tap(m, tea.KeyMsg{Type: tea.KeyTab})
	}
	m = typeText(m, "kim")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Contains(t, f.calls, "update 1 Draft outline v2")
	assert.Equal(t, "kim", f.tasks[0].Assignee)
	assert.Equal(t, "todo", f.tasks[0].Status)
	assert.Equal(t, "high", f.tasks[0].Priority)
	assert.Equal(t, []string{"Draft outline v2", "Collect quotes"}, columnTitles(m)["todo"])
	assert.Equal(t, `Updated "Draft outline v2"`, m.Status())
}

func TestBoard_FormValidatesBeforeSending(t *testing.T) {
	f := newFakeBackend()
	m := newModel(t, f)

	m = typeText(m, "n")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Error(t, m.Err())
	assert.Contains(t, m.View(), "title is required")
	assert.Contains(t, m.View(), "New task in To Do")

	m = typeText(m, "Ship")
	m = tap(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m = typeText(m, "next week")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Contains(t, m.View(), "due must be YYYY-MM-DD")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, "Edit cancelled", m.Status())
	assert.Equal(t, []string{"tasks"}, f.calls)
}

func TestBoard_CommentsPane(t *testing.T) {
	f := newFakeBackend()
	f.comments["1"] = []client.Comment{{ID: "1", Author: "kim", Content: "First pass done"}}
	m := newModel(t, f)

	m = press(t, m, runes("c"))
	assert.Contains(t, m.View(), "Comments on #1 Draft outline")
	assert.Contains(t, m.View(), "First pass done")

	m = typeText(m, "a")
	m = typeText(m, "Looks good")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	require.Len(t, f.comments["1"], 2)
	assert.Equal(t, "sam", f.comments["1"][1].Author)
	assert.Equal(t, "Looks good", f.comments["1"][1].Content)
	assert.Contains(t, m.View(), "Looks good")
	assert.Equal(t, "Comment added", m.Status())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.NotContains(t, m.View(), "Comments on")
}

func TestBoard_BlankCommentNotSent(t *testing.T) {
	f := newFakeBackend()
	m := newModel(t, f)

	m = press(t, m, runes("c"))
	m = typeText(m, "a")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.NotContains(t, f.calls, "comment 1")
}

func TestBoard_RefreshAndQuit(t *testing.T) {
	f := newFakeBackend()
	m := newModel(t, f)

	m = press(t, m, runes("r"))
	assert.Equal(t, []string{"tasks", "tasks"}, f.calls)

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
