package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"minipm/internal/board"
	"minipm/internal/client"
	"minipm/internal/logging"
)

// Backend is the part of the GraphQL client the board uses.
type Backend interface {
	Tasks(ctx context.Context, projectID string) ([]client.Task, error)
	MoveTask(ctx context.Context, id, status string) (*client.Task, error)
	DeleteTask(ctx context.Context, id string) (*client.MutationResult, error)
	Comments(ctx context.Context, taskID string) ([]client.Comment, error)
	AddComment(ctx context.Context, taskID, author, content string) (*client.Comment, error)
	CreateTask(ctx context.Context, projectID string, f client.TaskFields) (*client.Task, error)
	UpdateTask(ctx context.Context, id string, f client.TaskFields) (*client.Task, error)
}

var _ Backend = (*client.Client)(nil)

type mode int

const (
	modeBoard mode = iota
	modeConfirmDelete
	modeComments
	modeAddComment
	modeForm
)

type tasksMsg struct {
	tasks []client.Task
	err   error
}

type commentsMsg struct {
	taskID   string
	comments []client.Comment
	err      error
}

// mutatedMsg reports a finished write. The board refetches after every one.
type mutatedMsg struct {
	status string
	follow string // task id to keep the cursor on
	err    error
}

// Options configure a board.
type Options struct {
	ProjectID string
	Title     string
	Author    string // comment author
	Styles    Styles
	Now       func() time.Time
}

// BoardModel is the interactive kanban board.
type BoardModel struct {
	ctx     context.Context
	backend Backend
	opts    Options
	keys    KeyMap
	help    help.Model
	input   textinput.Model

	tasks []client.Task
	cols  []board.Column
	col   int
	row   int
	mode  mode

	follow        string
	pendingDelete client.Task
	pane          client.Task // task whose comments are open
	comments      []client.Comment
	form          taskForm

	loading bool
	status  string
	err     error
	width   int
	height  int
}

// NewBoardModel creates a board for a project. Nothing is fetched until
// Init runs.
func NewBoardModel(ctx context.Context, backend Backend, opts Options) BoardModel {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Styles.Priority == nil {
		opts.Styles = DefaultStyles()
	}
	if opts.Title == "" {
		opts.Title = "Project " + opts.ProjectID
	}
	ti := textinput.New()
	ti.Placeholder = "Write a comment"
	ti.CharLimit = 2000
	ti.Width = 60

	return BoardModel{
		ctx:     ctx,
		backend: backend,
		opts:    opts,
		keys:    DefaultKeyMap,
		help:    help.New(),
		input:   ti,
		cols:    board.Group(nil),
		loading: true,
	}
}

// Init fetches the tasks.
func (m BoardModel) Init() tea.Cmd {
	return m.fetchTasks()
}

func (m BoardModel) fetchTasks() tea.Cmd {
	ctx, backend, id := m.ctx, m.backend, m.opts.ProjectID
	return func() tea.Msg {
		tasks, err := backend.Tasks(ctx, id)
		return tasksMsg{tasks: tasks, err: err}
	}
}

func (m BoardModel) fetchComments(taskID string) tea.Cmd {
	ctx, backend := m.ctx, m.backend
	return func() tea.Msg {
		comments, err := backend.Comments(ctx, taskID)
		return commentsMsg{taskID: taskID, comments: comments, err: err}
	}
}

// Selected returns the task under the cursor.
func (m BoardModel) Selected() (client.Task, bool) {
	if m.col < 0 || m.col >= len(m.cols) {
		return client.Task{}, false
	}
	tasks := m.cols[m.col].Tasks
	if m.row < 0 || m.row >= len(tasks) {
		return client.Task{}, false
	}
	return tasks[m.row], true
}

// Columns returns the grouped tasks as last fetched.
func (m BoardModel) Columns() []board.Column { return m.cols }

// Err returns the last fetch or mutation error.
func (m BoardModel) Err() error { return m.err }

// Status returns the last status line.
func (m BoardModel) Status() string { return m.status }

func (m *BoardModel) setTasks(tasks []client.Task) {
	m.tasks = tasks
	m.cols = board.Group(tasks)
	if m.follow != "" {
		for ci, c := range m.cols {
			for ti, t := range c.Tasks {
				if t.ID == m.follow {
					m.col, m.row = ci, ti
				}
			}
		}
		m.follow = ""
	}
	m.clamp()
}

func (m *BoardModel) clamp() {
	if m.col >= len(m.cols) {
		m.col = len(m.cols) - 1
	}
	if m.col < 0 {
		m.col = 0
	}
	n := len(m.cols[m.col].Tasks)
	if m.row >= n {
		m.row = n - 1
	}
	if m.row < 0 {
		m.row = 0
	}
}

// errText turns a client error into the text shown on the status line.
func errText(err error) string {
	var merr *client.MutationError
	if errors.As(err, &merr) {
		return merr.Message
	}
	return err.Error()
}

// Update handles messages.
func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tasksMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			logging.ClientDebug("board: fetch tasks failed: %v", msg.err)
			return m, nil
		}
		m.setTasks(msg.tasks)
		return m, nil

	case commentsMsg:
		if msg.taskID != m.pane.ID {
			return m, nil
		}
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.comments = msg.comments
		return m, nil

	case mutatedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.status = ""
		} else {
			m.err = nil
			m.status = msg.status
			m.follow = msg.follow
		}
		cmds := []tea.Cmd{m.fetchTasks()}
		if m.mode == modeComments || m.mode == modeAddComment {
			cmds = append(cmds, m.fetchComments(m.pane.ID))
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		switch m.mode {
		case modeConfirmDelete:
			return m.updateConfirm(msg)
		case modeComments:
			return m.updateComments(msg)
		case modeAddComment:
			return m.updateInput(msg)
		case modeForm:
			return m.updateForm(msg)
		}
		return m.updateBoard(msg)
	}
	return m, nil
}

func (m BoardModel) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.row--
		m.clamp()
	case key.Matches(msg, m.keys.Down):
		m.row++
		m.clamp()
	case key.Matches(msg, m.keys.NextCol):
		m.col = (m.col + 1) % len(m.cols)
		m.clamp()
	case key.Matches(msg, m.keys.PrevCol):
		m.col = (m.col + len(m.cols) - 1) % len(m.cols)
		m.clamp()
	case key.Matches(msg, m.keys.MoveLeft):
		return m.move(board.Prev)
	case key.Matches(msg, m.keys.MoveRight):
		return m.move(board.Next)
	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		m.status = ""
		return m, m.fetchTasks()
	case key.Matches(msg, m.keys.Delete):
		if t, ok := m.Selected(); ok {
			m.mode = modeConfirmDelete
			m.pendingDelete = t
		}
	case key.Matches(msg, m.keys.New):
		m.mode = modeForm
		m.status = ""
		m.form = newTaskForm(nil, m.cols[m.col])
		cmd := m.form.focusField(fieldTitle)
		return m, cmd
	case key.Matches(msg, m.keys.Edit):
		t, ok := m.Selected()
		if !ok {
			return m, nil
		}
		m.mode = modeForm
		m.status = ""
		m.form = newTaskForm(&t, m.cols[m.col])
		cmd := m.form.focusField(fieldTitle)
		return m, cmd
	case key.Matches(msg, m.keys.Comments):
		t, ok := m.Selected()
		if !ok {
			return m, nil
		}
		m.mode = modeComments
		m.pane = t
		m.comments = nil
		return m, m.fetchComments(t.ID)
	}
	return m, nil
}

// move sends the selected task to the status step picks.
func (m BoardModel) move(step func(string) string) (tea.Model, tea.Cmd) {
	t, ok := m.Selected()
	if !ok {
		return m, nil
	}
	to := step(t.Status)
	if to == "" {
		m.status = fmt.Sprintf("%q cannot move further", t.Title)
		return m, nil
	}
	ctx, backend := m.ctx, m.backend
	return m, func() tea.Msg {
		_, err := backend.MoveTask(ctx, t.ID, to)
		return mutatedMsg{
			status: fmt.Sprintf("Moved %q to %s", t.Title, to),
			follow: t.ID,
			err:    err,
		}
	}
}

// updateConfirm deletes the task that was selected when the prompt opened,
// even if a refetch has since moved the cursor.
func (m BoardModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = modeBoard
	t := m.pendingDelete
	m.pendingDelete = client.Task{}
	if t.ID == "" || !key.Matches(msg, m.keys.Confirm) {
		m.status = "Delete cancelled"
		return m, nil
	}
	ctx, backend := m.ctx, m.backend
	return m, func() tea.Msg {
		res, err := backend.DeleteTask(ctx, t.ID)
		status := ""
		if res != nil {
			status = res.Message
		}
		return mutatedMsg{status: status, err: err}
	}
}

func (m BoardModel) updateComments(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back), msg.String() == "q", msg.String() == "c":
		m.mode = modeBoard
		m.pane = client.Task{}
		m.comments = nil
	case key.Matches(msg, m.keys.Add):
		m.mode = modeAddComment
		m.input.SetValue("")
		cmd := m.input.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Refresh):
		return m, m.fetchComments(m.pane.ID)
	}
	return m, nil
}

func (m BoardModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.mode = modeComments
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		content := strings.TrimSpace(m.input.Value())
		if content == "" {
			return m, nil
		}
		m.mode = modeComments
		m.input.Blur()
		m.input.SetValue("")
		ctx, backend, taskID, author := m.ctx, m.backend, m.pane.ID, m.opts.Author
		return m, func() tea.Msg {
			_, err := backend.AddComment(ctx, taskID, author, content)
			return mutatedMsg{status: "Comment added", follow: taskID, err: err}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m BoardModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.form.blur()
		m.mode = modeBoard
		m.err = nil
		m.status = "Edit cancelled"
		return m, nil
	case tea.KeyTab, tea.KeyDown:
		cmd := m.form.focusField(m.form.focus + 1)
		return m, cmd
	case tea.KeyShiftTab, tea.KeyUp:
		cmd := m.form.focusField(m.form.focus - 1)
		return m, cmd
	case tea.KeyEnter:
		fields, err := m.form.fields()
		if err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.form.blur()
		m.mode = modeBoard
		return m, m.saveTask(m.form.taskID, fields)
	}
	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	return m, cmd
}

// saveTask creates a task in the project when id is empty and updates
// task id otherwise.
func (m BoardModel) saveTask(id string, f client.TaskFields) tea.Cmd {
	ctx, backend, projectID := m.ctx, m.backend, m.opts.ProjectID
	return func() tea.Msg {
		if id == "" {
			t, err := backend.CreateTask(ctx, projectID, f)
			if err != nil {
				return mutatedMsg{err: err}
			}
			return mutatedMsg{status: fmt.Sprintf("Created %q", t.Title), follow: t.ID}
		}
		t, err := backend.UpdateTask(ctx, id, f)
		if err != nil {
			return mutatedMsg{err: err, follow: id}
		}
		return mutatedMsg{status: fmt.Sprintf("Updated %q", t.Title), follow: t.ID}
	}
}

// View renders the board.
func (m BoardModel) View() string {
	s := m.opts.Styles
	now := m.opts.Now()

	var b strings.Builder
	b.WriteString(s.Header.Render(m.opts.Title))
	b.WriteString("\n")
	if m.loading {
		b.WriteString(s.Muted.Render("Loading..."))
	} else {
		b.WriteString(s.Muted.Render(RenderSummary(board.Summarize(m.tasks, now))))
	}
	b.WriteString("\n")

	switch m.mode {
	case modeComments, modeAddComment:
		b.WriteString(m.viewComments())
	case modeForm:
		b.WriteString(s.Pane.Render(m.form.view(s)))
	default:
		b.WriteString(RenderColumns(s, m.cols, m.col, m.row, m.width, now))
	}
	b.WriteString("\n")

	if m.mode == modeConfirmDelete {
		b.WriteString(s.Error.Render(fmt.Sprintf("Delete %q? [y/N]", m.pendingDelete.Title)))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(s.Error.Render("Error: " + errText(m.err)))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(s.Status.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(s.Footer.Render(m.help.View(m.keys)))
	return b.String()
}

func (m BoardModel) viewComments() string {
	s := m.opts.Styles
	var b strings.Builder
	b.WriteString(s.ColumnTitle.Render(fmt.Sprintf("Comments on #%s %s", m.pane.ID, m.pane.Title)))
	b.WriteString("\n")
	if len(m.comments) == 0 {
		b.WriteString(s.Muted.Render("No comments yet."))
		b.WriteString("\n")
	}
	for _, c := range m.comments {
		b.WriteString(s.Card.Render(c.Author))
		b.WriteString(" ")
		b.WriteString(s.Muted.Render(c.CreatedAt.UTC().Format("2006-01-02 15:04")))
		b.WriteString("\n  ")
		b.WriteString(strings.ReplaceAll(c.Content, "\n", "\n  "))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if m.mode == modeAddComment {
		b.WriteString(m.input.View())
	} else {
		b.WriteString(s.Muted.Render("a: add comment  r: refresh  esc: back"))
	}
	width := columnWidth(m.width)*len(board.Columns) + 2*len(board.Columns)
	return s.Pane.Width(width).Render(b.String())
}

// Run starts the interactive board and blocks until the user quits.
func Run(ctx context.Context, backend Backend, opts Options) error {
	p := tea.NewProgram(NewBoardModel(ctx, backend, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("board: %w", err)
	}
	if bm, ok := final.(BoardModel); ok && bm.err != nil {
		logging.ClientDebug("board closed with error: %v", bm.err)
	}
	return nil
}
