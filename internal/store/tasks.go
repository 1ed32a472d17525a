package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"minipm/internal/types"
)

const taskColumns = `t.id, t.project_id, t.title, t.description, t.status, t.priority, t.assignee,
	t.due_date, t.created_at, t.updated_at`

func scanTask(row scanner) (*types.Task, error) {
	var t types.Task
	var status, priority, created, updated string
	var due sql.NullString
	if err := row.Scan(&t.ID, &t.ProjectID, &t.Title, &t.Description, &status, &priority,
		&t.Assignee, &due, &created, &updated); err != nil {
		return nil, err
	}
	t.Status = types.TaskStatus(status)
	t.Priority = types.Priority(priority)
	var err error
	if t.DueDate, err = parseNullTime(due, timeLayout); err != nil {
		return nil, err
	}
	if t.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if t.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTask inserts t under t.ProjectID. The caller has already checked the
// project belongs to the requesting organization.
func (s *Store) CreateTask(ctx context.Context, t *types.Task) error {
	if t.Status == "" {
		t.Status = types.TaskTodo
	}
	if t.Priority == "" {
		t.Priority = types.PriorityMedium
	}
	if err := t.Validate(); err != nil {
		return err
	}
	now := s.stamp()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (project_id, title, description, status, priority, assignee, due_date, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ProjectID, t.Title, t.Description, string(t.Status), string(t.Priority), t.Assignee,
		nullTime(t.DueDate, timeLayout), formatTime(t.CreatedAt), formatTime(t.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	t.ID, err = res.LastInsertId()
	return err
}

// GetTask loads a task whose project belongs to orgID.
func (s *Store) GetTask(ctx context.Context, orgID, id int64) (*types.Task, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks t JOIN projects p ON p.id = t.project_id
		 WHERE t.id = ? AND p.organization_id = ?`, id, orgID)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load task: %w", err)
	}
	return t, nil
}

// ListTasks returns a project's tasks, newest first.
func (s *Store) ListTasks(ctx context.Context, projectID int64) ([]*types.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks t WHERE t.project_id = ? ORDER BY t.created_at DESC, t.id DESC`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	out := []*types.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// UpdateTask writes every mutable column of t and refreshes UpdatedAt.
func (s *Store) UpdateTask(ctx context.Context, t *types.Task) error {
	if err := t.Validate(); err != nil {
		return err
	}
	t.UpdatedAt = s.stamp()
	res, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET title = ?, description = ?, status = ?, priority = ?, assignee = ?,
		 due_date = ?, updated_at = ? WHERE id = ?`,
		t.Title, t.Description, string(t.Status), string(t.Priority), t.Assignee,
		nullTime(t.DueDate, timeLayout), formatTime(t.UpdatedAt), t.ID)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return expectOne(res)
}

// DeleteTask removes a task and its comments.
func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return expectOne(res)
}
