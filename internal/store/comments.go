package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"minipm/internal/types"
)

const commentColumns = `c.id, c.task_id, c.author, c.content, c.created_at`

func scanComment(row scanner) (*types.Comment, error) {
	var c types.Comment
	var created string
	if err := row.Scan(&c.ID, &c.TaskID, &c.Author, &c.Content, &created); err != nil {
		return nil, err
	}
	t, err := parseTime(created)
	if err != nil {
		return nil, err
	}
	c.CreatedAt = t
	return &c, nil
}

// CreateComment inserts c under c.TaskID.
func (s *Store) CreateComment(ctx context.Context, c *types.Comment) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = s.stamp()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO task_comments (task_id, author, content, created_at) VALUES (?, ?, ?, ?)`,
		c.TaskID, c.Author, c.Content, formatTime(c.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	c.ID, err = res.LastInsertId()
	return err
}

// GetComment loads a comment whose task's project belongs to orgID.
func (s *Store) GetComment(ctx context.Context, orgID, id int64) (*types.Comment, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+commentColumns+` FROM task_comments c
		 JOIN tasks t ON t.id = c.task_id
		 JOIN projects p ON p.id = t.project_id
		 WHERE c.id = ? AND p.organization_id = ?`, id, orgID)
	c, err := scanComment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load comment: %w", err)
	}
	return c, nil
}

// ListComments returns a task's comments, oldest first.
func (s *Store) ListComments(ctx context.Context, taskID int64) ([]*types.Comment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+commentColumns+` FROM task_comments c WHERE c.task_id = ? ORDER BY c.created_at, c.id`, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	out := []*types.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// UpdateComment rewrites a comment's content.
func (s *Store) UpdateComment(ctx context.Context, c *types.Comment) error {
	if err := c.Validate(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `UPDATE task_comments SET content = ? WHERE id = ?`, c.Content, c.ID)
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	return expectOne(res)
}

// DeleteComment removes a comment.
func (s *Store) DeleteComment(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM task_comments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return expectOne(res)
}
