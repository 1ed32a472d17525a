package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"minipm/internal/logging"
	"minipm/internal/types"
)

const projectColumns = `id, organization_id, name, description, status, due_date, created_at`

func scanProject(row scanner) (*types.Project, error) {
	var p types.Project
	var status, created string
	var due sql.NullString
	if err := row.Scan(&p.ID, &p.OrganizationID, &p.Name, &p.Description, &status, &due, &created); err != nil {
		return nil, err
	}
	p.Status = types.ProjectStatus(status)
	var err error
	if p.DueDate, err = parseNullTime(due, dateLayout); err != nil {
		return nil, err
	}
	if p.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProject inserts p under p.OrganizationID.
func (s *Store) CreateProject(ctx context.Context, p *types.Project) error {
	if p.Status == "" {
		p.Status = types.ProjectPlanning
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.stamp()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO projects (organization_id, name, description, status, due_date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.OrganizationID, p.Name, p.Description, string(p.Status),
		nullTime(p.DueDate, dateLayout), formatTime(p.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	p.ID, err = res.LastInsertId()
	logging.StoreDebug("Created project %d in organization %d", p.ID, p.OrganizationID)
	return err
}

// GetProject loads a project that belongs to orgID.
func (s *Store) GetProject(ctx context.Context, orgID, id int64) (*types.Project, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = ? AND organization_id = ?`, id, orgID)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	return p, nil
}

// ListProjects returns the organization's projects, newest first.
func (s *Store) ListProjects(ctx context.Context, orgID int64) ([]*types.Project, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE organization_id = ? ORDER BY created_at DESC, id DESC`, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	out := []*types.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// UpdateProject writes every mutable column of p.
func (s *Store) UpdateProject(ctx context.Context, p *types.Project) error {
	if err := p.Validate(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE projects SET name = ?, description = ?, status = ?, due_date = ?
		 WHERE id = ? AND organization_id = ?`,
		p.Name, p.Description, string(p.Status), nullTime(p.DueDate, dateLayout), p.ID, p.OrganizationID)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	return expectOne(res)
}

// DeleteProject removes a project with its tasks and comments.
func (s *Store) DeleteProject(ctx context.Context, orgID, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ? AND organization_id = ?`, id, orgID)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return expectOne(res)
}
