package store

import (
	"context"
	"fmt"

	"minipm/internal/types"
)

const projectStatsQuery = `
SELECT p.id, p.name,
	COUNT(t.id),
	COALESCE(SUM(CASE WHEN t.status = 'done' THEN 1 ELSE 0 END), 0),
	COALESCE(SUM(CASE WHEN t.status = 'in_progress' THEN 1 ELSE 0 END), 0),
	COALESCE(SUM(CASE WHEN t.status = 'todo' THEN 1 ELSE 0 END), 0)
FROM projects p
LEFT JOIN tasks t ON t.project_id = p.id
WHERE p.organization_id = ?`

func scanProjectStats(row scanner) (*types.ProjectStats, error) {
	var st types.ProjectStats
	if err := row.Scan(&st.ProjectID, &st.ProjectName, &st.TotalTasks,
		&st.CompletedTasks, &st.InProgressTasks, &st.TodoTasks); err != nil {
		return nil, err
	}
	st.CompletionRate = types.CompletionRate(st.CompletedTasks, st.TotalTasks)
	return &st, nil
}

// ProjectStats counts the tasks of one project by status.
func (s *Store) ProjectStats(ctx context.Context, orgID, projectID int64) (*types.ProjectStats, error) {
	rows, err := s.db.QueryContext(ctx, projectStatsQuery+` AND p.id = ? GROUP BY p.id`, orgID, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute project stats: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, ErrNotFound
	}
	return scanProjectStats(rows)
}

// AllProjectStats returns per-project stats in project list order.
func (s *Store) AllProjectStats(ctx context.Context, orgID int64) ([]*types.ProjectStats, error) {
	rows, err := s.db.QueryContext(ctx,
		projectStatsQuery+` GROUP BY p.id ORDER BY p.created_at DESC, p.id DESC`, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute project stats: %w", err)
	}
	defer rows.Close()

	out := []*types.ProjectStats{}
	for rows.Next() {
		st, err := scanProjectStats(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

// OrganizationStats aggregates project and task counts for an organization.
func (s *Store) OrganizationStats(ctx context.Context, orgID int64) (*types.OrganizationStats, error) {
	var st types.OrganizationStats
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'active' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0)
		FROM projects WHERE organization_id = ?`, orgID).
		Scan(&st.TotalProjects, &st.ActiveProjects, &st.CompletedProjects)
	if err != nil {
		return nil, fmt.Errorf("failed to count projects: %w", err)
	}

	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(t.id),
			COALESCE(SUM(CASE WHEN t.status = 'done' THEN 1 ELSE 0 END), 0)
		FROM tasks t JOIN projects p ON p.id = t.project_id
		WHERE p.organization_id = ?`, orgID).
		Scan(&st.TotalTasks, &st.CompletedTasks)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}
	st.OverallCompletionRate = types.CompletionRate(st.CompletedTasks, st.TotalTasks)
	return &st, nil
}
