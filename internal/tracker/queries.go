package tracker

import (
	"context"
	"errors"

	"minipm/internal/logging"
	"minipm/internal/store"
	"minipm/internal/types"
)

// Lookups return nil without an error when the organization is missing or
// the entity does not belong to it; list queries return an empty slice.

// Organization returns the request's organization, refreshed from the store.
func (s *Service) Organization(ctx context.Context, org *types.Organization) (*types.Organization, error) {
	if org == nil {
		return nil, nil
	}
	o, err := s.store.GetOrganization(ctx, org.ID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	return o, err
}

// Projects lists the organization's projects, newest first.
func (s *Service) Projects(ctx context.Context, org *types.Organization) ([]*types.Project, error) {
	if org == nil {
		return []*types.Project{}, nil
	}
	timer := logging.StartTimer(logging.CategoryTracker, "Projects")
	defer timer.Stop()
	return s.store.ListProjects(ctx, org.ID)
}

// Project returns one project of the organization.
func (s *Service) Project(ctx context.Context, org *types.Organization, id int64) (*types.Project, error) {
	if org == nil {
		return nil, nil
	}
	p, err := s.store.GetProject(ctx, org.ID, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	return p, err
}

// Tasks lists a project's tasks. A project outside the organization has none.
func (s *Service) Tasks(ctx context.Context, org *types.Organization, projectID int64) ([]*types.Task, error) {
	p, err := s.Project(ctx, org, projectID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return []*types.Task{}, nil
	}
	return s.store.ListTasks(ctx, p.ID)
}

// Task returns one task whose project belongs to the organization.
func (s *Service) Task(ctx context.Context, org *types.Organization, id int64) (*types.Task, error) {
	if org == nil {
		return nil, nil
	}
	t, err := s.store.GetTask(ctx, org.ID, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	return t, err
}

// Comments lists a task's comments, oldest first.
func (s *Service) Comments(ctx context.Context, org *types.Organization, taskID int64) ([]*types.Comment, error) {
	t, err := s.Task(ctx, org, taskID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return []*types.Comment{}, nil
	}
	return s.store.ListComments(ctx, t.ID)
}

// Comment returns one comment reachable from the organization.
func (s *Service) Comment(ctx context.Context, org *types.Organization, id int64) (*types.Comment, error) {
	if org == nil {
		return nil, nil
	}
	c, err := s.store.GetComment(ctx, org.ID, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	return c, err
}

// ProjectStats summarises one project's tasks.
func (s *Service) ProjectStats(ctx context.Context, org *types.Organization, projectID int64) (*types.ProjectStats, error) {
	if org == nil {
		return nil, nil
	}
	st, err := s.store.ProjectStats(ctx, org.ID, projectID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	return st, err
}

// AllProjectStats summarises every project of the organization.
func (s *Service) AllProjectStats(ctx context.Context, org *types.Organization) ([]*types.ProjectStats, error) {
	if org == nil {
		return []*types.ProjectStats{}, nil
	}
	return s.store.AllProjectStats(ctx, org.ID)
}

// OrganizationStats aggregates the organization's projects and tasks.
func (s *Service) OrganizationStats(ctx context.Context, org *types.Organization) (*types.OrganizationStats, error) {
	if org == nil {
		return nil, nil
	}
	return s.store.OrganizationStats(ctx, org.ID)
}
