package tracker

import (
	"context"
	"fmt"

	"minipm/internal/logging"
	"minipm/internal/types"
)

// finish turns err into an Outcome and records the mutation in the audit
// trail. Errors that are not domain failures are returned unchanged.
func finish(ctx context.Context, event logging.AuditEventType, org *types.Organization, id int64, out *Outcome, err error) (*Outcome, error) {
	if err != nil {
		if !isDomainError(err) {
			logging.Get(logging.CategoryTracker).Error("%s failed: %v", event, err)
			return nil, err
		}
		logging.TrackerDebug("%s rejected: %v", event, err)
		out = failed(err)
	}
	logging.AuditFrom(ctx).Mutation(event, orgSlug(org), id, out.Success, out.Message)
	return out, nil
}

// CreateProject adds a project to the organization. Name is required.
func (s *Service) CreateProject(ctx context.Context, org *types.Organization, in types.ProjectInput) (*Outcome, error) {
	out, err := s.createProject(ctx, org, in)
	var id int64
	if out != nil && out.Project != nil {
		id = out.Project.ID
	}
	return finish(ctx, logging.AuditProjectCreate, org, id, out, err)
}

func (s *Service) createProject(ctx context.Context, org *types.Organization, in types.ProjectInput) (*Outcome, error) {
	if org == nil {
		return nil, ErrNoOrganization
	}
	p := &types.Project{OrganizationID: org.ID, Status: types.ProjectPlanning}
	if err := in.Apply(p); err != nil {
		return nil, err
	}
	if err := s.store.CreateProject(ctx, p); err != nil {
		return nil, err
	}
	out := succeeded("Project created")
	out.Project = p
	return out, nil
}

// UpdateProject changes the provided fields of a project.
func (s *Service) UpdateProject(ctx context.Context, org *types.Organization, id int64, in types.ProjectInput) (*Outcome, error) {
	out, err := s.updateProject(ctx, org, id, in)
	return finish(ctx, logging.AuditProjectUpdate, org, id, out, err)
}

func (s *Service) updateProject(ctx context.Context, org *types.Organization, id int64, in types.ProjectInput) (*Outcome, error) {
	if org == nil {
		return nil, ErrNoOrganization
	}
	p, err := s.store.GetProject(ctx, org.ID, id)
	if err != nil {
		return nil, notFound(err, ErrProjectNotFound)
	}
	if err := in.Apply(p); err != nil {
		return nil, err
	}
	if err := s.store.UpdateProject(ctx, p); err != nil {
		return nil, notFound(err, ErrProjectNotFound)
	}
	out := succeeded("Project updated")
	out.Project = p
	return out, nil
}

// DeleteProject removes a project together with its tasks and comments.
func (s *Service) DeleteProject(ctx context.Context, org *types.Organization, id int64) (*Outcome, error) {
	out, err := s.deleteProject(ctx, org, id)
	return finish(ctx, logging.AuditProjectDelete, org, id, out, err)
}

func (s *Service) deleteProject(ctx context.Context, org *types.Organization, id int64) (*Outcome, error) {
	if org == nil {
		return nil, ErrNoOrganization
	}
	p, err := s.store.GetProject(ctx, org.ID, id)
	if err != nil {
		return nil, notFound(err, ErrProjectNotFound)
	}
	if err := s.store.DeleteProject(ctx, org.ID, id); err != nil {
		return nil, notFound(err, ErrProjectNotFound)
	}
	return succeeded(fmt.Sprintf("Project '%s' deleted successfully", p.Name)), nil
}

// CreateTask adds a task to a project of the organization.
func (s *Service) CreateTask(ctx context.Context, org *types.Organization, projectID int64, in types.TaskInput) (*Outcome, error) {
	out, err := s.createTask(ctx, org, projectID, in)
	var id int64
	if out != nil && out.Task != nil {
		id = out.Task.ID
	}
	return finish(ctx, logging.AuditTaskCreate, org, id, out, err)
}

func (s *Service) createTask(ctx context.Context, org *types.Organization, projectID int64, in types.TaskInput) (*Outcome, error) {
	if org == nil {
		return nil, ErrNoOrganization
	}
	p, err := s.store.GetProject(ctx, org.ID, projectID)
	if err != nil {
		return nil, notFound(err, ErrProjectNotFound)
	}
	t := &types.Task{ProjectID: p.ID, Status: types.TaskTodo, Priority: types.PriorityMedium}
	if err := in.Apply(t); err != nil {
		return nil, err
	}
	if err := s.store.CreateTask(ctx, t); err != nil {
		return nil, err
	}
	out := succeeded("Task created")
	out.Task = t
	return out, nil
}

// UpdateTask changes the provided fields of a task. Moving a task between
// board columns is an UpdateTask with only Status set.
func (s *Service) UpdateTask(ctx context.Context, org *types.Organization, id int64, in types.TaskInput) (*Outcome, error) {
	out, err := s.updateTask(ctx, org, id, in)
	return finish(ctx, logging.AuditTaskUpdate, org, id, out, err)
}

func (s *Service) updateTask(ctx context.Context, org *types.Organization, id int64, in types.TaskInput) (*Outcome, error) {
	if org == nil {
		return nil, ErrNoOrganization
	}
	t, err := s.store.GetTask(ctx, org.ID, id)
	if err != nil {
		return nil, notFound(err, ErrTaskNotFound)
	}
	if err := in.Apply(t); err != nil {
		return nil, err
	}
	if err := s.store.UpdateTask(ctx, t); err != nil {
		return nil, notFound(err, ErrTaskNotFound)
	}
	out := succeeded("Task updated")
	out.Task = t
	return out, nil
}

// DeleteTask removes a task and its comments.
func (s *Service) DeleteTask(ctx context.Context, org *types.Organization, id int64) (*Outcome, error) {
	out, err := s.deleteTask(ctx, org, id)
	return finish(ctx, logging.AuditTaskDelete, org, id, out, err)
}

func (s *Service) deleteTask(ctx context.Context, org *types.Organization, id int64) (*Outcome, error) {
	if org == nil {
		return nil, ErrNoOrganization
	}
	t, err := s.store.GetTask(ctx, org.ID, id)
	if err != nil {
		return nil, notFound(err, ErrTaskNotFound)
	}
	if err := s.store.DeleteTask(ctx, t.ID); err != nil {
		return nil, notFound(err, ErrTaskNotFound)
	}
	return succeeded(fmt.Sprintf("Task '%s' deleted successfully", t.Title)), nil
}

// AddComment attaches a comment to a task of the organization.
func (s *Service) AddComment(ctx context.Context, org *types.Organization, taskID int64, author, content string) (*Outcome, error) {
	out, err := s.addComment(ctx, org, taskID, author, content)
	var id int64
	if out != nil && out.Comment != nil {
		id = out.Comment.ID
	}
	return finish(ctx, logging.AuditCommentCreate, org, id, out, err)
}

func (s *Service) addComment(ctx context.Context, org *types.Organization, taskID int64, author, content string) (*Outcome, error) {
	if org == nil {
		return nil, ErrNoOrganization
	}
	t, err := s.store.GetTask(ctx, org.ID, taskID)
	if err != nil {
		return nil, notFound(err, ErrTaskNotFound)
	}
	c := &types.Comment{TaskID: t.ID, Author: author, Content: content}
	if err := s.store.CreateComment(ctx, c); err != nil {
		return nil, err
	}
	out := succeeded("Comment added")
	out.Comment = c
	return out, nil
}

// UpdateComment replaces a comment's content.
func (s *Service) UpdateComment(ctx context.Context, org *types.Organization, id int64, content string) (*Outcome, error) {
	out, err := s.updateComment(ctx, org, id, content)
	return finish(ctx, logging.AuditCommentUpdate, org, id, out, err)
}

func (s *Service) updateComment(ctx context.Context, org *types.Organization, id int64, content string) (*Outcome, error) {
	if org == nil {
		return nil, ErrNoOrganization
	}
	c, err := s.store.GetComment(ctx, org.ID, id)
	if err != nil {
		return nil, notFound(err, ErrCommentNotFound)
	}
	c.Content = content
	if err := s.store.UpdateComment(ctx, c); err != nil {
		return nil, notFound(err, ErrCommentNotFound)
	}
	out := succeeded("Comment updated")
	out.Comment = c
	return out, nil
}

// DeleteComment removes a comment.
func (s *Service) DeleteComment(ctx context.Context, org *types.Organization, id int64) (*Outcome, error) {
	out, err := s.deleteComment(ctx, org, id)
	return finish(ctx, logging.AuditCommentDelete, org, id, out, err)
}

func (s *Service) deleteComment(ctx context.Context, org *types.Organization, id int64) (*Outcome, error) {
	if org == nil {
		return nil, ErrNoOrganization
	}
	c, err := s.store.GetComment(ctx, org.ID, id)
	if err != nil {
		return nil, notFound(err, ErrCommentNotFound)
	}
	if err := s.store.DeleteComment(ctx, c.ID); err != nil {
		return nil, notFound(err, ErrCommentNotFound)
	}
	return succeeded("Comment deleted successfully"), nil
}
