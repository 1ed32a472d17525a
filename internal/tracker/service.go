// Package tracker implements the project tracker's operations on behalf of
// one organization. Every call takes the organization resolved from the
// request; nil means the request named none.
package tracker

import (
	"context"
	"errors"

	"minipm/internal/store"
	"minipm/internal/types"
)

var (
	ErrNoOrganization  = errors.New("no organization header")
	ErrProjectNotFound = errors.New("project not found")
	ErrTaskNotFound    = errors.New("task not found")
	ErrCommentNotFound = errors.New("comment not found")
)

// Store is the persistence the tracker needs. *store.Store implements it.
type Store interface {
	GetOrganization(ctx context.Context, id int64) (*types.Organization, error)

	CreateProject(ctx context.Context, p *types.Project) error
	GetProject(ctx context.Context, orgID, id int64) (*types.Project, error)
	ListProjects(ctx context.Context, orgID int64) ([]*types.Project, error)
	UpdateProject(ctx context.Context, p *types.Project) error
	DeleteProject(ctx context.Context, orgID, id int64) error

	CreateTask(ctx context.Context, t *types.Task) error
	GetTask(ctx context.Context, orgID, id int64) (*types.Task, error)
	ListTasks(ctx context.Context, projectID int64) ([]*types.Task, error)
	UpdateTask(ctx context.Context, t *types.Task) error
	DeleteTask(ctx context.Context, id int64) error

	CreateComment(ctx context.Context, c *types.Comment) error
	GetComment(ctx context.Context, orgID, id int64) (*types.Comment, error)
	ListComments(ctx context.Context, taskID int64) ([]*types.Comment, error)
	UpdateComment(ctx context.Context, c *types.Comment) error
	DeleteComment(ctx context.Context, id int64) error

	ProjectStats(ctx context.Context, orgID, projectID int64) (*types.ProjectStats, error)
	AllProjectStats(ctx context.Context, orgID int64) ([]*types.ProjectStats, error)
	OrganizationStats(ctx context.Context, orgID int64) (*types.OrganizationStats, error)
}

var _ Store = (*store.Store)(nil)

// Service runs queries and mutations against a Store.
type Service struct {
	store Store
}

// New creates a Service.
func New(s Store) *Service {
	return &Service{store: s}
}

// Outcome is the result of a mutation: whether it succeeded, the message
// shown to the caller, and the entity it produced (nil on failure and on
// deletes).
type Outcome struct {
	Success bool
	Message string
	Project *types.Project
	Task    *types.Task
	Comment *types.Comment
}

func succeeded(msg string) *Outcome {
	return &Outcome{Success: true, Message: msg}
}

func failed(err error) *Outcome {
	return &Outcome{Message: Message(err)}
}

// Message converts a domain error into the text returned to API callers.
func Message(err error) string {
	var verr *types.ValidationError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoOrganization):
		return "No organization header"
	case errors.Is(err, ErrProjectNotFound):
		return "Project not found"
	case errors.Is(err, ErrTaskNotFound):
		return "Task not found"
	case errors.Is(err, ErrCommentNotFound):
		return "Comment not found"
	case errors.As(err, &verr):
		return verr.Message
	default:
		return err.Error()
	}
}

// isDomainError reports whether err is reported through an Outcome rather
// than returned to the caller.
func isDomainError(err error) bool {
	var verr *types.ValidationError
	return errors.Is(err, ErrNoOrganization) ||
		errors.Is(err, ErrProjectNotFound) ||
		errors.Is(err, ErrTaskNotFound) ||
		errors.Is(err, ErrCommentNotFound) ||
		errors.As(err, &verr)
}

func orgSlug(org *types.Organization) string {
	if org == nil {
		return ""
	}
	return org.Slug
}

// notFound maps store.ErrNotFound onto the tracker's error for the entity.
func notFound(err, as error) error {
	if errors.Is(err, store.ErrNotFound) {
		return as
	}
	return err
}
