package client

import "time"

// Wire shapes of the GraphQL types. IDs travel as strings and timestamps as
// the server formats them.

type Organization struct {
	ID           string    `graphql:"id"`
	Name         string    `graphql:"name"`
	Slug         string    `graphql:"slug"`
	ContactEmail string    `graphql:"contactEmail"`
	CreatedAt    time.Time `graphql:"createdAt"`
}

type Project struct {
	ID          string    `graphql:"id"`
	Name        string    `graphql:"name"`
	Description string    `graphql:"description"`
	Status      string    `graphql:"status"`
	DueDate     string    `graphql:"dueDate"` // YYYY-MM-DD or ""
	CreatedAt   time.Time `graphql:"createdAt"`
}

type Task struct {
	ID          string      `graphql:"id"`
	Title       string      `graphql:"title"`
	Description string      `graphql:"description"`
	Status      string      `graphql:"status"`
	Priority    string      `graphql:"priority"`
	Assignee    string      `graphql:"assignee"`
	DueDate     *time.Time  `graphql:"dueDate"`
	CreatedAt   time.Time   `graphql:"createdAt"`
	UpdatedAt   time.Time   `graphql:"updatedAt"`
	Project     *ProjectRef `graphql:"project"`
}

// ProjectRef is the project a task belongs to.
type ProjectRef struct {
	ID   string `graphql:"id"`
	Name string `graphql:"name"`
}

// TaskRef is the task a comment belongs to.
type TaskRef struct {
	ID    string `graphql:"id"`
	Title string `graphql:"title"`
}

type Comment struct {
	ID        string    `graphql:"id"`
	Author    string    `graphql:"author"`
	Content   string    `graphql:"content"`
	CreatedAt time.Time `graphql:"createdAt"`
	Task      *TaskRef  `graphql:"task"`
}

type ProjectStats struct {
	ProjectID       string  `graphql:"projectId"`
	ProjectName     string  `graphql:"projectName"`
	TotalTasks      int     `graphql:"totalTasks"`
	CompletedTasks  int     `graphql:"completedTasks"`
	InProgressTasks int     `graphql:"inProgressTasks"`
	TodoTasks       int     `graphql:"todoTasks"`
	CompletionRate  float64 `graphql:"completionRate"`
}

type OrganizationStats struct {
	TotalProjects         int     `graphql:"totalProjects"`
	ActiveProjects        int     `graphql:"activeProjects"`
	CompletedProjects     int     `graphql:"completedProjects"`
	TotalTasks            int     `graphql:"totalTasks"`
	CompletedTasks        int     `graphql:"completedTasks"`
	OverallCompletionRate float64 `graphql:"overallCompletionRate"`
}

// MutationResult is the success flag and message every mutation returns.
type MutationResult struct {
	Success bool   `graphql:"success"`
	Message string `graphql:"message"`
}

// ProjectFields are the optional fields of a project create or update.
// Nil fields are not sent, which leaves them unchanged on update.
type ProjectFields struct {
	Name        *string
	Description *string
	Status      *string
	DueDate     *string // YYYY-MM-DD
}

// TaskFields are the optional fields of a task create or update.
type TaskFields struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	Assignee    *string
	DueDate     *time.Time
}
