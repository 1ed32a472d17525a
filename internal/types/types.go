// Package types holds the tracker's domain model: organizations, projects,
// tasks and task comments, plus the aggregate statistics computed over them.
package types

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectPlanning  ProjectStatus = "planning"
	ProjectActive    ProjectStatus = "active"
	ProjectOnHold    ProjectStatus = "on_hold"
	ProjectCompleted ProjectStatus = "completed"
	ProjectCancelled ProjectStatus = "cancelled"
)

// ProjectStatuses lists every project status in display order.
var ProjectStatuses = []ProjectStatus{
	ProjectPlanning, ProjectActive, ProjectOnHold, ProjectCompleted, ProjectCancelled,
}

// TaskStatus is the kanban column a task sits in.
type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
)

// TaskStatuses lists the task statuses in board order.
var TaskStatuses = []TaskStatus{TaskTodo, TaskInProgress, TaskDone}

// Priority ranks a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Priorities lists task priorities from lowest to highest.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// Label returns the human form of a status or priority ("on_hold" -> "On Hold").
func Label(s string) string {
	words := strings.Split(s, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// Organization is a tenant. Every project belongs to exactly one.
type Organization struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	ContactEmail string    `json:"contactEmail"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Project groups tasks inside an organization.
type Project struct {
	ID             int64         `json:"id"`
	OrganizationID int64         `json:"organizationId"`
	Name           string        `json:"name"`
	Description    string        `json:"description"`
	Status         ProjectStatus `json:"status"`
	// DueDate is a calendar date; only the year, month and day are meaningful.
	DueDate   *time.Time `json:"dueDate"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Task is a unit of work on a project board.
type Task struct {
	ID          int64      `json:"id"`
	ProjectID   int64      `json:"projectId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	Priority    Priority   `json:"priority"`
	Assignee    string     `json:"assignee"`
	DueDate     *time.Time `json:"dueDate"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Comment is a note attached to a task.
type Comment struct {
	ID        int64     `json:"id"`
	TaskID    int64     `json:"taskId"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProjectStats summarises the task board of one project.
type ProjectStats struct {
	ProjectID       int64   `json:"projectId"`
	ProjectName     string  `json:"projectName"`
	TotalTasks      int     `json:"totalTasks"`
	CompletedTasks  int     `json:"completedTasks"`
	InProgressTasks int     `json:"inProgressTasks"`
	TodoTasks       int     `json:"todoTasks"`
	CompletionRate  float64 `json:"completionRate"`
}

// OrganizationStats summarises every project of an organization.
type OrganizationStats struct {
	TotalProjects         int     `json:"totalProjects"`
	ActiveProjects        int     `json:"activeProjects"`
	CompletedProjects     int     `json:"completedProjects"`
	TotalTasks            int     `json:"totalTasks"`
	CompletedTasks        int     `json:"completedTasks"`
	OverallCompletionRate float64 `json:"overallCompletionRate"`
}

// CompletionRate returns completed/total, or 0 for an empty set.
func CompletionRate(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(completed) / float64(total)
}

// ProjectInput carries the optional fields of a project create or update.
// Nil pointers mean "not provided".
type ProjectInput struct {
	Name        *string
	Description *string
	Status      *string
	DueDate     *time.Time
}

// TaskInput carries the optional fields of a task create or update.
type TaskInput struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	Assignee    *string
	DueDate     *time.Time
}
