package client

import (
	"context"
	"time"
)

func projectVars(f ProjectFields) map[string]interface{} {
	vars := map[string]interface{}{}
	setString(vars, "name", f.Name)
	setString(vars, "description", f.Description)
	setString(vars, "status", f.Status)
	setString(vars, "dueDate", f.DueDate)
	return vars
}

func taskVars(f TaskFields) map[string]interface{} {
	vars := map[string]interface{}{}
	setString(vars, "title", f.Title)
	setString(vars, "description", f.Description)
	setString(vars, "status", f.Status)
	setString(vars, "priority", f.Priority)
	setString(vars, "assignee", f.Assignee)
	if f.DueDate != nil {
		vars["dueDate"] = f.DueDate.UTC().Format(time.RFC3339)
	}
	return vars
}

// CreateProject creates a project. f.Name is required.
func (c *Client) CreateProject(ctx context.Context, f ProjectFields) (*Project, error) {
	var resp struct {
		CreateProject struct {
			MutationResult
			Project *Project `graphql:"project"`
		} `graphql:"createProject"`
	}
	if err := c.exec(ctx, "createProject", mutationCreateProject, projectVars(f), &resp); err != nil {
		return nil, err
	}
	if err := checkMutation("createProject", resp.CreateProject.MutationResult); err != nil {
		return nil, err
	}
	return resp.CreateProject.Project, nil
}

// UpdateProject changes the non-nil fields of a project.
func (c *Client) UpdateProject(ctx context.Context, id string, f ProjectFields) (*Project, error) {
	var resp struct {
		UpdateProject struct {
			MutationResult
			Project *Project `graphql:"project"`
		} `graphql:"updateProject"`
	}
	vars := projectVars(f)
	vars["projectId"] = id
	if err := c.exec(ctx, "updateProject", mutationUpdateProject, vars, &resp); err != nil {
		return nil, err
	}
	if err := checkMutation("updateProject", resp.UpdateProject.MutationResult); err != nil {
		return nil, err
	}
	return resp.UpdateProject.Project, nil
}

// DeleteProject deletes a project and everything under it.
func (c *Client) DeleteProject(ctx context.Context, id string) (*MutationResult, error) {
	var resp struct {
		DeleteProject MutationResult `graphql:"deleteProject"`
	}
	vars := map[string]interface{}{"projectId": id}
	if err := c.exec(ctx, "deleteProject", mutationDeleteProject, vars, &resp); err != nil {
		return nil, err
	}
	return &resp.DeleteProject, checkMutation("deleteProject", resp.DeleteProject)
}

// CreateTask adds a task to a project. f.Title is required.
func (c *Client) CreateTask(ctx context.Context, projectID string, f TaskFields) (*Task, error) {
	var resp struct {
		CreateTask struct {
			MutationResult
			Task *Task `graphql:"task"`
		} `graphql:"createTask"`
	}
	vars := taskVars(f)
	vars["projectId"] = projectID
	if err := c.exec(ctx, "createTask", mutationCreateTask, vars, &resp); err != nil {
		return nil, err
	}
	if err := checkMutation("createTask", resp.CreateTask.MutationResult); err != nil {
		return nil, err
	}
	return resp.CreateTask.Task, nil
}

// UpdateTask changes the non-nil fields of a task.
func (c *Client) UpdateTask(ctx context.Context, id string, f TaskFields) (*Task, error) {
	var resp struct {
		UpdateTask struct {
			MutationResult
			Task *Task `graphql:"task"`
		} `graphql:"updateTask"`
	}
	vars := taskVars(f)
	vars["taskId"] = id
	if err := c.exec(ctx, "updateTask", mutationUpdateTask, vars, &resp); err != nil {
		return nil, err
	}
	if err := checkMutation("updateTask", resp.UpdateTask.MutationResult); err != nil {
		return nil, err
	}
	return resp.UpdateTask.Task, nil
}

// MoveTask sets only the status of a task.
func (c *Client) MoveTask(ctx context.Context, id, status string) (*Task, error) {
	return c.UpdateTask(ctx, id, TaskFields{Status: &status})
}

// DeleteTask deletes a task and its comments.
func (c *Client) DeleteTask(ctx context.Context, id string) (*MutationResult, error) {
	var resp struct {
		DeleteTask MutationResult `graphql:"deleteTask"`
	}
	vars := map[string]interface{}{"taskId": id}
	if err := c.exec(ctx, "deleteTask", mutationDeleteTask, vars, &resp); err != nil {
		return nil, err
	}
	return &resp.DeleteTask, checkMutation("deleteTask", resp.DeleteTask)
}

// AddComment posts a comment on a task.
func (c *Client) AddComment(ctx context.Context, taskID, author, content string) (*Comment, error) {
	var resp struct {
		AddComment struct {
			MutationResult
			Comment *Comment `graphql:"comment"`
		} `graphql:"addComment"`
	}
	vars := map[string]interface{}{"taskId": taskID, "author": author, "content": content}
	if err := c.exec(ctx, "addComment", mutationAddComment, vars, &resp); err != nil {
		return nil, err
	}
	if err := checkMutation("addComment", resp.AddComment.MutationResult); err != nil {
		return nil, err
	}
	return resp.AddComment.Comment, nil
}

// UpdateComment replaces a comment's content.
func (c *Client) UpdateComment(ctx context.Context, id, content string) (*Comment, error) {
	var resp struct {
		UpdateComment struct {
			MutationResult
			Comment *Comment `graphql:"comment"`
		} `graphql:"updateComment"`
	}
	vars := map[string]interface{}{"commentId": id, "content": content}
	if err := c.exec(ctx, "updateComment", mutationUpdateComment, vars, &resp); err != nil {
		return nil, err
	}
	if err := checkMutation("updateComment", resp.UpdateComment.MutationResult); err != nil {
		return nil, err
	}
	return resp.UpdateComment.Comment, nil
}

// DeleteComment deletes a comment.
func (c *Client) DeleteComment(ctx context.Context, id string) (*MutationResult, error) {
	var resp struct {
		DeleteComment MutationResult `graphql:"deleteComment"`
	}
	vars := map[string]interface{}{"commentId": id}
	if err := c.exec(ctx, "deleteComment", mutationDeleteComment, vars, &resp); err != nil {
		return nil, err
	}
	return &resp.DeleteComment, checkMutation("deleteComment", resp.DeleteComment)
}
