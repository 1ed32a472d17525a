package client

import "context"

// GetOrganization returns the organization the client acts for, or nil.
func (c *Client) GetOrganization(ctx context.Context) (*Organization, error) {
	var resp struct {
		Organization *Organization `graphql:"organization"`
	}
	if err := c.exec(ctx, "organization", queryOrganization, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Organization, nil
}

// Projects lists the organization's projects, newest first.
func (c *Client) Projects(ctx context.Context) ([]Project, error) {
	var resp struct {
		Projects []Project `graphql:"projects"`
	}
	if err := c.exec(ctx, "projects", queryProjects, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Projects, nil
}

// Project returns one project, or nil when it does not exist.
func (c *Client) Project(ctx context.Context, id string) (*Project, error) {
	var resp struct {
		Project *Project `graphql:"project"`
	}
	if err := c.exec(ctx, "project", queryProject, map[string]interface{}{"id": id}, &resp); err != nil {
		return nil, err
	}
	return resp.Project, nil
}

// AllProjectStats is the project list as the browser shows it.
func (c *Client) AllProjectStats(ctx context.Context) ([]ProjectStats, error) {
	var resp struct {
		AllProjectStats []ProjectStats `graphql:"allProjectStats"`
	}
	if err := c.exec(ctx, "allProjectStats", queryAllProjectStats, nil, &resp); err != nil {
		return nil, err
	}
	return resp.AllProjectStats, nil
}

// ProjectStats returns one project's task counts, or nil.
func (c *Client) ProjectStats(ctx context.Context, projectID string) (*ProjectStats, error) {
	var resp struct {
		ProjectStats *ProjectStats `graphql:"projectStats"`
	}
	vars := map[string]interface{}{"projectId": projectID}
	if err := c.exec(ctx, "projectStats", queryProjectStats, vars, &resp); err != nil {
		return nil, err
	}
	return resp.ProjectStats, nil
}

// OrganizationStats returns the organization totals, or nil without an organization.
func (c *Client) OrganizationStats(ctx context.Context) (*OrganizationStats, error) {
	var resp struct {
		OrganizationStats *OrganizationStats `graphql:"organizationStats"`
	}
	if err := c.exec(ctx, "organizationStats", queryOrganizationStats, nil, &resp); err != nil {
		return nil, err
	}
	return resp.OrganizationStats, nil
}

// Tasks lists a project's tasks.
func (c *Client) Tasks(ctx context.Context, projectID string) ([]Task, error) {
	var resp struct {
		Tasks []Task `graphql:"tasks"`
	}
	vars := map[string]interface{}{"projectId": projectID}
	if err := c.exec(ctx, "tasks", queryTasks, vars, &resp); err != nil {
		return nil, err
	}
	return resp.Tasks, nil
}

// Task returns one task, or nil.
func (c *Client) Task(ctx context.Context, id string) (*Task, error) {
	var resp struct {
		Task *Task `graphql:"task"`
	}
	if err := c.exec(ctx, "task", queryTask, map[string]interface{}{"id": id}, &resp); err != nil {
		return nil, err
	}
	return resp.Task, nil
}

// Comments lists a task's comments, oldest first.
func (c *Client) Comments(ctx context.Context, taskID string) ([]Comment, error) {
	var resp struct {
		Comments []Comment `graphql:"comments"`
	}
	vars := map[string]interface{}{"taskId": taskID}
	if err := c.exec(ctx, "comments", queryComments, vars, &resp); err != nil {
		return nil, err
	}
	return resp.Comments, nil
}

// Comment returns one comment, or nil.
func (c *Client) Comment(ctx context.Context, id string) (*Comment, error) {
	var resp struct {
		Comment *Comment `graphql:"comment"`
	}
	if err := c.exec(ctx, "comment", queryComment, map[string]interface{}{"id": id}, &resp); err != nil {
		return nil, err
	}
	return resp.Comment, nil
}
