package client

// GraphQL documents sent by the client. Field selections match what the
// board and the project list render.

const taskFields = `id title description status priority assignee dueDate createdAt updatedAt project { id name }`

const projectFields = `id name description status dueDate createdAt`

const commentFields = `id author content createdAt task { id title }`

const statsFields = `projectId projectName totalTasks completedTasks inProgressTasks todoTasks completionRate`

const (
	queryOrganization = `query GetOrganization {
  organization { id name slug contactEmail createdAt }
}`

	queryProjects = `query GetProjectList {
  projects { ` + projectFields + ` }
}`

	queryAllProjectStats = `query GetProjects {
  allProjectStats { ` + statsFields + ` }
}`

	queryProject = `query GetProject($id: ID!) {
  project(id: $id) { ` + projectFields + ` }
}`

	queryProjectStats = `query GetProjectStats($projectId: ID!) {
  projectStats(projectId: $projectId) { ` + statsFields + ` }
}`

	queryOrganizationStats = `query GetOrganizationStats {
  organizationStats { totalProjects activeProjects completedProjects totalTasks completedTasks overallCompletionRate }
}`

	queryTasks = `query GetTasks($projectId: ID!) {
  tasks(projectId: $projectId) { ` + taskFields + ` }
}`

	queryTask = `query GetTask($id: ID!) {
  task(id: $id) { ` + taskFields + ` }
}`

	queryComments = `query GetComments($taskId: ID!) {
  comments(taskId: $taskId) { ` + commentFields + ` }
}`

	queryComment = `query GetComment($id: ID!) {
  comment(id: $id) { ` + commentFields + ` }
}`

	mutationCreateProject = `mutation CreateProject($name: String!, $description: String, $status: String, $dueDate: Date) {
  createProject(name: $name, description: $description, status: $status, dueDate: $dueDate) {
    project { ` + projectFields + ` }
    success
    message
  }
}`

	mutationUpdateProject = `mutation UpdateProject($projectId: ID!, $name: String, $description: String, $status: String, $dueDate: Date) {
  updateProject(projectId: $projectId, name: $name, description: $description, status: $status, dueDate: $dueDate) {
    project { ` + projectFields + ` }
    success
    message
  }
}`

	mutationDeleteProject = `mutation DeleteProject($projectId: ID!) {
  deleteProject(projectId: $projectId) { success message }
}`

	mutationCreateTask = `mutation CreateTask($projectId: ID!, $title: String!, $description: String, $status: String, $priority: String, $assignee: String, $dueDate: DateTime) {
  createTask(projectId: $projectId, title: $title, description: $description, status: $status, priority: $priority, assignee: $assignee, dueDate: $dueDate) {
    task { ` + taskFields + ` }
    success
    message
  }
}`

	mutationUpdateTask = `mutation UpdateTask($taskId: ID!, $title: String, $description: String, $status: String, $priority: String, $assignee: String, $dueDate: DateTime) {
  updateTask(taskId: $taskId, title: $title, description: $description, status: $status, priority: $priority, assignee: $assignee, dueDate: $dueDate) {
    task { ` + taskFields + ` }
    success
    message
  }
}`

	mutationDeleteTask = `mutation DeleteTask($taskId: ID!) {
  deleteTask(taskId: $taskId) { success message }
}`

	mutationAddComment = `mutation AddComment($taskId: ID!, $author: String!, $content: String!) {
  addComment(taskId: $taskId, author: $author, content: $content) {
    comment { ` + commentFields + ` }
    success
    message
  }
}`

	mutationUpdateComment = `mutation UpdateComment($commentId: ID!, $content: String!) {
  updateComment(commentId: $commentId, content: $content) {
    comment { ` + commentFields + ` }
    success
    message
  }
}`

	mutationDeleteComment = `mutation DeleteComment($commentId: ID!) {
  deleteComment(commentId: $commentId) { success message }
}`
)
