package graph

import (
	"github.com/graphql-go/graphql"

	"minipm/internal/tenant"
	"minipm/internal/tracker"
	"minipm/internal/types"
)

// payload builds a mutation result type {success, message[, entity]}.
func payload(name, entity string, entityType *graphql.Object, get func(*tracker.Outcome) interface{}) *graphql.Object {
	fields := graphql.Fields{
		"success": &graphql.Field{
			Type: graphql.NewNonNull(graphql.Boolean),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(*tracker.Outcome).Success, nil
			},
		},
		"message": &graphql.Field{
			Type: graphql.NewNonNull(graphql.String),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(*tracker.Outcome).Message, nil
			},
		},
	}
	if entity != "" {
		fields[entity] = &graphql.Field{
			Type: entityType,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return get(p.Source.(*tracker.Outcome)), nil
			},
		}
	}
	return graphql.NewObject(graphql.ObjectConfig{Name: name, Fields: fields})
}

func outcomeProject(o *tracker.Outcome) interface{} {
	if o.Project == nil {
		return nil
	}
	return o.Project
}

func outcomeTask(o *tracker.Outcome) interface{} {
	if o.Task == nil {
		return nil
	}
	return o.Task
}

func outcomeComment(o *tracker.Outcome) interface{} {
	if o.Comment == nil {
		return nil
	}
	return o.Comment
}

func projectArgs(p graphql.ResolveParams) types.ProjectInput {
	return types.ProjectInput{
		Name:        argString(p, "name"),
		Description: argString(p, "description"),
		Status:      argString(p, "status"),
		DueDate:     argTime(p, "dueDate"),
	}
}

func taskArgs(p graphql.ResolveParams) types.TaskInput {
	return types.TaskInput{
		Title:       argString(p, "title"),
		Description: argString(p, "description"),
		Status:      argString(p, "status"),
		Priority:    argString(p, "priority"),
		Assignee:    argString(p, "assignee"),
		DueDate:     argTime(p, "dueDate"),
	}
}

func (b *builder) mutation() *graphql.Object {
	str := func() *graphql.ArgumentConfig { return &graphql.ArgumentConfig{Type: graphql.String} }
	reqStr := func() *graphql.ArgumentConfig {
		return &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)}
	}

	// Ids that do not parse are looked up as 0, which never exists.
	id := func(p graphql.ResolveParams, name string) int64 {
		v, _ := argID(p, name)
		return v
	}

	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createProject": &graphql.Field{
				Type: payload("CreateProject", "project", b.project, outcomeProject),
				Args: graphql.FieldConfigArgument{
					"name":        reqStr(),
					"description": str(),
					"status":      str(),
					"dueDate":     &graphql.ArgumentConfig{Type: Date},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.svc.CreateProject(p.Context, tenant.FromContext(p.Context), projectArgs(p))
				},
			},
			"updateProject": &graphql.Field{
				Type: payload("UpdateProject", "project", b.project, outcomeProject),
				Args: graphql.FieldConfigArgument{
					"projectId":   nonNullID(),
					"name":        str(),
					"description": str(),
					"status":      str(),
					"dueDate":     &graphql.ArgumentConfig{Type: Date},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.svc.UpdateProject(p.Context, tenant.FromContext(p.Context), id(p, "projectId"), projectArgs(p))
				},
			},
			"deleteProject": &graphql.Field{
				Type: payload("DeleteProject", "", nil, nil),
				Args: graphql.FieldConfigArgument{"projectId": nonNullID()},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.svc.DeleteProject(p.Context, tenant.FromContext(p.Context), id(p, "projectId"))
				},
			},
			"createTask": &graphql.Field{
				Type: payload("CreateTask", "task", b.task, outcomeTask),
				Args: graphql.FieldConfigArgument{
					"projectId":   nonNullID(),
					"title":       reqStr(),
					"description": str(),
					"status":      str(),
					"priority":    str(),
					"assignee":    str(),
					"dueDate":     &graphql.ArgumentConfig{Type: graphql.DateTime},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.svc.CreateTask(p.Context, tenant.FromContext(p.Context), id(p, "projectId"), taskArgs(p))
				},
			},
			"updateTask": &graphql.Field{
				Type: payload("UpdateTask", "task", b.task, outcomeTask),
				Args: graphql.FieldConfigArgument{
					"taskId":      nonNullID(),
					"title":       str(),
					"description": str(),
					"status":      str(),
					"priority":    str(),
					"assignee":    str(),
					"dueDate":     &graphql.ArgumentConfig{Type: graphql.DateTime},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.svc.UpdateTask(p.Context, tenant.FromContext(p.Context), id(p, "taskId"), taskArgs(p))
				},
			},
			"deleteTask": &graphql.Field{
				Type: payload("DeleteTask", "", nil, nil),
				Args: graphql.FieldConfigArgument{"taskId": nonNullID()},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.svc.DeleteTask(p.Context, tenant.FromContext(p.Context), id(p, "taskId"))
				},
			},
			"addComment": &graphql.Field{
				Type: payload("AddComment", "comment", b.comment, outcomeComment),
				Args: graphql.FieldConfigArgument{
					"taskId":  nonNullID(),
					"author":  reqStr(),
					"content": reqStr(),
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.svc.AddComment(p.Context, tenant.FromContext(p.Context), id(p, "taskId"),
						argStringValue(p, "author"), argStringValue(p, "content"))
				},
			},
			"updateComment": &graphql.Field{
				Type: payload("UpdateComment", "comment", b.comment, outcomeComment),
				Args: graphql.FieldConfigArgument{
					"commentId": nonNullID(),
					"content":   reqStr(),
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.svc.UpdateComment(p.Context, tenant.FromContext(p.Context), id(p, "commentId"),
						argStringValue(p, "content"))
				},
			},
			"deleteComment": &graphql.Field{
				Type: payload("DeleteComment", "", nil, nil),
				Args: graphql.FieldConfigArgument{"commentId": nonNullID()},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.svc.DeleteComment(p.Context, tenant.FromContext(p.Context), id(p, "commentId"))
				},
			},
		},
	})
}
