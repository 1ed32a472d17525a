package graph

import (
	"github.com/graphql-go/graphql"

	"minipm/internal/tenant"
	"minipm/internal/types"
)

func (b *builder) buildObjects() {
	b.organization = graphql.NewObject(graphql.ObjectConfig{
		Name: "OrganizationType",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id":           idField(func(s interface{}) int64 { return s.(*types.Organization).ID }),
				"name":         &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
				"slug":         &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
				"contactEmail": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
				"createdAt":    &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
				"projects": &graphql.Field{
					Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(b.project))),
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						org := p.Source.(*types.Organization)
						if cur := tenant.FromContext(p.Context); cur == nil || cur.ID != org.ID {
							return []*types.Project{}, nil
						}
						return b.svc.Projects(p.Context, org)
					},
				},
			}
		}),
	})

	b.project = graphql.NewObject(graphql.ObjectConfig{
		Name: "ProjectType",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id":          idField(func(s interface{}) int64 { return s.(*types.Project).ID }),
				"name":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
				"description": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
				"status": &graphql.Field{
					Type: graphql.NewNonNull(graphql.String),
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return string(p.Source.(*types.Project).Status), nil
					},
				},
				"dueDate": &graphql.Field{
					Type: Date,
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return optionalTime(p.Source.(*types.Project).DueDate), nil
					},
				},
				"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
				"organization": &graphql.Field{
					Type: b.organization,
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						org := tenant.FromContext(p.Context)
						if org == nil || org.ID != p.Source.(*types.Project).OrganizationID {
							return nil, nil
						}
						return nullable(b.svc.Organization(p.Context, org))
					},
				},
				"tasks": &graphql.Field{
					Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(b.task))),
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return b.svc.Tasks(p.Context, tenant.FromContext(p.Context), p.Source.(*types.Project).ID)
					},
				},
			}
		}),
	})

	b.task = graphql.NewObject(graphql.ObjectConfig{
		Name: "TaskType",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id":          idField(func(s interface{}) int64 { return s.(*types.Task).ID }),
				"title":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
				"description": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
				"status": &graphql.Field{
					Type: graphql.NewNonNull(graphql.String),
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return string(p.Source.(*types.Task).Status), nil
					},
				},
				"priority": &graphql.Field{
					Type: graphql.NewNonNull(graphql.String),
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return string(p.Source.(*types.Task).Priority), nil
					},
				},
				"assignee": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
				"dueDate": &graphql.Field{
					Type: graphql.DateTime,
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return optionalTime(p.Source.(*types.Task).DueDate), nil
					},
				},
				"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
				"updatedAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
				"project": &graphql.Field{
					Type: b.project,
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return nullable(b.svc.Project(p.Context, tenant.FromContext(p.Context), p.Source.(*types.Task).ProjectID))
					},
				},
				"comments": &graphql.Field{
					Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(b.comment))),
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return b.svc.Comments(p.Context, tenant.FromContext(p.Context), p.Source.(*types.Task).ID)
					},
				},
			}
		}),
	})

	b.comment = graphql.NewObject(graphql.ObjectConfig{
		Name: "TaskCommentType",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id":        idField(func(s interface{}) int64 { return s.(*types.Comment).ID }),
				"author":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
				"content":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
				"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
				"task": &graphql.Field{
					Type: b.task,
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return nullable(b.svc.Task(p.Context, tenant.FromContext(p.Context), p.Source.(*types.Comment).TaskID))
					},
				},
			}
		}),
	})

	b.projectStats = graphql.NewObject(graphql.ObjectConfig{
		Name: "ProjectStatsType",
		Fields: graphql.Fields{
			"projectId":       idField(func(s interface{}) int64 { return s.(*types.ProjectStats).ProjectID }),
			"projectName":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"totalTasks":      &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"completedTasks":  &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"inProgressTasks": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"todoTasks":       &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"completionRate":  &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		},
	})

	b.orgStats = graphql.NewObject(graphql.ObjectConfig{
		Name: "OrganizationStatsType",
		Fields: graphql.Fields{
			"totalProjects":         &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"activeProjects":        &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"completedProjects":     &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"totalTasks":            &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"completedTasks":        &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"overallCompletionRate": &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		},
	})
}
