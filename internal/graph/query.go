package graph

import (
	"github.com/graphql-go/graphql"

	"minipm/internal/tenant"
	"minipm/internal/types"
)

func (b *builder) query() *graphql.Object {
	listOf := func(t graphql.Type) graphql.Output {
		return graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(t)))
	}

	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"organization": &graphql.Field{
				Type:        b.organization,
				Description: "The organization named by the X-Organization header.",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return nullable(b.svc.Organization(p.Context, tenant.FromContext(p.Context)))
				},
			},
			"projects": &graphql.Field{
				Type: listOf(b.project),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.svc.Projects(p.Context, tenant.FromContext(p.Context))
				},
			},
			"project": &graphql.Field{
				Type: b.project,
				Args: graphql.FieldConfigArgument{"id": nonNullID()},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, ok := argID(p, "id")
					if !ok {
						return nil, nil
					}
					return nullable(b.svc.Project(p.Context, tenant.FromContext(p.Context), id))
				},
			},
			"tasks": &graphql.Field{
				Type: listOf(b.task),
				Args: graphql.FieldConfigArgument{"projectId": nonNullID()},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, ok := argID(p, "projectId")
					if !ok {
						return []*types.Task{}, nil
					}
					return b.svc.Tasks(p.Context, tenant.FromContext(p.Context), id)
				},
			},
			"task": &graphql.Field{
				Type: b.task,
				Args: graphql.FieldConfigArgument{"id": nonNullID()},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, ok := argID(p, "id")
					if !ok {
						return nil, nil
					}
					return nullable(b.svc.Task(p.Context, tenant.FromContext(p.Context), id))
				},
			},
			"comments": &graphql.Field{
				Type: listOf(b.comment),
				Args: graphql.FieldConfigArgument{"taskId": nonNullID()},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, ok := argID(p, "taskId")
					if !ok {
						return []*types.Comment{}, nil
					}
					return b.svc.Comments(p.Context, tenant.FromContext(p.Context), id)
				},
			},
			"comment": &graphql.Field{
				Type: b.comment,
				Args: graphql.FieldConfigArgument{"id": nonNullID()},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, ok := argID(p, "id")
					if !ok {
						return nil, nil
					}
					return nullable(b.svc.Comment(p.Context, tenant.FromContext(p.Context), id))
				},
			},
			"projectStats": &graphql.Field{
				Type: b.projectStats,
				Args: graphql.FieldConfigArgument{"projectId": nonNullID()},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, ok := argID(p, "projectId")
					if !ok {
						return nil, nil
					}
					return nullable(b.svc.ProjectStats(p.Context, tenant.FromContext(p.Context), id))
				},
			},
			"organizationStats": &graphql.Field{
				Type: b.orgStats,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return nullable(b.svc.OrganizationStats(p.Context, tenant.FromContext(p.Context)))
				},
			},
			"allProjectStats": &graphql.Field{
				Type: listOf(b.projectStats),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.svc.AllProjectStats(p.Context, tenant.FromContext(p.Context))
				},
			},
		},
	})
}

// nullable converts a typed nil pointer into an untyped nil so the executor
// writes null instead of an empty object.
func nullable[T any](v *T, err error) (interface{}, error) {
	if err != nil || v == nil {
		return nil, err
	}
	return v, nil
}
