// Package graph exposes the tracker as a GraphQL schema. Every resolver acts
// for the organization that the tenant middleware stored in the request
// context.
package graph

import (
	"context"

	"github.com/graphql-go/graphql"

	"minipm/internal/logging"
	"minipm/internal/tracker"
)

type builder struct {
	svc *tracker.Service

	organization *graphql.Object
	project      *graphql.Object
	task         *graphql.Object
	comment      *graphql.Object
	projectStats *graphql.Object
	orgStats     *graphql.Object
}

// NewSchema builds the query and mutation schema over svc.
func NewSchema(svc *tracker.Service) (graphql.Schema, error) {
	b := &builder{svc: svc}
	b.buildObjects()

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query:    b.query(),
		Mutation: b.mutation(),
	})
	if err != nil {
		return graphql.Schema{}, err
	}
	logging.GraphQLDebug("Schema built")
	return schema, nil
}

// Execute runs one GraphQL request against schema.
func Execute(ctx context.Context, schema graphql.Schema, query string, variables map[string]interface{}, operation string) *graphql.Result {
	timer := logging.StartTimer(logging.CategoryGraphQL, "Execute")
	defer timer.Stop()

	params := graphql.Params{
		Schema:         schema,
		RequestString:  query,
		VariableValues: variables,
		OperationName:  operation,
		Context:        ctx,
	}
	res := graphql.Do(params)
	LogResult(ctx, &params, res, nil)
	return res
}

// LogResult records a finished request. The server installs it as the
// handler's result callback.
func LogResult(ctx context.Context, params *graphql.Params, res *graphql.Result, _ []byte) {
	op := params.OperationName
	if op == "" {
		op = "anonymous"
	}
	if res.HasErrors() {
		logging.GraphQL("%s finished with %d errors: %v", op, len(res.Errors), res.Errors)
		return
	}
	logging.GraphQLDebug("%s ok (request %s)", op, logging.RequestID(ctx))
}
