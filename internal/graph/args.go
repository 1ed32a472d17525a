package graph

import (
	"strconv"
	"time"

	"github.com/graphql-go/graphql"
)

// Arguments absent from the request or sent as null are missing from
// p.Args, so every getter reports "not provided" for both.

func argID(p graphql.ResolveParams, name string) (int64, bool) {
	switch v := p.Args[name].(type) {
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		return id, err == nil
	case int:
		return int64(v), true
	}
	return 0, false
}

func argString(p graphql.ResolveParams, name string) *string {
	if s, ok := p.Args[name].(string); ok {
		return &s
	}
	return nil
}

func argStringValue(p graphql.ResolveParams, name string) string {
	if s := argString(p, name); s != nil {
		return *s
	}
	return ""
}

func argTime(p graphql.ResolveParams, name string) *time.Time {
	switch v := p.Args[name].(type) {
	case time.Time:
		return &v
	case *time.Time:
		return v
	}
	return nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func idField(get func(src interface{}) int64) *graphql.Field {
	return &graphql.Field{
		Type: graphql.NewNonNull(graphql.ID),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return formatID(get(p.Source)), nil
		},
	}
}

func nonNullID() *graphql.ArgumentConfig {
	return &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)}
}

// optionalTime unwraps t so that a nil pointer serializes as null.
func optionalTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}
